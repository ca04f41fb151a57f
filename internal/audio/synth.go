package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave, optionally sliding in pitch.
type oscillator struct {
	freq     float64
	slide    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, duration: rate.N(duration), wave: wave, rate: rate}
}

// NewSlide creates an oscillator whose pitch moves linearly from 'from' to
// 'to' over duration.
func NewSlide(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	secs := duration.Seconds()
	slide := 0.0
	if secs > 0 {
		slide = (to - from) / secs
	}
	return &oscillator{freq: from, slide: slide, duration: rate.N(duration), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.slide*float64(o.position)/float64(o.rate)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with attack and release ramps over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain. math.Log2(0) is -Inf, so zero is
// expressed as silence.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setVolume(v, vol)
	return v
}

func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}

// note is one shaped tone of a synthesized effect.
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Synthesize builds the streamer for a one-shot effect at the given volume.
func Synthesize(e Effect, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch e {
	case EffectFlap:
		d := 90 * time.Millisecond
		s = NewEnvelope(NewSlide(380, 620, d, WaveSine, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
		vol *= 0.5
	case EffectPoint:
		// Two-note chime, B5 then E6
		s = beep.Seq(
			note(987.77, 70*time.Millisecond, WaveSquare, rate),
			note(1318.51, 140*time.Millisecond, WaveSquare, rate),
		)
		vol *= 0.35
	case EffectMilestone:
		d := 600 * time.Millisecond
		s = beep.Mix(
			newVolume(NewEnvelope(NewOscillator(880, d, WaveSine, rate), d, 5*time.Millisecond, 550*time.Millisecond, rate), 0.7),
			newVolume(NewEnvelope(NewOscillator(1760, d, WaveSine, rate), d, 5*time.Millisecond, 300*time.Millisecond, rate), 0.3),
		)
	case EffectWarp:
		d := 420 * time.Millisecond
		s = beep.Mix(
			newVolume(NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 120*time.Millisecond, 250*time.Millisecond, rate), 0.25),
			newVolume(NewEnvelope(NewSlide(180, 900, d, WaveSine, rate), d, 60*time.Millisecond, 200*time.Millisecond, rate), 0.6),
		)
	case EffectLevelUp:
		s = beep.Seq(
			note(523.25, 80*time.Millisecond, WaveSine, rate),
			note(659.25, 80*time.Millisecond, WaveSine, rate),
			note(783.99, 160*time.Millisecond, WaveSine, rate),
		)
		vol *= 0.6
	case EffectHit:
		d := 260 * time.Millisecond
		s = beep.Mix(
			newVolume(NewEnvelope(NewSlide(140, 60, d, WaveSaw, rate), d, 2*time.Millisecond, 200*time.Millisecond, rate), 0.6),
			newVolume(NewEnvelope(NewOscillator(0, 120*time.Millisecond, WaveNoise, rate), 120*time.Millisecond, 2*time.Millisecond, 100*time.Millisecond, rate), 0.4),
		)
	case EffectFanfare:
		s = beep.Seq(
			note(523.25, 120*time.Millisecond, WaveSquare, rate),
			note(659.25, 120*time.Millisecond, WaveSquare, rate),
			note(783.99, 120*time.Millisecond, WaveSquare, rate),
			note(1046.5, 360*time.Millisecond, WaveSquare, rate),
		)
		vol *= 0.35
	case EffectVictory:
		d := 900 * time.Millisecond
		s = beep.Mix(
			newVolume(note(523.25, d, WaveSine, rate), 0.4),
			newVolume(note(659.25, d, WaveSine, rate), 0.3),
			newVolume(note(783.99, d, WaveSine, rate), 0.3),
		)
	default:
		return nil
	}
	return newVolume(s, vol)
}

// drone is the endless ambient pad. Stop makes it report exhaustion so the
// mixer drops it on the next buffer.
type drone struct {
	streamer beep.Streamer
	stopped  bool
}

// newDrone builds a low open fifth from generators' sine tones.
func newDrone(rate beep.SampleRate) (*drone, error) {
	root, err := generators.SineTone(rate, 110)
	if err != nil {
		return nil, err
	}
	fifth, err := generators.SineTone(rate, 164.81)
	if err != nil {
		return nil, err
	}
	shimmer, err := generators.SineTone(rate, 440)
	if err != nil {
		return nil, err
	}
	return &drone{streamer: beep.Mix(
		newVolume(root, 0.5),
		newVolume(fifth, 0.35),
		newVolume(shimmer, 0.08),
	)}, nil
}

func (d *drone) Stream(samples [][2]float64) (int, bool) {
	if d.stopped {
		return 0, false
	}
	return d.streamer.Stream(samples)
}

func (d *drone) Err() error { return nil }

func (d *drone) Stop() { d.stopped = true }
