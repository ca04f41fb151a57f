package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Speaker plays through the local sound device. The device is process-wide,
// so only one Speaker may exist at a time.
type Speaker struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	master  float64
	mixer   *beep.Mixer
	drone   *drone
	ambient *effects.Volume
	closed  bool
}

var _ Player = (*Speaker)(nil)

// NewSpeaker opens the sound device. master scales every effect.
func NewSpeaker(master float64) (*Speaker, error) {
	s := &Speaker{
		rate:   sampleRate,
		master: master,
		mixer:  &beep.Mixer{},
	}
	if err := speaker.Init(s.rate, s.rate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds a one-shot effect to the mix.
func (s *Speaker) Play(e Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	st := Synthesize(e, s.rate, s.master)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// SetAmbientGain starts the drone on first use and sets its gain.
func (s *Speaker) SetAmbientGain(gain float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.drone == nil {
		d, err := newDrone(s.rate)
		if err != nil {
			return
		}
		s.drone = d
		s.ambient = newVolume(d, 0)
		speaker.Lock()
		s.mixer.Add(s.ambient)
		speaker.Unlock()
	}
	speaker.Lock()
	setVolume(s.ambient, gain*s.master)
	speaker.Unlock()
}

// StopAmbient releases the drone.
func (s *Speaker) StopAmbient() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopAmbientLocked()
}

func (s *Speaker) stopAmbientLocked() {
	if s.drone == nil {
		return
	}
	speaker.Lock()
	s.drone.Stop()
	speaker.Unlock()
	s.drone = nil
	s.ambient = nil
}

// Close silences everything and closes the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.stopAmbientLocked()
	speaker.Clear()
	speaker.Close()
	return nil
}
