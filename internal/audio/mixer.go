package audio

import (
	"time"

	"github.com/tomz197/flapssh/internal/loop"
	"github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/physics"
)

// Mixer turns simulation events and state into sound on a Player.
type Mixer struct {
	player    Player
	tuning    config.Tuning
	gain      float64 // Current ambient gain
	target    float64 // Gain the ambient is fading towards
	ambientOn bool
	warped    int // Index of the obstacle the warp sound last fired for; 0 for none
}

// NewMixer creates a mixer driving p. A nil player plays nothing.
func NewMixer(p Player, t config.Tuning) *Mixer {
	if p == nil {
		p = Nop{}
	}
	return &Mixer{player: p, tuning: t}
}

var eventEffects = map[loop.Event]Effect{
	loop.EventFlap:      EffectFlap,
	loop.EventPoint:     EffectPoint,
	loop.EventMilestone: EffectMilestone,
	loop.EventLevelUp:   EffectLevelUp,
	loop.EventHit:       EffectHit,
	loop.EventFlyout:    EffectWarp,
	loop.EventFanfare:   EffectFanfare,
	loop.EventVictory:   EffectVictory,
}

// Handle plays the one-shot effect for every event.
func (m *Mixer) Handle(events []loop.Event) {
	for _, e := range events {
		if fx, ok := eventEffects[e]; ok {
			m.player.Play(fx)
		}
	}
}

// Update fades the ambient drone towards a gain set by the distance to the
// nearest milestone ahead, and fires the warp sound once per milestone as the
// bird reaches it. Once nothing is in range and the drone is inaudible it is
// released.
func (m *Mixer) Update(s *loop.Session, dt time.Duration) {
	m.target = 0
	if s.Phase == loop.PhaseRunning {
		if o, ok := s.NextMilestone(); ok {
			scaleX := s.View.ScaleX()
			dist := o.X - s.Bird.X
			fade := m.tuning.AmbientFadeDistance * scaleX
			if fade > 0 && dist <= fade {
				peak := m.tuning.MaxAmbientVolume
				m.target = min(peak, peak*(1-dist/fade))
				if dist < m.tuning.WarpDistance*scaleX && m.warped != o.Index {
					m.warped = o.Index
					m.player.Play(EffectWarp)
				}
			}
		}
	}

	m.gain = physics.Approach(m.gain, m.target, dt.Seconds(), m.tuning.AmbientFadeTau)
	if m.target == 0 && m.gain < m.tuning.SilenceThreshold {
		m.gain = 0
		if m.ambientOn {
			m.player.StopAmbient()
			m.ambientOn = false
		}
		return
	}
	m.player.SetAmbientGain(m.gain)
	m.ambientOn = true
}

// Gain returns the current ambient gain.
func (m *Mixer) Gain() float64 {
	return m.gain
}

// AmbientPlaying reports whether the drone is currently held.
func (m *Mixer) AmbientPlaying() bool {
	return m.ambientOn
}

// Reset stops the ambient drone and forgets warp history. Call it when the
// session restarts and at teardown.
func (m *Mixer) Reset() {
	if m.ambientOn {
		m.player.StopAmbient()
	}
	m.ambientOn = false
	m.gain = 0
	m.target = 0
	m.warped = 0
}

// Close resets the mixer and closes the player.
func (m *Mixer) Close() error {
	m.Reset()
	return m.player.Close()
}
