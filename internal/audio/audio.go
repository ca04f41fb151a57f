// Package audio plays the game's sound: one-shot effects and an ambient drone
// whose gain follows the bird's distance to the next milestone portal.
package audio

import (
	"io"
)

// Effect identifies a one-shot sound.
type Effect int

const (
	EffectFlap Effect = iota
	EffectPoint
	EffectMilestone
	EffectWarp
	EffectLevelUp
	EffectHit
	EffectFanfare
	EffectVictory
	effectCount
)

func (e Effect) String() string {
	switch e {
	case EffectFlap:
		return "flap"
	case EffectPoint:
		return "point"
	case EffectMilestone:
		return "milestone"
	case EffectWarp:
		return "warp"
	case EffectLevelUp:
		return "level-up"
	case EffectHit:
		return "hit"
	case EffectFanfare:
		return "fanfare"
	case EffectVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Player is an audio backend. Implementations swallow playback errors:
// a missing sound must never affect the game.
type Player interface {
	// Play starts a one-shot effect.
	Play(e Effect)
	// SetAmbientGain starts the ambient drone if needed and sets its linear
	// gain in [0,1].
	SetAmbientGain(gain float64)
	// StopAmbient releases the ambient drone.
	StopAmbient()
	// Close stops all sound and releases the device.
	Close() error
}

// Nop is a Player that plays nothing.
type Nop struct{}

var _ Player = Nop{}

func (Nop) Play(Effect) {}
func (Nop) SetAmbientGain(float64) {}
func (Nop) StopAmbient() {}
func (Nop) Close() error { return nil }

// Bell rings the terminal bell for the loud events. It is the only sound a
// remote terminal can make, so SSH sessions use it.
type Bell struct {
	w io.Writer
}

var _ Player = (*Bell)(nil)

// NewBell writes bell characters to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(e Effect) {
	switch e {
	case EffectHit, EffectFanfare:
		_, _ = io.WriteString(b.w, "\a")
	}
}

func (b *Bell) SetAmbientGain(float64) {}
func (b *Bell) StopAmbient() {}
func (b *Bell) Close() error { return nil }
