// Package loop is the per-frame game simulation: physics, obstacle spawning,
// collision and scoring, and the session state machine. It never draws or
// plays sound; Step reports what happened as events.
package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/object"
)

// Phase is the session state machine position.
type Phase int

const (
	PhaseNotStarted    Phase = iota // Title; waiting for the first flap
	PhaseRunning                    // Physics, spawning and collision active
	PhaseVictoryFlyout              // Finish reached; bird flies off screen
	PhaseGameOver                   // Terminal until restart; Victory tells how it ended
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhaseVictoryFlyout:
		return "victory-flyout"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Session is the whole state of one play session.
type Session struct {
	Tuning     config.Tuning
	Phase      Phase
	Victory    bool
	Score      int
	StartScore int
	Bird       object.Bird
	Obstacles  []object.Obstacle
	Spawned    int           // Obstacles spawned since the last reset
	SinceSpawn time.Duration // Time since the last spawn
	PlayTime   time.Duration // Time spent running or in the flyout
	ScrollX    float64       // Total horizontal scroll in pixels; drives parallax
	View       object.View

	exited    bool          // Bird has left the canvas during the flyout
	exitTimer time.Duration // Time since the bird left
	rng       *rand.Rand
	events    []Event
}

// NewSession creates a session in PhaseNotStarted. startScore is the debug
// entry point and is clamped below the finish count so the finish obstacle
// can still spawn. seed drives gap placement.
func NewSession(t config.Tuning, startScore int, view object.View, seed int64) *Session {
	if startScore < 0 {
		startScore = 0
	}
	if startScore >= t.FinishCount {
		startScore = t.FinishCount - 1
	}
	s := &Session{
		Tuning:     t,
		StartScore: startScore,
		View:       view,
		rng:        rand.New(rand.NewSource(seed)),
	}
	s.Reset()
	return s
}

// Reset returns the session to its initial state: starting score, no
// obstacles, bird at rest, PhaseNotStarted.
func (s *Session) Reset() {
	s.Phase = PhaseNotStarted
	s.Victory = false
	s.Score = s.StartScore
	s.Bird = object.NewBird(s.View, s.Tuning.BirdXFraction)
	clear(s.Obstacles)
	s.Obstacles = s.Obstacles[:0]
	s.Spawned = 0
	s.SinceSpawn = 0
	s.PlayTime = 0
	s.ScrollX = 0
	s.exited = false
	s.exitTimer = 0
}

// Running mirrors the classic running flag: true while the bird is under
// player control or flying out.
func (s *Session) Running() bool {
	return s.Phase == PhaseRunning || s.Phase == PhaseVictoryFlyout
}

// GameOver reports whether the session has ended, by collision or victory.
func (s *Session) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Level is the derived difficulty level for the current score.
func (s *Session) Level() int {
	return LevelFor(s.Tuning, s.Score)
}

// Difficulty returns the multipliers in effect for the current score.
func (s *Session) Difficulty() Difficulty {
	return DifficultyFor(s.Tuning, s.Score)
}

// BackgroundIndex returns floor(score/PointsPerLevel) capped at themes-1.
func (s *Session) BackgroundIndex(themes int) int {
	if themes <= 0 {
		return 0
	}
	idx := 0
	if s.Tuning.PointsPerLevel > 0 && s.Score > 0 {
		idx = s.Score / s.Tuning.PointsPerLevel
	}
	return min(idx, themes-1)
}

// BirdRadius is the collision radius in pixels for the current view.
func (s *Session) BirdRadius() float64 {
	return s.Tuning.BirdRadius * s.View.ScaleY()
}

// NextMilestone returns the nearest unpassed milestone obstacle whose
// leading edge is at or ahead of the bird.
func (s *Session) NextMilestone() (*object.Obstacle, bool) {
	var best *object.Obstacle
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		if !o.Milestone || o.Passed || o.X < s.Bird.X {
			continue
		}
		if best == nil || o.X < best.X {
			best = o
		}
	}
	return best, best != nil
}

// Resize rescales every position to a new view so a terminal resize keeps
// the scene proportionally intact.
func (s *Session) Resize(v object.View) {
	old := s.View
	s.View = v
	if old.Width <= 0 || old.Height <= 0 || old == v {
		if s.Phase == PhaseNotStarted {
			s.Bird = object.NewBird(v, s.Tuning.BirdXFraction)
		}
		return
	}
	sx := v.Width / old.Width
	sy := v.Height / old.Height

	s.Bird.X *= sx
	s.Bird.Y *= sy
	s.Bird.VY *= sy
	s.ScrollX *= sx
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		o.X *= sx
		o.Width *= sx
		o.GapTop *= sy
		o.GapHeight *= sy
	}
}
