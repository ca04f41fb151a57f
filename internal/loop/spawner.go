package loop

import (
	"time"

	"github.com/tomz197/flapssh/internal/object"
)

// nextIndex is the absolute index the next spawned obstacle will get.
func (s *Session) nextIndex() int {
	return s.StartScore + s.Spawned + 1
}

// spawn adds an obstacle at the right edge when the difficulty-scaled
// interval has elapsed. The first obstacle of a session spawns at once.
// Nothing spawns past the finish obstacle.
func (s *Session) spawn(d Difficulty, dt time.Duration) {
	index := s.nextIndex()
	if index > s.Tuning.FinishCount {
		return
	}
	s.SinceSpawn += dt
	if s.Spawned > 0 && s.SinceSpawn < d.SpawnInterval {
		return
	}
	s.SinceSpawn = 0
	s.Obstacles = append(s.Obstacles, s.newObstacle(index, d))
	s.Spawned++
}

// newObstacle builds the obstacle with the given absolute index. The gap is
// sized by the level at spawn time and placed uniformly within the margins.
func (s *Session) newObstacle(index int, d Difficulty) object.Obstacle {
	scaleY := s.View.ScaleY()
	h := s.View.Height
	gap := s.Tuning.GapHeight * d.GapScale * scaleY
	margin := s.Tuning.GapMargin * scaleY

	lo := margin
	hi := h - margin - gap
	top := (h - gap) / 2
	if hi > lo {
		top = lo + s.rng.Float64()*(hi-lo)
	}

	every := s.Tuning.MilestoneEvery
	return object.Obstacle{
		Index:     index,
		X:         s.View.Width,
		Width:     s.Tuning.PipeWidth * s.View.ScaleX(),
		GapTop:    top,
		GapHeight: gap,
		Milestone: every > 0 && index%every == 0,
		Finish:    index == s.Tuning.FinishCount,
	}
}
