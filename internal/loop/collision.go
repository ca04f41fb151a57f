package loop

import (
	"github.com/tomz197/flapssh/internal/physics"
)

// evaluate runs the approach trigger, the pass check and collision, in that
// order. It returns false when the frame ended the running phase.
func (s *Session) evaluate() bool {
	if s.checkApproach() {
		return false
	}
	if s.checkPasses() {
		return false
	}
	if s.collides() {
		s.Phase = PhaseGameOver
		s.Victory = false
		s.emit(EventHit)
		return false
	}
	return true
}

// checkApproach starts the flyout once the bird is within VictoryApproach
// of the finish obstacle's leading edge.
func (s *Session) checkApproach() bool {
	tolerance := s.Tuning.VictoryApproach * s.View.ScaleX()
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		if !o.Finish || o.Passed {
			continue
		}
		if o.X-s.Bird.X <= tolerance {
			o.Passed = true
			s.startFlyout()
			return true
		}
	}
	return false
}

// checkPasses marks obstacles whose trailing edge the bird has crossed and
// scores them. Milestones pass without scoring; the finish starts the flyout.
func (s *Session) checkPasses() bool {
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		if o.Passed || o.Right() >= s.Bird.X {
			continue
		}
		o.Passed = true
		switch {
		case o.Finish:
			s.startFlyout()
			return true
		case o.Milestone:
			s.emit(EventMilestone)
		default:
			before := s.Level()
			s.Score++
			s.emit(EventPoint)
			if s.Level() > before {
				s.emit(EventLevelUp)
			}
		}
	}
	return false
}

// collides tests the bird's bounding circle against the canvas edges and the
// solid parts of every obstacle.
func (s *Session) collides() bool {
	r := s.BirdRadius()
	h := s.View.Height
	if s.Bird.Y-r <= 0 || s.Bird.Y+r >= h {
		return true
	}
	for i := range s.Obstacles {
		top, bottom := s.Obstacles[i].Columns(h)
		if physics.CircleOverlapsRectAABB(s.Bird.X, s.Bird.Y, r, top) ||
			physics.CircleOverlapsRectAABB(s.Bird.X, s.Bird.Y, r, bottom) {
			return true
		}
	}
	return false
}

func (s *Session) startFlyout() {
	s.Phase = PhaseVictoryFlyout
	s.exited = false
	s.exitTimer = 0
	s.emit(EventFlyout)
}
