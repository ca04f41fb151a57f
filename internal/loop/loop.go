package loop

import "time"

// Step advances the session by dt and returns the events of this frame. The
// returned slice is reused by the next Step call.
//
// Transitions:
//
//	NotStarted    --flap-->               Running (impulse applied)
//	Running       --collision-->          GameOver
//	Running       --finish reached-->     VictoryFlyout
//	VictoryFlyout --victory delay-->      GameOver (Victory)
//	GameOver      --restart-->            NotStarted
func (s *Session) Step(act Actions, dt time.Duration) []Event {
	s.events = s.events[:0]
	if dt < 0 {
		dt = 0
	}
	if limit := s.Tuning.MaxFrameDeltaDuration(); dt > limit {
		dt = limit
	}

	switch s.Phase {
	case PhaseNotStarted:
		if act.Flap {
			s.Phase = PhaseRunning
			s.flap(1)
			s.run(dt)
		}
	case PhaseRunning:
		if act.Flap {
			s.flap(1)
		}
		s.run(dt)
	case PhaseVictoryFlyout:
		s.flyout(dt)
	case PhaseGameOver:
		if act.Restart {
			s.Reset()
		}
	}
	return s.events
}

// run is one Running frame: physics, then spawning, then collision.
func (s *Session) run(dt time.Duration) {
	d := s.Difficulty()
	dtn := normalizeDelta(dt)

	s.PlayTime += dt
	s.Bird.Animate(dt, s.Tuning.FrameIntervalDuration())
	s.integrateBird(d, dtn, 1)
	s.advanceObstacles(d, dtn)
	s.spawn(d, dt)
	s.evaluate()
}

// flyout is one VictoryFlyout frame. Obstacles are frozen and input is
// ignored; the bird drifts right under reduced gravity, flapping itself to
// stay in the upper half until it leaves the screen.
func (s *Session) flyout(dt time.Duration) {
	s.PlayTime += dt
	s.Bird.Animate(dt, s.Tuning.FrameIntervalDuration())

	if s.exited {
		s.exitTimer += dt
		if s.exitTimer >= s.Tuning.VictoryDelayDuration() {
			s.Phase = PhaseGameOver
			s.Victory = true
			s.emit(EventVictory)
		}
		return
	}

	dtn := normalizeDelta(dt)
	s.Bird.X += s.Tuning.FlyoutSpeed * s.View.ScaleX() * dtn
	s.integrateBird(s.Difficulty(), dtn, s.Tuning.FlyoutGravityScale)
	if s.Bird.VY > 0 && s.Bird.Y > s.View.Height*0.45 {
		s.flap(s.Tuning.FlyoutFlapScale)
	}

	if s.Bird.X-s.BirdRadius() > s.View.Width {
		s.exited = true
		s.Score++
		s.emit(EventFanfare)
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}
