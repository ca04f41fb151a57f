package loop

import "time"

// frame60 is the duration velocities are expressed against.
const frame60 = time.Second / 60

// normalizeDelta returns dt as a multiple of a 60 fps frame.
func normalizeDelta(dt time.Duration) float64 {
	return float64(dt) / float64(frame60)
}

// flap resets the bird's vertical velocity to the view-scaled impulse.
// Difficulty never changes the impulse.
func (s *Session) flap(scale float64) {
	s.Bird.Flap(s.Tuning.FlapImpulse * s.View.ScaleY() * scale)
	s.emit(EventFlap)
}

// integrateBird applies level-scaled gravity and moves the bird vertically.
func (s *Session) integrateBird(d Difficulty, dtn, gravityScale float64) {
	g := s.Tuning.Gravity * d.GravityMult * s.View.ScaleY() * gravityScale
	s.Bird.VY += g * dtn
	s.Bird.Y += s.Bird.VY * dtn
}

// advanceObstacles scrolls every obstacle left and culls the ones fully off
// the left edge.
func (s *Session) advanceObstacles(d Difficulty, dtn float64) {
	scaleX := s.View.ScaleX()
	dx := s.Tuning.PipeSpeed * d.SpeedMult * scaleX * dtn
	s.ScrollX += dx

	cull := -s.Tuning.CullMargin * scaleX
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		o.X -= dx
		if o.Right() < cull {
			continue
		}
		kept = append(kept, o)
	}
	s.Obstacles = kept
}
