// Package physics provides collision and smoothing helpers.
package physics

import "math"

// Rect is an axis-aligned rectangle. X/Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// CircleOverlapsRectAABB reports whether the bounding box of the circle
// (cx, cy, r) overlaps rect. Touching edges do not count as overlap.
func CircleOverlapsRectAABB(cx, cy, r float64, rect Rect) bool {
	return cx+r > rect.X && cx-r < rect.X+rect.W &&
		cy+r > rect.Y && cy-r < rect.Y+rect.H
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves current toward target with exponential smoothing.
// tau is the time constant in seconds: after tau seconds ~63% of the gap is closed.
// A non-positive tau snaps to the target.
func Approach(current, target, dt, tau float64) float64 {
	if tau <= 0 {
		return target
	}
	if dt <= 0 {
		return current
	}
	return current + (target-current)*(1-math.Exp(-dt/tau))
}
