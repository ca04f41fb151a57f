package object

import (
	"math"
	"time"

	"github.com/tomz197/flapssh/internal/draw"
	"github.com/tomz197/flapssh/internal/physics"
)

// BirdFrames is the number of wing animation frames.
const BirdFrames = 3

var (
	birdBody  = draw.Hex("#facc15")
	birdBelly = draw.Hex("#fef08a")
	birdWing  = draw.Hex("#f59e0b")
	birdBeak  = draw.Hex("#f97316")
	birdEye   = draw.Hex("#1f2937")
)

// wingLift is the vertical wing offset per frame, in body radii.
var wingLift = [BirdFrames]float64{-0.55, 0, 0.45}

// Bird is the player. Y grows downwards; VY is pixels per 60 fps frame.
type Bird struct {
	X, Y  float64
	VY    float64
	Frame int

	animClock time.Duration
}

// NewBird places a bird at rest at xFraction of the view width, mid height.
func NewBird(v View, xFraction float64) Bird {
	return Bird{X: v.Width * xFraction, Y: v.Height / 2}
}

// Flap replaces the vertical velocity with impulse.
func (b *Bird) Flap(impulse float64) {
	b.VY = impulse
}

// Animate advances the wing frame once per interval of elapsed play time.
func (b *Bird) Animate(dt, interval time.Duration) {
	if interval <= 0 {
		return
	}
	b.animClock += dt
	for b.animClock >= interval {
		b.animClock -= interval
		b.Frame = (b.Frame + 1) % BirdFrames
	}
}

// Tilt returns the sprite rotation in radians: nose up while climbing,
// down while falling.
func (b *Bird) Tilt(scaleY float64) float64 {
	if scaleY <= 0 {
		return 0
	}
	return physics.Clamp(b.VY*0.08/scaleY, -0.5, 0.9)
}

// Draw paints the bird as a rotated polygon sprite with the given radius.
func (b *Bird) Draw(ctx DrawContext, radius float64) {
	c := ctx.Canvas
	if radius < 1.5 {
		// Too small for a sprite: a dot with a beak pixel.
		c.FillCircle(b.X, b.Y, radius, birdBody)
		c.SetFloat(b.X+radius+0.5, b.Y, birdBeak)
		return
	}

	angle := b.Tilt(ctx.View.ScaleY())
	sin, cos := math.Sincos(angle)
	at := func(dx, dy float64) draw.Point {
		return draw.Point{X: b.X + dx*cos - dy*sin, Y: b.Y + dx*sin + dy*cos}
	}

	// Body
	const bodySegments = 14
	pts := c.BorrowPoints(bodySegments)
	for i := range pts {
		t := float64(i) / bodySegments * 2 * math.Pi
		pts[i] = at(math.Cos(t)*radius*1.2, math.Sin(t)*radius)
	}
	c.DrawPolygon(pts, true, birdBody)

	// Belly
	pts = c.BorrowPoints(bodySegments)
	for i := range pts {
		t := float64(i) / bodySegments * 2 * math.Pi
		pts[i] = at(math.Cos(t)*radius*0.6+radius*0.1, math.Sin(t)*radius*0.45+radius*0.4)
	}
	c.DrawPolygon(pts, true, birdBelly)

	// Wing
	lift := wingLift[b.Frame%BirdFrames] * radius
	pts = c.BorrowPoints(3)
	pts[0] = at(-radius*0.9, -radius*0.05)
	pts[1] = at(radius*0.15, -radius*0.05)
	pts[2] = at(-radius*0.45, lift+radius*0.2)
	c.DrawPolygon(pts, true, birdWing)

	// Beak
	pts = c.BorrowPoints(3)
	pts[0] = at(radius*0.95, -radius*0.3)
	pts[1] = at(radius*1.75, radius*0.05)
	pts[2] = at(radius*0.95, radius*0.35)
	c.DrawPolygon(pts, true, birdBeak)

	// Eye
	eye := at(radius*0.5, -radius*0.4)
	c.FillCircle(eye.X, eye.Y, math.Max(0.5, radius*0.18), birdEye)
}
