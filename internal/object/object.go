// Package object holds the game entities and how they are painted.
package object

import (
	"time"

	"github.com/tomz197/flapssh/internal/draw"
	"github.com/tomz197/flapssh/internal/loop/config"
)

// View is the live canvas size in pixels.
type View struct {
	Width  float64
	Height float64
}

// ViewOf returns the pixel size of c.
func ViewOf(c *draw.Canvas) View {
	return View{Width: float64(c.Width()), Height: float64(c.Height())}
}

// ScaleX maps design-space horizontal distances onto the view.
func (v View) ScaleX() float64 {
	return v.Width / config.BaseWidth
}

// ScaleY maps design-space vertical distances onto the view.
func (v View) ScaleY() float64 {
	return v.Height / config.BaseHeight
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	View   View
	Clock  time.Duration // Wall-clock animation time for decorative effects
}

// ShouldRenderBlink returns true if something with remaining blink time
// should be painted this frame. Always true once remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
