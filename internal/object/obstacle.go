package object

import (
	"math"

	"github.com/tomz197/flapssh/internal/draw"
	"github.com/tomz197/flapssh/internal/physics"
)

// Obstacle is one pipe pair. Its gap is fixed at spawn time.
type Obstacle struct {
	Index     int // Absolute spawn index, counting from the starting score
	X         float64
	Width     float64
	GapTop    float64
	GapHeight float64
	Passed    bool
	Milestone bool
	Finish    bool
}

// Right returns the trailing (right) edge.
func (o *Obstacle) Right() float64 {
	return o.X + o.Width
}

// GapBottom returns the lower edge of the gap.
func (o *Obstacle) GapBottom() float64 {
	return o.GapTop + o.GapHeight
}

// Columns returns the solid top and bottom pipe rectangles for a view of the
// given height.
func (o *Obstacle) Columns(height float64) (top, bottom physics.Rect) {
	top = physics.Rect{X: o.X, Y: 0, W: o.Width, H: o.GapTop}
	bottom = physics.Rect{X: o.X, Y: o.GapBottom(), W: o.Width, H: height - o.GapBottom()}
	return top, bottom
}

var (
	portalInner = draw.Hex("#a855f7")
	portalOuter = draw.Hex("#22d3ee")
	finishDark  = draw.Hex("#111827")
	finishLight = draw.Hex("#f9fafb")
)

// Draw paints the pipe pair with pal, plus the portal swirl or the finish
// band inside the gap.
func (o *Obstacle) Draw(ctx DrawContext, pal PipePalette) {
	c := ctx.Canvas
	h := ctx.View.Height
	capH := math.Max(1, 24*ctx.View.ScaleY())
	overhang := math.Max(1, 4*ctx.View.ScaleX())

	top, bottom := o.Columns(h)
	o.drawColumn(c, top, pal)
	o.drawColumn(c, bottom, pal)

	// Caps at the gap edges
	c.FillRect(o.X-overhang, o.GapTop-capH, o.Width+2*overhang, capH, pal.Cap)
	c.FillRect(o.X-overhang, o.GapBottom(), o.Width+2*overhang, capH, pal.Cap)
	c.FillRect(o.X-overhang, o.GapTop-1, o.Width+2*overhang, 1, pal.Shadow)
	c.FillRect(o.X-overhang, o.GapBottom(), o.Width+2*overhang, 1, pal.Shadow)

	switch {
	case o.Finish:
		o.drawFinish(c)
	case o.Milestone:
		o.drawPortal(ctx)
	}
}

func (o *Obstacle) drawColumn(c *draw.Canvas, r physics.Rect, pal PipePalette) {
	if r.H <= 0 {
		return
	}
	c.FillRect(r.X, r.Y, r.W, r.H, pal.Body)
	stripe := math.Max(1, r.W*0.15)
	c.FillRect(r.X+stripe*0.5, r.Y, stripe, r.H, pal.Highlight)
	c.FillRect(r.X+r.W-stripe, r.Y, stripe, r.H, pal.Shadow)
}

// drawPortal paints orbiting sparks inside the gap.
func (o *Obstacle) drawPortal(ctx DrawContext) {
	c := ctx.Canvas
	cx := o.X + o.Width/2
	cy := o.GapTop + o.GapHeight/2
	radius := math.Min(o.Width, o.GapHeight) * 0.4
	if radius < 1 {
		return
	}
	t := ctx.Clock.Seconds()

	const sparks = 8
	for ring := 0; ring < 2; ring++ {
		r := radius * (0.55 + 0.45*float64(ring))
		spin := 2.4
		col := portalInner
		if ring == 1 {
			spin = -1.6
			col = portalOuter
		}
		for i := 0; i < sparks; i++ {
			a := t*spin + float64(i)*2*math.Pi/sparks
			// Vertical radius stretched to the gap, horizontal to the pipe.
			x := cx + math.Cos(a)*r
			y := cy + math.Sin(a)*r*o.GapHeight/math.Max(o.Width, 1)*0.5
			c.FillCircle(x, y, 0.6, col)
		}
	}
	c.FillCircle(cx, cy, math.Max(0.5, radius*0.15*(1+0.3*math.Sin(t*6))), portalOuter)
}

// drawFinish paints a checkered band across the gap.
func (o *Obstacle) drawFinish(c *draw.Canvas) {
	size := math.Max(1, math.Round(o.Width/4))
	cols := int(math.Ceil(o.Width / size))
	rows := int(math.Ceil(o.GapHeight / size))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			shade := finishLight
			if (row+col)%2 == 1 {
				shade = finishDark
			}
			x := o.X + float64(col)*size
			y := o.GapTop + float64(row)*size
			w := math.Min(size, o.Right()-x)
			hh := math.Min(size, o.GapBottom()-y)
			c.FillRect(x, y, w, hh, shade)
		}
	}
}
