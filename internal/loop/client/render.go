package client

import (
	"math"
	"time"

	"github.com/tomz197/flapssh/internal/draw"
	"github.com/tomz197/flapssh/internal/loop"
	"github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/object"
)

// Parallax factors relative to the obstacle scroll.
const (
	farParallax  = 0.15
	nearParallax = 0.45
	starParallax = 0.04
)

// Blink frequency of the bird after a hit.
const hitBlinkFrequency = 10.0

var (
	scoreColor  = draw.Hex("#ffffff")
	scoreShadow = draw.Hex("#1f2937")
	puffColor   = draw.Hex("#f8fafc")
	pointColors = []draw.Color{draw.Hex("#fde047"), draw.Hex("#facc15"), draw.Hex("#ffffff")}
	warpColors  = []draw.Color{draw.Hex("#a855f7"), draw.Hex("#22d3ee"), draw.Hex("#f0abfc")}
	hitColors   = []draw.Color{draw.Hex("#ef4444"), draw.Hex("#f97316"), draw.Hex("#fde047")}
	cheerColors = []draw.Color{draw.Hex("#22c55e"), draw.Hex("#3b82f6"), draw.Hex("#eab308"), draw.Hex("#ec4899")}
)

// renderer paints a session. It only reads session state; particles and the
// cached colours are its own.
type renderer struct {
	bg        background
	palLevel  int
	pal       object.PipePalette
	particles object.Particles
	hitBlink  float64 // Seconds of bird blinking left after a hit
}

func newRenderer() *renderer {
	return &renderer{palLevel: -1}
}

// palette returns the pipe colours for level, recomputing them only when the
// level changes.
func (r *renderer) palette(level int) object.PipePalette {
	if level != r.palLevel {
		r.pal = object.PipePaletteFor(level)
		r.palLevel = level
	}
	return r.pal
}

// React spawns particles for the frame's events.
func (r *renderer) React(events []loop.Event, s *loop.Session) {
	b := s.Bird
	sx := s.View.ScaleX()
	radius := s.BirdRadius()
	for _, e := range events {
		switch e {
		case loop.EventFlap:
			object.SpawnPuff(b.X-radius, b.Y+radius*0.5, 60*sx, puffColor, &r.particles)
		case loop.EventPoint:
			object.SpawnBurst(b.X, b.Y, 6, 40*sx, 0.5, pointColors, &r.particles)
		case loop.EventMilestone, loop.EventFlyout:
			object.SpawnBurst(b.X, b.Y, 20, 90*sx, 0.9, warpColors, &r.particles)
		case loop.EventHit:
			object.SpawnBurst(b.X, b.Y, 24, 100*sx, 1.0, hitColors, &r.particles)
			r.hitBlink = 1
		case loop.EventFanfare:
			for i := range 3 {
				x := s.View.Width * (0.25 + 0.25*float64(i))
				object.SpawnBurst(x, s.View.Height*0.3, 16, 120*sx, 1.4, cheerColors, &r.particles)
			}
		}
	}
}

// Update advances the renderer's own animation.
func (r *renderer) Update(dt time.Duration) {
	r.particles.Update(dt)
	r.hitBlink = max(0, r.hitBlink-dt.Seconds())
}

// Reset drops particles and effects, for a restart.
func (r *renderer) Reset() {
	r.particles.Reset()
	r.hitBlink = 0
}

// Draw paints background, obstacles, particles, bird and score.
func (r *renderer) Draw(c *draw.Canvas, s *loop.Session, clock time.Duration) {
	r.bg.Draw(c, s.BackgroundIndex(config.ThemeCount), s.ScrollX, clock)

	ctx := object.DrawContext{Canvas: c, View: s.View, Clock: clock}
	pal := r.palette(s.Level())
	for i := range s.Obstacles {
		s.Obstacles[i].Draw(ctx, pal)
	}
	r.particles.Draw(ctx)
	if object.ShouldRenderBlink(r.hitBlink, hitBlinkFrequency) {
		s.Bird.Draw(ctx, s.BirdRadius())
	}

	if s.Phase != loop.PhaseNotStarted {
		scale := max(1, c.Height()/36)
		c.DrawNumber(s.Score, c.Width()/2, 2+scale, scale, scoreColor, scoreShadow)
	}
}

// background draws the sky gradient and the two parallax layers.
type background struct {
	theme  int
	height int
	sky    []draw.Color
}

func (b *background) skyFor(theme, height int) []draw.Color {
	if b.sky == nil || b.theme != theme || b.height != height {
		t := themeFor(theme)
		b.sky = draw.Gradient(t.SkyTop, t.SkyBottom, height)
		b.theme = theme
		b.height = height
	}
	return b.sky
}

func (b *background) Draw(c *draw.Canvas, theme int, scrollX float64, clock time.Duration) {
	t := themeFor(theme)
	w, h := c.Width(), c.Height()
	if w <= 0 || h <= 0 {
		return
	}
	fh := float64(h)

	sky := b.skyFor(theme, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.Set(x, y, sky[y])
		}
	}

	if t.Stars {
		drawStars(c, scrollX*starParallax, clock)
	}

	// Far layer: rolling hills.
	farOff := scrollX * farParallax
	for x := 0; x < w; x++ {
		wx := float64(x) + farOff
		hill := fh*0.2 + math.Sin(wx*0.045)*fh*0.05 + math.Sin(wx*0.11+1.3)*fh*0.025
		for y := h - int(hill); y < h; y++ {
			c.Set(x, y, t.Far)
		}
	}

	// Near layer: a blocky skyline.
	nearOff := scrollX * nearParallax
	blockW := math.Max(3, float64(w)/14)
	for x := 0; x < w; x++ {
		wx := float64(x) + nearOff
		block := int(math.Floor(wx / blockW))
		height := int(fh * (0.06 + 0.12*hash01(block)))
		top := h - height
		for y := top; y < h; y++ {
			c.Set(x, y, t.Near)
		}
		if t.Window == draw.ColorDefault {
			continue
		}
		// Windows on a two-pixel grid, lit per block.
		inBlock := wx - float64(block)*blockW
		if inBlock < 1 || inBlock > blockW-2 || int(inBlock)%2 != 0 {
			continue
		}
		for y := top + 2; y < h-1; y += 3 {
			if hash01(block*131+y) < 0.45 {
				c.Set(x, y, t.Window)
			}
		}
	}
}

const starCount = 40

func drawStars(c *draw.Canvas, offset float64, clock time.Duration) {
	w, h := float64(c.Width()), float64(c.Height())
	twinkle := int(clock.Milliseconds() / 350)
	for i := range starCount {
		x := math.Mod(hash01(i)*w-offset, w)
		if x < 0 {
			x += w
		}
		y := hash01(i+1000) * h * 0.6
		col := draw.RGB(255, 255, 240)
		if (twinkle+i)%5 == 0 {
			col = draw.RGB(150, 150, 170)
		}
		c.SetFloat(x, y, col)
	}
}

// hash01 maps n to a stable pseudo-random value in [0,1).
func hash01(n int) float64 {
	x := uint32(n)*0x9e3779b1 ^ 0x85ebca6b
	x ^= x >> 15
	x *= 0x2c1b3c6d
	x ^= x >> 12
	x *= 0x297a2d39
	x ^= x >> 15
	return float64(x) / (1 << 32)
}
