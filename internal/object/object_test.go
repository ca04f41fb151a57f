package object

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/flapssh/internal/draw"
)

func TestBirdAnimateAdvancesOnInterval(t *testing.T) {
	var b Bird
	interval := 100 * time.Millisecond

	b.Animate(60*time.Millisecond, interval)
	if b.Frame != 0 {
		t.Fatalf("frame advanced early: %d", b.Frame)
	}
	b.Animate(60*time.Millisecond, interval)
	if b.Frame != 1 {
		t.Fatalf("Frame = %d, want 1", b.Frame)
	}
	b.Animate(250*time.Millisecond, interval)
	if b.Frame != 0 {
		t.Fatalf("Frame = %d, want wrap to 0", b.Frame)
	}
}

func TestBirdFlapResetsVelocity(t *testing.T) {
	b := Bird{VY: -20}
	b.Flap(-7)
	if b.VY != -7 {
		t.Fatalf("VY = %v, want -7", b.VY)
	}
}

func TestBirdTiltIsClamped(t *testing.T) {
	tests := []struct {
		vy   float64
		want float64
	}{
		{0, 0},
		{-100, -0.5},
		{100, 0.9},
		{5, 0.4},
	}
	for _, tt := range tests {
		b := Bird{VY: tt.vy}
		if got := b.Tilt(1); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Tilt(vy=%v) = %v, want %v", tt.vy, got, tt.want)
		}
	}
}

func TestNewBirdPosition(t *testing.T) {
	b := NewBird(View{Width: 200, Height: 100}, 0.25)
	if b.X != 50 || b.Y != 50 || b.VY != 0 {
		t.Fatalf("NewBird = %+v", b)
	}
}

func TestObstacleColumns(t *testing.T) {
	o := Obstacle{X: 10, Width: 5, GapTop: 20, GapHeight: 30}
	top, bottom := o.Columns(100)
	if top.Y != 0 || top.H != 20 || top.X != 10 || top.W != 5 {
		t.Fatalf("top = %+v", top)
	}
	if bottom.Y != 50 || bottom.H != 50 {
		t.Fatalf("bottom = %+v", bottom)
	}
	if o.Right() != 15 || o.GapBottom() != 50 {
		t.Fatal("edge helpers wrong")
	}
}

func TestPipePaletteForLevels(t *testing.T) {
	if PipePaletteFor(0) != basePipePalette {
		t.Fatal("level 0 should be the base palette")
	}
	if PipePaletteFor(1).Body == PipePaletteFor(0).Body {
		t.Fatal("level 1 should be tinted")
	}
	if PipePaletteFor(3) != PipePaletteFor(3) {
		t.Fatal("palette should be deterministic")
	}
}

func TestParticlesExpire(t *testing.T) {
	var ps Particles
	ps.Spawn(NewParticle(0, 0, 10, 0, 0.1, draw.RGB(1, 1, 1)))
	ps.Spawn(NewParticle(0, 0, 10, 0, 1.0, draw.RGB(1, 1, 1)))

	ps.Update(200 * time.Millisecond)
	if ps.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ps.Len())
	}
	ps.Reset()
	if ps.Len() != 0 {
		t.Fatal("Reset left particles")
	}
}

func TestSpawnBurstCount(t *testing.T) {
	var ps Particles
	SpawnBurst(5, 5, 12, 20, 0.5, []draw.Color{draw.RGB(1, 2, 3)}, &ps)
	if ps.Len() != 12 {
		t.Fatalf("Len = %d, want 12", ps.Len())
	}
	SpawnBurst(5, 5, 12, 20, 0.5, nil, &ps)
	if ps.Len() != 12 {
		t.Fatal("burst without colours should spawn nothing")
	}
}

func TestDrawDoesNotPanicOnTinyView(t *testing.T) {
	c := draw.NewCanvas(4, 2)
	ctx := DrawContext{Canvas: c, View: ViewOf(c)}
	b := NewBird(ctx.View, 0.25)
	b.Draw(ctx, 0.3)
	b.Draw(ctx, 3)
	o := Obstacle{X: 1, Width: 2, GapTop: 1, GapHeight: 2, Milestone: true}
	o.Draw(ctx, PipePaletteFor(0))
	o.Finish = true
	o.Draw(ctx, PipePaletteFor(2))
}
