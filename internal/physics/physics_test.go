package physics

import (
	"math"
	"testing"
)

func TestCircleOverlapsRectAABB(t *testing.T) {
	rect := Rect{X: 10, Y: 0, W: 5, H: 20}
	cases := []struct {
		name   string
		cx, cy float64
		r      float64
		want   bool
	}{
		{"left of rect", 4, 10, 2, false},
		{"touching left edge", 8, 10, 2, false},
		{"overlapping left edge", 9, 10, 2, true},
		{"inside", 12, 10, 1, true},
		{"below rect", 12, 25, 2, false},
		{"right of rect", 18, 10, 2, false},
	}
	for _, tc := range cases {
		if got := CircleOverlapsRectAABB(tc.cx, tc.cy, tc.r, rect); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestApproachConverges(t *testing.T) {
	g := 0.0
	for i := 0; i < 600; i++ {
		g = Approach(g, 1, 1.0/60, 0.2)
	}
	if math.Abs(g-1) > 1e-6 {
		t.Fatalf("gain after 10s = %v, want ~1", g)
	}

	// One time constant closes ~63% of the gap.
	g = Approach(0, 1, 0.2, 0.2)
	if math.Abs(g-(1-math.Exp(-1))) > 1e-9 {
		t.Fatalf("one tau step = %v", g)
	}
	if got := Approach(0.3, 1, 0.1, 0); got != 1 {
		t.Fatalf("zero tau should snap, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.5, 0, 1) != 0.5 {
		t.Fatal("clamp mismatch")
	}
}
