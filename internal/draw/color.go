package draw

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// FromColorful converts a go-colorful colour, clamping it into gamut.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// ToColorful converts a truecolor Color. ColorDefault maps to black.
func ToColorful(c Color) colorful.Color {
	if c == ColorDefault {
		return colorful.Color{}
	}
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Hex parses "#rrggbb". Invalid input yields magenta so it stands out.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB(255, 0, 255)
	}
	return FromColorful(c)
}

// Blend mixes a and b in Lab space; t=0 is a, t=1 is b.
func Blend(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return FromColorful(ToColorful(a).BlendLab(ToColorful(b), t))
}

// Gradient returns n colours evenly blended from a to b.
func Gradient(a, b Color, n int) []Color {
	out := make([]Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = Blend(a, b, t)
	}
	return out
}

// ShiftHue rotates c's hue by deg degrees in HCL space, keeping chroma and
// lightness.
func ShiftHue(c Color, deg float64) Color {
	h, ch, l := ToColorful(c).Hcl()
	h += deg
	for h >= 360 {
		h -= 360
	}
	for h < 0 {
		h += 360
	}
	return FromColorful(colorful.Hcl(h, ch, l))
}

// Darken scales lightness in HCL space by f.
func Darken(c Color, f float64) Color {
	h, ch, l := ToColorful(c).Hcl()
	return FromColorful(colorful.Hcl(h, ch, l*f))
}
