package draw

import "strconv"

// Digit glyphs on a 3x5 grid, one string per row, '#' is lit.
var digitGlyphs = [10][5]string{
	{"###", "#.#", "#.#", "#.#", "###"},
	{".#.", "##.", ".#.", ".#.", "###"},
	{"###", "..#", "###", "#..", "###"},
	{"###", "..#", ".##", "..#", "###"},
	{"#.#", "#.#", "###", "..#", "..#"},
	{"###", "#..", "###", "..#", "###"},
	{"###", "#..", "###", "#.#", "###"},
	{"###", "..#", ".#.", ".#.", ".#."},
	{"###", "#.#", "###", "#.#", "###"},
	{"###", "#.#", "###", "..#", "###"},
}

const (
	glyphWidth   = 3
	glyphHeight  = 5
	glyphSpacing = 1
)

// NumberWidth returns the pixel width of n drawn at the given scale.
func NumberWidth(n, scale int) int {
	digits := len(strconv.Itoa(n))
	return (digits*(glyphWidth+glyphSpacing) - glyphSpacing) * scale
}

// NumberHeight returns the pixel height of a number drawn at the given scale.
func NumberHeight(scale int) int {
	return glyphHeight * scale
}

// DrawNumber draws n with its top edge at y, horizontally centred on cx.
// A non-default shadow colour is drawn one scaled pixel down and right first.
func (c *Canvas) DrawNumber(n int, cx, y, scale int, col, shadow Color) {
	if scale < 1 {
		scale = 1
	}
	s := strconv.Itoa(n)
	x := cx - NumberWidth(n, scale)/2
	if shadow != ColorDefault {
		c.drawDigits(s, x+scale, y+scale, scale, shadow)
	}
	c.drawDigits(s, x, y, scale, col)
}

func (c *Canvas) drawDigits(s string, x, y, scale int, col Color) {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			x += (glyphWidth + glyphSpacing) * scale
			continue
		}
		glyph := digitGlyphs[ch-'0']
		for gy, line := range glyph {
			for gx := 0; gx < glyphWidth; gx++ {
				if line[gx] != '#' {
					continue
				}
				px := x + gx*scale
				py := y + gy*scale
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						c.Set(px+dx, py+dy, col)
					}
				}
			}
		}
		x += (glyphWidth + glyphSpacing) * scale
	}
}
