package draw

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Color is a canvas colour. ColorDefault (the zero value) marks an unset pixel.
type Color = tcell.Color

// ColorDefault is the terminal's default colour and the "empty" pixel value.
const ColorDefault = tcell.ColorDefault

// RGB builds a truecolor Color.
func RGB(r, g, b uint8) Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// textCell is a character overlay on top of the pixel layer.
type textCell struct {
	ch rune
	fg Color
	bg Color
}

// Cell is one composited terminal cell.
type Cell struct {
	Ch rune
	Fg Color
	Bg Color
}

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Coordinates are pixels: x in [0, Width), y in [0, Height) where Height is twice the row count.
type Canvas struct {
	termWidth      int     // Terminal columns used by the canvas
	termHeight     int     // Terminal rows used by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	text           []textCell

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Last frame sent to the terminal, for diffed output.
	prev        []Cell
	forceRedraw bool

	// Reusable buffers to reduce allocations
	scaledBuf       []Point   // Reusable buffer for fillPolygon points
	intersectionBuf []float64 // Reusable buffer for scanline intersections
	polygonBuf      []Point   // Reusable buffer for polygon point generation
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
func NewCanvas(termWidth, termHeight int) *Canvas {
	c := &Canvas{forceRedraw: true}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]Color, c.subPixelHeight*termWidth)
	c.text = make([]textCell, termWidth*termHeight)
	c.prev = make([]Cell, termWidth*termHeight)
	c.forceRedraw = true
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, not just changed ones.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Clear resets all pixels and text in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.text)
}

// Width returns the pixel width (terminal columns).
func (c *Canvas) Width() int {
	return c.termWidth
}

// Height returns the pixel height (terminal rows * 2).
func (c *Canvas) Height() int {
	return c.subPixelHeight
}

// TerminalWidth returns the canvas column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Set sets a pixel at integer coordinates. Out-of-range pixels are ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// SetFloat sets the pixel nearest to (x, y).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	c.Set(int(math.Floor(x)), int(math.Floor(y)), col)
}

// At returns the pixel colour at (x, y), or ColorDefault when out of range.
func (c *Canvas) At(x, y int) Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return ColorDefault
}

// FillRect fills the pixels whose centres fall inside the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0 := int(math.Round(x))
	y0 := int(math.Round(y))
	x1 := int(math.Round(x + w))
	y1 := int(math.Round(y + h))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > c.termWidth {
		x1 = c.termWidth
	}
	if y1 > c.subPixelHeight {
		y1 = c.subPixelHeight
	}
	for py := y0; py < y1; py++ {
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for px := x0; px < x1; px++ {
			row[px] = col
		}
	}
}

// FillCircle fills a disc. Radii below one pixel still paint the centre.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	if r < 0.5 {
		c.SetFloat(cx, cy, col)
		return
	}
	yStart := int(math.Floor(cy - r))
	yEnd := int(math.Ceil(cy + r))
	for py := yStart; py <= yEnd; py++ {
		dy := float64(py) + 0.5 - cy
		span := r*r - dy*dy
		if span < 0 {
			continue
		}
		half := math.Sqrt(span)
		xStart := int(math.Ceil(cx - half - 0.5))
		xEnd := int(math.Floor(cx + half - 0.5))
		for px := xStart; px <= xEnd; px++ {
			c.Set(px, py, col)
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X))
	y1 := int(math.Round(p1.Y))
	x2 := int(math.Round(p2.X))
	y2 := int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.Set(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col Color) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	// Draw outline
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	pts := c.scaledBuf[:len(points)]
	copy(pts, points)

	// Find bounding box
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(pts)
		for i := 0; i < n; i++ {
			p1 := pts[i]
			p2 := pts[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.Set(x, y, col)
			}
		}
	}
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// Text places s on the text layer starting at the 1-based cell (col, row).
// A ColorDefault background keeps the pixels underneath visible as background.
// Every rune takes one cell; runes that are not one column wide are drawn as
// ReplacementRune so Render's cursor tracking stays aligned.
func (c *Canvas) Text(col, row int, s string, fg, bg Color) {
	if row < 1 || row > c.termHeight {
		return
	}
	x := col - 1
	for _, ch := range s {
		if runewidth.RuneWidth(ch) != 1 {
			ch = ReplacementRune
		}
		if x >= 0 && x < c.termWidth {
			c.text[(row-1)*c.termWidth+x] = textCell{ch: ch, fg: fg, bg: bg}
		}
		x++
	}
}

// TextCentered places s horizontally centred on the given 1-based row.
func (c *Canvas) TextCentered(row int, s string, fg, bg Color) {
	col := (c.termWidth-utf8.RuneCountInString(s))/2 + 1
	c.Text(col, row, s, fg, bg)
}

// Cell composites the pixel and text layers for the 0-based cell (col, row).
func (c *Canvas) Cell(col, row int) Cell {
	top := c.pixels[(row*2)*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]

	if t := c.text[row*c.termWidth+col]; t.ch != 0 {
		bg := t.bg
		if bg == ColorDefault {
			bg = top
			if bg == ColorDefault {
				bg = bottom
			}
		}
		return Cell{Ch: t.ch, Fg: t.fg, Bg: bg}
	}

	switch {
	case top != ColorDefault && bottom != ColorDefault:
		if top == bottom {
			return Cell{Ch: BlockEmpty, Fg: ColorDefault, Bg: top}
		}
		return Cell{Ch: BlockUpperHalf, Fg: top, Bg: bottom}
	case top != ColorDefault:
		return Cell{Ch: BlockUpperHalf, Fg: top, Bg: ColorDefault}
	case bottom != ColorDefault:
		return Cell{Ch: BlockLowerHalf, Fg: bottom, Bg: ColorDefault}
	default:
		return Cell{Ch: BlockEmpty, Fg: ColorDefault, Bg: ColorDefault}
	}
}

// Render writes the cells that changed since the previous Render as ANSI
// truecolor half-block output.
func (c *Canvas) Render(cw *ChunkWriter) {
	force := c.forceRedraw
	c.forceRedraw = false

	var curFg, curBg Color
	styled := false
	lastCol, lastRow := -2, -2

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			cell := c.Cell(col, row)
			idx := row*c.termWidth + col
			if !force && c.prev[idx] == cell {
				continue
			}
			c.prev[idx] = cell

			if row != lastRow || col != lastCol+1 {
				cw.MoveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if !styled || cell.Fg != curFg {
				cw.SetForeground(cell.Fg)
				curFg = cell.Fg
			}
			if !styled || cell.Bg != curBg {
				cw.SetBackground(cell.Bg)
				curBg = cell.Bg
			}
			styled = true
			cw.WriteRune(cell.Ch)
			lastCol, lastRow = col, row
		}
	}
	cw.ResetStyle()
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			cw.MoveCursor(left, top)
			cw.WriteString("┌" + line + "┐")
			cw.MoveCursor(left, bottom)
			cw.WriteString("└" + line + "┘")
		} else {
			cw.MoveCursor(c.offsetCol+1, top)
			cw.WriteString(line)
			cw.MoveCursor(c.offsetCol+1, bottom)
			cw.WriteString(line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			cw.MoveCursor(left, row)
			cw.WriteRune('│')
			cw.MoveCursor(right, row)
			cw.WriteRune('│')
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
