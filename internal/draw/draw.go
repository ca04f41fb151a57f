// Package draw renders colour pixel canvases to terminals.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ReplacementRune stands in for text runes that do not fit one cell.
const ReplacementRune = '?'

