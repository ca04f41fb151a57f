package object

import "github.com/tomz197/flapssh/internal/draw"

// PipePalette is the set of colours a pipe pair is painted with.
type PipePalette struct {
	Body      draw.Color
	Cap       draw.Color
	Highlight draw.Color
	Shadow    draw.Color
}

// pipeHueStep is the hue rotation per difficulty level, in degrees.
const pipeHueStep = 38.0

var basePipePalette = PipePalette{
	Body:      draw.Hex("#4ade80"),
	Cap:       draw.Hex("#22c55e"),
	Highlight: draw.Hex("#bbf7d0"),
	Shadow:    draw.Hex("#15803d"),
}

// PipePaletteFor returns the pipe colours for a difficulty level. Level 0 is
// the classic green; each level rotates the hue. The conversion goes through
// HCL, so callers should cache the result per level.
func PipePaletteFor(level int) PipePalette {
	if level <= 0 {
		return basePipePalette
	}
	shift := pipeHueStep * float64(level)
	return PipePalette{
		Body:      draw.ShiftHue(basePipePalette.Body, shift),
		Cap:       draw.ShiftHue(basePipePalette.Cap, shift),
		Highlight: draw.ShiftHue(basePipePalette.Highlight, shift),
		Shadow:    draw.ShiftHue(basePipePalette.Shadow, shift),
	}
}
