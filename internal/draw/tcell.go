package draw

import "github.com/gdamore/tcell/v2"

// Present copies the composited canvas onto a tcell screen and shows it.
// tcell keeps its own back buffer, so every cell is set on each call and the
// library decides what actually reaches the terminal.
func Present(screen tcell.Screen, c *Canvas) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			cell := c.Cell(col, row)
			style := tcell.StyleDefault.Foreground(cell.Fg).Background(cell.Bg)
			screen.SetContent(col+c.offsetCol, row+c.offsetRow, cell.Ch, nil, style)
		}
	}
	presentBorder(screen, c)
	screen.Show()
}

// presentBorder mirrors RenderBorder for tcell screens.
func presentBorder(screen tcell.Screen, c *Canvas) {
	if c.offsetCol < 1 && c.offsetRow < 1 {
		return
	}
	style := tcell.StyleDefault
	// 0-based screen coordinates of the frame around the canvas.
	left := c.offsetCol - 1
	right := c.offsetCol + c.termWidth
	top := c.offsetRow - 1
	bottom := c.offsetRow + c.termHeight

	if c.offsetRow >= 1 {
		for x := c.offsetCol; x < right; x++ {
			screen.SetContent(x, top, '─', nil, style)
			screen.SetContent(x, bottom, '─', nil, style)
		}
	}
	if c.offsetCol >= 1 {
		for y := c.offsetRow; y < bottom; y++ {
			screen.SetContent(left, y, '│', nil, style)
			screen.SetContent(right, y, '│', nil, style)
		}
	}
	if c.offsetCol >= 1 && c.offsetRow >= 1 {
		screen.SetContent(left, top, '┌', nil, style)
		screen.SetContent(right, top, '┐', nil, style)
		screen.SetContent(left, bottom, '└', nil, style)
		screen.SetContent(right, bottom, '┘', nil, style)
	}
}
