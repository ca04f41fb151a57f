package client

import (
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/flapssh/internal/draw"
)

// Presenter puts a finished canvas on a terminal.
type Presenter interface {
	// Start prepares the terminal; Stop restores it.
	Start()
	Stop()
	// Size returns the terminal size in cells.
	Size() (cols, rows int, err error)
	// Clear wipes the whole terminal, including cells outside the canvas.
	Clear()
	Present(c *draw.Canvas) error
}

// ANSIPresenter writes diffed truecolor half-block frames to a raw byte
// stream, such as an SSH channel or a raw-mode TTY.
type ANSIPresenter struct {
	w    io.Writer
	cw   *draw.ChunkWriter
	size draw.TermSizeFunc
}

var _ Presenter = (*ANSIPresenter)(nil)

// NewANSIPresenter writes to w. size reports the terminal size; nil uses
// the process's stdout.
func NewANSIPresenter(w io.Writer, size draw.TermSizeFunc) *ANSIPresenter {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	return &ANSIPresenter{w: w, cw: draw.NewChunkWriter(w), size: size}
}

func (p *ANSIPresenter) Start() {
	draw.HideCursor(p.w)
	draw.EnableMouse(p.w)
	draw.ClearScreen(p.w)
}

func (p *ANSIPresenter) Stop() {
	draw.DisableMouse(p.w)
	draw.ClearScreen(p.w)
	draw.ShowCursor(p.w)
}

func (p *ANSIPresenter) Size() (int, int, error) {
	return p.size()
}

func (p *ANSIPresenter) Clear() {
	p.cw.WriteString("\033[0m\033[H\033[2J")
}

func (p *ANSIPresenter) Present(c *draw.Canvas) error {
	c.Render(p.cw)
	c.RenderBorder(p.cw)
	return p.cw.Flush()
}

// TcellPresenter draws onto a tcell screen. The caller owns the screen's
// Init and Fini.
type TcellPresenter struct {
	screen tcell.Screen
}

var _ Presenter = (*TcellPresenter)(nil)

// NewTcellPresenter draws onto screen.
func NewTcellPresenter(screen tcell.Screen) *TcellPresenter {
	return &TcellPresenter{screen: screen}
}

func (p *TcellPresenter) Start() {
	p.screen.HideCursor()
	p.screen.Clear()
}

func (p *TcellPresenter) Stop() {
	p.screen.Clear()
	p.screen.Show()
}

func (p *TcellPresenter) Size() (int, int, error) {
	cols, rows := p.screen.Size()
	return cols, rows, nil
}

func (p *TcellPresenter) Clear() {
	p.screen.Clear()
}

func (p *TcellPresenter) Present(c *draw.Canvas) error {
	draw.Present(p.screen, c)
	return nil
}
