package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestCellCompositesHalfBlocks(t *testing.T) {
	red := RGB(255, 0, 0)
	blue := RGB(0, 0, 255)

	tests := []struct {
		name        string
		top, bottom Color
		want        Cell
	}{
		{"empty", ColorDefault, ColorDefault, Cell{Ch: BlockEmpty}},
		{"top only", red, ColorDefault, Cell{Ch: BlockUpperHalf, Fg: red}},
		{"bottom only", ColorDefault, blue, Cell{Ch: BlockLowerHalf, Fg: blue}},
		{"both same", red, red, Cell{Ch: BlockEmpty, Bg: red}},
		{"both different", red, blue, Cell{Ch: BlockUpperHalf, Fg: red, Bg: blue}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(2, 2)
			c.Set(0, 0, tt.top)
			c.Set(0, 1, tt.bottom)
			if got := c.Cell(0, 0); got != tt.want {
				t.Fatalf("Cell = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTextInheritsPixelBackground(t *testing.T) {
	c := NewCanvas(10, 2)
	sky := RGB(10, 20, 30)
	c.FillRect(0, 0, 10, 4, sky)
	white := RGB(255, 255, 255)
	c.Text(3, 1, "hi", white, ColorDefault)

	got := c.Cell(2, 0)
	if got.Ch != 'h' || got.Fg != white || got.Bg != sky {
		t.Fatalf("Cell = %+v", got)
	}
}

func TestTextCentered(t *testing.T) {
	c := NewCanvas(11, 3)
	c.TextCentered(2, "abc", RGB(1, 1, 1), ColorDefault)
	if c.Cell(4, 1).Ch != 'a' || c.Cell(6, 1).Ch != 'c' {
		t.Fatalf("text not centred: %q %q", c.Cell(4, 1).Ch, c.Cell(6, 1).Ch)
	}
}

func TestTextCenteredCountsRunes(t *testing.T) {
	c := NewCanvas(11, 3)
	c.TextCentered(2, "éè", RGB(1, 1, 1), ColorDefault)
	if c.Cell(4, 1).Ch != 'é' || c.Cell(5, 1).Ch != 'è' {
		t.Fatalf("text not centred: %q %q", c.Cell(4, 1).Ch, c.Cell(5, 1).Ch)
	}
}

func TestTextReplacesWideRunes(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Text(1, 1, "a漢b", RGB(1, 1, 1), ColorDefault)
	got := string([]rune{c.Cell(0, 0).Ch, c.Cell(1, 0).Ch, c.Cell(2, 0).Ch})
	if got != "a?b" {
		t.Fatalf("cells = %q, want %q", got, "a?b")
	}

	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	c.Render(cw)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsRune(buf.String(), '漢') {
		t.Fatalf("wide rune reached the terminal: %q", buf.String())
	}
}

func TestSetIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(-1, 0, RGB(1, 2, 3))
	c.Set(4, 0, RGB(1, 2, 3))
	c.Set(0, 4, RGB(1, 2, 3))
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.At(x, y) != ColorDefault {
				t.Fatalf("pixel (%d,%d) set", x, y)
			}
		}
	}
}

func TestFillCircleIsSymmetric(t *testing.T) {
	c := NewCanvas(21, 11)
	col := RGB(200, 100, 0)
	c.FillCircle(10.5, 10.5, 5, col)
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			mx := 20 - x
			if (c.At(x, y) == col) != (c.At(mx, y) == col) {
				t.Fatalf("asymmetric at (%d,%d)", x, y)
			}
		}
	}
	if c.At(10, 10) != col {
		t.Fatal("centre not filled")
	}
}

func TestRenderOnlyEmitsChangedCells(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	c := NewCanvas(4, 2)
	c.Set(0, 0, RGB(255, 0, 0))
	c.Render(cw)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "38;2;255;0;0") {
		t.Fatalf("missing truecolor output: %q", buf.String())
	}

	buf.Reset()
	c.Render(cw)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsRune(buf.String(), BlockUpperHalf) {
		t.Fatalf("unchanged frame re-emitted cells: %q", buf.String())
	}

	buf.Reset()
	c.ForceRedraw()
	c.Render(cw)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsRune(buf.String(), BlockUpperHalf) {
		t.Fatal("forced redraw did not emit cells")
	}
}

func TestDrawNumberWidth(t *testing.T) {
	if got := NumberWidth(7, 1); got != 3 {
		t.Fatalf("NumberWidth(7,1) = %d", got)
	}
	if got := NumberWidth(42, 2); got != 14 {
		t.Fatalf("NumberWidth(42,2) = %d", got)
	}

	c := NewCanvas(20, 5)
	col := RGB(255, 255, 255)
	c.DrawNumber(1, 10, 0, 1, col, ColorDefault)
	// "1" has its stem in the middle column of the glyph.
	if c.At(10, 2) != col {
		t.Fatal("digit stem missing")
	}
}

func TestPresentWritesToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(6, 4)

	c := NewCanvas(4, 2)
	c.SetOffset(1, 1)
	red := RGB(255, 0, 0)
	c.Set(0, 0, red)
	c.Text(2, 2, "x", RGB(0, 0, 0), ColorDefault)
	Present(screen, c)

	ch, _, style, _ := screen.GetContent(1, 1)
	if ch != BlockUpperHalf {
		t.Fatalf("got %q, want upper half block", ch)
	}
	fg, _, _ := style.Decompose()
	if fg != red {
		t.Fatalf("fg = %v, want red", fg)
	}
	if ch, _, _, _ := screen.GetContent(2, 2); ch != 'x' {
		t.Fatalf("text cell = %q", ch)
	}
	if ch, _, _, _ := screen.GetContent(0, 0); ch != '┌' {
		t.Fatalf("border corner = %q", ch)
	}
}
