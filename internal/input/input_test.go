package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(Input) bool
	}{
		{"space flaps", " ", func(in Input) bool { return in.Flap }},
		{"w flaps", "w", func(in Input) bool { return in.Flap }},
		{"up arrow flaps", "\x1b[A", func(in Input) bool { return in.Flap && !in.Escape }},
		{"left arrow ignored", "\x1b[D", func(in Input) bool { return !in.Flap && !in.Escape && len(in.Pressed) == 0 }},
		{"r restarts", "r", func(in Input) bool { return in.Restart && !in.Flap }},
		{"enter restarts", "\r", func(in Input) bool { return in.Restart && in.Enter }},
		{"q quits", "q", func(in Input) bool { return in.Quit && !in.Interrupt }},
		{"ctrl-c interrupts", "\x03", func(in Input) bool { return in.Quit && in.Interrupt }},
		{"lone escape", "\x1b", func(in Input) bool { return in.Escape }},
		{"backspace", "\x7f", func(in Input) bool { return in.Backspace && len(in.Pressed) == 0 }},
		{"sgr press flaps", "\x1b[<0;10;5M", func(in Input) bool { return in.Flap && len(in.Pressed) == 0 }},
		{"sgr release ignored", "\x1b[<0;10;5m", func(in Input) bool { return !in.Flap }},
		{"sgr wheel ignored", "\x1b[<64;10;5M", func(in Input) bool { return !in.Flap }},
		{"unknown csi skipped", "\x1b[2~x", func(in Input) bool { return string(in.Pressed) == "x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, rest := Parse([]byte(tt.input))
			if len(rest) != 0 {
				t.Fatalf("unexpected leftover %q", rest)
			}
			if !tt.check(in) {
				t.Fatalf("Parse(%q) = %+v", tt.input, in)
			}
		})
	}
}

func TestParseKeepsIncompleteSequence(t *testing.T) {
	in, rest := Parse([]byte("a\x1b[<0;1"))
	if string(in.Pressed) != "a" {
		t.Fatalf("Pressed = %q", string(in.Pressed))
	}
	if string(rest) != "\x1b[<0;1" {
		t.Fatalf("rest = %q", rest)
	}

	in, rest = Parse(append(rest, []byte(";2M")...))
	if !in.Flap || len(rest) != 0 {
		t.Fatalf("completed sequence: %+v rest=%q", in, rest)
	}
}

func TestTyped(t *testing.T) {
	in, _ := Parse([]byte("S"))
	if !in.Typed('s') {
		t.Fatal("Typed should be case-insensitive")
	}
	if in.Typed('x') {
		t.Fatal("unexpected match")
	}
}

// collect reads from src until cond holds or the deadline passes, merging
// the per-frame results.
func collect(t *testing.T, src Source, cond func(Input) bool) Input {
	t.Helper()
	var all Input
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		in := src.Read()
		all.Flap = all.Flap || in.Flap
		all.Restart = all.Restart || in.Restart
		all.Quit = all.Quit || in.Quit
		all.Resized = all.Resized || in.Resized
		all.Closed = all.Closed || in.Closed
		all.Pressed = append(all.Pressed, in.Pressed...)
		if cond(all) {
			return all
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met, got %+v", all)
	return all
}

func TestStreamReadsUntilClosed(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" rq")))
	got := collect(t, s, func(in Input) bool { return in.Closed })
	if !got.Flap || !got.Restart || !got.Quit {
		t.Fatalf("got %+v", got)
	}
}

func TestEventsFromSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	e := StartEvents(screen)
	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	got := collect(t, e, func(in Input) bool { return in.Restart })
	if got.Flap {
		t.Fatal("restart key should not flap")
	}

	screen.InjectMouse(3, 3, tcell.Button1, tcell.ModNone)
	collect(t, e, func(in Input) bool { return in.Flap })
}
