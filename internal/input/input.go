// Package input turns raw terminal bytes and tcell events into game actions.
package input

import (
	"bufio"
	"strconv"
	"strings"
)

// Input is the set of actions seen since the previous frame. Every key press
// and mouse press counts once: there is no hold state, so a single tap can
// never flap twice.
type Input struct {
	Flap      bool // Space, W, K, Up arrow or a mouse/touch press
	Restart   bool // R or Enter
	Quit      bool // Q, or Ctrl-C
	Interrupt bool // Ctrl-C only; quits even while typing
	Enter     bool
	Backspace bool
	Escape    bool
	Resized   bool   // Terminal resized (tcell sources only)
	Pressed   []rune // Printable characters in arrival order
	Closed    bool   // Source reached end of input
}

// Active reports whether the player did anything this frame.
func (in Input) Active() bool {
	return in.Flap || in.Restart || in.Quit || in.Interrupt || in.Enter ||
		in.Backspace || in.Escape || len(in.Pressed) > 0
}

// Typed reports whether r (case-insensitive) was pressed this frame.
func (in Input) Typed(r rune) bool {
	for _, p := range in.Pressed {
		if strings.EqualFold(string(p), string(r)) {
			return true
		}
	}
	return false
}

// Source delivers the input gathered since the previous call without blocking.
type Source interface {
	Read() Input
}

// Stream delivers input bytes via a channel from a reader goroutine.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence carried to the next frame
	closed  bool
}

var _ Source = (*Stream)(nil)

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains all available bytes from the stream (non-blocking) and parses them.
func (s *Stream) Read() Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	// Keep a partial CSI sequence for the next frame unless the stream is gone.
	if len(rest) > 0 && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	in.Closed = s.closed
	return in
}

// Parse decodes a burst of terminal input. It returns the decoded actions and
// any trailing bytes that look like the start of an unfinished escape sequence.
func Parse(buf []byte) (Input, []byte) {
	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&in, b)
			continue
		}

		// Lone ESC at the end of a burst is the Escape key.
		if i+1 >= len(buf) {
			in.Escape = true
			continue
		}
		if buf[i+1] != '[' {
			in.Escape = true
			continue
		}
		if i+2 >= len(buf) {
			return in, buf[i:]
		}

		switch buf[i+2] {
		case 'A': // Up arrow
			in.Flap = true
			i += 2
		case 'B', 'C', 'D': // Other arrows are ignored
			i += 2
		case '<':
			n, ok := parseSGRMouse(&in, buf[i:])
			if !ok {
				return in, buf[i:]
			}
			i += n - 1
		default:
			// Skip any other CSI sequence up to its final byte.
			j := i + 2
			for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
				j++
			}
			if j >= len(buf) {
				return in, buf[i:]
			}
			i = j
		}
	}
	return in, nil
}

// parseSGRMouse decodes "ESC [ < b ; x ; y M|m" at the start of seq. It returns
// the sequence length and false when the sequence is incomplete.
func parseSGRMouse(in *Input, seq []byte) (int, bool) {
	end := -1
	for j := 3; j < len(seq); j++ {
		if seq[j] == 'M' || seq[j] == 'm' {
			end = j
			break
		}
		if (seq[j] < '0' || seq[j] > '9') && seq[j] != ';' {
			// Malformed; drop the introducer only.
			return 3, true
		}
	}
	if end < 0 {
		return 0, false
	}

	fields := strings.Split(string(seq[3:end]), ";")
	if len(fields) != 3 {
		return end + 1, true
	}
	button, err := strconv.Atoi(fields[0])
	if err != nil {
		return end + 1, true
	}
	// Press of any plain button; motion (32) and wheel (64+) are not taps.
	if seq[end] == 'M' && button&(32|64) == 0 {
		in.Flap = true
	}
	return end + 1, true
}

// applyByte maps a single key byte to actions.
func applyByte(in *Input, b byte) {
	switch b {
	case 0x03: // Ctrl-C
		in.Quit = true
		in.Interrupt = true
		return
	case '\n', '\r':
		in.Enter = true
		in.Restart = true
		return
	case '\b', 0x7f:
		in.Backspace = true
		return
	}

	switch b {
	case ' ', 'w', 'W', 'k', 'K':
		in.Flap = true
	case 'r', 'R':
		in.Restart = true
	case 'q', 'Q':
		in.Quit = true
	}
	if b >= 0x20 && b < 0x7f {
		in.Pressed = append(in.Pressed, rune(b))
	}
}
