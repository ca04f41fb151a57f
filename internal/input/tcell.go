package input

import "github.com/gdamore/tcell/v2"

// Events is a Source backed by a tcell screen's event queue.
type Events struct {
	ch      chan tcell.Event
	buttons tcell.ButtonMask // Buttons held at the last mouse event
	closed  bool
}

var _ Source = (*Events)(nil)

// StartEvents polls screen in a goroutine. The goroutine ends when the screen
// is finalized and PollEvent returns nil.
func StartEvents(screen tcell.Screen) *Events {
	e := &Events{ch: make(chan tcell.Event, 100)}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(e.ch)
				return
			}
			e.ch <- ev
		}
	}()
	return e
}

// Read drains the queued events without blocking.
func (e *Events) Read() Input {
	var in Input
drain:
	for !e.closed {
		select {
		case ev, ok := <-e.ch:
			if !ok {
				e.closed = true
				break drain
			}
			e.apply(&in, ev)
		default:
			break drain
		}
	}
	in.Closed = e.closed
	return in
}

func (e *Events) apply(in *Input, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			applyByte(in, 0x03)
		case tcell.KeyEnter:
			applyByte(in, '\r')
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			applyByte(in, 0x7f)
		case tcell.KeyEscape:
			in.Escape = true
		case tcell.KeyUp:
			in.Flap = true
		case tcell.KeyRune:
			r := ev.Rune()
			if r < 0x80 {
				applyByte(in, byte(r))
			} else {
				in.Pressed = append(in.Pressed, r)
			}
		}
	case *tcell.EventMouse:
		held := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		// Only a newly pressed button is a tap; drags repeat the mask.
		if held&^e.buttons != 0 {
			in.Flap = true
		}
		e.buttons = held
	case *tcell.EventResize:
		in.Resized = true
	}
}
