package touch

import (
	"iter"

	"github.com/holoplot/go-evdev"

	"touchkeys/debug"
)

// Frame is the events of one hardware update, without the SYN_REPORT marker
type Frame []evdev.InputEvent

func isSyn(ev evdev.InputEvent, code evdev.EvCode) bool {
	return ev.Type == evdev.EV_SYN && ev.Code == code
}

// Frames groups events into frames closed by SYN_REPORT. SYN_DROPPED is
// logged and otherwise ignored. A non-empty trailing frame is emitted once
// when the event sequence ends.
func Frames(events iter.Seq[evdev.InputEvent]) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		var pending Frame
		for ev := range events {
			switch {
			case isSyn(ev, evdev.SYN_DROPPED):
				debug.Warn("frames", "dropped events")
			case isSyn(ev, evdev.SYN_REPORT):
				frame := pending
				pending = nil
				if !yield(frame) {
					return
				}
			default:
				pending = append(pending, ev)
			}
		}
		if len(pending) > 0 {
			yield(pending)
		}
	}
}
