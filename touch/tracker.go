package touch

import (
	"iter"

	"github.com/holoplot/go-evdev"
)

type slotState struct {
	position Position
	active   bool
}

// Tracker folds multi-touch (protocol B) frames into per-slot state.
// The zero value is ready to use with slot 0 selected.
type Tracker struct {
	slots  [NumSlots]slotState
	active int
}

// Apply folds one frame into the tracker and returns the resulting snapshot.
// Events are applied in order; slot ids outside [0, NumSlots) are ignored.
func (t *Tracker) Apply(frame Frame) Slots[TouchState[Position]] {
	for _, ev := range frame {
		if ev.Type != evdev.EV_ABS {
			continue
		}
		switch ev.Code {
		case evdev.ABS_MT_SLOT:
			if ev.Value >= 0 && ev.Value < NumSlots {
				t.active = int(ev.Value)
			}
		case evdev.ABS_MT_POSITION_X:
			t.slots[t.active].position.X = ev.Value
		case evdev.ABS_MT_POSITION_Y:
			t.slots[t.active].position.Y = ev.Value
		case evdev.ABS_MT_TRACKING_ID:
			t.slots[t.active].active = ev.Value != -1
		}
	}
	return t.Snapshot()
}

// Snapshot reports the current state of every slot
func (t *Tracker) Snapshot() Slots[TouchState[Position]] {
	var out Slots[TouchState[Position]]
	for i, s := range t.slots {
		if s.active {
			out[i] = Touch(s.position)
		}
	}
	return out
}

// Positions tracks frames and yields one snapshot per frame.
func Positions(frames iter.Seq[Frame]) iter.Seq[Slots[TouchState[Position]]] {
	return func(yield func(Slots[TouchState[Position]]) bool) {
		var t Tracker
		for frame := range frames {
			if !yield(t.Apply(frame)) {
				return
			}
		}
	}
}

// Slot projects a snapshot sequence onto slot n.
func Slot(snapshots iter.Seq[Slots[TouchState[Position]]], n int) iter.Seq[TouchState[Position]] {
	return func(yield func(TouchState[Position]) bool) {
		for s := range snapshots {
			if !yield(s[n]) {
				return
			}
		}
	}
}
