package areas

import (
	"fmt"
	"iter"

	"touchkeys/touch"
)

// NoteEvent is NoteOff (the zero value) or NoteOn with a frequency
type NoteEvent struct {
	On        bool
	Note      int
	Frequency float32
}

func NoteOff() NoteEvent {
	return NoteEvent{}
}

func NoteOn(note int, frequency float32) NoteEvent {
	return NoteEvent{On: true, Note: note, Frequency: frequency}
}

func (e NoteEvent) String() string {
	if !e.On {
		return "NoteOff"
	}
	return fmt.Sprintf("NoteOn(%s %.2fHz)", NoteName(e.Note), e.Frequency)
}

// NoteEvents maps a slot's touch states to note events, one per state.
// Repeated touches in one region repeat the same NoteOn; callers that need
// transitions must detect them.
func NoteEvents(a *Areas, states iter.Seq[touch.TouchState[touch.Position]]) iter.Seq[NoteEvent] {
	return func(yield func(NoteEvent) bool) {
		for s := range states {
			if !yield(a.NoteEvent(s)) {
				return
			}
		}
	}
}

// SlotEvents maps a whole snapshot at once
func SlotEvents(a *Areas, snapshot touch.Slots[touch.TouchState[touch.Position]]) touch.Slots[NoteEvent] {
	return touch.MapSlots(snapshot, a.NoteEvent)
}
