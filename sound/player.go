// Package sound turns per-slot note events into output.
package sound

import (
	"touchkeys/areas"
	"touchkeys/touch"
)

// Player consumes one snapshot of note events per frame, indexed by slot.
// Play is called from a single worker goroutine.
type Player interface {
	Play(events touch.Slots[areas.NoteEvent])
}

// PlayerFunc adapts a function to Player
type PlayerFunc func(events touch.Slots[areas.NoteEvent])

func (f PlayerFunc) Play(events touch.Slots[areas.NoteEvent]) {
	f(events)
}

type multiPlayer []Player

func (m multiPlayer) Play(events touch.Slots[areas.NoteEvent]) {
	for _, p := range m {
		p.Play(events)
	}
}

// Multi plays every snapshot on each player in order. Nil players are skipped.
func Multi(players ...Player) Player {
	var m multiPlayer
	for _, p := range players {
		if p != nil {
			m = append(m, p)
		}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

// Transition is a change of one slot's note event between two snapshots
type Transition struct {
	Slot int
	From areas.NoteEvent
	To   areas.NoteEvent
}

// EdgeDetector remembers the last snapshot and reports what changed.
// The zero value starts with every slot off.
type EdgeDetector struct {
	last touch.Slots[areas.NoteEvent]
}

// Diff returns the slots whose event differs from the previous call, in slot order.
func (d *EdgeDetector) Diff(events touch.Slots[areas.NoteEvent]) []Transition {
	var out []Transition
	for i, e := range events {
		if e != d.last[i] {
			out = append(out, Transition{Slot: i, From: d.last[i], To: e})
		}
	}
	d.last = events
	return out
}

// Last returns the most recent snapshot passed to Diff
func (d *EdgeDetector) Last() touch.Slots[areas.NoteEvent] {
	return d.last
}
