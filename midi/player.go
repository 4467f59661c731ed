package midi

import (
	"sort"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"

	"touchkeys/areas"
	"touchkeys/debug"
	"touchkeys/sound"
	"touchkeys/touch"
)

// SendFunc writes one message to an output port
type SendFunc func(msg gomidi.Message) error

// Player sends NoteOn/NoteOff messages when a slot's note changes.
// Two slots on the same note hold it until both release. Panic may be called
// from another goroutine than Play.
type Player struct {
	send     SendFunc
	channel  uint8
	velocity uint8

	mu    sync.Mutex
	edges sound.EdgeDetector
	held  map[uint8]int
}

// NewPlayer creates a player on a zero based channel (0-15)
func NewPlayer(send SendFunc, channel, velocity uint8) *Player {
	return &Player{
		send:     send,
		channel:  channel & 0x0f,
		velocity: velocity & 0x7f,
		held:     make(map[uint8]int),
	}
}

// Play diffs the snapshot against the previous one and sends the changes,
// note offs before note ons.
func (p *Player) Play(events touch.Slots[areas.NoteEvent]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events(events) {
		p.write(e)
	}
}

// Events applies the snapshot and returns the messages it produces without
// sending them.
func (p *Player) Events(events touch.Slots[areas.NoteEvent]) []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events(events)
}

func (p *Player) events(events touch.Slots[areas.NoteEvent]) []Event {
	var offs, ons []Event
	for _, tr := range p.edges.Diff(events) {
		if tr.From.On {
			if e, ok := p.release(tr.From.Note); ok {
				offs = append(offs, e)
			}
		}
		if tr.To.On {
			if e, ok := p.press(tr.To.Note); ok {
				ons = append(ons, e)
			}
		}
	}
	return append(offs, ons...)
}

// Held returns the sounding notes in ascending order
func (p *Player) Held() []uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.heldNotes()
}

func (p *Player) heldNotes() []uint8 {
	notes := make([]uint8, 0, len(p.held))
	for n := range p.held {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })
	return notes
}

// Panic silences every held note and forgets all slots
func (p *Player) Panic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range p.heldNotes() {
		p.write(Event{Type: NoteOff, Channel: p.channel, Note: n})
	}
	p.held = make(map[uint8]int)
	p.edges = sound.EdgeDetector{}
}

func (p *Player) press(note int) (Event, bool) {
	n, ok := midiNote(note)
	if !ok {
		return Event{}, false
	}
	p.held[n]++
	if p.held[n] > 1 {
		return Event{}, false
	}
	return Event{Type: NoteOn, Channel: p.channel, Note: n, Velocity: p.velocity}, true
}

func (p *Player) release(note int) (Event, bool) {
	n, ok := midiNote(note)
	if !ok || p.held[n] == 0 {
		return Event{}, false
	}
	p.held[n]--
	if p.held[n] > 0 {
		return Event{}, false
	}
	delete(p.held, n)
	return Event{Type: NoteOff, Channel: p.channel, Note: n}, true
}

func (p *Player) write(e Event) {
	if p.send == nil {
		return
	}
	if err := p.send(e.Message()); err != nil {
		debug.Warn("midi", "send %s: %v", e, err)
		return
	}
	debug.Log("midi", "sent %s", e)
}

func midiNote(note int) (uint8, bool) {
	if note < 0 || note > 127 {
		debug.LogEvery(100, "midi", "note %d out of range", note)
		return 0, false
	}
	return uint8(note), true
}
