package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is one outgoing note message
type Event struct {
	Type     uint8 // NoteOn, NoteOff
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// Message encodes the event for a gomidi send function
func (e Event) Message() gomidi.Message {
	if e.Type == NoteOn {
		return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
	}
	return gomidi.NoteOff(e.Channel, e.Note)
}

func (e Event) String() string {
	kind := "off"
	if e.Type == NoteOn {
		kind = "on"
	}
	return fmt.Sprintf("ch%d note %s %d vel %d", e.Channel, kind, e.Note, e.Velocity)
}
