package sound

import (
	"math"
	"sync/atomic"

	"touchkeys/areas"
	"touchkeys/touch"
)

const (
	onBit     = uint64(1) << 63
	noteShift = 32
	noteMask  = uint64(0xffff)
	freqMask  = uint64(0xffffffff)
)

// Control is the value an audio callback reads: whether a note sounds and at
// which frequency. One goroutine stores, another loads, neither blocks.
type Control struct {
	v atomic.Uint64
}

// Store publishes e. Notes outside int16 are truncated.
func (c *Control) Store(e areas.NoteEvent) {
	if !e.On {
		c.v.Store(0)
		return
	}
	bits := uint64(math.Float32bits(e.Frequency))
	bits |= (uint64(uint16(int16(e.Note))) & noteMask) << noteShift
	c.v.Store(bits | onBit)
}

// Load returns the last published event, NoteOff before the first Store
func (c *Control) Load() areas.NoteEvent {
	bits := c.v.Load()
	if bits&onBit == 0 {
		return areas.NoteOff()
	}
	note := int(int16(uint16((bits >> noteShift) & noteMask)))
	return areas.NoteOn(note, math.Float32frombits(uint32(bits&freqMask)))
}

// ControlPlayer is monophonic: the lowest numbered sounding slot wins.
type ControlPlayer struct {
	Control *Control
}

func NewControlPlayer(c *Control) *ControlPlayer {
	return &ControlPlayer{Control: c}
}

func (p *ControlPlayer) Play(events touch.Slots[areas.NoteEvent]) {
	sounding := touch.MapSlots(events, func(e areas.NoteEvent) touch.TouchState[areas.NoteEvent] {
		if e.On {
			return touch.Touch(e)
		}
		return touch.NoTouch[areas.NoteEvent]()
	})
	if e, ok := touch.FirstTouch(sounding[:]).Get(); ok {
		p.Control.Store(e)
		return
	}
	p.Control.Store(areas.NoteOff())
}
