package sound

import (
	"touchkeys/areas"
	"touchkeys/debug"
	"touchkeys/touch"
)

// LogPlayer writes slot transitions to the "sound" log category at info level
type LogPlayer struct {
	edges EdgeDetector
}

func NewLogPlayer() *LogPlayer {
	return &LogPlayer{}
}

func (p *LogPlayer) Play(events touch.Slots[areas.NoteEvent]) {
	for _, tr := range p.edges.Diff(events) {
		debug.Info("sound", "slot %d: %s -> %s", tr.Slot, tr.From, tr.To)
	}
}
