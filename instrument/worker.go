// Package instrument runs one touch-to-sound pipeline per input device.
package instrument

import (
	"errors"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/holoplot/go-evdev"

	"touchkeys/areas"
	"touchkeys/debug"
	"touchkeys/sound"
	"touchkeys/touch"
)

// ErrInputEnded is returned by Wait when the device stopped delivering
// events without Stop being called, e.g. it was unplugged.
var ErrInputEnded = errors.New("input ended")

// Source is an opened input device. *touch.Device implements it.
type Source interface {
	Path() string
	Events() iter.Seq[evdev.InputEvent]
	Close() error
}

// Snapshot is the latest state of a worker, for display
type Snapshot struct {
	Path      string
	Positions touch.Slots[touch.TouchState[touch.Position]]
	Notes     touch.Slots[areas.NoteEvent]
	Frames    uint64
}

// Worker pulls frames from one device, maps them through a layout and hands
// the note events to a player. The pull loop runs on its own goroutine and
// blocks only in the device read.
type Worker struct {
	src    Source
	layout *areas.Areas
	player sound.Player

	mu       sync.RWMutex
	snap     Snapshot
	onUpdate func()

	started  atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
	err      error
}

// NewWorker creates a stopped worker. player may be nil.
func NewWorker(src Source, layout *areas.Areas, player sound.Player) *Worker {
	if player == nil {
		player = sound.PlayerFunc(func(touch.Slots[areas.NoteEvent]) {})
	}
	return &Worker{
		src:    src,
		layout: layout,
		player: player,
		snap:   Snapshot{Path: src.Path()},
		done:   make(chan struct{}),
	}
}

// OnUpdate registers a callback run after every frame. Set it before Start.
func (w *Worker) OnUpdate(f func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUpdate = f
}

// Path returns the device path
func (w *Worker) Path() string {
	return w.src.Path()
}

// Layout returns the layout the worker maps touches through
func (w *Worker) Layout() *areas.Areas {
	return w.layout
}

// Start runs the pull loop in a new goroutine. Later calls do nothing.
func (w *Worker) Start() {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		w.err = w.run()
		close(w.done)
	}()
}

// Wait blocks until the loop has ended. It returns nil after Stop and
// ErrInputEnded if the device went away on its own.
func (w *Worker) Wait() error {
	if !w.started.Load() {
		return nil
	}
	<-w.done
	return w.err
}

// Stop closes the device, which ends the blocked read and the loop, then
// waits for the loop to finish.
func (w *Worker) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.stopped.Store(true)
		err = w.src.Close()
		debug.Log("worker", "%s: stopped", w.src.Path())
	})
	if waitErr := w.Wait(); waitErr != nil {
		return waitErr
	}
	return err
}

// Snapshot returns the state after the most recent frame
func (w *Worker) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snap
}

func (w *Worker) run() error {
	path := w.src.Path()
	debug.Log("worker", "%s: started", path)

	for positions := range touch.Positions(touch.Frames(w.src.Events())) {
		notes := areas.SlotEvents(w.layout, positions)
		w.player.Play(notes)
		w.publish(positions, notes)
	}

	// a final all-off snapshot releases anything the player still holds
	var silent touch.Slots[areas.NoteEvent]
	w.player.Play(silent)

	if w.stopped.Load() {
		return nil
	}
	debug.Warn("worker", "%s: input ended", path)
	return ErrInputEnded
}

func (w *Worker) publish(positions touch.Slots[touch.TouchState[touch.Position]], notes touch.Slots[areas.NoteEvent]) {
	w.mu.Lock()
	w.snap.Positions = positions
	w.snap.Notes = notes
	w.snap.Frames++
	path, frames := w.snap.Path, w.snap.Frames
	onUpdate := w.onUpdate
	w.mu.Unlock()

	debug.LogEvery(500, "worker", "%s: frame %d", path, frames)
	if onUpdate != nil {
		onUpdate()
	}
}
