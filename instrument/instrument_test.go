package instrument

import (
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchkeys/areas"
	"touchkeys/touch"
)

type fakeSource struct {
	path      string
	events    chan evdev.InputEvent
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeSource(path string) *fakeSource {
	return &fakeSource{
		path:   path,
		events: make(chan evdev.InputEvent, 64),
		closed: make(chan struct{}),
	}
}

func (f *fakeSource) Path() string { return f.path }

func (f *fakeSource) Events() iter.Seq[evdev.InputEvent] {
	return func(yield func(evdev.InputEvent) bool) {
		for {
			select {
			case ev, ok := <-f.events:
				if !ok || !yield(ev) {
					return
				}
			case <-f.closed:
				return
			}
		}
	}
}

func (f *fakeSource) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeSource) touch(slot, x, y int32) {
	f.events <- evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_MT_SLOT, Value: slot}
	f.events <- evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_MT_TRACKING_ID, Value: 1}
	f.events <- evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_MT_POSITION_X, Value: x}
	f.events <- evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_MT_POSITION_Y, Value: y}
	f.events <- evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}
}

func (f *fakeSource) release(slot int32) {
	f.events <- evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_MT_SLOT, Value: slot}
	f.events <- evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_MT_TRACKING_ID, Value: -1}
	f.events <- evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}
}

type chanPlayer chan touch.Slots[areas.NoteEvent]

func (c chanPlayer) Play(events touch.Slots[areas.NoteEvent]) {
	c <- events
}

func next(t *testing.T, c chanPlayer) touch.Slots[areas.NoteEvent] {
	t.Helper()
	select {
	case e := <-c:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the player")
		return touch.Slots[areas.NoteEvent]{}
	}
}

func on(note int) areas.NoteEvent {
	return areas.NoteOn(note, areas.Frequency(note))
}

func TestWorkerPlaysFrames(t *testing.T) {
	src := newFakeSource("/dev/input/event7")
	player := make(chanPlayer, 16)
	w := NewWorker(src, areas.Stripes(300, 1000, 10, 48), player)
	w.Start()

	src.touch(0, 15, 5)
	got := next(t, player)
	assert.Equal(t, on(49), got[0])

	src.touch(2, 25, 5)
	got = next(t, player)
	assert.Equal(t, on(49), got[0])
	assert.Equal(t, on(50), got[2])

	src.release(0)
	got = next(t, player)
	assert.False(t, got[0].On)
	assert.Equal(t, on(50), got[2])

	require.Eventually(t, func() bool { return w.Snapshot().Frames == 3 }, time.Second, time.Millisecond)
	snap := w.Snapshot()
	assert.Equal(t, "/dev/input/event7", snap.Path)
	assert.Equal(t, touch.Touch(touch.Position{X: 25, Y: 5}), snap.Positions[2])
	assert.Equal(t, on(50), snap.Notes[2])

	require.NoError(t, w.Stop())
	// stopping releases every held note
	assert.Equal(t, touch.Slots[areas.NoteEvent]{}, next(t, player))
}

func TestWorkerReportsEndedInput(t *testing.T) {
	src := newFakeSource("/dev/input/event3")
	w := NewWorker(src, areas.Stripes(300, 1000, 10, 48), nil)
	w.Start()

	close(src.events)
	assert.ErrorIs(t, w.Wait(), ErrInputEnded)
}

func TestWorkerStopBeforeStart(t *testing.T) {
	src := newFakeSource("/dev/input/event3")
	w := NewWorker(src, areas.Stripes(300, 1000, 10, 48), nil)
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestManager(t *testing.T) {
	m := NewManager()
	a, b := newFakeSource("/dev/input/event1"), newFakeSource("/dev/input/event2")
	layout := areas.Stripes(300, 1000, 10, 48)

	m.Add(NewWorker(a, layout, nil))
	m.Add(NewWorker(b, layout, nil))
	require.Len(t, m.Workers(), 2)

	a.touch(0, 5, 5)
	select {
	case <-m.UpdateChan:
	case <-time.After(2 * time.Second):
		t.Fatal("no update")
	}

	require.Eventually(t, func() bool { return m.Snapshots()[0].Frames == 1 }, time.Second, time.Millisecond)
	snaps := m.Snapshots()
	assert.Equal(t, "/dev/input/event1", snaps[0].Path)
	assert.Equal(t, on(48), snaps[0].Notes[0])
	assert.Zero(t, snaps[1].Frames)

	assert.NoError(t, m.StopAll())
	assert.NoError(t, m.Wait())
}

func TestManagerCoalescesUpdates(t *testing.T) {
	m := NewManager()
	m.notifyUpdate()
	m.notifyUpdate()
	m.notifyUpdate()
	assert.Len(t, m.UpdateChan, 1)
}
