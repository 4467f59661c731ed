package areas

import (
	"image"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchkeys/touch"
)

func TestFrequency(t *testing.T) {
	assert.Equal(t, float32(440), Frequency(69))
	assert.Equal(t, float32(220), Frequency(57))
	assert.Equal(t, float32(440*math.Pow(2, 1.0/12)), Frequency(70))
	assert.InDelta(t, 880, Frequency(81), 1e-3)
	assert.InDelta(t, 110, Frequency(45), 1e-3)
	assert.InDelta(t, 261.6256, Frequency(60), 1e-3)
}

func TestColor(t *testing.T) {
	assert.Equal(t, RGB{0, 0, 255}, Color(0))
	assert.Equal(t, RGB{255, 0, 128}, Color(69))
	assert.Equal(t, "#0000ff", Color(0).Hex())

	t.Run("octaves share a color", func(t *testing.T) {
		for note := range 12 {
			assert.Equal(t, Color(note), Color(note+12))
			assert.Equal(t, Color(note), Color(note+48))
		}
	})

	t.Run("pitch classes are distinct", func(t *testing.T) {
		seen := make(map[RGB]int)
		for note := range 12 {
			c := Color(note)
			prev, dup := seen[c]
			assert.False(t, dup, "note %d has the same color as note %d", note, prev)
			seen[c] = note
		}
		assert.Len(t, seen, 12)
	})

	t.Run("negative notes", func(t *testing.T) {
		assert.Equal(t, Color(11), Color(-1))
	})
}

func TestNoteName(t *testing.T) {
	assert.Equal(t, "A4", NoteName(69))
	assert.Equal(t, "C4", NoteName(60))
	assert.Equal(t, "C#3", NoteName(49))
	assert.Equal(t, "C-1", NoteName(0))
}

func TestStripesResolve(t *testing.T) {
	a := Stripes(300, 1000, 10, 48)
	require.Equal(t, NumStripes, a.Len())
	assert.Equal(t, int32(10), a.RegionSize())
	assert.Equal(t, 48, a.StartNote())

	tests := []struct {
		name string
		p    touch.Position
		note int
		ok   bool
	}{
		{"first stripe", pt(5, 5), 48, true},
		{"last column of first stripe", pt(9, 5), 48, true},
		{"second stripe left edge", pt(10, 5), 49, true},
		{"second stripe", pt(15, 5), 49, true},
		{"last stripe", pt(295, 5), 48 + NumStripes - 1, true},
		{"past the last stripe", pt(300, 5), 0, false},
		{"above the stripes", pt(5, 0), 0, false},
		{"below the stripes", pt(5, StripeTop+StripeHeight), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, ok := a.Resolve(tt.p)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.note, note)
		})
	}
}

func TestStripesWidth(t *testing.T) {
	a := Stripes(360, 1000, 12, 48)

	note, ok := a.Resolve(pt(11, 5))
	require.True(t, ok)
	assert.Equal(t, 48, note)

	note, ok = a.Resolve(pt(12, 5))
	require.True(t, ok)
	assert.Equal(t, 49, note)
}

func TestNew(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := New(100, 100, nil)
		assert.ErrorIs(t, err, ErrEmptyLayout)
	})

	t.Run("missing shape", func(t *testing.T) {
		_, err := New(100, 100, []Region{{Note: 60}})
		assert.Error(t, err)
	})

	t.Run("first region wins", func(t *testing.T) {
		regions := []Region{
			{Shape: Rectangle{X: 0, Y: 0, Width: 50, Height: 50}, Note: 60},
			{Shape: Triangle{A: pt(0, 0), B: pt(100, 0), C: pt(0, 100)}, Note: 61},
			{Shape: Parallelogram{Base: pt(50, 50), U: pt(50, 0), V: pt(0, 50)}, Note: 62},
		}
		a, err := New(100, 100, regions)
		require.NoError(t, err)
		assert.Equal(t, 60, a.StartNote())
		assert.Equal(t, int32(0), a.RegionSize())

		note, ok := a.Resolve(pt(10, 10))
		assert.True(t, ok)
		assert.Equal(t, 60, note)

		note, ok = a.Resolve(pt(60, 10))
		assert.True(t, ok)
		assert.Equal(t, 61, note)

		note, ok = a.Resolve(pt(75, 75))
		assert.True(t, ok)
		assert.Equal(t, 62, note)

		// the caller's slice is copied
		regions[0].Note = 99
		assert.Equal(t, 60, a.Regions()[0].Note)
	})
}

func TestNoteEvent(t *testing.T) {
	a := Stripes(300, 1000, 10, 48)

	assert.Equal(t, NoteOff(), a.NoteEvent(touch.NoTouch[touch.Position]()))
	assert.Equal(t, NoteOff(), a.NoteEvent(touch.Touch(pt(5, 0))))
	assert.Equal(t, NoteOn(49, Frequency(49)), a.NoteEvent(touch.Touch(pt(15, 5))))

	// no state between calls
	assert.Equal(t, a.NoteEvent(touch.Touch(pt(15, 5))), a.NoteEvent(touch.Touch(pt(15, 5))))
}

func TestNoteEvents(t *testing.T) {
	a := Stripes(300, 1000, 10, 48)
	states := []touch.TouchState[touch.Position]{
		touch.NoTouch[touch.Position](),
		touch.Touch(pt(5, 5)),
		touch.Touch(pt(6, 5)),
		touch.Touch(pt(15, 5)),
		touch.Touch(pt(5, 0)),
		touch.NoTouch[touch.Position](),
	}

	got := slices.Collect(NoteEvents(a, slices.Values(states)))
	assert.Equal(t, []NoteEvent{
		NoteOff(),
		NoteOn(48, Frequency(48)),
		NoteOn(48, Frequency(48)),
		NoteOn(49, Frequency(49)),
		NoteOff(),
		NoteOff(),
	}, got)
}

func TestSlotEvents(t *testing.T) {
	a := Stripes(300, 1000, 10, 48)

	var snapshot touch.Slots[touch.TouchState[touch.Position]]
	snapshot[0] = touch.Touch(pt(5, 5))
	snapshot[3] = touch.Touch(pt(25, 100))

	events := SlotEvents(a, snapshot)
	assert.Equal(t, NoteOn(48, Frequency(48)), events[0])
	assert.Equal(t, NoteOn(50, Frequency(50)), events[3])
	for i, e := range events {
		if i == 0 || i == 3 {
			continue
		}
		assert.False(t, e.On, "slot %d", i)
	}
}

func TestNoteEventString(t *testing.T) {
	assert.Equal(t, "NoteOff", NoteOff().String())
	assert.Equal(t, "NoteOn(A4 440.00Hz)", NoteOn(69, 440).String())
}

func TestElements(t *testing.T) {
	a := Stripes(300, 1000, 10, 48)

	elems := a.Elements(150, 500)
	require.Len(t, elems, NumStripes)

	assert.Equal(t, 49, elems[1].Note)
	assert.Equal(t, Color(49), elems[1].Color)
	assert.Equal(t, []image.Point{{5, 0}, {10, 0}, {10, 5000}, {5, 5000}}, elems[1].Outline)

	doubled := a.Elements(600, 2000)
	assert.Equal(t, []image.Point{{20, 2}, {40, 2}, {40, 20002}, {20, 20002}}, doubled[1].Outline)
}

func TestElementsUnknownTouchSize(t *testing.T) {
	a := Stripes(0, 0, 10, 48)
	elems := a.Elements(640, 480)
	assert.Equal(t, []image.Point{{0, 1}, {10, 1}, {10, 10001}, {0, 10001}}, elems[0].Outline)
}
