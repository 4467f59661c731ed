package touch

import "fmt"

// NumSlots is the number of touch contacts tracked per device
const NumSlots = 10

// Position is a device-space coordinate
type Position struct {
	X, Y int32
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// TouchState is either NoTouch (the zero value) or Touch carrying a value.
type TouchState[T any] struct {
	touching bool
	value    T
}

// Touch wraps v as a touching state
func Touch[T any](v T) TouchState[T] {
	return TouchState[T]{touching: true, value: v}
}

// NoTouch returns the non-touching state
func NoTouch[T any]() TouchState[T] {
	return TouchState[T]{}
}

// Get returns the payload and whether the state is a touch
func (s TouchState[T]) Get() (T, bool) {
	return s.value, s.touching
}

// IsTouch reports whether the state carries a value
func (s TouchState[T]) IsTouch() bool {
	return s.touching
}

func (s TouchState[T]) String() string {
	if !s.touching {
		return "NoTouch"
	}
	return fmt.Sprintf("Touch(%v)", s.value)
}

// Slots holds one value per touch slot
type Slots[T any] [NumSlots]T

// MapSlots applies f to every slot
func MapSlots[T, U any](in Slots[T], f func(T) U) Slots[U] {
	var out Slots[U]
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

// FirstTouch returns the first touching state in order, or NoTouch
func FirstTouch[T any](states []TouchState[T]) TouchState[T] {
	for _, s := range states {
		if s.touching {
			return s
		}
	}
	return NoTouch[T]()
}
