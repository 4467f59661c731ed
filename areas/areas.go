package areas

import (
	"errors"
	"fmt"
	"image"

	"touchkeys/touch"
)

// ErrEmptyLayout is returned when a layout has no regions
var ErrEmptyLayout = errors.New("layout has no regions")

// Stripe layout defaults
const (
	NumStripes   = 30
	StripeTop    = 1
	StripeHeight = 10000
)

// Region binds a shape to a note
type Region struct {
	Shape Shape
	Note  int
}

// Areas is an immutable keyboard layout. Regions are matched in order, so
// the first region containing a position wins where shapes overlap.
type Areas struct {
	regions     []Region
	touchWidth  int32
	touchHeight int32
	regionSize  int32
	startNote   int
}

// Stripes builds NumStripes adjacent vertical stripes of the given width,
// mapped to consecutive notes starting at startNote. touchWidth and
// touchHeight are the device's coordinate extent, used only for rendering.
func Stripes(touchWidth, touchHeight, size int32, startNote int) *Areas {
	a := &Areas{
		touchWidth:  touchWidth,
		touchHeight: touchHeight,
		regionSize:  size,
		startNote:   startNote,
	}
	for i := int32(0); i < NumStripes; i++ {
		a.regions = append(a.regions, Region{
			Shape: Rectangle{X: i * size, Y: StripeTop, Width: size, Height: StripeHeight},
			Note:  startNote + int(i),
		})
	}
	return a
}

// New builds a layout from arbitrary regions, kept in the given order.
func New(touchWidth, touchHeight int32, regions []Region) (*Areas, error) {
	if len(regions) == 0 {
		return nil, ErrEmptyLayout
	}
	for i, r := range regions {
		if r.Shape == nil {
			return nil, fmt.Errorf("region %d: no shape", i)
		}
	}
	a := &Areas{
		regions:     append([]Region(nil), regions...),
		touchWidth:  touchWidth,
		touchHeight: touchHeight,
		startNote:   regions[0].Note,
	}
	return a, nil
}

// Len returns the number of regions
func (a *Areas) Len() int {
	return len(a.regions)
}

// Regions returns a copy of the regions in match order
func (a *Areas) Regions() []Region {
	return append([]Region(nil), a.regions...)
}

// RegionSize returns the stripe width, or 0 for custom layouts
func (a *Areas) RegionSize() int32 {
	return a.regionSize
}

// StartNote returns the note of the first region
func (a *Areas) StartNote() int {
	return a.startNote
}

// TouchSize returns the device coordinate extent the layout was built for
func (a *Areas) TouchSize() (width, height int32) {
	return a.touchWidth, a.touchHeight
}

// Resolve returns the note of the first region containing p
func (a *Areas) Resolve(p touch.Position) (note int, ok bool) {
	for _, r := range a.regions {
		if r.Shape.Contains(p) {
			return r.Note, true
		}
	}
	return 0, false
}

// Frequency is the equal tempered frequency of note
func (a *Areas) Frequency(note int) float32 {
	return Frequency(note)
}

// Color is the display color of note
func (a *Areas) Color(note int) RGB {
	return Color(note)
}

// NoteEvent maps one touch state to a note event. It keeps no state, so the
// same touch always yields the same event.
func (a *Areas) NoteEvent(s touch.TouchState[touch.Position]) NoteEvent {
	p, ok := s.Get()
	if !ok {
		return NoteOff()
	}
	note, ok := a.Resolve(p)
	if !ok {
		return NoteOff()
	}
	return NoteOn(note, Frequency(note))
}

// Element is a region's outline in screen coordinates with its color
type Element struct {
	Outline []image.Point
	Color   RGB
	Note    int
}

// Elements scales every region to a screen of the given size, in region order.
func (a *Areas) Elements(screenWidth, screenHeight int) []Element {
	xScale, yScale := 1.0, 1.0
	if a.touchWidth > 0 {
		xScale = float64(screenWidth) / float64(a.touchWidth)
	}
	if a.touchHeight > 0 {
		yScale = float64(screenHeight) / float64(a.touchHeight)
	}

	out := make([]Element, 0, len(a.regions))
	for _, r := range a.regions {
		out = append(out, Element{
			Outline: r.Shape.Polygon(xScale, yScale),
			Color:   Color(r.Note),
			Note:    r.Note,
		})
	}
	return out
}
