package areas

import (
	"errors"
	"fmt"
	"image"

	"touchkeys/touch"
)

// ErrDegenerate is returned when a shape has no interior
var ErrDegenerate = errors.New("degenerate shape")

// Shape is a region of the touch surface. The set of shapes is closed:
// Rectangle, Triangle and Parallelogram.
type Shape interface {
	// Contains reports whether p lies inside the shape
	Contains(p touch.Position) bool
	// Polygon returns the outline in drawing order, each axis scaled
	// independently and truncated toward zero.
	Polygon(xScale, yScale float64) []image.Point

	shape()
}

// Rectangle is axis aligned. Left and top edges are inside, right and
// bottom edges are not.
type Rectangle struct {
	X, Y, Width, Height int32
}

// Triangle contains its edges and corners
type Triangle struct {
	A, B, C touch.Position
}

// Parallelogram spans Base + s*U + t*V for s, t in [0, 1], edges included
type Parallelogram struct {
	Base, U, V touch.Position
}

func (Rectangle) shape()     {}
func (Triangle) shape()      {}
func (Parallelogram) shape() {}

func NewRectangle(x, y, width, height int32) (Rectangle, error) {
	if width <= 0 || height <= 0 {
		return Rectangle{}, fmt.Errorf("rectangle %dx%d: %w", width, height, ErrDegenerate)
	}
	return Rectangle{X: x, Y: y, Width: width, Height: height}, nil
}

func NewTriangle(a, b, c touch.Position) (Triangle, error) {
	if doubleArea(a, b, c) == 0 {
		return Triangle{}, fmt.Errorf("triangle %v %v %v: %w", a, b, c, ErrDegenerate)
	}
	return Triangle{A: a, B: b, C: c}, nil
}

// NewParallelogram rejects collinear u and v, which would leave the basis
// without an inverse.
func NewParallelogram(base, u, v touch.Position) (Parallelogram, error) {
	if cross(u, v) == 0 {
		return Parallelogram{}, fmt.Errorf("parallelogram u=%v v=%v: %w", u, v, ErrDegenerate)
	}
	return Parallelogram{Base: base, U: u, V: v}, nil
}

func (r Rectangle) Contains(p touch.Position) bool {
	xIn := p.X >= r.X && p.X < r.X+r.Width
	yIn := p.Y >= r.Y && p.Y < r.Y+r.Height
	return xIn && yIn
}

// Contains compares the triangle's area with the summed areas of the three
// triangles p forms with its edges. Areas are doubled and kept in integers
// so points on an edge compare exactly.
func (t Triangle) Contains(p touch.Position) bool {
	abp := doubleArea(t.A, t.B, p)
	bcp := doubleArea(t.B, t.C, p)
	ca := doubleArea(t.C, t.A, p)
	return abp+bcp+ca == doubleArea(t.A, t.B, t.C)
}

// Contains solves p-base = s*u + t*v with the cross product inverse of [u v]
// and checks 0 <= s, t <= 1. s = cross(p, v)/det and t = cross(u, p)/det are
// compared as numerators against det to stay exact.
func (g Parallelogram) Contains(p touch.Position) bool {
	d := touch.Position{X: p.X - g.Base.X, Y: p.Y - g.Base.Y}
	det := cross(g.U, g.V)
	if det == 0 {
		return false
	}
	s := cross(d, g.V)
	t := cross(g.U, d)
	if det < 0 {
		det, s, t = -det, -s, -t
	}
	return s >= 0 && s <= det && t >= 0 && t <= det
}

func (r Rectangle) Polygon(xScale, yScale float64) []image.Point {
	x1, y1 := r.X, r.Y
	x2, y2 := r.X+r.Width, r.Y+r.Height
	return scale([]touch.Position{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}, xScale, yScale)
}

func (t Triangle) Polygon(xScale, yScale float64) []image.Point {
	return scale([]touch.Position{t.A, t.B, t.C}, xScale, yScale)
}

func (g Parallelogram) Polygon(xScale, yScale float64) []image.Point {
	b, u, v := g.Base, g.U, g.V
	return scale([]touch.Position{
		b,
		{X: b.X + u.X, Y: b.Y + u.Y},
		{X: b.X + u.X + v.X, Y: b.Y + u.Y + v.Y},
		{X: b.X + v.X, Y: b.Y + v.Y},
	}, xScale, yScale)
}

func scale(vertices []touch.Position, xScale, yScale float64) []image.Point {
	out := make([]image.Point, len(vertices))
	for i, v := range vertices {
		out[i] = image.Point{
			X: int(float64(v.X) * xScale),
			Y: int(float64(v.Y) * yScale),
		}
	}
	return out
}

func cross(a, b touch.Position) int64 {
	return int64(a.X)*int64(b.Y) - int64(a.Y)*int64(b.X)
}

// doubleArea is twice the unsigned shoelace area of abc
func doubleArea(a, b, c touch.Position) int64 {
	ax, ay := int64(a.X), int64(a.Y)
	bx, by := int64(b.X), int64(b.Y)
	cx, cy := int64(c.X), int64(c.Y)
	n := ax*(by-cy) + bx*(cy-ay) + cx*(ay-by)
	if n < 0 {
		return -n
	}
	return n
}
