package geom

import (
	"fmt"
	"math"
)

// InvalidCoord is the magnitude used by the empty box sentinel. An empty box
// has every Min coordinate at InvalidCoord and every Max at -InvalidCoord, so
// adding the first point always overwrites both corners.
const InvalidCoord = 1e300

// BBox2D is an axis-aligned box. The zero value is a valid degenerate box at
// the origin; use NewBBox2D for an empty box.
type BBox2D struct {
	Min, Max Point2D
}

func NewBBox2D() BBox2D {
	return BBox2D{
		Min: Point2D{X: InvalidCoord, Y: InvalidCoord},
		Max: Point2D{X: -InvalidCoord, Y: -InvalidCoord},
	}
}

// BBoxOf returns the smallest box containing every point.
func BBoxOf(points ...Point2D) BBox2D {
	b := NewBBox2D()
	for _, p := range points {
		b.Add(p)
	}
	return b
}

func (b BBox2D) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y
}

func (b *BBox2D) Add(p Point2D) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// Union grows b to contain o. Invalid boxes contribute nothing.
func (b *BBox2D) Union(o BBox2D) {
	if !o.IsValid() {
		return
	}
	b.Add(o.Min)
	b.Add(o.Max)
}

// ContainsPoint is the inclusive, tolerant point-in-box test.
func (b BBox2D) ContainsPoint(p Point2D) bool {
	return b.IsValid() && InRange(p.X, b.Min.X, b.Max.X) && InRange(p.Y, b.Min.Y, b.Max.Y)
}

// ContainsBox reports whether o lies entirely inside b.
func (b BBox2D) ContainsBox(o BBox2D) bool {
	return o.IsValid() && b.ContainsPoint(o.Min) && b.ContainsPoint(o.Max)
}

// Intersects reports whether the boxes overlap or touch on both axes.
func (b BBox2D) Intersects(o BBox2D) bool {
	if !b.IsValid() || !o.IsValid() {
		return false
	}
	return Overlap1D(b.Min.X, b.Max.X, o.Min.X, o.Max.X) != Separate &&
		Overlap1D(b.Min.Y, b.Max.Y, o.Min.Y, o.Max.Y) != Separate
}

func (b BBox2D) Center() Point2D {
	return b.Min.Midpoint(b.Max)
}

func (b BBox2D) Width() float64 {
	if !b.IsValid() {
		return 0
	}
	return b.Max.X - b.Min.X
}

func (b BBox2D) Height() float64 {
	if !b.IsValid() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

func (b BBox2D) Area() float64 {
	return b.Width() * b.Height()
}

// HalfPerimeter is the 2D analogue of surface area used by split cost
// heuristics.
func (b BBox2D) HalfPerimeter() float64 {
	return b.Width() + b.Height()
}

// Expand returns b grown by d on every side.
func (b BBox2D) Expand(d float64) BBox2D {
	if !b.IsValid() {
		return b
	}
	return BBox2D{
		Min: Point2D{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Point2D{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Corners returns the corners counterclockwise from Min.
func (b BBox2D) Corners() [4]Point2D {
	return [4]Point2D{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// Axis returns the (min, max) extent on the given axis.
func (b BBox2D) Axis(axis int) (float64, float64) {
	return b.Min.Coord(axis), b.Max.Coord(axis)
}

// Split cuts b with an axis-aligned line at v and returns the lower and upper
// halves.
func (b BBox2D) Split(axis int, v float64) (lower, upper BBox2D) {
	lower, upper = b, b
	if axis == 0 {
		lower.Max.X = v
		upper.Min.X = v
	} else {
		lower.Max.Y = v
		upper.Min.Y = v
	}
	return lower, upper
}

func (b BBox2D) String() string {
	if !b.IsValid() {
		return "[empty]"
	}
	return fmt.Sprintf("[%v - %v]", b.Min, b.Max)
}

// BBox3D is the spatial counterpart of BBox2D.
type BBox3D struct {
	Min, Max Point3D
}

func NewBBox3D() BBox3D {
	return BBox3D{
		Min: Point3D{X: InvalidCoord, Y: InvalidCoord, Z: InvalidCoord},
		Max: Point3D{X: -InvalidCoord, Y: -InvalidCoord, Z: -InvalidCoord},
	}
}

func (b BBox3D) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

func (b *BBox3D) Add(p Point3D) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

func (b BBox3D) ContainsPoint(p Point3D) bool {
	return b.IsValid() &&
		InRange(p.X, b.Min.X, b.Max.X) &&
		InRange(p.Y, b.Min.Y, b.Max.Y) &&
		InRange(p.Z, b.Min.Z, b.Max.Z)
}

func (b BBox3D) Center() Point3D {
	return b.Min.Add(b.Max).Scale(0.5)
}

// XY projects the box onto the XY plane.
func (b BBox3D) XY() BBox2D {
	if !b.IsValid() {
		return NewBBox2D()
	}
	return BBox2D{Min: b.Min.XY(), Max: b.Max.XY()}
}
