package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Point2D is a planar point. Arithmetic is delegated to r2.Point; equality and
// ordering go through the tolerant comparator, never bitwise.
type Point2D r2.Point

// Point3D is a spatial point backed by r3.Vector.
type Point3D r3.Vector

func P2(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func P3(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

func (p Point2D) Add(q Point2D) Point2D {
	return Point2D(r2.Point(p).Add(r2.Point(q)))
}

func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D(r2.Point(p).Sub(r2.Point(q)))
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D(r2.Point(p).Mul(s))
}

func (p Point2D) Dot(q Point2D) float64 {
	return r2.Point(p).Dot(r2.Point(q))
}

// Cross is the z component of the 3D cross product of p and q.
func (p Point2D) Cross(q Point2D) float64 {
	return r2.Point(p).Cross(r2.Point(q))
}

func (p Point2D) Norm() float64 {
	return r2.Point(p).Norm()
}

// Ortho returns p rotated by 90 degrees counterclockwise.
func (p Point2D) Ortho() Point2D {
	return Point2D(r2.Point(p).Ortho())
}

func (p Point2D) Normalize() Point2D {
	return Point2D(r2.Point(p).Normalize())
}

func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Norm()
}

func (p Point2D) Midpoint(q Point2D) Point2D {
	return p.Add(q).Scale(0.5)
}

// Equal reports whether both coordinates are tolerantly equal.
func (p Point2D) Equal(q Point2D) bool {
	return Compare(p.X, q.X) == 0 && Compare(p.Y, q.Y) == 0
}

// Compare orders points lexicographically by X, then Y.
func (p Point2D) Compare(q Point2D) int {
	if c := Compare(p.X, q.X); c != 0 {
		return c
	}
	return Compare(p.Y, q.Y)
}

func (p Point2D) Less(q Point2D) bool {
	return p.Compare(q) < 0
}

// Coord returns the coordinate on the given axis (0 = X, 1 = Y).
func (p Point2D) Coord(axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// BBox returns the zero-area box at p, so points can be indexed as geometry.
func (p Point2D) BBox() BBox2D {
	return BBox2D{Min: p, Max: p}
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Orient returns 1 if c lies to the left of the directed line a->b, -1 if it
// lies to the right and 0 if the three points are tolerantly collinear. The
// result does not depend on scale: the two products of the cross product are
// compared against each other, and when one of them is exactly zero the cross
// product is measured against |u|*|v| instead.
func Orient(a, b, c Point2D) int {
	u := b.Sub(a)
	v := c.Sub(a)
	p, q := u.X*v.Y, u.Y*v.X
	if p != 0 && q != 0 {
		return Compare(p, q)
	}
	scale := u.Norm() * v.Norm()
	if scale == 0 {
		return 0
	}
	cross := p - q
	switch {
	case IsZero(cross / scale):
		return 0
	case cross > 0:
		return 1
	}
	return -1
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point2D) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point3D) Add(q Point3D) Point3D {
	return Point3D(r3.Vector(p).Add(r3.Vector(q)))
}

func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D(r3.Vector(p).Sub(r3.Vector(q)))
}

func (p Point3D) Scale(s float64) Point3D {
	return Point3D(r3.Vector(p).Mul(s))
}

func (p Point3D) Dot(q Point3D) float64 {
	return r3.Vector(p).Dot(r3.Vector(q))
}

func (p Point3D) Cross(q Point3D) Point3D {
	return Point3D(r3.Vector(p).Cross(r3.Vector(q)))
}

func (p Point3D) Norm() float64 {
	return r3.Vector(p).Norm()
}

func (p Point3D) Equal(q Point3D) bool {
	return Compare(p.X, q.X) == 0 && Compare(p.Y, q.Y) == 0 && Compare(p.Z, q.Z) == 0
}

// Compare orders points lexicographically by X, Y, then Z.
func (p Point3D) Compare(q Point3D) int {
	if c := Compare(p.X, q.X); c != 0 {
		return c
	}
	if c := Compare(p.Y, q.Y); c != 0 {
		return c
	}
	return Compare(p.Z, q.Z)
}

// XY drops the Z coordinate.
func (p Point3D) XY() Point2D {
	return Point2D{X: p.X, Y: p.Y}
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// PointStack is the scratch stack used by the convex hull sweep.
type PointStack []Point2D

func (s *PointStack) Push(p Point2D) {
	*s = append(*s, p)
}

func (s *PointStack) Pop() (Point2D, bool) {
	if len(*s) == 0 {
		return Point2D{}, false
	}
	p := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return p, true
}

func (s *PointStack) Peek() (Point2D, bool) {
	if len(*s) == 0 {
		return Point2D{}, false
	}
	return (*s)[len(*s)-1], true
}

// Under returns the element just below the top of the stack.
func (s *PointStack) Under() (Point2D, bool) {
	if len(*s) < 2 {
		return Point2D{}, false
	}
	return (*s)[len(*s)-2], true
}

func (s *PointStack) Empty() bool {
	return len(*s) == 0
}

func (s *PointStack) Len() int {
	return len(*s)
}
