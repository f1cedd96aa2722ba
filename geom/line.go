package geom

import "fmt"

// Line2D is the segment from A to B.
type Line2D struct {
	A, B Point2D
}

func (l Line2D) Length() float64 {
	return l.A.Distance(l.B)
}

func (l Line2D) Direction() Point2D {
	return l.B.Sub(l.A)
}

func (l Line2D) Midpoint() Point2D {
	return l.A.Midpoint(l.B)
}

func (l Line2D) BBox() BBox2D {
	return BBoxOf(l.A, l.B)
}

// Side returns 1 if p is left of A->B, -1 if right, 0 if collinear.
func (l Line2D) Side(p Point2D) int {
	return Orient(l.A, l.B, p)
}

// ContainsPoint reports whether p lies on the closed segment.
func (l Line2D) ContainsPoint(p Point2D) bool {
	return l.Side(p) == 0 && l.BBox().ContainsPoint(p)
}

// Intersects reports whether the two closed segments share at least one point.
func (l Line2D) Intersects(o Line2D) bool {
	d1 := l.Side(o.A)
	d2 := l.Side(o.B)
	d3 := o.Side(l.A)
	d4 := o.Side(l.B)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return (d1 == 0 && l.ContainsPoint(o.A)) ||
		(d2 == 0 && l.ContainsPoint(o.B)) ||
		(d3 == 0 && o.ContainsPoint(l.A)) ||
		(d4 == 0 && o.ContainsPoint(l.B))
}

func (l Line2D) String() string {
	return fmt.Sprintf("%v-%v", l.A, l.B)
}
