package geom

import (
	"math"
	"sort"
)

// ConvexHull returns the counterclockwise convex hull of the polygon's points
// using the monotone chain sweep. Collinear points on the hull are dropped. If
// all points are collinear the result has fewer than three points and is not a
// valid polygon.
func (poly *Polygon2D) ConvexHull() *Polygon2D {
	return ConvexHull(poly.points)
}

// ConvexHull computes the hull of an arbitrary point set.
func ConvexHull(points []Point2D) *Polygon2D {
	sorted := make([]Point2D, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})

	// Unique, tolerantly
	unique := sorted[:0]
	for _, p := range sorted {
		if len(unique) > 0 && unique[len(unique)-1].Equal(p) {
			continue
		}
		unique = append(unique, p)
	}
	if len(unique) < 3 {
		return NewPolygon2D(unique...)
	}

	var lower, upper PointStack
	sweep := func(stack *PointStack, p Point2D) {
		for stack.Len() >= 2 {
			top, _ := stack.Peek()
			under, _ := stack.Under()
			if Orient(under, top, p) > 0 {
				break
			}
			stack.Pop()
		}
		stack.Push(p)
	}
	for _, p := range unique {
		sweep(&lower, p)
	}
	for i := len(unique) - 1; i >= 0; i-- {
		sweep(&upper, unique[i])
	}

	// The last point of each chain is the first point of the other.
	hull := make([]Point2D, 0, lower.Len()+upper.Len()-2)
	hull = append(hull, lower[:lower.Len()-1]...)
	hull = append(hull, upper[:upper.Len()-1]...)
	return NewPolygon2D(hull...)
}

// OrientedBox is a rectangle with arbitrary orientation. Axis is the unit
// direction of the Width side.
type OrientedBox struct {
	Center        Point2D
	Axis          Point2D
	Width, Height float64
}

func (b OrientedBox) Area() float64 {
	return b.Width * b.Height
}

// Corners returns the corners counterclockwise.
func (b OrientedBox) Corners() [4]Point2D {
	u := b.Axis.Scale(b.Width / 2)
	v := b.Axis.Ortho().Scale(b.Height / 2)
	return [4]Point2D{
		b.Center.Sub(u).Sub(v),
		b.Center.Add(u).Sub(v),
		b.Center.Add(u).Add(v),
		b.Center.Sub(u).Add(v),
	}
}

// OBB returns the minimum-area oriented bounding box. One side of that box is
// always collinear with a hull edge, so every hull edge direction is tried. The
// second result is false when the hull has fewer than three points.
func (poly *Polygon2D) OBB() (OrientedBox, bool) {
	hull := poly.ConvexHull()
	n := hull.Len()
	if n < 3 {
		return OrientedBox{}, false
	}

	best := OrientedBox{}
	bestArea := math.Inf(1)
	for i := 0; i < n; i++ {
		axis := hull.Edge(i).Direction().Normalize()
		normal := axis.Ortho()
		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull.points {
			u := p.Dot(axis)
			v := p.Dot(normal)
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		area := (maxU - minU) * (maxV - minV)
		if Compare(area, bestArea) < 0 {
			bestArea = area
			cu := (minU + maxU) / 2
			cv := (minV + maxV) / 2
			best = OrientedBox{
				Center: axis.Scale(cu).Add(normal.Scale(cv)),
				Axis:   axis,
				Width:  maxU - minU,
				Height: maxV - minV,
			}
		}
	}
	return best, true
}
