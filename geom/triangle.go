package geom

import (
	"fmt"
	"math"
)

// Location classifies a point against a closed shape.
type Location int

const (
	Outside Location = iota
	Inside
	OnEdge
	OnVertex
)

func (l Location) String() string {
	switch l {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case OnEdge:
		return "on edge"
	case OnVertex:
		return "on vertex"
	}
	return "unknown"
}

// Triangle2D keeps its corners in the order they were given. It is only valid
// when the corners are pairwise distinct and not collinear.
type Triangle2D struct {
	A, B, C Point2D
	valid   bool
}

func NewTriangle2D(a, b, c Point2D) Triangle2D {
	t := Triangle2D{A: a, B: b, C: c}
	t.valid = !a.Equal(b) && !b.Equal(c) && !a.Equal(c) && Orient(a, b, c) != 0
	return t
}

func (t Triangle2D) IsValid() bool {
	return t.valid
}

func (t Triangle2D) Points() [3]Point2D {
	return [3]Point2D{t.A, t.B, t.C}
}

// SignedArea is positive for counterclockwise triangles.
func (t Triangle2D) SignedArea() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)) / 2
}

func (t Triangle2D) Area() float64 {
	return math.Abs(t.SignedArea())
}

func (t Triangle2D) IsCCW() bool {
	return Orient(t.A, t.B, t.C) > 0
}

func (t Triangle2D) BBox() BBox2D {
	return BBoxOf(t.A, t.B, t.C)
}

func (t Triangle2D) Centroid() Point2D {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3)
}

// Classify locates p against the closed triangle. Degenerate triangles have no
// interior, so p is either on one of their segments or outside.
func (t Triangle2D) Classify(p Point2D) Location {
	if p.Equal(t.A) || p.Equal(t.B) || p.Equal(t.C) {
		return OnVertex
	}
	edges := [3]Line2D{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
	sign := Orient(t.A, t.B, t.C)
	if sign == 0 {
		for _, e := range edges {
			if e.ContainsPoint(p) {
				return OnEdge
			}
		}
		return Outside
	}

	onEdge := false
	for _, e := range edges {
		side := e.Side(p) * sign
		if side < 0 {
			return Outside
		}
		if side == 0 {
			onEdge = true
		}
	}
	if onEdge {
		return OnEdge
	}
	return Inside
}

func (t Triangle2D) String() string {
	return fmt.Sprintf("Triangle{%v, %v, %v}", t.A, t.B, t.C)
}
