package geom

import "math"

// Polygon2D is an ordered ring of points. The order defines the boundary
// traversal and the orientation. Consecutive duplicates are dropped on Append,
// and the ring is implicitly closed: the last point connects back to the first.
type Polygon2D struct {
	points []Point2D
}

// NewPolygon2D builds a polygon from points, dropping consecutive duplicates
// and a closing point equal to the first.
func NewPolygon2D(points ...Point2D) *Polygon2D {
	poly := &Polygon2D{points: make([]Point2D, 0, len(points))}
	for _, p := range points {
		poly.Append(p)
	}
	poly.Close()
	return poly
}

// Append adds p to the end of the ring unless it equals the current last point.
func (poly *Polygon2D) Append(p Point2D) bool {
	if n := len(poly.points); n > 0 && poly.points[n-1].Equal(p) {
		return false
	}
	poly.points = append(poly.points, p)
	return true
}

// Close drops trailing points that repeat the first one.
func (poly *Polygon2D) Close() {
	for len(poly.points) > 1 && poly.points[len(poly.points)-1].Equal(poly.points[0]) {
		poly.points = poly.points[:len(poly.points)-1]
	}
}

func (poly *Polygon2D) Len() int {
	return len(poly.points)
}

func (poly *Polygon2D) At(i int) Point2D {
	return poly.points[CircularIndex(i, len(poly.points))]
}

// Points returns the underlying ring. Callers must not modify it.
func (poly *Polygon2D) Points() []Point2D {
	return poly.points
}

// Edge returns the segment from point i to point i+1.
func (poly *Polygon2D) Edge(i int) Line2D {
	return Line2D{A: poly.At(i), B: poly.At(i + 1)}
}

// IsValid reports whether the ring has more than two points, all of them
// finite, with no consecutive duplicates and a last point different from the
// first.
func (poly *Polygon2D) IsValid() bool {
	n := len(poly.points)
	if n < 3 {
		return false
	}
	for i := range poly.points {
		if !poly.points[i].IsFinite() || poly.points[i].Equal(poly.points[(i+1)%n]) {
			return false
		}
	}
	return true
}

func (poly *Polygon2D) Clone() *Polygon2D {
	points := make([]Point2D, len(poly.points))
	copy(points, poly.points)
	return &Polygon2D{points: points}
}

func (poly *Polygon2D) Reverse() *Polygon2D {
	reversed := &Polygon2D{points: make([]Point2D, 0, len(poly.points))}
	for i := len(poly.points) - 1; i >= 0; i-- {
		reversed.points = append(reversed.points, poly.points[i])
	}
	return reversed
}

// SignedArea is the shoelace area, positive for counterclockwise rings.
func (poly *Polygon2D) SignedArea() float64 {
	var sum float64
	n := len(poly.points)
	for i, p := range poly.points {
		q := poly.points[(i+1)%n]
		sum += p.Cross(q)
	}
	return sum / 2
}

func (poly *Polygon2D) Area() float64 {
	return math.Abs(poly.SignedArea())
}

func (poly *Polygon2D) IsCCW() bool {
	return poly.SignedArea() > 0
}

func (poly *Polygon2D) BBox() BBox2D {
	return BBoxOf(poly.points...)
}

// Centroid is the area-weighted centroid. Degenerate rings fall back to the
// vertex average.
func (poly *Polygon2D) Centroid() Point2D {
	var cx, cy, a float64
	n := len(poly.points)
	for i, p := range poly.points {
		q := poly.points[(i+1)%n]
		cross := p.Cross(q)
		a += cross
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	if IsZero(a) {
		var sum Point2D
		for _, p := range poly.points {
			sum = sum.Add(p)
		}
		return sum.Scale(1 / float64(n))
	}
	return Point2D{X: cx / (3 * a), Y: cy / (3 * a)}
}

// Winding rule point-in-polygon. Points on the boundary may land on either
// side; use Classify when the boundary matters.
func (poly *Polygon2D) ContainsPointByEvenOdd(p Point2D) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule
func (poly *Polygon2D) CrossingCount(p Point2D) int {
	crossingCount := 0
	n := len(poly.points)
	for i, vertex := range poly.points {
		next := poly.points[(i+1)%n]
		if (vertex.Y > p.Y) == (next.Y > p.Y) {
			continue
		}
		x := vertex.X + (p.Y-vertex.Y)*(next.X-vertex.X)/(next.Y-vertex.Y)
		if p.X < x {
			crossingCount++
		}
	}
	return crossingCount
}

// Classify locates p against the closed polygon.
func (poly *Polygon2D) Classify(p Point2D) Location {
	for _, v := range poly.points {
		if v.Equal(p) {
			return OnVertex
		}
	}
	for i := range poly.points {
		if poly.Edge(i).ContainsPoint(p) {
			return OnEdge
		}
	}
	if poly.ContainsPointByEvenOdd(p) {
		return Inside
	}
	return Outside
}

// IsSimple reports whether no two edges of the ring cross or touch, other than
// neighbours meeting at their shared vertex. The check is quadratic and meant
// for validating input, not for hot paths.
func (poly *Polygon2D) IsSimple() bool {
	if !poly.IsValid() {
		return false
	}
	n := len(poly.points)
	for i := 0; i < n; i++ {
		ei := poly.Edge(i)
		// A neighbour folding back onto this edge is a zero-width spike.
		next := poly.Edge(i + 1)
		if Orient(ei.A, ei.B, next.B) == 0 && ei.Direction().Dot(next.Direction()) < 0 {
			return false
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if ei.Intersects(poly.Edge(j)) {
				return false
			}
		}
	}
	return true
}
