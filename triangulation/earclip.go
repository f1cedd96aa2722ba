package triangulation

import (
	"container/heap"
	"log"
	"math"

	"github.com/pkg/errors"

	"github.com/niflight/nigeom/geom"
	"github.com/niflight/nigeom/internal"
	"github.com/niflight/nigeom/spatial"
)

// vertex is one corner of the ring still being clipped. prev and next are
// indices into the clipper's vertices and always describe the remaining ring.
type vertex struct {
	pos       geom.Point2D
	prev      int
	next      int
	angle     float64
	heapIndex int
	removed   bool
	parked    bool
}

type clipper struct {
	verts     []vertex
	sign      float64
	tree      *spatial.KDTree
	queue     vertexQueue
	parked    []int
	remaining int
	logger    *log.Logger
}

// newClipper links the ring and queues every vertex. sign is +1 for a
// counterclockwise ring, -1 for a clockwise one.
func newClipper(points []geom.Point2D, sign float64, logger *log.Logger) (*clipper, error) {
	n := len(points)
	tree, err := spatial.BuildKDTree(spatial.PointRefs(points))
	if err != nil {
		return nil, errors.Wrap(err, "indexing vertices")
	}
	c := &clipper{
		verts:     make([]vertex, n),
		sign:      sign,
		tree:      tree,
		remaining: n,
		logger:    logger,
	}
	for i, p := range points {
		c.verts[i] = vertex{
			pos:       p,
			prev:      geom.CircularIndex(i-1, n),
			next:      geom.CircularIndex(i+1, n),
			heapIndex: -1,
		}
	}
	c.queue = vertexQueue{verts: c.verts, items: make([]int, 0, n)}
	for i := range c.verts {
		c.verts[i].angle = c.interiorAngle(i)
		heap.Push(&c.queue, i)
	}
	return c, nil
}

// run clips ears until a triangle remains and returns every face, each wound
// like the input ring.
func (c *clipper) run(maxIterations int) ([]geom.Face, error) {
	faces := make([]geom.Face, 0, len(c.verts)-2)
	iterations := 0
	for c.remaining > 3 {
		if c.queue.Len() == 0 {
			c.logger.Printf("stalled with %d vertices left, %d parked", c.remaining, len(c.parked))
			return nil, errors.Wrapf(ErrNotConverged, "%d vertices left", c.remaining)
		}
		iterations++
		if iterations > maxIterations {
			c.logger.Printf("gave up after %d iterations with %d vertices left", maxIterations, c.remaining)
			return nil, errors.Wrapf(ErrNotConverged, "iteration cap %d reached with %d vertices left", maxIterations, c.remaining)
		}

		v := heap.Pop(&c.queue).(int)
		if !c.isEar(v) {
			c.park(v)
			continue
		}
		vert := &c.verts[v]
		faces = append(faces, geom.Face{v, vert.next, vert.prev})
		c.clip(v)
		c.requeueParked()
	}

	last := c.anyRemaining()
	faces = append(faces, geom.Face{last, c.verts[last].next, c.verts[last].prev})
	return faces, nil
}

// interiorAngle is the angle inside the polygon at vertex i, in [0, 2pi).
func (c *clipper) interiorAngle(i int) float64 {
	v := &c.verts[i]
	a := c.verts[v.prev].pos.Sub(v.pos)
	b := c.verts[v.next].pos.Sub(v.pos)
	angle := math.Atan2(c.sign*b.Cross(a), b.Dot(a))
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// isEar reports whether the triangle (prev, v, next) can be cut off: v must
// be strictly convex, and no other remaining vertex may lie inside the
// triangle or on the diagonal that closes it.
func (c *clipper) isEar(v int) bool {
	vert := &c.verts[v]
	prev, next := c.verts[vert.prev].pos, c.verts[vert.next].pos
	if float64(geom.Orient(prev, vert.pos, next)) != c.sign {
		c.logger.Printf("vertex %d is reflex or straight (angle %.4f)", v, vert.angle)
		return false
	}
	tri := geom.NewTriangle2D(prev, vert.pos, next)
	if !tri.IsValid() {
		return false
	}
	diagonal := geom.Line2D{A: next, B: prev}
	for _, ref := range c.tree.PointsInBBox(tri.BBox()) {
		if ref.ID == v || ref.ID == vert.prev || ref.ID == vert.next || c.verts[ref.ID].removed {
			continue
		}
		switch tri.Classify(*ref.Pt) {
		case geom.Inside:
			c.logger.Printf("vertex %d blocked by vertex %d inside its ear", v, ref.ID)
			return false
		case geom.OnEdge, geom.OnVertex:
			if diagonal.ContainsPoint(*ref.Pt) {
				c.logger.Printf("vertex %d blocked by vertex %d on its diagonal", v, ref.ID)
				return false
			}
		}
	}
	return true
}

// clip splices v out of the ring and refreshes its neighbours' angles.
func (c *clipper) clip(v int) {
	vert := &c.verts[v]
	if vert.removed {
		internal.Fatalf("vertex %d clipped twice", v)
	}
	prev, next := vert.prev, vert.next
	if c.verts[prev].next != v || c.verts[next].prev != v {
		internal.Fatalf("ring broken around vertex %d", v)
	}
	c.verts[prev].next = next
	c.verts[next].prev = prev
	vert.removed = true
	c.remaining--

	for _, u := range [2]int{prev, next} {
		c.verts[u].angle = c.interiorAngle(u)
		if i := c.verts[u].heapIndex; i >= 0 {
			heap.Fix(&c.queue, i)
		}
	}
}

func (c *clipper) park(v int) {
	c.verts[v].parked = true
	c.parked = append(c.parked, v)
}

// requeueParked gives every parked vertex another chance; clipping an ear
// changes the ring, so a blocked vertex may have become an ear.
func (c *clipper) requeueParked() {
	for _, v := range c.parked {
		if c.verts[v].removed || !c.verts[v].parked {
			internal.Fatalf("vertex %d is in the parked list but not parked", v)
		}
		c.verts[v].parked = false
		heap.Push(&c.queue, v)
	}
	c.parked = c.parked[:0]
}

func (c *clipper) anyRemaining() int {
	for i := range c.verts {
		if !c.verts[i].removed {
			return i
		}
	}
	internal.Fatalf("no vertex left")
	return -1
}

// vertexQueue is a min-heap of vertex indices ordered by (angle, index). It
// keeps each vertex's heapIndex current so neighbours can be fixed in place.
type vertexQueue struct {
	items []int
	verts []vertex
}

func (q *vertexQueue) Len() int {
	return len(q.items)
}

func (q *vertexQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if q.verts[a].angle != q.verts[b].angle {
		return q.verts[a].angle < q.verts[b].angle
	}
	return a < b
}

func (q *vertexQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.verts[q.items[i]].heapIndex = i
	q.verts[q.items[j]].heapIndex = j
}

func (q *vertexQueue) Push(x interface{}) {
	v := x.(int)
	q.verts[v].heapIndex = len(q.items)
	q.items = append(q.items, v)
}

func (q *vertexQueue) Pop() interface{} {
	last := len(q.items) - 1
	v := q.items[last]
	q.items = q.items[:last]
	q.verts[v].heapIndex = -1
	return v
}
