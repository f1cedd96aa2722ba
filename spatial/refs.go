// Package spatial builds balanced spatial indices over caller-owned points and
// geometry: a KD-tree for point range queries, and BVH and BSP trees for
// anything with a bounding box.
//
// Trees never copy the indexed geometry. Leaves hold references (a pointer or
// interface value plus a caller-chosen id) back into the caller's data, which
// the garbage collector keeps alive for as long as the tree is.
//
// Nodes live in a flat slice owned by the tree and refer to their children by
// index, with -1 meaning "none". Root and Node hand out borrowed pointers into
// that slice; they are invalidated by the next Build.
package spatial

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/niflight/nigeom/geom"
)

// DefaultLeafThreshold is the leaf size used by BVH and BSP builds when the
// caller has no better value.
const DefaultLeafThreshold = 16

var (
	ErrEmptyInput       = errors.New("spatial: nothing to index")
	ErrInvalidThreshold = errors.New("spatial: leaf threshold must be at least 1")
	ErrInvalidRef       = errors.New("spatial: reference has no geometry")
)

// RefPoint points at a caller-owned point.
type RefPoint struct {
	Pt *geom.Point2D
	ID int
}

// PointRefs references every element of points, using the slice index as id.
func PointRefs(points []geom.Point2D) []RefPoint {
	refs := make([]RefPoint, len(points))
	for i := range points {
		refs[i] = RefPoint{Pt: &points[i], ID: i}
	}
	return refs
}

// Geometry is anything that can be indexed by its bounding box.
type Geometry interface {
	BBox() geom.BBox2D
}

// RefGeom references caller-owned geometry. ParentID lets callers group pieces
// of a larger object (for example the triangles of one mesh). IDs must be
// unique within one tree.
type RefGeom struct {
	Geom     Geometry
	ID       int
	ParentID int
}

// GeomRefs references every element of geoms, using the slice index as id.
func GeomRefs[G Geometry](geoms []G, parentID int) []RefGeom {
	refs := make([]RefGeom, len(geoms))
	for i, g := range geoms {
		refs[i] = RefGeom{Geom: g, ID: i, ParentID: parentID}
	}
	return refs
}

// buildNode is one entry of the scratch array a build partitions. The hit flag
// is only meaningful while a range is being partitioned.
type buildNode[R any] struct {
	ref    R
	id     int
	box    geom.BBox2D
	center geom.Point2D
	hit    bool
}

// sortByAxis orders nodes by center on axis, then on the other axis, then by
// id. Exact comparisons are used: the tolerant comparator is not transitive
// and would not give sort a consistent order.
func sortByAxis[R any](nodes []buildNode[R], axis int) {
	other := 1 - axis
	sort.Slice(nodes, func(i, j int) bool {
		a, b := &nodes[i], &nodes[j]
		if ca, cb := a.center.Coord(axis), b.center.Coord(axis); ca != cb {
			return ca < cb
		}
		if ca, cb := a.center.Coord(other), b.center.Coord(other); ca != cb {
			return ca < cb
		}
		return a.id < b.id
	})
}

func boundsOf[R any](nodes []buildNode[R]) geom.BBox2D {
	box := geom.NewBBox2D()
	for i := range nodes {
		box.Union(nodes[i].box)
	}
	return box
}

func initGeomBuild(refs []RefGeom, threshold int) ([]buildNode[RefGeom], error) {
	if len(refs) == 0 {
		return nil, ErrEmptyInput
	}
	if threshold < 1 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "got %d", threshold)
	}
	scratch := make([]buildNode[RefGeom], len(refs))
	for i, ref := range refs {
		if ref.Geom == nil {
			return nil, errors.Wrapf(ErrInvalidRef, "ref %d (id %d)", i, ref.ID)
		}
		box := ref.Geom.BBox()
		if !box.IsValid() {
			return nil, errors.Wrapf(ErrInvalidRef, "ref %d (id %d) has an empty box", i, ref.ID)
		}
		scratch[i] = buildNode[RefGeom]{ref: ref, id: ref.ID, box: box, center: box.Center()}
	}
	return scratch, nil
}

// bestSplit evaluates every split position on both axes with a simplified
// surface area heuristic: cost(k) = k*halfPerimeter(first k) +
// (n-k)*halfPerimeter(rest). The cheapest split wins; among equal costs the
// more balanced one, then X over Y, then the smaller k. On return nodes are
// sorted on the chosen axis and the first k of them form the lower side.
func bestSplit[R any](nodes []buildNode[R]) (axis, k int) {
	n := len(nodes)
	prefix := make([]geom.BBox2D, n)
	suffix := make([]geom.BBox2D, n)

	bestCost := -1.0
	bestImbalance := n
	sortedAxis := -1
	for a := 0; a < 2; a++ {
		sortByAxis(nodes, a)
		sortedAxis = a

		running := geom.NewBBox2D()
		for i := 0; i < n; i++ {
			running.Union(nodes[i].box)
			prefix[i] = running
		}
		running = geom.NewBBox2D()
		for i := n - 1; i >= 0; i-- {
			running.Union(nodes[i].box)
			suffix[i] = running
		}

		for split := 1; split < n; split++ {
			cost := float64(split)*prefix[split-1].HalfPerimeter() + float64(n-split)*suffix[split].HalfPerimeter()
			imbalance := abs(n - 2*split)
			if bestCost < 0 || cost < bestCost || (cost == bestCost && imbalance < bestImbalance) {
				bestCost, bestImbalance = cost, imbalance
				axis, k = a, split
			}
		}
	}
	if sortedAxis != axis {
		sortByAxis(nodes, axis)
	}
	return axis, k
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// searchSlack widens a query bound before it is compared with an exact split
// value, so pruning never discards a point the tolerant containment test would
// accept.
func searchSlack(v float64) float64 {
	if v < 0 {
		v = -v
	}
	if v < 1 {
		return 2 * geom.Epsilon
	}
	return 2 * v * geom.Epsilon
}
