package spatial

import (
	"sort"

	"github.com/samber/lo"

	"github.com/niflight/nigeom/geom"
)

// BSPNode is a node of a BSPTree. Box is the node's cell. Internal nodes cut
// their cell with an axis-aligned line at Split on Axis; the left child gets
// the lower half.
type BSPNode struct {
	Box         geom.BBox2D
	Axis        int
	Split       float64
	Left, Right int
	Refs        []RefGeom
	leaf        bool
}

func (n *BSPNode) IsLeaf() bool {
	return n.leaf
}

// BSPTree is a binary space partition: sibling cells never overlap, so a
// geometry that straddles a splitting line is referenced from both sides.
// The zero value is an empty tree.
type BSPTree struct {
	nodes     []BSPNode
	root      int
	threshold int
	count     int
}

func NewBSPTree() *BSPTree {
	return &BSPTree{root: -1}
}

// BuildBSPTree returns a tree over refs with at most threshold refs per leaf
// where a split can achieve it.
func BuildBSPTree(refs []RefGeom, threshold int) (*BSPTree, error) {
	t := NewBSPTree()
	if err := t.Build(refs, threshold); err != nil {
		return nil, err
	}
	return t, nil
}

// Build replaces the tree's content. On error the tree is left empty.
func (t *BSPTree) Build(refs []RefGeom, threshold int) error {
	t.reset()
	scratch, err := initGeomBuild(refs, threshold)
	if err != nil {
		return err
	}
	t.threshold = threshold
	t.root = t.build(scratch, boundsOf(scratch))
	t.count = len(refs)
	return nil
}

func (t *BSPTree) reset() {
	t.nodes = t.nodes[:0]
	t.root = -1
	t.count = 0
	t.threshold = 0
}

// build partitions items inside cell. Straddling items are copied into both
// children, so each level gets fresh slices instead of sharing one scratch
// range.
func (t *BSPTree) build(items []buildNode[RefGeom], cell geom.BBox2D) int {
	idx := len(t.nodes)
	if len(items) <= t.threshold {
		return t.leaf(items, cell)
	}

	axis, k := bestSplit(items)
	split := (items[k-1].center.Coord(axis) + items[k].center.Coord(axis)) / 2
	if cellLo, cellHi := cell.Axis(axis); split < cellLo || split > cellHi {
		return t.leaf(items, cell)
	}

	var below, above []buildNode[RefGeom]
	for i := range items {
		low, high := items[i].box.Axis(axis)
		items[i].hit = low <= split
		if items[i].hit {
			below = append(below, items[i])
		}
		if high >= split {
			above = append(above, items[i])
		}
	}
	// Splitting must shrink both sides or recursion would never end.
	if len(below) == len(items) || len(above) == len(items) {
		return t.leaf(items, cell)
	}

	t.nodes = append(t.nodes, BSPNode{Box: cell, Axis: axis, Split: split})
	lower, upper := cell.Split(axis, split)
	left := t.build(below, lower)
	right := t.build(above, upper)
	t.nodes[idx].Left = left
	t.nodes[idx].Right = right
	return idx
}

func (t *BSPTree) leaf(items []buildNode[RefGeom], cell geom.BBox2D) int {
	node := BSPNode{Box: cell, Left: -1, Right: -1, Refs: make([]RefGeom, len(items)), leaf: true}
	for i := range items {
		node.Refs[i] = items[i].ref
	}
	t.nodes = append(t.nodes, node)
	return len(t.nodes) - 1
}

// Len is the number of distinct references indexed.
func (t *BSPTree) Len() int {
	return t.count
}

func (t *BSPTree) Threshold() int {
	return t.threshold
}

func (t *BSPTree) Bounds() geom.BBox2D {
	if n := t.Root(); n != nil {
		return n.Box
	}
	return geom.NewBBox2D()
}

// Root returns the root node, or nil for an empty tree.
func (t *BSPTree) Root() *BSPNode {
	return t.Node(t.root)
}

// Node returns node i, or nil when i is -1 or out of range.
func (t *BSPTree) Node(i int) *BSPNode {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return &t.nodes[i]
}

// GeomsInBBox returns every reference whose box intersects box, once each,
// ordered by id.
func (t *BSPTree) GeomsInBBox(box geom.BBox2D) []RefGeom {
	if len(t.nodes) == 0 || !box.IsValid() {
		return nil
	}
	var found []RefGeom
	stack := []int{t.root}
	for len(stack) > 0 {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !n.Box.Intersects(box) {
			continue
		}
		if !n.leaf {
			stack = append(stack, n.Right, n.Left)
			continue
		}
		for _, ref := range n.Refs {
			if ref.Geom.BBox().Intersects(box) {
				found = append(found, ref)
			}
		}
	}
	found = lo.UniqBy(found, func(ref RefGeom) int { return ref.ID })
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

// GeomsAtPoint returns every reference whose box contains p, ordered by id.
func (t *BSPTree) GeomsAtPoint(p geom.Point2D) []RefGeom {
	return t.GeomsInBBox(p.BBox())
}

// Cells returns every node's cell in pre-order.
func (t *BSPTree) Cells() []Cell {
	if len(t.nodes) == 0 {
		return nil
	}
	var cells []Cell
	var walk func(i, depth int)
	walk = func(i, depth int) {
		n := &t.nodes[i]
		cells = append(cells, Cell{Box: n.Box, Depth: depth, Leaf: n.leaf, Count: len(n.Refs), node: n})
		if !n.leaf {
			walk(n.Left, depth+1)
			walk(n.Right, depth+1)
		}
	}
	walk(t.root, 0)
	return cells
}

func (t *BSPTree) String() string {
	return formatCells("BSPTree", t.Cells())
}
