package spatial

import (
	"sort"

	"github.com/niflight/nigeom/geom"
)

// BVHNode is a node of a BVHTree. Box encloses every geometry below the node.
// Leaves hold up to the build threshold of references; internal nodes hold
// none.
type BVHNode struct {
	Box         geom.BBox2D
	Left, Right int
	Refs        []RefGeom
	leaf        bool
}

func (n *BVHNode) IsLeaf() bool {
	return n.leaf
}

// BVHTree is a bounding volume hierarchy: every reference lives in exactly one
// leaf, and sibling boxes may overlap. The zero value is an empty tree.
type BVHTree struct {
	nodes     []BVHNode
	root      int
	threshold int
	count     int
	scratch   []buildNode[RefGeom]
}

func NewBVHTree() *BVHTree {
	return &BVHTree{root: -1}
}

// BuildBVHTree returns a tree over refs with at most threshold refs per leaf.
func BuildBVHTree(refs []RefGeom, threshold int) (*BVHTree, error) {
	t := NewBVHTree()
	if err := t.Build(refs, threshold); err != nil {
		return nil, err
	}
	return t, nil
}

// Build replaces the tree's content. On error the tree is left empty.
func (t *BVHTree) Build(refs []RefGeom, threshold int) error {
	t.reset()
	scratch, err := initGeomBuild(refs, threshold)
	if err != nil {
		return err
	}
	t.scratch = scratch
	t.threshold = threshold
	t.root = t.build(0, len(scratch))
	t.count = len(refs)
	t.scratch = nil
	return nil
}

func (t *BVHTree) reset() {
	t.nodes = t.nodes[:0]
	t.root = -1
	t.count = 0
	t.threshold = 0
}

func (t *BVHTree) build(lo, hi int) int {
	items := t.scratch[lo:hi]
	idx := len(t.nodes)
	node := BVHNode{Box: boundsOf(items), Left: -1, Right: -1}
	if len(items) <= t.threshold {
		node.leaf = true
		node.Refs = make([]RefGeom, len(items))
		for i := range items {
			node.Refs[i] = items[i].ref
		}
		t.nodes = append(t.nodes, node)
		return idx
	}
	t.nodes = append(t.nodes, node)

	_, k := bestSplit(items)
	left := t.build(lo, lo+k)
	right := t.build(lo+k, hi)
	t.nodes[idx].Left = left
	t.nodes[idx].Right = right
	return idx
}

func (t *BVHTree) Len() int {
	return t.count
}

// Threshold is the leaf size the tree was built with.
func (t *BVHTree) Threshold() int {
	return t.threshold
}

// Bounds is the box around every indexed geometry.
func (t *BVHTree) Bounds() geom.BBox2D {
	if n := t.Root(); n != nil {
		return n.Box
	}
	return geom.NewBBox2D()
}

// Root returns the root node, or nil for an empty tree.
func (t *BVHTree) Root() *BVHNode {
	return t.Node(t.root)
}

// Node returns node i, or nil when i is -1 or out of range.
func (t *BVHTree) Node(i int) *BVHNode {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return &t.nodes[i]
}

// GeomsInBBox returns every reference whose box intersects box, ordered by id.
func (t *BVHTree) GeomsInBBox(box geom.BBox2D) []RefGeom {
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
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

// GeomsAtPoint returns every reference whose box contains p, ordered by id.
func (t *BVHTree) GeomsAtPoint(p geom.Point2D) []RefGeom {
	return t.GeomsInBBox(p.BBox())
}

// Cells returns every node's box in pre-order.
func (t *BVHTree) Cells() []Cell {
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

func (t *BVHTree) String() string {
	return formatCells("BVHTree", t.Cells())
}
