package spatial

import (
	"sort"

	"github.com/niflight/nigeom/geom"
)

// KDNode is a node of a KDTree. Internal nodes split on Axis at Split: every
// point in the left subtree has a coordinate <= Split on that axis, every
// point in the right subtree >= Split. Leaves hold exactly one point.
type KDNode struct {
	Axis        int
	Split       float64
	Left, Right int
	Ref         RefPoint
	leaf        bool
}

func (n *KDNode) IsLeaf() bool {
	return n.leaf
}

// KDTree is a 2D tree over caller-owned points, split at the median with
// alternating axes (X first). The zero value is an empty tree.
type KDTree struct {
	nodes   []KDNode
	root    int
	bounds  geom.BBox2D
	count   int
	scratch []buildNode[RefPoint]
}

func NewKDTree() *KDTree {
	return &KDTree{root: -1}
}

// BuildKDTree returns a tree over refs.
func BuildKDTree(refs []RefPoint) (*KDTree, error) {
	t := NewKDTree()
	if err := t.Build(refs); err != nil {
		return nil, err
	}
	return t, nil
}

// Build replaces the tree's content. On error the tree is left empty.
func (t *KDTree) Build(refs []RefPoint) error {
	t.reset()
	if len(refs) == 0 {
		return ErrEmptyInput
	}
	if err := t.initBuild(refs); err != nil {
		t.reset()
		return err
	}

	t.nodes = make([]KDNode, 0, 2*len(refs)-1)
	t.root = t.build(0, len(refs), 0)
	t.count = len(refs)
	t.bounds = boundsOf(t.scratch)
	t.scratch = t.scratch[:0]
	return nil
}

func (t *KDTree) reset() {
	t.nodes = t.nodes[:0]
	t.root = -1
	t.count = 0
	t.bounds = geom.NewBBox2D()
}

func (t *KDTree) initBuild(refs []RefPoint) error {
	if cap(t.scratch) < len(refs) {
		t.scratch = make([]buildNode[RefPoint], len(refs))
	}
	t.scratch = t.scratch[:len(refs)]
	for i, ref := range refs {
		if ref.Pt == nil {
			return ErrInvalidRef
		}
		t.scratch[i] = buildNode[RefPoint]{ref: ref, id: ref.ID, box: ref.Pt.BBox(), center: *ref.Pt}
	}
	return nil
}

// build turns scratch[lo:hi] into a subtree and returns its root index.
func (t *KDTree) build(lo, hi, depth int) int {
	idx := len(t.nodes)
	if hi-lo == 1 {
		t.nodes = append(t.nodes, KDNode{Left: -1, Right: -1, Ref: t.scratch[lo].ref, leaf: true})
		return idx
	}

	axis := depth % 2
	sortByAxis(t.scratch[lo:hi], axis)
	mid := lo + (hi-lo)/2
	t.nodes = append(t.nodes, KDNode{Axis: axis, Split: t.scratch[mid].center.Coord(axis)})

	left := t.build(lo, mid, depth+1)
	right := t.build(mid, hi, depth+1)
	t.nodes[idx].Left = left
	t.nodes[idx].Right = right
	return idx
}

// Len is the number of indexed points.
func (t *KDTree) Len() int {
	return t.count
}

// Bounds is the box around every indexed point.
func (t *KDTree) Bounds() geom.BBox2D {
	return t.bounds
}

// Root returns the root node, or nil for an empty tree.
func (t *KDTree) Root() *KDNode {
	return t.Node(t.root)
}

// Node returns node i, or nil when i is -1 or out of range.
func (t *KDTree) Node(i int) *KDNode {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return &t.nodes[i]
}

// PointsInBBox returns every indexed point inside box (inclusive, with the
// usual tolerance), ordered by id.
func (t *KDTree) PointsInBBox(box geom.BBox2D) []RefPoint {
	if len(t.nodes) == 0 || !box.IsValid() {
		return nil
	}
	var found []RefPoint
	t.search(t.root, box, &found)
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

func (t *KDTree) search(i int, box geom.BBox2D, found *[]RefPoint) {
	n := &t.nodes[i]
	if n.leaf {
		if box.ContainsPoint(*n.Ref.Pt) {
			*found = append(*found, n.Ref)
		}
		return
	}
	lo, hi := box.Axis(n.Axis)
	if lo-searchSlack(lo) <= n.Split {
		t.search(n.Left, box, found)
	}
	if hi+searchSlack(hi) >= n.Split {
		t.search(n.Right, box, found)
	}
}

// Cells returns every node's region in pre-order. The root's region is the
// bounds of the points; children split their parent's region at Split.
func (t *KDTree) Cells() []Cell {
	if len(t.nodes) == 0 {
		return nil
	}
	var cells []Cell
	var walk func(i int, region geom.BBox2D, depth int)
	walk = func(i int, region geom.BBox2D, depth int) {
		n := &t.nodes[i]
		cell := Cell{Box: region, Depth: depth, Leaf: n.leaf, node: n}
		if n.leaf {
			cell.Count = 1
		}
		cells = append(cells, cell)
		if n.leaf {
			return
		}
		lower, upper := region.Split(n.Axis, n.Split)
		walk(n.Left, lower, depth+1)
		walk(n.Right, upper, depth+1)
	}
	walk(t.root, t.bounds, 0)
	return cells
}

func (t *KDTree) String() string {
	return formatCells("KDTree", t.Cells())
}
