// Package topology derives vertex/edge/face adjacency tables from a triangle
// mesh and keeps them consistent while faces are removed.
//
// Edges are canonical: an edge is identified by its endpoints ordered
// (min, max). Each edge has two face slots. A face that walks the edge from the
// lower index to the higher one is stored in slot 0, a face that walks it the
// other way in slot 1. For a consistently oriented manifold mesh every interior
// edge therefore gets exactly one face per slot; RemoveFace relies on that to
// find the slot to clear.
package topology

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/niflight/nigeom/geom"
)

var (
	ErrInvalidMesh  = errors.New("topology: mesh is not valid")
	ErrNoFaces      = errors.New("topology: mesh has no faces")
	ErrSlotConflict = errors.New("topology: edge slot already taken")
)

// Mesh is what the builder reads. Both geom.TriangleMesh2D and
// geom.TriangleMesh3D satisfy it.
type Mesh interface {
	IsValid() bool
	PointCount() int
	FaceCount() int
	Face(i int) geom.Face
}

// Vert2EF lists the edges and faces incident to a vertex, in no particular
// order.
type Vert2EF struct {
	Edges []int
	Faces []int
}

// Edge2VF holds the canonical endpoints (V[0] < V[1]) and the two face slots.
// An empty slot is -1.
type Edge2VF struct {
	V [2]int
	F [2]int
}

func (e Edge2VF) FaceCount() int {
	n := 0
	for _, f := range e.F {
		if f >= 0 {
			n++
		}
	}
	return n
}

// Other returns the face on the other side of the edge from f, or -1.
func (e Edge2VF) Other(f int) int {
	switch f {
	case e.F[0]:
		return e.F[1]
	case e.F[1]:
		return e.F[0]
	}
	return -1
}

// Face2VE lists a face's corners and edges by position: E[i] joins V[i] and
// V[(i+1)%3].
type Face2VE struct {
	V [3]int
	E [3]int
}

// Table is the set of adjacency tables for one mesh. The zero value is an
// empty table. Tables do not track the mesh: mutating the mesh other than
// through RemoveFace leaves the table stale until Build is called again.
type Table struct {
	verts     []Vert2EF
	edges     []Edge2VF
	faces     []Face2VE
	edgeAlive []bool
	faceAlive []bool
	liveEdges int
	liveFaces int
	vertTable bool
}

// Build returns a new table for mesh.
func Build(mesh Mesh, buildVertTable bool) (*Table, error) {
	t := &Table{}
	if err := t.Build(mesh, buildVertTable); err != nil {
		return nil, err
	}
	return t, nil
}

// Build replaces the table's content with the topology of mesh. On failure the
// table is left empty.
//
// The vertex table is always assembled because edge lookup during the build
// goes through the edges already incident to the lower endpoint; it is only
// retained when buildVertTable is set.
func (t *Table) Build(mesh Mesh, buildVertTable bool) error {
	t.Clear()
	if mesh == nil || !mesh.IsValid() {
		return ErrInvalidMesh
	}
	faceCount := mesh.FaceCount()
	if faceCount < 1 {
		return ErrNoFaces
	}
	pointCount := mesh.PointCount()

	verts := make([]Vert2EF, pointCount)
	edges := make([]Edge2VF, 0, faceCount*3/2+1)
	faces := make([]Face2VE, faceCount)

	for f := 0; f < faceCount; f++ {
		face := mesh.Face(f)
		if !face.Valid(pointCount) {
			return errors.Wrapf(ErrInvalidMesh, "face %d %v", f, face)
		}
		record := Face2VE{V: face}
		for i := 0; i < 3; i++ {
			a, b := face[i], face[(i+1)%3]
			low, high, slot := canonical(a, b)

			e := lookupEdge(verts, edges, low, high)
			if e < 0 {
				e = len(edges)
				edges = append(edges, Edge2VF{V: [2]int{low, high}, F: [2]int{-1, -1}})
				verts[low].Edges = append(verts[low].Edges, e)
				verts[high].Edges = append(verts[high].Edges, e)
			}
			if other := edges[e].F[slot]; other >= 0 {
				return errors.Wrapf(ErrSlotConflict, "edge %d-%d slot %d holds face %d, face %d", low, high, slot, other, f)
			}
			edges[e].F[slot] = f
			record.E[i] = e
			verts[face[i]].Faces = append(verts[face[i]].Faces, f)
		}
		faces[f] = record
	}

	t.edges = edges
	t.faces = faces
	t.edgeAlive = lo.Times(len(edges), func(int) bool { return true })
	t.faceAlive = lo.Times(len(faces), func(int) bool { return true })
	t.liveEdges = len(edges)
	t.liveFaces = len(faces)
	t.vertTable = buildVertTable
	if buildVertTable {
		t.verts = verts
	}
	return nil
}

// canonical orders an edge's endpoints and picks its face slot: 0 when the
// face walks from the lower index to the higher, 1 otherwise.
func canonical(a, b int) (low, high, slot int) {
	if a < b {
		return a, b, 0
	}
	return b, a, 1
}

func lookupEdge(verts []Vert2EF, edges []Edge2VF, low, high int) int {
	for _, e := range verts[low].Edges {
		if edges[e].V[1] == high {
			return e
		}
	}
	return -1
}

// Clear empties the table.
func (t *Table) Clear() {
	*t = Table{}
}

// HasVertTable reports whether the vertex table was retained at build time.
func (t *Table) HasVertTable() bool {
	return t.vertTable
}

func (t *Table) VertCount() int {
	return len(t.verts)
}

// EdgeCount is the number of edges that have not been deleted.
func (t *Table) EdgeCount() int {
	return t.liveEdges
}

// FaceCount is the number of faces that have not been removed.
func (t *Table) FaceCount() int {
	return t.liveFaces
}

func (t *Table) Vert2EF(v int) (Vert2EF, bool) {
	if v < 0 || v >= len(t.verts) {
		return Vert2EF{}, false
	}
	rec := t.verts[v]
	return Vert2EF{
		Edges: append([]int(nil), rec.Edges...),
		Faces: append([]int(nil), rec.Faces...),
	}, true
}

func (t *Table) Edge2VF(e int) (Edge2VF, bool) {
	if e < 0 || e >= len(t.edges) || !t.edgeAlive[e] {
		return Edge2VF{}, false
	}
	return t.edges[e], true
}

func (t *Table) Face2VE(f int) (Face2VE, bool) {
	if f < 0 || f >= len(t.faces) || !t.faceAlive[f] {
		return Face2VE{}, false
	}
	return t.faces[f], true
}

// EdgeFaceCount returns how many faces still use edge e, 0 for a deleted edge.
func (t *Table) EdgeFaceCount(e int) int {
	edge, ok := t.Edge2VF(e)
	if !ok {
		return 0
	}
	return edge.FaceCount()
}

// FindEdge returns the index of the edge of face joining v1 and v2, or -1.
func (t *Table) FindEdge(face, v1, v2 int) int {
	record, ok := t.Face2VE(face)
	if !ok {
		return -1
	}
	for i := 0; i < 3; i++ {
		a, b := record.V[i], record.V[(i+1)%3]
		if (a == v1 && b == v2) || (a == v2 && b == v1) {
			return record.E[i]
		}
	}
	return -1
}

// EdgeBetween returns the live edge joining v1 and v2, or -1. Without a vertex
// table this falls back to scanning every edge.
func (t *Table) EdgeBetween(v1, v2 int) int {
	low, high, _ := canonical(v1, v2)
	if t.vertTable {
		if low < 0 || high >= len(t.verts) {
			return -1
		}
		return lookupEdge(t.verts, t.edges, low, high)
	}
	for e, edge := range t.edges {
		if t.edgeAlive[e] && edge.V == [2]int{low, high} {
			return e
		}
	}
	return -1
}

// FaceNeighbors returns the live faces sharing an edge with f, in edge order.
func (t *Table) FaceNeighbors(f int) []int {
	record, ok := t.Face2VE(f)
	if !ok {
		return nil
	}
	var neighbors []int
	for _, e := range record.E {
		if other := t.edges[e].Other(f); other >= 0 {
			neighbors = append(neighbors, other)
		}
	}
	return neighbors
}

// BoundaryEdges returns the live edges used by exactly one face.
func (t *Table) BoundaryEdges() []int {
	var boundary []int
	for e, edge := range t.edges {
		if t.edgeAlive[e] && edge.FaceCount() == 1 {
			boundary = append(boundary, e)
		}
	}
	return boundary
}

// RemoveFace detaches face f from every table. Edges left without faces are
// deleted and unlinked from their endpoints. Removing a face that is out of
// range or already removed is a no-op that returns false.
func (t *Table) RemoveFace(f int) bool {
	if f < 0 || f >= len(t.faces) || !t.faceAlive[f] {
		return false
	}
	record := t.faces[f]
	for i := 0; i < 3; i++ {
		if t.vertTable {
			v := &t.verts[record.V[i]]
			v.Faces = removeValue(v.Faces, f)
		}

		e := record.E[i]
		edge := &t.edges[e]
		for slot := range edge.F {
			if edge.F[slot] == f {
				edge.F[slot] = -1
			}
		}
		if edge.FaceCount() == 0 {
			t.deleteEdge(e)
		}
	}
	t.faceAlive[f] = false
	t.liveFaces--
	return true
}

// RemoveFaces removes every listed face. If any index is out of range nothing
// is removed and the result is false. Repeated or already removed faces are
// skipped. The result reports whether at least one face was removed.
func (t *Table) RemoveFaces(faces []int) bool {
	for _, f := range faces {
		if f < 0 || f >= len(t.faces) {
			return false
		}
	}
	removed := false
	for _, f := range lo.Uniq(faces) {
		if t.RemoveFace(f) {
			removed = true
		}
	}
	return removed
}

func (t *Table) deleteEdge(e int) {
	edge := t.edges[e]
	if t.vertTable {
		for _, v := range edge.V {
			t.verts[v].Edges = removeValue(t.verts[v].Edges, e)
		}
	}
	t.edgeAlive[e] = false
	t.liveEdges--
}

// removeValue drops the first occurrence of v by swapping in the last element.
func removeValue(s []int, v int) []int {
	i := lo.IndexOf(s, v)
	if i < 0 {
		return s
	}
	s[i] = s[len(s)-1]
	return s[:len(s)-1]
}
