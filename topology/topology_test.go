package topology

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niflight/nigeom/geom"
)

// Two triangles sharing the diagonal 0-2 of the unit square.
func squareMesh(t *testing.T) *geom.TriangleMesh2D {
	mesh := geom.NewTriangleMesh2D()
	mesh.SetPoints([]geom.Point2D{geom.P2(0, 0), geom.P2(1, 0), geom.P2(1, 1), geom.P2(0, 1)})
	require.True(t, mesh.SetFaces([]geom.Face{{0, 1, 2}, {0, 2, 3}}))
	return mesh
}

// Outward-facing tetrahedron surface.
func tetrahedron(t *testing.T) *geom.TriangleMesh3D {
	mesh := geom.NewTriangleMesh3D()
	mesh.SetPoints([]geom.Point3D{geom.P3(0, 0, 0), geom.P3(1, 0, 0), geom.P3(0, 1, 0), geom.P3(0, 0, 1)})
	require.True(t, mesh.SetFaces([]geom.Face{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}}))
	return mesh
}

type snapshot struct {
	verts []Vert2EF
	edges map[int]Edge2VF
	faces map[int]Face2VE
}

func takeSnapshot(table *Table) snapshot {
	s := snapshot{edges: map[int]Edge2VF{}, faces: map[int]Face2VE{}}
	for v := 0; v < table.VertCount(); v++ {
		rec, _ := table.Vert2EF(v)
		s.verts = append(s.verts, rec)
	}
	for e := 0; e < 16; e++ {
		if rec, ok := table.Edge2VF(e); ok {
			s.edges[e] = rec
		}
	}
	for f := 0; f < 16; f++ {
		if rec, ok := table.Face2VE(f); ok {
			s.faces[f] = rec
		}
	}
	return s
}

func TestBuild(t *testing.T) {
	table, err := Build(squareMesh(t), true)
	require.NoError(t, err)

	assert.Equal(t, 4, table.VertCount())
	assert.Equal(t, 5, table.EdgeCount())
	assert.Equal(t, 2, table.FaceCount())

	diagonal := table.EdgeBetween(2, 0)
	require.GreaterOrEqual(t, diagonal, 0)
	edge, ok := table.Edge2VF(diagonal)
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 2}, edge.V)
	// Face 0 walks 2->0 (slot 1), face 1 walks 0->2 (slot 0).
	assert.Equal(t, [2]int{1, 0}, edge.F)
	assert.Equal(t, 2, edge.FaceCount())
	assert.Equal(t, 1, edge.Other(0))

	face, ok := table.Face2VE(0)
	require.True(t, ok)
	assert.Equal(t, [3]int{0, 1, 2}, face.V)
	for i := 0; i < 3; i++ {
		rec, _ := table.Edge2VF(face.E[i])
		a, b := face.V[i], face.V[(i+1)%3]
		assert.ElementsMatch(t, []int{a, b}, rec.V[:], "edge %d of face 0", i)
	}

	vert, ok := table.Vert2EF(0)
	require.True(t, ok)
	assert.ElementsMatch(t, []int{0, 1}, vert.Faces)
	assert.Len(t, vert.Edges, 3)

	assert.ElementsMatch(t, []int{1}, table.FaceNeighbors(0))
	assert.Len(t, table.BoundaryEdges(), 4)
}

func TestBuild_3D(t *testing.T) {
	table, err := Build(tetrahedron(t), true)
	require.NoError(t, err)
	assert.Equal(t, 6, table.EdgeCount())
	assert.Empty(t, table.BoundaryEdges())
	for f := 0; f < 4; f++ {
		assert.Len(t, table.FaceNeighbors(f), 3)
	}
	for e := 0; e < 6; e++ {
		assert.Equal(t, 2, table.EdgeFaceCount(e))
	}
}

func TestBuild_Failures(t *testing.T) {
	t.Run("invalid mesh", func(t *testing.T) {
		mesh := geom.NewTriangleMesh2D()
		mesh.SetPoints([]geom.Point2D{geom.P2(0, 0), geom.P2(1, 0), geom.P2(0, 1)})
		_, err := Build(mesh, true)
		assert.True(t, errors.Is(err, ErrInvalidMesh))
	})

	t.Run("no faces", func(t *testing.T) {
		mesh := geom.NewTriangleMesh2D()
		mesh.SetPoints([]geom.Point2D{geom.P2(0, 0)})
		require.True(t, mesh.SetFaces(nil))
		_, err := Build(mesh, true)
		assert.True(t, errors.Is(err, ErrNoFaces))
	})

	t.Run("slot conflict leaves the table empty", func(t *testing.T) {
		table, err := Build(squareMesh(t), true)
		require.NoError(t, err)

		mesh := geom.NewTriangleMesh2D()
		mesh.SetPoints([]geom.Point2D{geom.P2(0, 0), geom.P2(1, 0), geom.P2(1, 1), geom.P2(1, -1)})
		// Both faces walk 0->1.
		require.True(t, mesh.SetFaces([]geom.Face{{0, 1, 2}, {0, 1, 3}}))
		err = table.Build(mesh, true)
		assert.True(t, errors.Is(err, ErrSlotConflict))
		assert.Equal(t, 0, table.VertCount())
		assert.Equal(t, 0, table.EdgeCount())
		_, ok := table.Face2VE(0)
		assert.False(t, ok)
	})
}

func TestFindEdge(t *testing.T) {
	table, err := Build(squareMesh(t), true)
	require.NoError(t, err)
	e := table.FindEdge(1, 3, 2)
	require.GreaterOrEqual(t, e, 0)
	rec, _ := table.Edge2VF(e)
	assert.Equal(t, [2]int{2, 3}, rec.V)
	assert.Equal(t, table.EdgeBetween(2, 3), e)
	assert.Equal(t, -1, table.FindEdge(0, 0, 3), "edge not on face")
	assert.Equal(t, -1, table.FindEdge(7, 0, 1), "no such face")
}

func TestRemoveFace_SharedEdge(t *testing.T) {
	table, err := Build(squareMesh(t), true)
	require.NoError(t, err)
	diagonal := table.EdgeBetween(0, 2)

	require.True(t, table.RemoveFace(0))
	assert.Equal(t, 1, table.EdgeFaceCount(diagonal), "shared edge keeps one face")
	_, ok := table.Edge2VF(diagonal)
	assert.True(t, ok, "shared edge is not deleted")
	assert.Equal(t, 3, table.EdgeCount())
	assert.Equal(t, 1, table.FaceCount())

	// Vertex 1 only belonged to face 0.
	vert, _ := table.Vert2EF(1)
	assert.Empty(t, vert.Faces)
	assert.Empty(t, vert.Edges)

	require.True(t, table.RemoveFace(1))
	_, ok = table.Edge2VF(diagonal)
	assert.False(t, ok, "edge is gone once its last face is removed")
	for _, v := range []int{0, 2} {
		vert, _ := table.Vert2EF(v)
		assert.NotContains(t, vert.Edges, diagonal)
		assert.Empty(t, vert.Faces)
	}
	assert.Equal(t, 0, table.EdgeCount())
	assert.Equal(t, 0, table.FaceCount())
	assert.Equal(t, -1, table.EdgeBetween(0, 2))
}

func TestRemoveFace_Twice(t *testing.T) {
	table, err := Build(tetrahedron(t), true)
	require.NoError(t, err)
	require.True(t, table.RemoveFace(2))
	before := takeSnapshot(table)
	assert.False(t, table.RemoveFace(2))
	assert.Equal(t, before, takeSnapshot(table))
	assert.False(t, table.RemoveFace(-1))
	assert.False(t, table.RemoveFace(4))
}

func TestRemoveFaces(t *testing.T) {
	t.Run("out of range changes nothing", func(t *testing.T) {
		table, err := Build(tetrahedron(t), true)
		require.NoError(t, err)
		before := takeSnapshot(table)
		assert.False(t, table.RemoveFaces([]int{0, 9}))
		assert.Equal(t, before, takeSnapshot(table))
	})

	t.Run("overlapping lists", func(t *testing.T) {
		table, err := Build(tetrahedron(t), true)
		require.NoError(t, err)
		assert.True(t, table.RemoveFaces([]int{0, 1, 0, 1}))
		assert.True(t, table.RemoveFaces([]int{1, 2}))
		assert.False(t, table.RemoveFaces([]int{0, 1, 2}))
		assert.Equal(t, 1, table.FaceCount())
		// Only face 3's edges remain, each with one face.
		assert.Equal(t, 3, table.EdgeCount())
		assert.Len(t, table.BoundaryEdges(), 3)
		for v := 0; v < 4; v++ {
			vert, _ := table.Vert2EF(v)
			for _, e := range vert.Edges {
				assert.Equal(t, 1, table.EdgeFaceCount(e))
			}
		}
	})
}

func TestWithoutVertTable(t *testing.T) {
	table, err := Build(squareMesh(t), false)
	require.NoError(t, err)
	assert.False(t, table.HasVertTable())
	assert.Equal(t, 0, table.VertCount())
	_, ok := table.Vert2EF(0)
	assert.False(t, ok)

	diagonal := table.EdgeBetween(0, 2)
	require.GreaterOrEqual(t, diagonal, 0)
	require.True(t, table.RemoveFace(0))
	assert.Equal(t, 1, table.EdgeFaceCount(diagonal))
	require.True(t, table.RemoveFace(1))
	assert.Equal(t, 0, table.EdgeCount())
}
