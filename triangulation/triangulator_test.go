package triangulation

import (
	"bytes"
	"container/heap"
	"log"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niflight/nigeom/geom"
	"github.com/niflight/nigeom/internal/fixtures"
)

func TestProcess_UnitSquare(t *testing.T) {
	poly := geom.NewPolygon2D(geom.P2(0, 0), geom.P2(1, 0), geom.P2(1, 1), geom.P2(0, 1))
	mesh, err := Triangulate(poly)
	require.NoError(t, err)
	assert.Equal(t, 2, mesh.FaceCount())
	assert.InDelta(t, 1.0, mesh.Area(), 1e-9)
	AssertValidTriangulation(t, poly, mesh)
}

func TestProcess_SmallScale(t *testing.T) {
	for _, s := range []float64{1e-3, 1e-7, 1e-9} {
		square := geom.NewPolygon2D(geom.P2(0, 0), geom.P2(s, 0), geom.P2(s, s), geom.P2(0, s))
		mesh, err := Triangulate(square)
		require.NoError(t, err, "side %g", s)
		assert.InDelta(t, 1.0, mesh.Area()/(s*s), 1e-9, "side %g", s)
		AssertValidTriangulation(t, square, mesh)

		lShape := geom.NewPolygon2D(
			geom.P2(0, 0), geom.P2(2*s, 0), geom.P2(2*s, s),
			geom.P2(s, s), geom.P2(s, 2*s), geom.P2(0, 2*s),
		).Reverse()
		mesh, err = Triangulate(lShape)
		require.NoError(t, err, "side %g", s)
		assert.InDelta(t, 3.0, mesh.Area()/(s*s), 1e-9, "side %g", s)
		AssertValidTriangulation(t, lShape, mesh)
	}
}

func TestProcess_Triangle(t *testing.T) {
	poly := geom.NewPolygon2D(geom.P2(0, 0), geom.P2(0, 1), geom.P2(1, 0))
	mesh, err := Triangulate(poly)
	require.NoError(t, err)
	assert.Equal(t, []geom.Face{{0, 1, 2}}, mesh.Faces())
}

func TestProcess_Fixtures(t *testing.T) {
	shapes := map[string]*geom.Polygon2D{
		"star":    fixtures.Star(5, 5, 2),
		"spiral":  fixtures.Spiral(2.5, 24, 3),
		"regular": fixtures.RegularPolygon(50, 10),
	}
	for _, name := range fixtures.Names() {
		shapes[name] = fixtures.MustLoad(name)
	}

	for name, poly := range shapes {
		poly := poly
		t.Run(name, func(t *testing.T) {
			mesh, err := Triangulate(poly)
			require.NoError(t, err)
			AssertValidTriangulation(t, poly, mesh)
			validateTriangulationBySampling(t, poly, mesh)
		})

		t.Run(name+" clockwise", func(t *testing.T) {
			reversed := poly.Reverse()
			require.False(t, reversed.IsCCW())
			mesh, err := Triangulate(reversed)
			require.NoError(t, err)
			AssertValidTriangulation(t, reversed, mesh)
		})
	}
}

func TestProcess_RandomStarShaped(t *testing.T) {
	rng := rand.New(rand.NewSource(20240917))
	for i := 0; i < 50; i++ {
		n := 5 + rng.Intn(60)
		poly := fixtures.RandomStarShaped(rng, n)
		mesh, err := Triangulate(poly)
		require.NoError(t, err, "polygon %d: %v", i, poly.Points())
		AssertValidTriangulation(t, poly, mesh)
	}
}

func TestProcess_CollinearVertices(t *testing.T) {
	// A 2x1 rectangle with a midpoint on both long sides.
	poly := geom.NewPolygon2D(
		geom.P2(0, 0), geom.P2(1, 0), geom.P2(2, 0),
		geom.P2(2, 1), geom.P2(1, 1), geom.P2(0, 1),
	)
	mesh, err := Triangulate(poly)
	require.NoError(t, err)
	AssertValidTriangulation(t, poly, mesh)
	validateTriangulationBySampling(t, poly, mesh)

	// Many points along one side of a triangle.
	var points []geom.Point2D
	for i := 0; i <= 10; i++ {
		points = append(points, geom.P2(float64(i), 0))
	}
	points = append(points, geom.P2(5, 3))
	fan := geom.NewPolygon2D(points...)
	mesh, err = Triangulate(fan)
	require.NoError(t, err)
	AssertValidTriangulation(t, fan, mesh)
}

func TestProcess_SmallestAngleFirst(t *testing.T) {
	// The sharp tip at index 1 is the smallest angle, so the first face is
	// cut there.
	poly := geom.NewPolygon2D(geom.P2(0, 0), geom.P2(10, 0.5), geom.P2(0, 1), geom.P2(-1, 0.5))
	mesh, err := Triangulate(poly)
	require.NoError(t, err)
	assert.Equal(t, geom.Face{1, 2, 0}, mesh.Face(0))
}

func TestProcess_Errors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		_, err := Triangulate(nil)
		assert.True(t, errors.Is(err, ErrInvalidPolygon))
		_, err = Triangulate(geom.NewPolygon2D(geom.P2(0, 0), geom.P2(1, 0)))
		assert.True(t, errors.Is(err, ErrInvalidPolygon))
	})

	t.Run("degenerate", func(t *testing.T) {
		_, err := Triangulate(geom.NewPolygon2D(geom.P2(0, 0), geom.P2(1, 1), geom.P2(2, 2)))
		assert.True(t, errors.Is(err, ErrDegeneratePolygon))
		_, err = Triangulate(geom.NewPolygon2D(geom.P2(0, 0), geom.P2(2, 0), geom.P2(1, 0), geom.P2(3, 0)))
		assert.True(t, errors.Is(err, ErrDegeneratePolygon))
		bowtie := geom.NewPolygon2D(geom.P2(0, 0), geom.P2(2, 2), geom.P2(2, 0), geom.P2(0, 2))
		_, err = Triangulate(bowtie)
		assert.True(t, errors.Is(err, ErrDegeneratePolygon))
	})

	t.Run("non-finite", func(t *testing.T) {
		for _, bad := range []float64{math.NaN(), math.Inf(1)} {
			_, err := Triangulate(geom.NewPolygon2D(geom.P2(0, 0), geom.P2(1, 0), geom.P2(bad, 1), geom.P2(0, 1)))
			assert.True(t, errors.Is(err, ErrInvalidPolygon), "%v", bad)
		}
	})

	t.Run("overflowing area", func(t *testing.T) {
		big := 1e160
		_, err := Triangulate(geom.NewPolygon2D(geom.P2(0, 0), geom.P2(big, 0), geom.P2(big, big), geom.P2(0, big)))
		assert.True(t, errors.Is(err, ErrInvalidPolygon))
		assert.False(t, errors.Is(err, ErrDegeneratePolygon))
	})

	t.Run("large coordinates", func(t *testing.T) {
		big := 1e150
		mesh, err := Triangulate(geom.NewPolygon2D(geom.P2(0, 0), geom.P2(big, 0), geom.P2(big, big), geom.P2(0, big)))
		require.NoError(t, err)
		assert.Equal(t, 2, mesh.FaceCount())
	})

	t.Run("iteration cap", func(t *testing.T) {
		_, err := New(WithMaxIterations(1)).Process(fixtures.MustLoad("comb"))
		assert.True(t, errors.Is(err, ErrNotConverged))
		assert.Contains(t, err.Error(), "vertices left")
	})
}

func TestProcess_Topology(t *testing.T) {
	poly := fixtures.MustLoad("l_shape")
	result, err := New(WithTopology(true), WithLeafThreshold(1)).Process(poly)
	require.NoError(t, err)
	require.NotNil(t, result.Topology)
	require.NotNil(t, result.Index)

	n := poly.Len()
	assert.Equal(t, n-2, result.Topology.FaceCount())
	assert.True(t, result.Topology.HasVertTable())
	assert.Len(t, result.Topology.BoundaryEdges(), n)
	// A triangulated disc has n + (n-3) edges: the boundary plus the diagonals.
	assert.Equal(t, 2*n-3, result.Topology.EdgeCount())

	for f := 0; f < result.Mesh.FaceCount(); f++ {
		centroid := result.Mesh.Triangle(f).Centroid()
		var ids []int
		for _, ref := range result.Index.GeomsAtPoint(centroid) {
			ids = append(ids, ref.ID)
		}
		assert.Contains(t, ids, f)
	}

	plain, err := New().Process(poly)
	require.NoError(t, err)
	assert.Nil(t, plain.Topology)
	assert.Nil(t, plain.Index)
}

func TestProcess_Logger(t *testing.T) {
	var buf bytes.Buffer
	_, err := New(WithLogger(log.New(&buf, "", 0))).Process(fixtures.MustLoad("notch"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "triangulated 8 points into 6 triangles")
}

func TestProcess_Deterministic(t *testing.T) {
	poly := fixtures.Spiral(2, 20, 2)
	a, err := Triangulate(poly)
	require.NoError(t, err)
	b, err := Triangulate(poly)
	require.NoError(t, err)
	assert.Equal(t, a.Faces(), b.Faces())
}

func TestProcess_Concurrent(t *testing.T) {
	tr := New()
	names := fixtures.Names()
	var wg sync.WaitGroup
	errs := make([]error, len(names))
	for i, name := range names {
		wg.Add(1)
		go func(i int, poly *geom.Polygon2D) {
			defer wg.Done()
			_, errs[i] = tr.Process(poly)
		}(i, fixtures.MustLoad(name))
	}
	wg.Wait()
	for i, err := range errs {
		assert.NoError(t, err, names[i])
	}
}

func TestInteriorAngle(t *testing.T) {
	points := fixtures.MustLoad("l_shape").Points()
	for _, sign := range []float64{1, -1} {
		ring := points
		if sign < 0 {
			ring = geom.NewPolygon2D(points...).Reverse().Points()
		}
		c, err := newClipper(ring, sign, log.New(&bytes.Buffer{}, "", 0))
		require.NoError(t, err)
		reflex := 0
		for i := range ring {
			angle := c.verts[i].angle
			if ring[i].Equal(geom.P2(10, 10)) {
				assert.InDelta(t, 3*math.Pi/2, angle, 1e-12)
				reflex++
			} else {
				assert.InDelta(t, math.Pi/2, angle, 1e-12)
			}
		}
		assert.Equal(t, 1, reflex)
	}
}

func TestVertexQueue(t *testing.T) {
	verts := []vertex{{angle: 2}, {angle: 1}, {angle: 1}, {angle: 3}}
	q := &vertexQueue{verts: verts}
	for i := range verts {
		heap.Push(q, i)
	}

	// Raising vertex 1 past vertex 0 must reorder the heap in place.
	verts[1].angle = 2.5
	heap.Fix(q, verts[1].heapIndex)

	var order []int
	for q.Len() > 0 {
		order = append(order, heap.Pop(q).(int))
	}
	assert.Equal(t, []int{2, 0, 1, 3}, order)
	for i := range verts {
		assert.Equal(t, -1, verts[i].heapIndex)
	}
}

func TestVertexQueue_TiesBreakOnIndex(t *testing.T) {
	verts := make([]vertex, 5)
	q := &vertexQueue{verts: verts}
	for _, i := range []int{3, 1, 4, 0, 2} {
		heap.Push(q, i)
	}
	var order []int
	for q.Len() > 0 {
		order = append(order, heap.Pop(q).(int))
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
