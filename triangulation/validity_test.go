package triangulation

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niflight/nigeom/geom"
)

// Helper to check that a triangulation is valid. The rules are:
// 1. The mesh uses exactly the polygon's points, in polygon order.
// 2. There are n-2 faces.
// 3. Every face has non-zero area and winds the same way as the polygon.
// 4. Every polygon edge is an edge of some face.
// 5. The sum of the areas of all faces is equal to the area of the polygon.
func AssertValidTriangulation(t *testing.T, poly *geom.Polygon2D, mesh *geom.TriangleMesh2D) {
	t.Helper()
	require.True(t, mesh.IsValid(), "mesh is not valid")
	require.Equal(t, poly.Points(), mesh.Points(), "mesh must reuse the polygon's points")
	n := poly.Len()
	require.Equal(t, n-2, mesh.FaceCount(), "a polygon with %d points has %d triangles", n, n-2)

	polyCCW := poly.IsCCW()
	segments := map[[2]int]bool{}
	var area float64
	for f := 0; f < mesh.FaceCount(); f++ {
		tri := mesh.Triangle(f)
		require.True(t, tri.IsValid(), "degenerate face %d: %v", f, tri)
		require.Equal(t, polyCCW, tri.IsCCW(), "face %d winds against the polygon: %v", f, tri)
		area += tri.Area()

		face := mesh.Face(f)
		for i := 0; i < 3; i++ {
			segments[normalizedSegment(face[i], face[(i+1)%3])] = true
		}
	}

	for i := 0; i < n; i++ {
		require.True(t, segments[normalizedSegment(i, (i+1)%n)], "polygon edge %d-%d is not an edge of any face", i, (i+1)%n)
	}

	require.InDelta(t, poly.Area(), area, 1e-9*math.Max(1, poly.Area()), "face areas must sum to the polygon's area")
}

func normalizedSegment(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// Samples a grid over the polygon's bounds. Every sample strictly inside the
// polygon must be covered by a face, no sample may be strictly inside two
// faces, and no sample outside the polygon may be covered.
func validateTriangulationBySampling(t *testing.T, poly *geom.Polygon2D, mesh *geom.TriangleMesh2D) {
	t.Helper()
	bounds := poly.BBox()
	// Pad the bounding box by 10%
	bounds = bounds.Expand(0.1 * math.Max(bounds.Width(), bounds.Height()))
	step := math.Max(bounds.Width(), bounds.Height()) / 60
	// Start off the grid so samples rarely land exactly on an edge.
	offset := step / math.Pi

	for y := bounds.Min.Y + offset; y <= bounds.Max.Y; y += step {
		for x := bounds.Min.X + offset; x <= bounds.Max.X; x += step {
			p := geom.P2(x, y)
			inside, covering := 0, 0
			for f := 0; f < mesh.FaceCount(); f++ {
				switch mesh.Triangle(f).Classify(p) {
				case geom.Inside:
					inside++
					covering++
				case geom.OnEdge, geom.OnVertex:
					covering++
				}
			}

			assert.LessOrEqual(t, inside, 1, "point %v is inside %d faces", p, inside)
			switch poly.Classify(p) {
			case geom.Inside:
				assert.Positive(t, covering, "point %v inside the polygon is not covered", p)
			case geom.Outside:
				assert.Zero(t, covering, "point %v outside the polygon is covered", p)
			}
		}
	}
}
