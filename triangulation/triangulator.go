// Package triangulation splits simple polygons into triangles by ear
// clipping.
//
// Ears are clipped smallest interior angle first, which keeps the output free
// of needle triangles where the polygon allows it. Every output triangle uses
// only the polygon's own vertices and keeps the polygon's winding.
package triangulation

import (
	"log"
	"math"

	"github.com/pkg/errors"

	"github.com/niflight/nigeom/geom"
	"github.com/niflight/nigeom/internal"
	"github.com/niflight/nigeom/spatial"
	"github.com/niflight/nigeom/topology"
)

var (
	ErrInvalidPolygon    = errors.New("triangulation: polygon is not valid")
	ErrDegeneratePolygon = errors.New("triangulation: polygon has no area")
	ErrNotConverged      = errors.New("triangulation: no ear left to clip")
)

// Triangulator holds the options for triangulating polygons. It keeps no
// state between calls, so one Triangulator may be shared by goroutines.
type Triangulator struct {
	logger        *log.Logger
	maxIterations int
	topology      bool
	vertTable     bool
	leafThreshold int
}

func New(opts ...Option) *Triangulator {
	t := defaultTriangulator()
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result is the output of Process. Topology and Index are only set when the
// triangulator was built WithTopology.
type Result struct {
	// Mesh has the polygon's points, in polygon order, and n-2 faces.
	Mesh *geom.TriangleMesh2D
	// Topology holds the mesh's adjacency tables.
	Topology *topology.Table
	// Index is a BVH over the faces; each ref's ID is its face index.
	Index *spatial.BVHTree
}

// Triangulate triangulates poly with default options.
func Triangulate(poly *geom.Polygon2D) (*geom.TriangleMesh2D, error) {
	result, err := New().Process(poly)
	if err != nil {
		return nil, err
	}
	return result.Mesh, nil
}

// Process triangulates a simple polygon of either winding.
func (t *Triangulator) Process(poly *geom.Polygon2D) (result *Result, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	if poly == nil || !poly.IsValid() {
		return nil, ErrInvalidPolygon
	}
	area := poly.SignedArea()
	if math.IsInf(area, 0) || math.IsNaN(area) {
		return nil, errors.Wrap(ErrInvalidPolygon, "coordinates too large, area overflows")
	}
	// Area is measured against the squared half perimeter of the bounds, one
	// factor at a time so large coordinates do not overflow.
	hp := poly.BBox().HalfPerimeter()
	if hp == 0 || geom.IsZero(math.Abs(area)/hp/hp) {
		return nil, errors.Wrapf(ErrDegeneratePolygon, "area %g", area)
	}

	points := poly.Points()
	var faces []geom.Face
	if len(points) == 3 {
		faces = []geom.Face{{0, 1, 2}}
	} else {
		c, err := newClipper(points, sign(area), t.logger)
		if err != nil {
			return nil, err
		}
		faces, err = c.run(t.iterationCap(len(points)))
		if err != nil {
			return nil, err
		}
	}

	mesh := geom.NewTriangleMesh2D()
	mesh.SetPoints(points)
	if !mesh.SetFaces(faces) {
		internal.Fatalf("ear clipping produced invalid faces for %d points", len(points))
	}
	t.logger.Printf("triangulated %d points into %d triangles", len(points), len(faces))

	result = &Result{Mesh: mesh}
	if t.topology {
		if err := t.attachTopology(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (t *Triangulator) iterationCap(n int) int {
	if t.maxIterations > 0 {
		return t.maxIterations
	}
	// Each clip is followed by at most n pops before the next clip or a
	// stall, and there are n-3 clips.
	return n*n + n
}

func (t *Triangulator) attachTopology(result *Result) error {
	table, err := topology.Build(result.Mesh, t.vertTable)
	if err != nil {
		return errors.Wrap(err, "building topology")
	}
	refs := make([]spatial.RefGeom, result.Mesh.FaceCount())
	for i := range refs {
		refs[i] = spatial.RefGeom{Geom: result.Mesh.Triangle(i), ID: i}
	}
	index, err := spatial.BuildBVHTree(refs, t.leafThreshold)
	if err != nil {
		return errors.Wrap(err, "indexing triangles")
	}
	result.Topology = table
	result.Index = index
	return nil
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
