// Package nigeom triangulates simple polygons, such as survey areas, into
// triangle meshes that use only the polygon's own points.
//
// This package is the short path. The geom, triangulation, topology and
// spatial packages expose the primitives, the triangulator's options, mesh
// adjacency and spatial indices respectively.
package nigeom

import (
	"github.com/niflight/nigeom/geom"
	"github.com/niflight/nigeom/internal"
	"github.com/niflight/nigeom/triangulation"
)

type Point = geom.Point2D
type Polygon = geom.Polygon2D
type Mesh = geom.TriangleMesh2D

// Triangulate converts the ring of points into triangles.
//
// The ring must describe a simple polygon. It may wind either way and may
// repeat its first point at the end. The resulting mesh uses the points in the
// given order, minus any consecutive duplicates, and every triangle winds like
// the ring.
func Triangulate(points ...Point) (result *Mesh, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return triangulation.Triangulate(geom.NewPolygon2D(points...))
}
