// Package fixtures provides test polygons: hand-drawn SVG shapes embedded in
// the binary, and generators for stars, spirals and random star-shaped
// polygons.
//
// SVG fixtures are available by file name under svg/, sans extension. Every
// fixture is returned counterclockwise.
package fixtures

import (
	"embed"
	"math"
	"math/rand"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/niflight/nigeom/geom"
	"github.com/niflight/nigeom/polyio"
)

//go:embed svg
var files embed.FS

// Names lists the SVG fixtures.
func Names() []string {
	entries, err := files.ReadDir("svg")
	if err != nil {
		panic(err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

// Load returns the single polygon of the named SVG fixture.
func Load(name string) (*geom.Polygon2D, error) {
	f, err := files.Open("svg/" + name + ".svg")
	if err != nil {
		return nil, errors.Wrapf(err, "could not load fixture %q", name)
	}
	defer f.Close()

	polygons, err := polyio.ReadSVG(f)
	if err != nil {
		return nil, errors.Wrapf(err, "fixture %q", name)
	}
	if len(polygons) != 1 {
		return nil, errors.Errorf("fixture %q has %d polygons, want 1", name, len(polygons))
	}
	return ccw(polygons[0]), nil
}

// MustLoad is Load for tests; it panics on error.
func MustLoad(name string) *geom.Polygon2D {
	poly, err := Load(name)
	if err != nil {
		panic(err)
	}
	return poly
}

func ccw(poly *geom.Polygon2D) *geom.Polygon2D {
	if poly.IsCCW() {
		return poly
	}
	return poly.Reverse()
}

// Star alternates between the outer and inner radius, starting on the +X axis.
func Star(points int, outer, inner float64) *geom.Polygon2D {
	var ring []geom.Point2D
	for i := 0; i < 2*points; i++ {
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		angle := math.Pi * float64(i) / float64(points)
		ring = append(ring, geom.P2(radius*math.Cos(angle), radius*math.Sin(angle)))
	}
	return geom.NewPolygon2D(ring...)
}

// RegularPolygon has n corners on a circle of radius r.
func RegularPolygon(n int, r float64) *geom.Polygon2D {
	var ring []geom.Point2D
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, geom.P2(r*math.Cos(angle), r*math.Sin(angle)))
	}
	return geom.NewPolygon2D(ring...)
}

// Spiral is a band of the given width following an Archimedean spiral for
// the given number of turns, sampled steps times per turn. The band stays
// simple while width is less than 2*pi, the distance between windings.
func Spiral(turns float64, steps int, width float64) *geom.Polygon2D {
	n := int(turns * float64(steps))
	var outer, inner []geom.Point2D
	for i := 0; i <= n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		r := 1 + angle
		outer = append(outer, geom.P2((r+width)*math.Cos(angle), (r+width)*math.Sin(angle)))
		inner = append(inner, geom.P2(r*math.Cos(angle), r*math.Sin(angle)))
	}
	ring := outer
	for i := len(inner) - 1; i >= 0; i-- {
		ring = append(ring, inner[i])
	}
	return ccw(geom.NewPolygon2D(ring...))
}

// RandomStarShaped returns a simple polygon with n vertices, all visible from
// the origin: angles increase strictly around the circle and radii vary in
// [0.2, 1].
func RandomStarShaped(rng *rand.Rand, n int) *geom.Polygon2D {
	step := 2 * math.Pi / float64(n)
	ring := make([]geom.Point2D, n)
	for i := range ring {
		angle := step * (float64(i) + 0.8*rng.Float64())
		radius := 0.2 + 0.8*rng.Float64()
		ring[i] = geom.P2(radius*math.Cos(angle), radius*math.Sin(angle))
	}
	return geom.NewPolygon2D(ring...)
}
