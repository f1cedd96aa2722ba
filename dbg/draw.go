package dbg

import (
	"io"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"

	"github.com/niflight/nigeom/geom"
)

// Padding around the drawing, in pixels.
const drawPadding = 40

// Mesh is the read side of a 2D triangle mesh.
type Mesh interface {
	PointCount() int
	Point(i int) geom.Point2D
	FaceCount() int
	Face(i int) geom.Face
}

// DrawMesh renders every face of mesh, filled, with its edges stroked on top.
// scale is pixels per unit.
func DrawMesh(mesh Mesh, scale float64) *gg.Context {
	bounds := geom.NewBBox2D()
	for i := 0; i < mesh.PointCount(); i++ {
		bounds.Add(mesh.Point(i))
	}
	c := newCanvas(bounds, scale)

	c.SetLineWidth(1)
	for f := 0; f < mesh.FaceCount(); f++ {
		face := mesh.Face(f)
		a, b, d := mesh.Point(face[0]), mesh.Point(face[1]), mesh.Point(face[2])
		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		c.LineTo(d.X, d.Y)
		c.ClosePath()
		c.SetRGB(0, 0.5, 0)
		c.FillPreserve()
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}
	return c
}

// DrawPolygon renders the outline of poly.
func DrawPolygon(poly *geom.Polygon2D, scale float64) *gg.Context {
	c := newCanvas(poly.BBox(), scale)
	points := poly.Points()
	if len(points) == 0 {
		return c
	}
	c.SetLineWidth(2)
	c.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
	c.SetRGB(1, 1, 0)
	c.Stroke()
	return c
}

func newCanvas(bounds geom.BBox2D, scale float64) *gg.Context {
	if !bounds.IsValid() {
		bounds = geom.BBoxOf(geom.P2(0, 0))
	}
	width := int(scale*bounds.Width()) + drawPadding*2
	height := int(scale*bounds.Height()) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-bounds.Min.X, -bounds.Min.Y)
	return c
}

// SavePNG writes the canvas to path.
func SavePNG(c *gg.Context, path string) error {
	return errors.Wrapf(c.SavePNG(path), "saving %s", path)
}

// Show prints the PNG at path inline to w. Only terminals that speak the
// iTerm image protocol will display it.
func Show(path string, w io.Writer) error {
	return errors.Wrapf(imgcat.CatFile(path, w), "showing %s", path)
}
