package dbg

import (
	"github.com/pkg/errors"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/niflight/nigeom/geom"
)

// Layer is one named, colored DXF layer of boxes and segments.
type Layer struct {
	Name     string
	Color    color.ColorNumber
	Boxes    []geom.BBox2D
	Segments []geom.Line2D
}

var layerColors = []color.ColorNumber{
	color.Red, color.Yellow, color.Green, color.Cyan, color.Blue, color.Magenta, color.White,
}

// LayerColor cycles through the basic DXF colors, so consecutive layers are
// easy to tell apart.
func LayerColor(i int) color.ColorNumber {
	return layerColors[geom.CircularIndex(i, len(layerColors))]
}

// MeshLayer draws every edge of mesh. Shared edges are drawn twice.
func MeshLayer(name string, mesh Mesh) Layer {
	layer := Layer{Name: name, Color: color.Cyan}
	for f := 0; f < mesh.FaceCount(); f++ {
		face := mesh.Face(f)
		for i := 0; i < 3; i++ {
			layer.Segments = append(layer.Segments, geom.Line2D{
				A: mesh.Point(face[i]),
				B: mesh.Point(face[(i+1)%3]),
			})
		}
	}
	return layer
}

// BoxLayer draws the outline of every box.
func BoxLayer(name string, c color.ColorNumber, boxes []geom.BBox2D) Layer {
	return Layer{Name: name, Color: c, Boxes: boxes}
}

// WriteDXF writes layers to a new drawing at path. Layer names must be unique.
func WriteDXF(path string, layers ...Layer) error {
	d := dxf.NewDrawing()
	for _, layer := range layers {
		if _, err := d.AddLayer(layer.Name, layer.Color, dxf.DefaultLineType, true); err != nil {
			return errors.Wrapf(err, "adding layer %q", layer.Name)
		}
		for _, box := range layer.Boxes {
			if !box.IsValid() {
				continue
			}
			corners := box.Corners()
			for i := range corners {
				if err := line(d, corners[i], corners[(i+1)%4]); err != nil {
					return err
				}
			}
		}
		for _, seg := range layer.Segments {
			if err := line(d, seg.A, seg.B); err != nil {
				return err
			}
		}
	}
	return errors.Wrapf(d.SaveAs(path), "saving %s", path)
}

func line(d *drawing.Drawing, a, b geom.Point2D) error {
	_, err := d.Line(a.X, a.Y, 0, b.X, b.Y, 0)
	return errors.Wrap(err, "adding line")
}
