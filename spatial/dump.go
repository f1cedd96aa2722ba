package spatial

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/niflight/nigeom/dbg"
	"github.com/niflight/nigeom/geom"
)

// Cell is one node of a tree as seen by debug output: its box (the region for
// KD and BSP trees, the bounding volume for BVH trees), its depth, and how
// many references it holds directly.
type Cell struct {
	Box   geom.BBox2D
	Depth int
	Leaf  bool
	Count int
	node  interface{}
}

// Partition is any tree that can list its cells.
type Partition interface {
	Cells() []Cell
}

// DumpDXF writes one DXF layer per tree depth, each holding the outlines of
// that depth's cells.
func DumpDXF(path string, p Partition) error {
	var byDepth [][]geom.BBox2D
	for _, cell := range p.Cells() {
		for len(byDepth) <= cell.Depth {
			byDepth = append(byDepth, nil)
		}
		byDepth[cell.Depth] = append(byDepth[cell.Depth], cell.Box)
	}
	layers := make([]dbg.Layer, len(byDepth))
	for depth, boxes := range byDepth {
		layers[depth] = dbg.BoxLayer(fmt.Sprintf("depth-%d", depth), dbg.LayerColor(depth), boxes)
	}
	return dbg.WriteDXF(path, layers...)
}

func formatCells(title string, cells []Cell) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d nodes)\n", title, len(cells))
	for _, cell := range cells {
		b.WriteString(strings.Repeat("  ", cell.Depth))
		name := dbg.Name(cell.node)
		if cell.Leaf {
			fmt.Fprintf(&b, "%s %v refs=%d\n", aurora.Green(name), cell.Box, cell.Count)
		} else {
			fmt.Fprintf(&b, "%s %v\n", aurora.Cyan(name), cell.Box)
		}
	}
	return b.String()
}
