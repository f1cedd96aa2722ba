// Command nitriangulate triangulates survey polygons.
//
// Input is an SVG document (every <polygon> element) or plain text with one
// "x y" pair per line and a blank line between polygons, read from FILE or
// stdin. Polygons must be simple; they may wind either way.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/niflight/nigeom/config"
	"github.com/niflight/nigeom/dbg"
	"github.com/niflight/nigeom/geom"
	"github.com/niflight/nigeom/polyio"
	"github.com/niflight/nigeom/spatial"
	"github.com/niflight/nigeom/triangulation"
)

type options struct {
	configPath string
	format     string
	png        string
	show       bool
	dxf        string
	treeDXF    string
	topology   bool
	verbose    bool
	input      string
}

func main() {
	var opts options
	app := kingpin.New("nitriangulate", "Triangulate survey polygons.")
	app.Flag("config", "YAML configuration file.").Short('c').ExistingFileVar(&opts.configPath)
	app.Flag("format", "Input format.").Default("auto").EnumVar(&opts.format, "auto", "svg", "text")
	app.Flag("png", "Write a PNG of each mesh.").StringVar(&opts.png)
	app.Flag("show", "Print the PNG inline (iTerm only).").BoolVar(&opts.show)
	app.Flag("dxf", "Write a DXF of each mesh.").StringVar(&opts.dxf)
	app.Flag("tree-dxf", "Write a DXF of the BVH over each mesh's triangles.").StringVar(&opts.treeDXF)
	app.Flag("topology", "Build and report mesh topology.").BoolVar(&opts.topology)
	app.Flag("verbose", "Trace the triangulator on stderr.").Short('v').BoolVar(&opts.verbose)
	app.Arg("file", "Input file. Defaults to stdin.").StringVar(&opts.input)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := log.New(os.Stderr, "nitriangulate: ", 0)
	if err := run(opts, os.Stdin, os.Stdout, logger); err != nil {
		logger.Print(err)
		os.Exit(1)
	}
}

func run(opts options, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	applyFlags(cfg, opts)

	polygons, err := readPolygons(opts, stdin)
	if err != nil {
		return err
	}

	triOpts := cfg.TriangulationOptions()
	if opts.verbose {
		triOpts = append(triOpts, triangulation.WithLogger(logger))
	}
	triangulator := triangulation.New(triOpts...)

	for i, poly := range polygons {
		result, err := triangulator.Process(poly)
		if err != nil {
			return errors.Wrapf(err, "could not triangulate this survey area (polygon %d)", i)
		}
		report(stdout, i, poly, result)
		if err := writeDebug(cfg, opts, stdout, i, len(polygons), result); err != nil {
			return err
		}
	}
	return nil
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.png != "" {
		cfg.Debug.PNG = opts.png
	}
	if opts.dxf != "" {
		cfg.Debug.DXF = opts.dxf
	}
	if opts.treeDXF != "" {
		cfg.Debug.TreeDXF = opts.treeDXF
	}
	if opts.topology {
		cfg.Triangulation.BuildTopology = true
		cfg.Triangulation.VertTable = true
	}
}

func readPolygons(opts options, stdin io.Reader) ([]*geom.Polygon2D, error) {
	in := stdin
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}

	format := opts.format
	if format == "auto" || format == "" {
		format = "text"
		if strings.HasPrefix(strings.TrimSpace(string(data)), "<") {
			format = "svg"
		}
	}
	if format == "svg" {
		return polyio.ReadSVG(bytes.NewReader(data))
	}
	return polyio.ReadText(bytes.NewReader(data))
}

func report(w io.Writer, i int, poly *geom.Polygon2D, result *triangulation.Result) {
	fmt.Fprintf(w, "%s %d: %d points, %d triangles, area %.6g\n",
		aurora.Bold("polygon"), i, poly.Len(), aurora.Green(result.Mesh.FaceCount()), result.Mesh.Area())
	if result.Topology != nil {
		fmt.Fprintf(w, "  topology: %d edges, %d on the boundary\n",
			result.Topology.EdgeCount(), len(result.Topology.BoundaryEdges()))
	}
}

func writeDebug(cfg *config.Config, opts options, stdout io.Writer, i, n int, result *triangulation.Result) error {
	mesh := result.Mesh

	pngPath := outputPath(cfg.Debug.PNG, i, n)
	if pngPath == "" && opts.show {
		pngPath = filepath.Join(os.TempDir(), fmt.Sprintf("nitriangulate-%d.png", i))
	}
	if pngPath != "" {
		if err := dbg.SavePNG(dbg.DrawMesh(mesh, cfg.Debug.Scale), pngPath); err != nil {
			return err
		}
		if opts.show {
			if err := dbg.Show(pngPath, stdout); err != nil {
				return err
			}
		}
	}

	if path := outputPath(cfg.Debug.DXF, i, n); path != "" {
		if err := dbg.WriteDXF(path, dbg.MeshLayer("mesh", mesh)); err != nil {
			return err
		}
	}

	if path := outputPath(cfg.Debug.TreeDXF, i, n); path != "" {
		index := result.Index
		if index == nil {
			refs := make([]spatial.RefGeom, mesh.FaceCount())
			for f := range refs {
				refs[f] = spatial.RefGeom{Geom: mesh.Triangle(f), ID: f}
			}
			var err error
			if index, err = spatial.BuildBVHTree(refs, cfg.Spatial.LeafThreshold); err != nil {
				return errors.Wrap(err, "indexing triangles")
			}
		}
		if err := spatial.DumpDXF(path, index); err != nil {
			return err
		}
	}
	return nil
}

// outputPath numbers the file when there is more than one polygon:
// mesh.png becomes mesh-0.png, mesh-1.png and so on.
func outputPath(path string, i, n int) string {
	if path == "" || n == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}
