package triangulation

import (
	"io"
	"log"

	"github.com/niflight/nigeom/spatial"
)

// Option configures a Triangulator.
type Option func(*Triangulator)

// WithLogger traces ear rejections, stalls and completion. The default logger
// discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(t *Triangulator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMaxIterations caps the number of candidate vertices examined. Zero or a
// negative value restores the automatic cap, which is large enough for every
// simple polygon.
func WithMaxIterations(n int) Option {
	return func(t *Triangulator) {
		t.maxIterations = n
	}
}

// WithTopology makes Process also return adjacency tables and a BVH over the
// emitted triangles. buildVertTable keeps the per-vertex table as well.
func WithTopology(buildVertTable bool) Option {
	return func(t *Triangulator) {
		t.topology = true
		t.vertTable = buildVertTable
	}
}

// WithLeafThreshold sets the leaf size of the BVH built over the emitted
// triangles.
func WithLeafThreshold(n int) Option {
	return func(t *Triangulator) {
		t.leafThreshold = n
	}
}

func defaultTriangulator() *Triangulator {
	return &Triangulator{
		logger:        log.New(io.Discard, "", 0),
		leafThreshold: spatial.DefaultLeafThreshold,
	}
}
