package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niflight/nigeom/triangulation"
)

const square = `0 0
4 0
4 4
0 4
`

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRun_Text(t *testing.T) {
	var out bytes.Buffer
	err := run(options{format: "auto", topology: true}, strings.NewReader(square), &out, quietLogger())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "4 points")
	assert.Contains(t, out.String(), "area 16")
	assert.Contains(t, out.String(), "topology: 5 edges, 4 on the boundary")
}

func TestRun_SVGFileWithOutputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "area.svg")
	require.NoError(t, os.WriteFile(input, []byte(`<svg>
  <polygon points="0,0 20,0 20,10 10,10 10,20 0,20" />
  <polygon points="30,0 40,0 35,5" />
</svg>`), 0o644))

	opts := options{
		format:  "auto",
		input:   input,
		png:     filepath.Join(dir, "mesh.png"),
		dxf:     filepath.Join(dir, "mesh.dxf"),
		treeDXF: filepath.Join(dir, "tree.dxf"),
	}
	var out bytes.Buffer
	require.NoError(t, run(opts, nil, &out, quietLogger()))
	assert.Equal(t, 2, strings.Count(out.String(), "polygon"))

	for _, name := range []string{"mesh-0.png", "mesh-1.png", "mesh-0.dxf", "mesh-1.dxf", "tree-0.dxf", "tree-1.dxf"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nigeom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("triangulation:\n  build_topology: true\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(options{configPath: cfgPath, format: "text"}, strings.NewReader(square), &out, quietLogger()))
	assert.Contains(t, out.String(), "topology:")
}

func TestRun_Failure(t *testing.T) {
	err := run(options{format: "text"}, strings.NewReader("0 0\n1 1\n2 2\n"), &bytes.Buffer{}, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not triangulate this survey area")
	assert.True(t, errors.Is(err, triangulation.ErrDegeneratePolygon))

	err = run(options{format: "svg"}, strings.NewReader(square), &bytes.Buffer{}, quietLogger())
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "", outputPath("", 0, 3))
	assert.Equal(t, "out.png", outputPath("out.png", 0, 1))
	assert.Equal(t, "/tmp/out-2.png", outputPath("/tmp/out.png", 2, 3))
}
