// Package config loads the YAML settings shared by the nitriangulate command
// and anything else driving the triangulator.
//
//	spatial:
//	  leaf_threshold: 16
//	triangulation:
//	  max_iterations: 0      # 0 picks a bound from the polygon size
//	  build_topology: true
//	  vert_table: true
//	debug:
//	  png: /tmp/mesh.png
//	  dxf: /tmp/mesh.dxf
//	  tree_dxf: /tmp/tree.dxf
//	  scale: 10
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/niflight/nigeom/spatial"
	"github.com/niflight/nigeom/triangulation"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Spatial       Spatial       `yaml:"spatial"`
	Triangulation Triangulation `yaml:"triangulation"`
	Debug         Debug         `yaml:"debug"`
}

type Spatial struct {
	LeafThreshold int `yaml:"leaf_threshold"`
}

type Triangulation struct {
	MaxIterations int  `yaml:"max_iterations"`
	BuildTopology bool `yaml:"build_topology"`
	VertTable     bool `yaml:"vert_table"`
}

// Debug names the optional outputs. Empty paths are skipped.
type Debug struct {
	PNG     string  `yaml:"png"`
	DXF     string  `yaml:"dxf"`
	TreeDXF string  `yaml:"tree_dxf"`
	Scale   float64 `yaml:"scale"`
}

func Default() *Config {
	return &Config{
		Spatial: Spatial{LeafThreshold: spatial.DefaultLeafThreshold},
		Debug:   Debug{Scale: 10},
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of the defaults. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Spatial.LeafThreshold < 1 {
		return errors.Wrapf(ErrInvalid, "spatial.leaf_threshold must be at least 1, got %d", c.Spatial.LeafThreshold)
	}
	if c.Triangulation.MaxIterations < 0 {
		return errors.Wrapf(ErrInvalid, "triangulation.max_iterations must not be negative, got %d", c.Triangulation.MaxIterations)
	}
	if c.Debug.Scale <= 0 {
		return errors.Wrapf(ErrInvalid, "debug.scale must be positive, got %g", c.Debug.Scale)
	}
	return nil
}

// TriangulationOptions converts the settings into triangulator options.
func (c *Config) TriangulationOptions() []triangulation.Option {
	opts := []triangulation.Option{
		triangulation.WithMaxIterations(c.Triangulation.MaxIterations),
		triangulation.WithLeafThreshold(c.Spatial.LeafThreshold),
	}
	if c.Triangulation.BuildTopology {
		opts = append(opts, triangulation.WithTopology(c.Triangulation.VertTable))
	}
	return opts
}
