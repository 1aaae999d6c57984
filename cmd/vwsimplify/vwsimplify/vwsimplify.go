// Package vwsimplify provides the functionality for the
// vwsimplify binary as a library.
package vwsimplify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/coolbutuseless/visvalingam/paths"
	"github.com/sirupsen/logrus"
)

// Config holds the settings for one conversion. It can be
// read from a TOML file with ReadConfigFile.
type Config struct {
	In  string // input file; .svg, .geojson, .json or text
	Out string // output file, format chosen like In

	// Exactly one of Keep, Ratio and MinArea selects how many
	// points of each path are retained. They're ignored when
	// Areas is set.
	Keep    int
	Ratio   float64
	MinArea float64

	// Areas writes every input point with its effective area
	// instead of simplifying. The output is always text.
	Areas bool

	// SVGDrawing parses SVG input with the drawing instruction
	// parser, which understands more path commands.
	SVGDrawing bool

	// Size, if non-zero, rescales the paths to fit this width and
	// height before writing them. A zero component is derived from
	// the other one, keeping the aspect ratio.
	Size paths.Vec2
}

// ReadConfigFile reads a TOML configuration from the given file.
func ReadConfigFile(name string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(name, cfg); err != nil {
		return nil, fmt.Errorf("problem reading configuration file %s: %w", name, err)
	}
	return cfg, nil
}

type format int

const (
	formatText format = iota
	formatSVG
	formatGeoJSON
)

func formatOf(name string) format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".svg":
		return formatSVG
	case ".geojson", ".json":
		return formatGeoJSON
	}
	return formatText
}

func readPaths(name string, drawing bool) (*paths.Paths, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch formatOf(name) {
	case formatSVG:
		if drawing {
			return paths.FromSVGDrawing(f)
		}
		return paths.FromSVG(f)
	case formatGeoJSON:
		return paths.FromGeoJSON(f)
	}
	return paths.FromText(f)
}

func writePaths(w io.Writer, name string, ps *paths.Paths) error {
	switch formatOf(name) {
	case formatSVG:
		return ps.SVG(w)
	case formatGeoJSON:
		return ps.GeoJSON(w)
	}
	return ps.Text(w, nil)
}

// fitBounds returns the bounds of size sz at the origin of b,
// deriving a missing dimension from b's aspect ratio.
func fitBounds(sz paths.Vec2, b paths.Bounds) (paths.Bounds, error) {
	ow := b.Max[0] - b.Min[0]
	oh := b.Max[1] - b.Min[1]
	if sz[0] < 0 || sz[1] < 0 {
		return paths.Bounds{}, fmt.Errorf("size %g,%g doesn't make sense", sz[0], sz[1])
	}
	if sz[1] == 0 {
		if ow == 0 {
			return paths.Bounds{}, fmt.Errorf("can't derive height from zero-width image")
		}
		sz[1] = sz[0] * oh / ow
	} else if sz[0] == 0 {
		if oh == 0 {
			return paths.Bounds{}, fmt.Errorf("can't derive width from zero-height image")
		}
		sz[0] = sz[1] * ow / oh
	}
	return paths.Bounds{Min: b.Min, Max: paths.Vec2{b.Min[0] + sz[0], b.Min[1] + sz[1]}}, nil
}

// Convert reads cfg.In, simplifies it (or ranks its points) and
// writes the result to cfg.Out.
func Convert(cfg *Config) error {
	if cfg.In == "" {
		return fmt.Errorf("input file must be specified")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output file must be specified")
	}

	ps, err := readPaths(cfg.In, cfg.SVGDrawing)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.In, err)
	}
	logrus.Infof("read %d paths with %d points from %s", len(ps.P), ps.NumPoints(), cfg.In)

	var areas [][]float64
	if cfg.Areas {
		if areas, err = ps.EffectiveAreas(); err != nil {
			return err
		}
	} else {
		if err := ps.Simplify(&paths.SimplifyConfig{
			Keep:    cfg.Keep,
			Ratio:   cfg.Ratio,
			MinArea: cfg.MinArea,
		}); err != nil {
			return err
		}
	}

	if cfg.Size != (paths.Vec2{}) {
		nb, err := fitBounds(cfg.Size, ps.Bounds)
		if err != nil {
			return err
		}
		ps.Transform(nb)
	}

	out, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if areas != nil {
		err = ps.Text(out, areas)
	} else {
		err = writePaths(out, cfg.Out, ps)
	}
	if err == nil {
		err = out.Close()
	} else {
		out.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Out, err)
	}
	logrus.Infof("wrote %d paths with %d points to %s", len(ps.P), ps.NumPoints(), cfg.Out)
	return nil
}
