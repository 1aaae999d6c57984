package paths

import (
	"fmt"
	"math"

	"github.com/coolbutuseless/visvalingam/vis"
	"github.com/sirupsen/logrus"
)

// SimplifyConfig says how many points each path keeps.
// Exactly one of the fields should be set.
type SimplifyConfig struct {
	Keep    int     // keep this many points per path
	Ratio   float64 // keep this fraction of each path's points
	MinArea float64 // keep points with at least this effective area
}

func (cfg *SimplifyConfig) validate() error {
	set := 0
	if cfg.Keep != 0 {
		set++
	}
	if cfg.Ratio != 0 {
		set++
	}
	if cfg.MinArea != 0 {
		set++
	}
	if set != 1 {
		return fmt.Errorf("simplify: exactly one of keep, ratio and min area must be set")
	}
	if cfg.Keep < 0 || cfg.Ratio < 0 || cfg.Ratio > 1 || cfg.MinArea < 0 {
		return fmt.Errorf("simplify: bad config %+v", *cfg)
	}
	return nil
}

// target returns how many of n points to keep.
func (cfg *SimplifyConfig) target(n int) int {
	if cfg.Keep != 0 {
		return cfg.Keep
	}
	return int(math.Round(cfg.Ratio * float64(n)))
}

// filterAreas keeps the points of p whose effective area is at least minArea.
func filterAreas(p Path, minArea float64) (Path, error) {
	x, y := p.XY()
	areas, err := vis.EffectiveAreas(x, y)
	if err != nil {
		return Path{}, err
	}
	np := Path{}
	for i, a := range areas {
		if a >= minArea {
			np.V = append(np.V, p.V[i])
		}
	}
	return np, nil
}

// Simplify removes points from each path using Visvalingam's algorithm.
// Paths with fewer than two points are left alone. The end points of a
// path are always kept.
func (ps *Paths) Simplify(cfg *SimplifyConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	vc := ps.NumPoints()
	for i, p := range ps.P {
		if len(p.V) < 2 {
			continue
		}
		if cfg.MinArea != 0 {
			np, err := filterAreas(p, cfg.MinArea)
			if err != nil {
				return fmt.Errorf("path %d: %w", i, err)
			}
			ps.P[i] = np
			continue
		}
		x, y := p.XY()
		xs, ys, err := vis.Simplify(x, y, cfg.target(len(p.V)))
		if err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
		ps.P[i] = PathFromXY(xs, ys)
	}
	logrus.Debugf("simplified %d paths from %d to %d points", len(ps.P), vc, ps.NumPoints())
	return nil
}

// EffectiveAreas returns the effective area of every point of every path.
// Paths with fewer than two points get a nil slice.
func (ps *Paths) EffectiveAreas() ([][]float64, error) {
	res := make([][]float64, len(ps.P))
	for i, p := range ps.P {
		if len(p.V) < 2 {
			continue
		}
		x, y := p.XY()
		areas, err := vis.EffectiveAreas(x, y)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		res[i] = areas
	}
	return res, nil
}
