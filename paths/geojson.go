package paths

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
)

func pathFromPoints(pts []geom.Point) Path {
	p := Path{V: make([]Vec2, len(pts))}
	for i, pt := range pts {
		p.V[i] = Vec2{pt.X, pt.Y}
	}
	return p
}

func (p Path) lineString() geom.LineString {
	ls := make(geom.LineString, len(p.V))
	for i, v := range p.V {
		ls[i] = geom.Point{X: v[0], Y: v[1]}
	}
	return ls
}

// FromGeoJSON reads a GeoJSON geometry. A LineString becomes a single
// path, and each ring of a Polygon becomes a separate path.
func FromGeoJSON(r io.Reader) (*Paths, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	g, err := geojson.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decoding geojson: %w", err)
	}
	ps := &Paths{}
	switch t := g.(type) {
	case geom.LineString:
		ps.P = append(ps.P, pathFromPoints(t))
	case geom.Polygon:
		for _, ring := range t {
			ps.P = append(ps.P, pathFromPoints(ring))
		}
	default:
		return nil, fmt.Errorf("unsupported geojson geometry type %T", g)
	}
	ps.TightenBounds()
	return ps, nil
}

// GeoJSON writes the paths as a GeoJSON LineString. It fails unless
// there is exactly one path.
func (ps *Paths) GeoJSON(w io.Writer) error {
	if len(ps.P) != 1 {
		return fmt.Errorf("geojson output needs exactly one path, have %d", len(ps.P))
	}
	b, err := geojson.Encode(ps.P[0].lineString())
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
