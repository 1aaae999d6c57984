package paths

import (
	"math"
	"reflect"
	"testing"
)

type simplifyTestCase struct {
	desc string
	path Path
	cfg  SimplifyConfig
	want []Path
}

func p(args ...float64) Path {
	if len(args)%2 != 0 {
		panic("p helper needs an even number of args")
	}
	path := Path{}
	for i := 0; i < len(args); i += 2 {
		path.V = append(path.V, Vec2{args[i], args[i+1]})
	}
	return path
}

func TestSimplify(t *testing.T) {
	cases := []simplifyTestCase{
		{
			desc: "line with slightly displaced midpoint, keep 2",
			path: p(-1, 0, 0, 0.25, 1.0, 0),
			cfg:  SimplifyConfig{Keep: 2},
			want: []Path{p(-1, 0, 1, 0)},
		},
		{
			desc: "alternating wiggle, keep 3",
			path: p(0, 0, 1, 0.01, 2, 0, 3, 0.01, 4, 0),
			cfg:  SimplifyConfig{Keep: 3},
			want: []Path{p(0, 0, 2, 0, 4, 0)},
		},
		{
			desc: "keep more than there are",
			path: p(0, 0, 1, 1, 2, 0),
			cfg:  SimplifyConfig{Keep: 10},
			want: []Path{p(0, 0, 1, 1, 2, 0)},
		},
		{
			desc: "square with slightly displaced midpoints, ratio",
			path: p(-1, -1, 0, -1.1, 1, -1, 0.9, 0, 1, 1, 0, 1.1, -1, 1, -0.9, 0, -1, -1),
			cfg:  SimplifyConfig{Ratio: 5.0 / 9},
			want: []Path{p(-1, -1, 1, -1, 1, 1, -1, 1, -1, -1)},
		},
		{
			desc: "min area drops the small bump only",
			path: p(0, 0, 1, 0.1, 2, 0, 3, 5, 4, 0),
			cfg:  SimplifyConfig{MinArea: 1},
			want: []Path{p(0, 0, 2, 0, 3, 5, 4, 0)},
		},
		{
			desc: "min area above the shoulder",
			path: p(0, 0, 1, 0.1, 2, 0, 3, 5, 4, 0),
			cfg:  SimplifyConfig{MinArea: 6},
			want: []Path{p(0, 0, 3, 5, 4, 0)},
		},
		{
			desc: "single point path untouched",
			path: p(3, 4),
			cfg:  SimplifyConfig{Keep: 2},
			want: []Path{p(3, 4)},
		},
	}
	for _, c := range cases {
		ps := &Paths{P: []Path{{V: append([]Vec2{}, c.path.V...)}}}
		if err := ps.Simplify(&c.cfg); err != nil {
			t.Errorf("%s: Simplify(%+v) failed: %v", c.desc, c.cfg, err)
			continue
		}
		if !reflect.DeepEqual(ps.P, c.want) {
			t.Errorf("%s: Simplify(%+v).P = %v, want %v", c.desc, c.cfg, ps.P, c.want)
		}
	}
}

func TestSimplifyBadConfig(t *testing.T) {
	for _, cfg := range []SimplifyConfig{
		{},
		{Keep: 3, Ratio: 0.5},
		{Keep: -1},
		{Ratio: 1.5},
		{MinArea: -2},
	} {
		ps := &Paths{P: []Path{p(0, 0, 1, 1, 2, 0)}}
		if err := ps.Simplify(&cfg); err == nil {
			t.Errorf("Simplify(%+v) succeeded, want error", cfg)
		}
	}
}

func TestEffectiveAreas(t *testing.T) {
	ps := &Paths{P: []Path{p(0, 0, 1, 2, 2, 0), p(5, 5)}}
	got, err := ps.EffectiveAreas()
	if err != nil {
		t.Fatalf("EffectiveAreas failed: %v", err)
	}
	inf := math.Inf(1)
	want := [][]float64{{inf, 2, inf}, nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EffectiveAreas() = %v, want %v", got, want)
	}
}
