// Package paths provides tools for reading, simplifying and writing
// collections of 2d polylines.
package paths

import "math"

// Vec2 is a 2-dimensional vector.
type Vec2 [2]float64

// A Path is a polyline, from the first point in the V slice to the last.
type Path struct {
	V []Vec2
}

// Bounds describes an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec2
}

// Paths is a set of paths, along with a view bounds.
type Paths struct {
	Bounds Bounds
	P      []Path
}

// XY splits the path into separate x and y coordinate slices.
func (p Path) XY() (x, y []float64) {
	x = make([]float64, len(p.V))
	y = make([]float64, len(p.V))
	for i, v := range p.V {
		x[i], y[i] = v[0], v[1]
	}
	return x, y
}

// PathFromXY builds a path from x and y coordinate slices, which
// must be the same length.
func PathFromXY(x, y []float64) Path {
	p := Path{V: make([]Vec2, len(x))}
	for i := range x {
		p.V[i] = Vec2{x[i], y[i]}
	}
	return p
}

// NumPoints returns the total number of vertices over all paths.
func (ps *Paths) NumPoints() int {
	n := 0
	for _, p := range ps.P {
		n += len(p.V)
	}
	return n
}

// TightenBounds adjusts the bounds to exactly contain the paths.
// If there are no paths, the bounds are set to zero.
func (ps *Paths) TightenBounds() {
	inf := math.Inf(1)
	min := Vec2{inf, inf}
	max := Vec2{-inf, -inf}
	if ps.NumPoints() == 0 {
		ps.Bounds = Bounds{}
		return
	}
	for _, p := range ps.P {
		for _, v := range p.V {
			min[0] = math.Min(min[0], v[0])
			min[1] = math.Min(min[1], v[1])
			max[0] = math.Max(max[0], v[0])
			max[1] = math.Max(max[1], v[1])
		}
	}
	ps.Bounds = Bounds{Min: min, Max: max}
}

// Translate moves all the paths by the given amount.
func (ps *Paths) Translate(dx Vec2) {
	for _, p := range ps.P {
		for i := range p.V {
			p.V[i] = vec2Add(p.V[i], dx)
		}
	}
	ps.Bounds = Bounds{
		Min: vec2Add(ps.Bounds.Min, dx),
		Max: vec2Add(ps.Bounds.Max, dx),
	}
}

// Transform resizes all paths so that the rectangle forming the
// current bounds is the size of the new bounds. The bounds
// are also updated to the new bounds. An axis along which the
// current bounds have zero extent is only translated.
func (ps *Paths) Transform(nb Bounds) {
	ob := ps.Bounds
	var scale Vec2
	for k := 0; k < 2; k++ {
		scale[k] = 1
		if ow := ob.Max[k] - ob.Min[k]; ow != 0 {
			scale[k] = (nb.Max[k] - nb.Min[k]) / ow
		}
	}
	for _, p := range ps.P {
		for i, v := range p.V {
			for k := 0; k < 2; k++ {
				v[k] = (v[k]-ob.Min[k])*scale[k] + nb.Min[k]
			}
			p.V[i] = v
		}
	}
	ps.Bounds = nb
}

func vec2Add(a, b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

// move adds a new (initially empty) path starting at x,
// unless the last path already ends at x.
func (ps *Paths) move(x Vec2) {
	if len(ps.P) > 0 {
		p := &ps.P[len(ps.P)-1]
		if len(p.V) > 0 && p.V[len(p.V)-1] == x {
			return
		}
	}
	ps.P = append(ps.P, Path{V: []Vec2{x}})
}

// line extends the last path with an edge that goes to x.
func (ps *Paths) line(x Vec2) {
	p := &ps.P[len(ps.P)-1]
	p.V = append(p.V, x)
}
