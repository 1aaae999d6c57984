package vis

import "math"

// degenerates hands out the sentinel areas used for triangles with a
// zero-length leg. Each sentinel is a little more negative than the last one,
// so among duplicates the most recently discovered is removed first.
type degenerates struct {
	n int
}

// triangleArea returns twice the area of the triangle (x1,y1) (x2,y2) (x3,y3),
// where (x2,y2) is the vertex under consideration.
//
// If both legs have zero length the result is below -2, and if exactly one
// leg does it's in (-2, -1]. Either way it's smaller than any real area.
func (d *degenerates) triangleArea(x1, y1, x2, y2, x3, y3 float64) float64 {
	lzero := x1 == x2 && y1 == y2
	rzero := x3 == x2 && y3 == y2
	if lzero && rzero {
		d.n++
		return -2 - float64(d.n)/1e6
	}
	if lzero || rzero {
		d.n++
		return -1 - float64(d.n)/1e6
	}
	return math.Abs((x1-x2)*(y3-y2) - (x3-x2)*(y1-y2))
}
