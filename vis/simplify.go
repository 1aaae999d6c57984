package vis

import (
	"math"

	"github.com/pkg/errors"
)

// areaEpsilon is added to a removed triangle's area when it would otherwise
// be smaller than the previously removed one, keeping areas non-decreasing.
const areaEpsilon = 1e-8

// Result is the outcome of Run.
type Result struct {
	// X and Y hold the retained points in their original order.
	// They're nil when areas were requested.
	X, Y []float64

	// Areas holds the effective area of every input point, or nil when
	// areas were not requested. The endpoints are +Inf, and points that
	// duplicate a neighbour (or were never removed) are 0.
	Areas []float64

	// Removed lists the indices of the removed points, in removal order.
	Removed []int
}

// Run simplifies the polyline with coordinates x, y to target points.
// target is clamped to [2, len(x)]. If computeAreas is set, Run ranks every
// point by its effective area instead of returning coordinates.
func Run(x, y []float64, target int, computeAreas bool) (*Result, error) {
	return run(x, y, target, computeAreas, maxQueueSize)
}

// Simplify returns the coordinates of the target points retained by
// Visvalingam's algorithm.
func Simplify(x, y []float64, target int) (xs, ys []float64, err error) {
	r, err := Run(x, y, target, false)
	if err != nil {
		return nil, nil, err
	}
	return r.X, r.Y, nil
}

// EffectiveAreas returns the effective area of every point in the polyline.
func EffectiveAreas(x, y []float64) ([]float64, error) {
	r, err := Run(x, y, 2, true)
	if err != nil {
		return nil, err
	}
	return r.Areas, nil
}

func run(x, y []float64, target int, computeAreas bool, limit int) (res *Result, err error) {
	if len(x) != len(y) {
		return nil, errors.Wrapf(ErrInvalidArgument, "x has %d points but y has %d", len(x), len(y))
	}
	if len(x) < 2 {
		return nil, errors.Wrapf(ErrInvalidArgument, "need at least 2 points, got %d", len(x))
	}
	defer func() {
		if rerr := recoverAlloc(recover()); rerr != nil {
			res = nil
			err = rerr
		}
	}()

	n := len(x)
	if target < 2 {
		target = 2
	} else if target > n {
		target = n
	}

	s := newSimplifier(x, y, computeAreas, limit)
	s.seed()
	for i := 0; i < n-target; i++ {
		s.removeOne()
	}
	return s.result(target), nil
}

// simplifier holds the surviving points of a polyline as a doubly linked
// list over arrays, indexed by original position.
type simplifier struct {
	x, y    []float64
	left    []int
	right   []int
	valid   []bool
	version []uint32
	areas   []float64

	pq       *queue
	degen    degenerates
	lastArea float64
	removed  []int
}

func newSimplifier(x, y []float64, computeAreas bool, limit int) *simplifier {
	n := len(x)
	s := &simplifier{
		x:        x,
		y:        y,
		left:     make([]int, n),
		right:    make([]int, n),
		valid:    make([]bool, n),
		version:  make([]uint32, n),
		pq:       newQueue(initialQueueSize, limit),
		lastArea: -1,
		removed:  make([]int, 0, n-2),
	}
	for i := 0; i < n; i++ {
		s.left[i] = i - 1
		s.right[i] = i + 1
		s.valid[i] = true
		s.version[i] = 1
	}
	if computeAreas {
		s.areas = make([]float64, n)
		for i := range s.areas {
			s.areas[i] = -1
		}
	}
	return s
}

// area returns twice the area of the triangle i makes with its current
// neighbours. i must not be an endpoint.
func (s *simplifier) area(i int) float64 {
	l, r := s.left[i], s.right[i]
	return s.degen.triangleArea(s.x[l], s.y[l], s.x[i], s.y[i], s.x[r], s.y[r])
}

func (s *simplifier) seed() {
	for j := 1; j < len(s.x)-1; j++ {
		s.pq.insert(vertex{index: j, version: 1}, -s.area(j))
	}
}

// pop returns the first current vertex on the queue, discarding stale ones.
func (s *simplifier) pop() vertex {
	for {
		v := s.pq.extractMax()
		if s.version[v.index] == v.version {
			return v
		}
	}
}

func (s *simplifier) removeOne() {
	idx := s.pop().index
	s.valid[idx] = false
	s.removed = append(s.removed, idx)

	if s.areas != nil {
		a := s.area(idx)
		if a < s.lastArea {
			a = s.lastArea + areaEpsilon
		}
		s.areas[idx] = a / 2
		s.lastArea = a
	}

	l, r := s.left[idx], s.right[idx]
	s.right[l] = r
	s.left[r] = l

	if l > 0 {
		s.requeue(l)
	}
	if r < len(s.x)-1 {
		s.requeue(r)
	}
}

// requeue invalidates any queued entry for i and queues its new area.
func (s *simplifier) requeue(i int) {
	s.version[i]++
	s.pq.insert(vertex{index: i, version: s.version[i]}, -s.area(i))
}

func (s *simplifier) result(target int) *Result {
	res := &Result{Removed: s.removed}
	if s.areas != nil {
		res.Areas = make([]float64, len(s.areas))
		for i, a := range s.areas {
			if a < 0 {
				a = 0
			}
			res.Areas[i] = a
		}
		res.Areas[0] = math.Inf(1)
		res.Areas[len(res.Areas)-1] = math.Inf(1)
		return res
	}
	res.X = make([]float64, 0, target)
	res.Y = make([]float64, 0, target)
	for i, ok := range s.valid {
		if ok {
			res.X = append(res.X, s.x[i])
			res.Y = append(res.Y, s.y[i])
		}
	}
	return res
}
