// Package vis simplifies 2d polylines using Visvalingam's effective area
// method.
//
// The vertex whose triangle with its current neighbours has the smallest
// area is removed repeatedly until the requested number of points remain.
// Alternatively every point can be ranked by the area it had when it was
// removed, which gives a progressive simplification: keeping the points
// with the k largest areas is the same as simplifying to k points.
package vis

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when the coordinate slices differ in
	// length or hold fewer than two points.
	ErrInvalidArgument = errors.New("vis: invalid argument")

	// ErrAllocation is returned when the priority queue can't grow any further.
	ErrAllocation = errors.New("vis: priority queue allocation failed")
)

// allocError is the panic value used inside the package when the queue
// can't grow. Run recovers it and returns it as an error.
type allocError struct {
	err error
}

func recoverAlloc(r interface{}) error {
	if r == nil {
		return nil
	}
	if ae, ok := r.(allocError); ok {
		return ae.err
	}
	panic(r)
}
