package vis

import "github.com/pkg/errors"

const (
	initialQueueSize = 128

	// maxQueueSize bounds the number of entries the queue will hold.
	maxQueueSize = 1<<31 - 1
)

// A vertex identifies one queue insertion for the point at index.
// It's stale once the point's live version has moved past version.
type vertex struct {
	index   int
	version uint32
}

type entry struct {
	priority float64
	v        vertex
}

// queue is a binary max-heap of vertices keyed by priority.
// Children of node i are at 2i+1 and 2i+2.
type queue struct {
	e     []entry
	limit int
}

func newQueue(size, limit int) *queue {
	if size > limit {
		size = limit
	}
	return &queue{e: make([]entry, 0, size), limit: limit}
}

func (q *queue) len() int {
	return len(q.e)
}

// grow doubles the capacity of the queue, never beyond its limit.
func (q *queue) grow() {
	if len(q.e) >= q.limit {
		panic(allocError{errors.Wrapf(ErrAllocation, "queue holds %d entries", len(q.e))})
	}
	n := 2 * cap(q.e)
	if n == 0 {
		n = 1
	}
	if n > q.limit {
		n = q.limit
	}
	e := make([]entry, len(q.e), n)
	copy(e, q.e)
	q.e = e
}

func (q *queue) insert(v vertex, priority float64) {
	if len(q.e) == cap(q.e) {
		q.grow()
	}
	q.e = append(q.e, entry{priority: priority, v: v})

	i := len(q.e) - 1
	for i > 0 {
		p := (i - 1) / 2
		if !(q.e[p].priority < q.e[i].priority) {
			break
		}
		q.e[p], q.e[i] = q.e[i], q.e[p]
		i = p
	}
}

// extractMax removes and returns the vertex at the top of the heap.
// The queue must not be empty.
func (q *queue) extractMax() vertex {
	top := q.e[0].v
	last := len(q.e) - 1
	q.e[0] = q.e[last]
	q.e = q.e[:last]
	if last == 0 {
		return top
	}
	q.siftDown()
	return top
}

func (q *queue) peek() vertex {
	return q.e[0].v
}

// siftDown moves the root down until neither child has a greater priority.
// When both children exceed the parent, the child that is strictly greater
// than its sibling is chosen; exactly equal children leave the node alone.
func (q *queue) siftDown() {
	n := len(q.e)
	i := 0
	for {
		pri := q.e[i].priority
		l, r := 2*i+1, 2*i+2
		swap := 0
		if r < n {
			lp, rp := q.e[l].priority, q.e[r].priority
			if lp > rp && lp > pri {
				swap = l
			} else if rp > lp && rp > pri {
				swap = r
			}
		} else if l < n {
			if q.e[l].priority > pri {
				swap = l
			}
		}
		if swap == 0 {
			return
		}
		q.e[i], q.e[swap] = q.e[swap], q.e[i]
		i = swap
	}
}
