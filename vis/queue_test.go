package vis

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrder(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	q := newQueue(4, maxQueueSize)
	const N = 1000
	want := make([]float64, 0, N)
	byIndex := map[int]float64{}
	for i := 0; i < N; i++ {
		p := r.Float64()*200 - 100
		q.insert(vertex{index: i, version: 1}, p)
		want = append(want, p)
		byIndex[i] = p
	}
	require.Equal(t, N, q.len())
	sort.Sort(sort.Reverse(sort.Float64Slice(want)))

	for i, w := range want {
		top := q.peek()
		v := q.extractMax()
		assert.Equal(t, top, v, "peek and extractMax disagree at %d", i)
		if !assert.Equal(t, w, byIndex[v.index], "extraction %d", i) {
			return
		}
	}
	assert.Equal(t, 0, q.len())
}

func TestQueueInterleaved(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	q := newQueue(1, maxQueueSize)
	live := map[int]float64{}
	next := 0
	for round := 0; round < 500; round++ {
		for k := r.Intn(4); k >= 0; k-- {
			p := r.NormFloat64()
			q.insert(vertex{index: next, version: 1}, p)
			live[next] = p
			next++
		}
		for k := r.Intn(3); k > 0 && q.len() > 0; k-- {
			best := -1
			for i, p := range live {
				if best < 0 || p > live[best] {
					best = i
				}
			}
			v := q.extractMax()
			require.Equal(t, live[best], live[v.index], "round %d", round)
			delete(live, v.index)
		}
	}
	assert.Equal(t, len(live), q.len())
}

func TestQueueGrowth(t *testing.T) {
	q := newQueue(2, maxQueueSize)
	for i := 0; i < 9; i++ {
		q.insert(vertex{index: i}, float64(i))
	}
	assert.Equal(t, 16, cap(q.e))
	assert.Equal(t, 8, q.peek().index)
}

func TestQueueLimit(t *testing.T) {
	q := newQueue(2, 3)
	for i := 0; i < 3; i++ {
		q.insert(vertex{index: i}, float64(i))
	}
	assert.Equal(t, 3, cap(q.e))

	defer func() {
		r := recover()
		ae, ok := r.(allocError)
		require.True(t, ok, "want allocError panic, got %v", r)
		assert.Equal(t, ErrAllocation, errors.Cause(ae.err))
	}()
	q.insert(vertex{index: 3}, 3)
	t.Fatal("insert beyond the limit should panic")
}

// The sibling comparison in siftDown is strict: when both children are
// equal and greater than the node being sifted down, nothing moves.
func TestQueueEqualChildren(t *testing.T) {
	q := newQueue(4, maxQueueSize)
	q.insert(vertex{index: 0}, 5)
	q.insert(vertex{index: 1}, 3)
	q.insert(vertex{index: 2}, 3)
	q.insert(vertex{index: 3}, 1)

	assert.Equal(t, 0, q.extractMax().index)
	// The last entry (priority 1) now sits at the root above two
	// children of priority 3.
	assert.Equal(t, 3, q.peek().index)
	assert.Equal(t, []float64{1, 3, 3}, []float64{q.e[0].priority, q.e[1].priority, q.e[2].priority})
}

func TestQueueEqualPriorities(t *testing.T) {
	q := newQueue(4, maxQueueSize)
	for i := 0; i < 3; i++ {
		q.insert(vertex{index: i}, -0.5)
	}
	// Ties never displace the earlier insertion from the root.
	assert.Equal(t, 0, q.extractMax().index)
}

func TestQueueSingle(t *testing.T) {
	q := newQueue(initialQueueSize, maxQueueSize)
	q.insert(vertex{index: 7, version: 2}, -1.5)
	assert.NotPanics(t, func() {
		assert.Equal(t, vertex{index: 7, version: 2}, q.extractMax())
	})
	assert.Equal(t, 0, q.len())

	// The emptied queue is still usable.
	q.insert(vertex{index: 1}, 3)
	q.insert(vertex{index: 2}, 4)
	assert.Equal(t, 2, q.extractMax().index)
	assert.Equal(t, 1, q.extractMax().index)
	assert.Equal(t, 0, q.len())
}
