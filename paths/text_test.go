package paths

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	in := "0 0\n1 2.5\n\n\n-3 4\n5 6 7\n"
	ps, err := FromText(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Path{p(0, 0, 1, 2.5), p(-3, 4, 5, 6)}, ps.P)
	assert.Equal(t, Bounds{Min: Vec2{-3, 0}, Max: Vec2{5, 6}}, ps.Bounds)

	var bb bytes.Buffer
	require.NoError(t, ps.Text(&bb, nil))
	assert.Equal(t, "0 0\n1 2.5\n\n-3 4\n5 6\n", bb.String())

	again, err := FromText(&bb)
	require.NoError(t, err)
	assert.Equal(t, ps, again)
}

func TestTextAreas(t *testing.T) {
	ps := &Paths{P: []Path{p(0, 0, 1, 2, 2, 0)}}
	areas, err := ps.EffectiveAreas()
	require.NoError(t, err)

	var bb bytes.Buffer
	require.NoError(t, ps.Text(&bb, areas))
	assert.Equal(t, "0 0 +Inf\n1 2 2\n2 0 +Inf\n", bb.String())
	assert.True(t, math.IsInf(areas[0][0], 1))
}

func TestTextErrors(t *testing.T) {
	for _, in := range []string{"1\n", "1 x\n"} {
		_, err := FromText(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}

func TestTextShortExtra(t *testing.T) {
	ps := &Paths{P: []Path{p(0, 0, 1, 1), p(2, 2, 3, 3)}}
	var bb bytes.Buffer
	if err := ps.Text(&bb, [][]float64{{7}}); err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	want := "0 0 7\n1 1\n\n2 2\n3 3\n"
	if bb.String() != want {
		t.Errorf("Text() = %q, want %q", bb.String(), want)
	}
}
