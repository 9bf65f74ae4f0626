package bench

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/segint"
	"github.com/tdewolff/segint/gen"
	"github.com/tdewolff/segint/segfile"
)

func point(a, b int, x, y float64) segint.Pair {
	return segint.Pair{A: a, B: b, Intersection: segint.Intersection{Kind: segint.SinglePoint, Point: segint.Point{x, y}, Proper: true}}
}

func TestCompare(t *testing.T) {
	expected := []segint.Pair{point(0, 1, 1, 1), point(0, 2, 2, 2), point(1, 2, 3, 3)}
	assert.True(t, Compare(expected, expected).Ok())

	pairs := []segint.Pair{point(1, 2, 3, 3), point(0, 1, 1, 1)}
	m := Compare(pairs, expected)
	assert.False(t, m.Ok())
	assert.Empty(t, m.Extra)
	assert.Equal(t, []segint.Pair{point(0, 2, 2, 2)}, m.Missing)

	pairs = []segint.Pair{point(0, 1, 1, 1), point(0, 2, 2, 2.5), point(1, 2, 3, 3), point(1, 3, 4, 4)}
	m = Compare(pairs, expected)
	assert.Equal(t, []segint.Pair{point(0, 2, 2, 2.5), point(1, 3, 4, 4)}, m.Extra)
	assert.Equal(t, []segint.Pair{point(0, 2, 2, 2)}, m.Missing)
}

func TestCheck(t *testing.T) {
	m, err := Check(segfile.Sample())
	require.NoError(t, err)
	assert.True(t, m.Ok())

	rnd := rand.New(rand.NewPCG(1, 2))
	for _, name := range gen.Names() {
		segs := gen.Generators[name](rnd, 40, 8.0)
		assert.False(t, Fails(segs), name)
	}
}

func TestMinimize(t *testing.T) {
	segs := gen.Random(rand.New(rand.NewPCG(3, 4)), 20, 1.0)
	a, b := segs[4], segs[13]
	minimized, err := Minimize(segs, func(segs []segint.Segment) bool {
		return slices.Contains(segs, a) && slices.Contains(segs, b)
	})
	require.NoError(t, err)
	assert.Equal(t, []segint.Segment{a, b}, minimized)
	assert.Len(t, segs, 20)

	_, err = Minimize(segs, Fails)
	assert.Error(t, err)
}
