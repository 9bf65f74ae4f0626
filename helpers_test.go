package segint

import (
	"math/rand/v2"
	"testing"

	"github.com/tdewolff/test"
)

// RandomSegments returns n segments with normally distributed coordinates.
func RandomSegments(rnd *rand.Rand, n int) []Segment {
	segs := make([]Segment, n)
	for i := range segs {
		segs[i] = Seg(rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64())
	}
	return segs
}

// GridSegments returns n segments with integer coordinates in [0,size], which results in many shared
// endpoints, collinear overlaps, vertical and degenerate segments.
func GridSegments(rnd *rand.Rand, n, size int) []Segment {
	segs := make([]Segment, n)
	for i := range segs {
		x0, y0 := float64(rnd.IntN(size+1)), float64(rnd.IntN(size+1))
		x1, y1 := float64(rnd.IntN(size+1)), float64(rnd.IntN(size+1))
		segs[i] = Seg(x0, y0, x1, y1)
	}
	return segs
}

func testPairs(t *testing.T, pairs, expected []Pair) {
	t.Helper()
	SortPairs(pairs)
	SortPairs(expected)
	test.T(t, len(pairs), len(expected), "number of intersections")
	for i := 0; i < len(pairs) && i < len(expected); i++ {
		test.T(t, [2]int{pairs[i].A, pairs[i].B}, [2]int{expected[i].A, expected[i].B})
		test.T(t, pairs[i].Intersection.Equals(expected[i].Intersection), true, pairs[i], "!=", expected[i])
	}
}
