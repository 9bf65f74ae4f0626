package bench

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/tdewolff/segint"
)

// Mismatch lists the intersections that were found by only one of two methods.
type Mismatch struct {
	Missing []segint.Pair // found by the reference only
	Extra   []segint.Pair // found by the query only
}

// Ok returns true if both methods found the same intersections.
func (m Mismatch) Ok() bool {
	return len(m.Missing) == 0 && len(m.Extra) == 0
}

func comparePairs(a, b segint.Pair) int {
	if a.A != b.A {
		return a.A - b.A
	}
	return a.B - b.B
}

// Compare returns the difference between two multisets of intersections. Pairs of the same segments match
// when their intersections are equal.
func Compare(pairs, expected []segint.Pair) Mismatch {
	pairs, expected = slices.Clone(pairs), slices.Clone(expected)
	segint.SortPairs(pairs)
	segint.SortPairs(expected)

	m := Mismatch{}
	i, j := 0, 0
	for i < len(pairs) || j < len(expected) {
		cmp := 0
		if i == len(pairs) {
			cmp = 1
		} else if j == len(expected) {
			cmp = -1
		} else {
			cmp = comparePairs(pairs[i], expected[j])
		}

		if cmp < 0 {
			m.Extra = append(m.Extra, pairs[i])
			i++
		} else if 0 < cmp {
			m.Missing = append(m.Missing, expected[j])
			j++
		} else {
			if !pairs[i].Intersection.Equals(expected[j].Intersection) {
				m.Extra = append(m.Extra, pairs[i])
				m.Missing = append(m.Missing, expected[j])
			}
			i++
			j++
		}
	}
	return m
}

// Check runs the sweep and the pairwise reference over the segments and compares their results. A broken
// invariant inside the sweep is returned as an error wrapping segint.ErrPrecondition.
func Check(segs []segint.Segment) (m Mismatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok && errors.Is(rerr, segint.ErrPrecondition) {
				err = rerr
				return
			}
			panic(r)
		}
	}()

	pairs, err := segint.Intersections(segs)
	if err != nil {
		return Mismatch{}, err
	}
	expected, err := segint.Pairwise(segs)
	if err != nil {
		return Mismatch{}, err
	}
	return Compare(pairs, expected), nil
}

// Fails returns true if the sweep either breaks an invariant or disagrees with the pairwise reference.
func Fails(segs []segint.Segment) bool {
	m, err := Check(segs)
	return err != nil || !m.Ok()
}

// Minimize removes segments one at a time for as long as the input keeps failing, until no single segment
// can be removed. The input must fail to begin with.
func Minimize(segs []segint.Segment, fails func([]segint.Segment) bool) ([]segint.Segment, error) {
	if !fails(segs) {
		return nil, errors.New("input does not fail")
	}

	segs = slices.Clone(segs)
	for removed := true; removed; {
		removed = false
		for i := 0; i < len(segs); {
			reduced := slices.Delete(slices.Clone(segs), i, i+1)
			if fails(reduced) {
				segs = reduced
				removed = true
			} else {
				i++
			}
		}
	}
	return segs, nil
}
