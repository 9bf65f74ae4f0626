package segint

import (
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
)

type spatialSegment struct {
	index int
	rect  *rtreego.Rect
}

func (s spatialSegment) Bounds() *rtreego.Rect {
	return s.rect
}

// boundingRect returns an R-tree rectangle around the segment. Rectangles must have positive size, so they
// are padded by a small margin relative to the coordinates, which only adds candidates.
func boundingRect(seg Segment) *rtreego.Rect {
	r := seg.Bounds()
	margin := 1e-9 * math.Max(1.0, math.Max(math.Max(math.Abs(r.X0), math.Abs(r.X1)), math.Max(math.Abs(r.Y0), math.Abs(r.Y1))))
	rect, err := rtreego.NewRect(rtreego.Point{r.X0 - margin, r.Y0 - margin}, []float64{r.W() + 2.0*margin, r.H() + 2.0*margin})
	if err != nil {
		panic(preconditionf("bounding rectangle of %v: %v", seg, err))
	}
	return rect
}

// Pairwise returns all intersections between the segments by testing every pair whose bounding boxes touch,
// using an R-tree. It is the reference for the sweep and returns the same pairs, sorted by A and then B.
func Pairwise(segs []Segment) ([]Pair, error) {
	if err := Validate(segs); err != nil {
		return nil, err
	} else if len(segs) == 0 {
		return nil, nil
	}

	spatials := make([]rtreego.Spatial, len(segs))
	for i, seg := range segs {
		spatials[i] = spatialSegment{i, boundingRect(seg)}
	}
	tree := rtreego.NewTree(2, 25, 50, spatials...)

	pairs := []Pair{}
	for i, seg := range segs {
		candidates := tree.SearchIntersect(spatials[i].Bounds(), func(results []rtreego.Spatial, object rtreego.Spatial) (refuse, abort bool) {
			return object.(spatialSegment).index <= i, false
		})
		for _, candidate := range candidates {
			j := candidate.(spatialSegment).index
			if z, ok := Intersect(seg, segs[j]); ok {
				pairs = append(pairs, Pair{
					A:            i,
					B:            j,
					SegA:         seg,
					SegB:         segs[j],
					Intersection: z,
				})
			}
		}
	}
	SortPairs(pairs)
	return pairs, nil
}

// SortPairs sorts pairs by A and then by B.
func SortPairs(pairs []Pair) {
	slices.SortFunc(pairs, func(a, b Pair) int {
		if a.A != b.A {
			return a.A - b.A
		}
		return a.B - b.B
	})
}
