package segint

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestIntersect(t *testing.T) {
	var tts = []struct {
		a, b Segment
		z    Intersection
	}{
		// crossings
		{Seg(0, 0, 2, 2), Seg(0, 2, 2, 0), Intersection{Kind: SinglePoint, Point: Point{1, 1}, Proper: true}},
		{Seg(1, -1, 1, 1), Seg(0, 0, 2, 0), Intersection{Kind: SinglePoint, Point: Point{1, 0}, Proper: true}},
		{Seg(0, 0, 2, 0), Seg(1, 0, 1, 1), Intersection{Kind: SinglePoint, Point: Point{1, 0}}},
		{Seg(0, 0, 1, 1), Seg(1, 1, 2, 0), Intersection{Kind: SinglePoint, Point: Point{1, 1}}},
		{Seg(0, 0, 1, 1), Seg(3, 0, 2, 1), Intersection{}},
		{Seg(0, 0, 1, 0), Seg(0, 1, 1, 1), Intersection{}},

		// collinear
		{Seg(0, 0, 2, 0), Seg(1, 0, 3, 0), Intersection{Kind: Collinear, Overlap: Seg(1, 0, 2, 0)}},
		{Seg(2, 0, 0, 0), Seg(3, 0, 1, 0), Intersection{Kind: Collinear, Overlap: Seg(1, 0, 2, 0)}},
		{Seg(0, 0, 3, 3), Seg(2, 2, 1, 1), Intersection{Kind: Collinear, Overlap: Seg(1, 1, 2, 2)}},
		{Seg(0, 0, 0, 2), Seg(0, 1, 0, 3), Intersection{Kind: Collinear, Overlap: Seg(0, 1, 0, 2)}},
		{Seg(0, 0, 1, 0), Seg(1, 0, 2, 0), Intersection{Kind: SinglePoint, Point: Point{1, 0}}},
		{Seg(0, 0, 1, 0), Seg(2, 0, 3, 0), Intersection{}},

		// degenerate
		{Seg(1, 1, 1, 1), Seg(0, 0, 2, 2), Intersection{Kind: SinglePoint, Point: Point{1, 1}}},
		{Seg(0, 0, 2, 2), Seg(2, 2, 2, 2), Intersection{Kind: SinglePoint, Point: Point{2, 2}}},
		{Seg(1, 2, 1, 2), Seg(0, 0, 2, 2), Intersection{}},
		{Seg(3, 3, 3, 3), Seg(0, 0, 2, 2), Intersection{}},
		{Seg(1, 1, 1, 1), Seg(1, 1, 1, 1), Intersection{Kind: SinglePoint, Point: Point{1, 1}}},
		{Seg(1, 1, 1, 1), Seg(1, 2, 1, 2), Intersection{}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			z, ok := Intersect(tt.a, tt.b)
			test.T(t, z, tt.z)
			test.T(t, ok, tt.z.Kind != NoIntersection)

			// symmetric
			z, _ = Intersect(tt.b, tt.a)
			test.T(t, z, tt.z)
		})
	}
}

func TestIntersectionWeight(t *testing.T) {
	test.T(t, Intersection{}.Weight(), 0)
	test.T(t, Intersection{Kind: SinglePoint}.Weight(), 1)
	test.T(t, Intersection{Kind: Collinear}.Weight(), 2)
	test.String(t, Intersection{Kind: SinglePoint, Point: Point{1, 0.5}, Proper: true}.String(), "SinglePoint(1,0.5) proper")
	test.String(t, Intersection{Kind: Collinear, Overlap: Seg(1, 0, 2, 0)}.String(), "Collinear((1,0)-(2,0))")
}
