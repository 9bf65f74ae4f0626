package segint

import (
	"fmt"
	"math"
)

// IntersectionKind is the kind of intersection between two segments.
type IntersectionKind int

// see IntersectionKind
const (
	NoIntersection IntersectionKind = iota
	SinglePoint
	Collinear
)

func (v IntersectionKind) String() string {
	switch v {
	case SinglePoint:
		return "SinglePoint"
	case Collinear:
		return "Collinear"
	}
	return "NoIntersection"
}

// Intersection is the intersection between two segments. For SinglePoint, Point is the intersection rounded
// to the nearest float64 and Proper is true if it is not an endpoint of either segment. For Collinear,
// Overlap is the common sub-segment ordered from its left to its right endpoint.
type Intersection struct {
	Kind    IntersectionKind
	Point   Point
	Proper  bool
	Overlap Segment
}

// Equals returns true if both intersections are of the same kind and at exactly the same position.
func (z Intersection) Equals(o Intersection) bool {
	if z.Kind != o.Kind {
		return false
	} else if z.Kind == SinglePoint {
		return z.Point.Equals(o.Point) && z.Proper == o.Proper
	} else if z.Kind == Collinear {
		return z.Overlap.Start.Equals(o.Overlap.Start) && z.Overlap.End.Equals(o.Overlap.End)
	}
	return true
}

// Weight returns the number of points the intersection contributes to a count, 1 for a single point and 2
// for the endpoints of an overlap.
func (z Intersection) Weight() int {
	switch z.Kind {
	case SinglePoint:
		return 1
	case Collinear:
		return 2
	}
	return 0
}

func (z Intersection) String() string {
	switch z.Kind {
	case SinglePoint:
		if z.Proper {
			return fmt.Sprintf("SinglePoint%v proper", z.Point)
		}
		return fmt.Sprintf("SinglePoint%v", z.Point)
	case Collinear:
		return fmt.Sprintf("Collinear(%v)", z.Overlap)
	}
	return "NoIntersection"
}

// Intersect returns the intersection between segments A and B and whether they intersect. All decisions are
// made with exact arithmetic.
func Intersect(a, b Segment) (Intersection, bool) {
	z, _ := intersect(a.Start, a.End, b.Start, b.End)
	return z, z.Kind != NoIntersection
}

func boxContains(p, a, b Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) && math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

func pointIntersection(p Point) (Intersection, Pos) {
	return Intersection{Kind: SinglePoint, Point: p}, Pos{Point: p}
}

// intersect returns the intersection of A0A1 and B0B1 and, for single points, its exact position.
func intersect(a0, a1, b0, b1 Point) (Intersection, Pos) {
	if a0.Equals(a1) {
		if b0.Equals(b1) {
			if a0.Equals(b0) {
				return pointIntersection(a0)
			}
		} else if Orient(b0, b1, a0) == 0 && boxContains(a0, b0, b1) {
			return pointIntersection(a0)
		}
		return Intersection{}, Pos{}
	} else if b0.Equals(b1) {
		if Orient(a0, a1, b0) == 0 && boxContains(b0, a0, a1) {
			return pointIntersection(b0)
		}
		return Intersection{}, Pos{}
	}

	// for each endpoint, find on which side of the other segment it lies
	o0 := Orient(a0, a1, b0)
	o1 := Orient(a0, a1, b1)
	if o0 == 0 && o1 == 0 {
		return collinearIntersection(a0, a1, b0, b1)
	} else if o0*o1 > 0 {
		return Intersection{}, Pos{}
	}
	o2 := Orient(b0, b1, a0)
	o3 := Orient(b0, b1, a1)
	if o2*o3 > 0 {
		return Intersection{}, Pos{}
	}

	// an endpoint on the other segment is the intersection, copy it rather than computing it
	switch {
	case o0 == 0:
		return pointIntersection(b0)
	case o1 == 0:
		return pointIntersection(b1)
	case o2 == 0:
		return pointIntersection(a0)
	case o3 == 0:
		return pointIntersection(a1)
	}
	pos := lineIntersection(a0, a1, b0, b1)
	return Intersection{Kind: SinglePoint, Point: pos.Point, Proper: true}, pos
}

// collinearIntersection intersects two non-degenerate segments on the same line.
func collinearIntersection(a0, a1, b0, b1 Point) (Intersection, Pos) {
	if a1.Less(a0) {
		a0, a1 = a1, a0
	}
	if b1.Less(b0) {
		b0, b1 = b1, b0
	}
	start, end := a0, a1
	if start.Less(b0) {
		start = b0
	}
	if b1.Less(end) {
		end = b1
	}

	switch cmpPoint(start, end) {
	case 0:
		return pointIntersection(start)
	case -1:
		return Intersection{Kind: Collinear, Overlap: Segment{start, end}}, Pos{Point: start}
	}
	return Intersection{}, Pos{}
}
