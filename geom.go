package segint

import (
	"fmt"
	"math"
)

// Point is a coordinate in 2D space. Points compare exactly, there is no tolerance.
type Point struct {
	X, Y float64
}

// Equals returns true if P and Q are exactly equal. Negative and positive zero are equal.
func (p Point) Equals(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// IsFinite returns true if both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Less returns true if P is lexicographically smaller than Q, ie. left of Q or below Q at the same X.
func (p Point) Less(q Point) bool {
	return p.X < q.X || p.X == q.X && p.Y < q.Y
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if aligned and |OP|*|OQ| if perpendicular.
// It is computed in floating point and is subject to rounding, use Orient for exact signs.
func (p Point) PerpDot(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

func (p Point) String() string {
	return fmt.Sprintf("(%v,%v)", p.X, p.Y)
}

func cmpPoint(p, q Point) int {
	if p.X < q.X {
		return -1
	} else if q.X < p.X {
		return 1
	} else if p.Y < q.Y {
		return -1
	} else if q.Y < p.Y {
		return 1
	}
	return 0
}

////////////////////////////////////////////////////////////////

// Segment is a closed line segment from Start to End. A segment with Start equal to End is degenerate and
// behaves as a single point.
type Segment struct {
	Start, End Point
}

// Seg returns the segment (x0,y0)-(x1,y1).
func Seg(x0, y0, x1, y1 float64) Segment {
	return Segment{Point{x0, y0}, Point{x1, y1}}
}

// Degenerate returns true if the segment is a point.
func (s Segment) Degenerate() bool {
	return s.Start.Equals(s.End)
}

// Left returns the lexicographically smallest endpoint.
func (s Segment) Left() Point {
	if s.End.Less(s.Start) {
		return s.End
	}
	return s.Start
}

// Right returns the lexicographically largest endpoint.
func (s Segment) Right() Point {
	if s.End.Less(s.Start) {
		return s.Start
	}
	return s.End
}

// Bounds returns the bounding box of the segment.
func (s Segment) Bounds() Rect {
	return Rect{
		math.Min(s.Start.X, s.End.X), math.Min(s.Start.Y, s.End.Y),
		math.Max(s.Start.X, s.End.X), math.Max(s.Start.Y, s.End.Y),
	}
}

func (s Segment) String() string {
	return fmt.Sprintf("%v-%v", s.Start, s.End)
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned rectangle, it may have zero width or height.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// W returns the width.
func (r Rect) W() float64 {
	return r.X1 - r.X0
}

// H returns the height.
func (r Rect) H() float64 {
	return r.Y1 - r.Y0
}

// Add returns the smallest rectangle that contains both R and Q.
func (r Rect) Add(q Rect) Rect {
	return Rect{
		math.Min(r.X0, q.X0), math.Min(r.Y0, q.Y0),
		math.Max(r.X1, q.X1), math.Max(r.Y1, q.Y1),
	}
}

// Touches returns true if R and Q overlap or share a boundary.
func (r Rect) Touches(q Rect) bool {
	return r.X0 <= q.X1 && q.X0 <= r.X1 && r.Y0 <= q.Y1 && q.Y0 <= r.Y1
}

// Contains returns true if P is inside R or on its boundary.
func (r Rect) Contains(p Point) bool {
	return r.X0 <= p.X && p.X <= r.X1 && r.Y0 <= p.Y && p.Y <= r.Y1
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v; %v]--[%v; %v]", r.X0, r.Y0, r.X1, r.Y1)
}

// Bounds returns the bounding box of all segments, or the zero rectangle for no segments.
func Bounds(segs []Segment) Rect {
	if len(segs) == 0 {
		return Rect{}
	}
	r := segs[0].Bounds()
	for _, s := range segs[1:] {
		r = r.Add(s.Bounds())
	}
	return r
}
