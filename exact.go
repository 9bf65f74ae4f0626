package segint

import (
	"fmt"
	"math"
	"math/big"
)

// Orientation and comparison predicates are exact. A floating-point filter decides the sign when the
// computed value is larger than its forward error bound, otherwise the value is recomputed with rational
// arithmetic. The error bound of a 2x2 determinant of coordinate differences is from
// J.R. Shewchuk, "Adaptive Precision Floating-Point Arithmetic and Fast Robust Geometric Predicates",
// Discrete & Computational Geometry 18, p. 305-363, 1997.

const machEpsilon = 1.0 / (1 << 53)

const ccwErrBound = (3.0 + 16.0*machEpsilon) * machEpsilon

// the filter is only valid when no product underflows or overflows
const (
	filterMin = 1e-280
	filterMax = 1e280
)

func ratOf(f float64) *big.Rat {
	return new(big.Rat).SetFloat64(f)
}

func ulp(f float64) float64 {
	f = math.Abs(f)
	return math.Nextafter(f, math.Inf(1)) - f
}

// crossSign returns the sign of the perp dot product of U1-U0 and V1-V0. It is positive if V turns counter
// clockwise from U.
func crossSign(u0, u1, v0, v1 Point) int {
	ux, uy := u1.X-u0.X, u1.Y-u0.Y
	vx, vy := v1.X-v0.X, v1.Y-v0.Y
	l, r := ux*vy, uy*vx
	det := l - r
	sum := math.Abs(l) + math.Abs(r)
	if filterMin < sum && sum < filterMax {
		if bound := ccwErrBound * sum; bound < det {
			return 1
		} else if det < -bound {
			return -1
		}
	} else if sum == 0.0 && (ux == 0.0 || vy == 0.0) && (uy == 0.0 || vx == 0.0) {
		// float subtraction is zero only for equal operands
		return 0
	}
	return crossSignExact(u0, u1, v0, v1)
}

func crossSignExact(u0, u1, v0, v1 Point) int {
	ux := new(big.Rat).Sub(ratOf(u1.X), ratOf(u0.X))
	uy := new(big.Rat).Sub(ratOf(u1.Y), ratOf(u0.Y))
	vx := new(big.Rat).Sub(ratOf(v1.X), ratOf(v0.X))
	vy := new(big.Rat).Sub(ratOf(v1.Y), ratOf(v0.Y))
	l := ux.Mul(ux, vy)
	r := uy.Mul(uy, vx)
	return l.Cmp(r)
}

// Orient returns +1 if C lies to the left of the directed line AB (counter clockwise), -1 if it lies to the
// right, and 0 if A, B and C are collinear. The result is exact.
func Orient(a, b, c Point) int {
	return crossSign(a, b, a, c)
}

////////////////////////////////////////////////////////////////

type ratPoint struct {
	x, y *big.Rat
}

// Pos is a position of the sweep. Intersections that are not representable in float64 keep their exact
// rational coordinates, in which case Point is the nearest float64 rounding.
type Pos struct {
	Point
	r *ratPoint
}

// Exact returns true if Point is the exact position.
func (p Pos) Exact() bool {
	return p.r == nil
}

// Equals returns true if both positions are exactly equal.
func (p Pos) Equals(q Pos) bool {
	return cmpPos(p, q) == 0
}

func (p Pos) String() string {
	if p.r == nil {
		return p.Point.String()
	}
	return fmt.Sprintf("(%v,%v)", p.r.x.RatString(), p.r.y.RatString())
}

func (p Pos) ratX() *big.Rat {
	if p.r != nil {
		return p.r.x
	}
	return ratOf(p.X)
}

func (p Pos) ratY() *big.Rat {
	if p.r != nil {
		return p.r.y
	}
	return ratOf(p.Y)
}

// cmpPos orders positions lexicographically, first by X and then by Y. Rounding to nearest is monotone, so
// differing float64 roundings decide the order without rational arithmetic.
func cmpPos(p, q Pos) int {
	rational := p.r != nil || q.r != nil
	if p.X < q.X {
		return -1
	} else if q.X < p.X {
		return 1
	} else if rational {
		if c := p.ratX().Cmp(q.ratX()); c != 0 {
			return c
		}
	}

	if p.Y < q.Y {
		return -1
	} else if q.Y < p.Y {
		return 1
	} else if rational {
		return p.ratY().Cmp(q.ratY())
	}
	return 0
}

// orientPos is Orient for a sweep position P.
func orientPos(a, b Point, p Pos) int {
	if p.r == nil {
		return Orient(a, b, p.Point)
	}

	ux, uy := b.X-a.X, b.Y-a.Y
	vx, vy := p.X-a.X, p.Y-a.Y
	l, r := ux*vy, uy*vx
	det := l - r
	sum := math.Abs(l) + math.Abs(r)

	// P lies within half an ulp of its rounding in each coordinate
	approx := math.Abs(ux)*ulp(p.Y) + math.Abs(uy)*ulp(p.X)
	if filterMin < sum && sum < filterMax && approx < filterMax {
		bound := (ccwErrBound*sum + approx) * (1.0 + 4.0*machEpsilon)
		if bound < det {
			return 1
		} else if det < -bound {
			return -1
		}
	}

	rux := new(big.Rat).Sub(ratOf(b.X), ratOf(a.X))
	ruy := new(big.Rat).Sub(ratOf(b.Y), ratOf(a.Y))
	rvx := new(big.Rat).Sub(p.r.x, ratOf(a.X))
	rvy := new(big.Rat).Sub(p.r.y, ratOf(a.Y))
	rl := rux.Mul(rux, rvy)
	rr := ruy.Mul(ruy, rvx)
	return rl.Cmp(rr)
}

// lineIntersection returns the exact intersection of the lines through A0A1 and B0B1, which must not be
// parallel.
func lineIntersection(a0, a1, b0, b1 Point) Pos {
	ax, ay := ratOf(a0.X), ratOf(a0.Y)
	dax := new(big.Rat).Sub(ratOf(a1.X), ax)
	day := new(big.Rat).Sub(ratOf(a1.Y), ay)
	dbx := new(big.Rat).Sub(ratOf(b1.X), ratOf(b0.X))
	dby := new(big.Rat).Sub(ratOf(b1.Y), ratOf(b0.Y))
	wx := new(big.Rat).Sub(ratOf(b0.X), ax)
	wy := new(big.Rat).Sub(ratOf(b0.Y), ay)

	// t = (W × Db) / (Da × Db)
	den := new(big.Rat).Mul(dax, dby)
	den.Sub(den, new(big.Rat).Mul(day, dbx))
	if den.Sign() == 0 {
		panic(preconditionf("intersection of parallel lines %v-%v and %v-%v", a0, a1, b0, b1))
	}
	t := new(big.Rat).Mul(wx, dby)
	t.Sub(t, wy.Mul(wy, dbx))
	t.Quo(t, den)

	x := dax.Mul(dax, t)
	x.Add(x, ax)
	y := day.Mul(day, t)
	y.Add(y, ay)

	fx, exactX := x.Float64()
	fy, exactY := y.Float64()
	if exactX && exactY {
		return Pos{Point: Point{fx, fy}}
	}
	return Pos{Point{fx, fy}, &ratPoint{x, y}}
}
