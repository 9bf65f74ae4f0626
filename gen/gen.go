// Package gen generates segment sets for benchmarks and accuracy tests, from random inputs to highly
// degenerate ones with shared endpoints, overlaps and many segments through one point.
package gen

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/tdewolff/segint"
)

// Generator returns n segments within [0,size]x[0,size].
type Generator func(rnd *rand.Rand, n int, size float64) []segint.Segment

// Generators are the generators by name.
var Generators = map[string]Generator{
	"random":    Random,
	"grid":      Grid,
	"star":      Star,
	"circle":    Circle,
	"clustered": Clustered,
	"parallel":  Parallel,
}

// Names returns the sorted names of the generators.
func Names() []string {
	names := make([]string, 0, len(Generators))
	for name := range Generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func uniformPoint(rnd *rand.Rand, x0, y0, x1, y1 float64) segint.Point {
	return segint.Point{x0 + rnd.Float64()*(x1-x0), y0 + rnd.Float64()*(y1-y0)}
}

// Random returns segments with uniformly distributed endpoints.
func Random(rnd *rand.Rand, n int, size float64) []segint.Segment {
	segs := make([]segint.Segment, n)
	for i := range segs {
		segs[i] = segint.Segment{uniformPoint(rnd, 0, 0, size, size), uniformPoint(rnd, 0, 0, size, size)}
	}
	return segs
}

// Grid returns segments with integer endpoints, which gives many shared endpoints, endpoints on other
// segments, collinear overlaps, and vertical and zero length segments.
func Grid(rnd *rand.Rand, n int, size float64) []segint.Segment {
	m := max(1, int(size)) + 1
	segs := make([]segint.Segment, n)
	for i := range segs {
		x0, y0 := float64(rnd.IntN(m)), float64(rnd.IntN(m))
		x1, y1 := float64(rnd.IntN(m)), float64(rnd.IntN(m))
		segs[i] = segint.Seg(x0, y0, x1, y1)
	}
	return segs
}

// Star returns segments from the center outwards at equal angles, all sharing the center endpoint.
func Star(_ *rand.Rand, n int, size float64) []segint.Segment {
	center := segint.Point{size / 2.0, size / 2.0}
	segs := make([]segint.Segment, n)
	for i := range segs {
		theta := 2.0 * math.Pi * float64(i) / float64(n)
		end := segint.Point{center.X + size/2.0*math.Cos(theta), center.Y + size/2.0*math.Sin(theta)}
		if end.Less(center) {
			segs[i] = segint.Segment{end, center}
		} else {
			segs[i] = segint.Segment{center, end}
		}
	}
	return segs
}

// Circle returns random chords of the circle inscribed in the square, most of which cross each other.
func Circle(rnd *rand.Rand, n int, size float64) []segint.Segment {
	r := size / 2.0
	point := func() segint.Point {
		theta := 2.0 * math.Pi * rnd.Float64()
		return segint.Point{r + r*math.Cos(theta), r + r*math.Sin(theta)}
	}
	segs := make([]segint.Segment, n)
	for i := range segs {
		segs[i] = segint.Segment{point(), point()}
	}
	return segs
}

// Clustered returns short segments around a few random centers, with many intersections per cluster.
func Clustered(rnd *rand.Rand, n int, size float64) []segint.Segment {
	clusters := max(1, int(math.Sqrt(float64(n))/4.0))
	radius := 0.1 * size
	segs := make([]segint.Segment, 0, n)
	for k := 0; k < clusters; k++ {
		c := uniformPoint(rnd, 0.2*size, 0.2*size, 0.8*size, 0.8*size)
		m := n / clusters
		if k < n%clusters {
			m++
		}
		for i := 0; i < m; i++ {
			p := uniformPoint(rnd, c.X-radius, c.Y-radius, c.X+radius, c.Y+radius)
			q := uniformPoint(rnd, c.X-radius, c.Y-radius, c.X+radius, c.Y+radius)
			segs = append(segs, segint.Segment{p, q})
		}
	}
	return segs
}

// Parallel returns horizontal segments that are one float64 step apart, none of them intersect.
func Parallel(rnd *rand.Rand, n int, size float64) []segint.Segment {
	y := size / 2.0
	segs := make([]segint.Segment, n)
	for i := range segs {
		x0, x1 := 0.1*size*rnd.Float64(), size-0.1*size*rnd.Float64()
		segs[i] = segint.Seg(x0, y, x1, y)
		y = math.Nextafter(y, math.Inf(1))
	}
	return segs
}

// Shuffle returns the segments in random order.
func Shuffle(rnd *rand.Rand, segs []segint.Segment) []segint.Segment {
	segs = slices.Clone(segs)
	rnd.Shuffle(len(segs), func(i, j int) {
		segs[i], segs[j] = segs[j], segs[i]
	})
	return segs
}

// Scale extends or shrinks a segment from its start by the given factor. Zero length segments are returned
// unchanged.
func Scale(seg segint.Segment, factor float64) segint.Segment {
	if seg.Degenerate() {
		return seg
	}
	d := seg.End.Sub(seg.Start)
	return segint.Segment{seg.Start, seg.Start.Add(segint.Point{d.X * factor, d.Y * factor})}
}

// RandomizeLengths scales every segment by a factor drawn uniformly from [lo,hi].
func RandomizeLengths(rnd *rand.Rand, segs []segint.Segment, lo, hi float64) []segint.Segment {
	out := make([]segint.Segment, len(segs))
	for i, seg := range segs {
		out[i] = Scale(seg, lo+rnd.Float64()*(hi-lo))
	}
	return out
}
