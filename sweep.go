package segint

import (
	"context"
	"fmt"
	"iter"
	"slices"
)

// Pair is an intersection between input segments A and B, with A < B.
type Pair struct {
	A, B       int
	SegA, SegB Segment
	Intersection
}

func (p Pair) String() string {
	return fmt.Sprintf("S%d×S%d %v", p.A, p.B, p.Intersection)
}

type segmentPair [2]int

// Sweeper finds all intersections between a set of segments with a Bentley-Ottmann plane sweep from left to
// right. Intersections are produced lazily per event point, and the sweep can be consumed only once.
type Sweeper struct {
	segs    []Segment
	queue   SweepEvents
	status  *SweepStatus
	handled map[segmentPair]bool

	// buffers for the current event point
	events            []SweepEvent
	starts, points    []int
	ends, run, active []int

	pending []Pair
	cur     int
}

// NewSweeper returns a sweeper over the given segments. It returns an error wrapping ErrInvalidInput if any
// coordinate is not finite, before doing any work.
func NewSweeper(segs []Segment) (*Sweeper, error) {
	if err := Validate(segs); err != nil {
		return nil, err
	}

	queue := make(SweepEvents, 0, 2*len(segs))
	for i, seg := range segs {
		queue.AddSegment(i, seg)
	}
	queue.Init()
	return &Sweeper{
		segs:    segs,
		queue:   queue,
		status:  NewSweepStatus(segs),
		handled: map[segmentPair]bool{},
	}, nil
}

// Next returns the next intersection, or false when the sweep is done.
func (s *Sweeper) Next() (Pair, bool) {
	for len(s.pending) <= s.cur {
		s.pending = s.pending[:0]
		s.cur = 0
		if !s.step() {
			return Pair{}, false
		}
	}
	pair := s.pending[s.cur]
	s.cur++
	return pair, true
}

// All returns an iterator over the remaining intersections.
func (s *Sweeper) All() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for {
			pair, ok := s.Next()
			if !ok || !yield(pair) {
				return
			}
		}
	}
}

// Walk calls fn for every remaining intersection. The context is checked between event points, Walk returns
// ctx.Err() once the context is done. An error returned by fn stops the sweep and is returned.
func (s *Sweeper) Walk(ctx context.Context, fn func(Pair) error) error {
	for {
		for ; s.cur < len(s.pending); s.cur++ {
			if err := fn(s.pending[s.cur]); err != nil {
				s.cur++
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.pending = s.pending[:0]
		s.cur = 0
		if !s.step() {
			return nil
		}
	}
}

// Intersections returns all intersections between the segments.
func Intersections(segs []Segment) ([]Pair, error) {
	sweeper, err := NewSweeper(segs)
	if err != nil {
		return nil, err
	}
	return slices.Collect(sweeper.All()), nil
}

// Count returns the number of intersection points between the segments, where an overlap counts as two.
func Count(segs []Segment) (int, error) {
	sweeper, err := NewSweeper(segs)
	if err != nil {
		return 0, err
	}
	n := 0
	for pair := range sweeper.All() {
		n += pair.Weight()
	}
	return n, nil
}

// endsAt returns true if the right endpoint of the oriented segment is at the position.
func endsAt(seg Segment, pos Pos) bool {
	return pos.r == nil && seg.End.Equals(pos.Point)
}

// step processes the next event point, it returns false if there is none.
func (s *Sweeper) step() bool {
	s.events = s.queue.Pop(s.events[:0])
	if len(s.events) == 0 {
		if s.status.Len() != 0 {
			panic(preconditionf("sweep status not empty after the sweep: %v", s.status.Segments()))
		}
		return false
	}

	// a rational position is never equal to an endpoint, all events at an exact position are exact
	pos := s.events[0].Pos
	s.status.MoveTo(pos)
	lines := s.status.segs

	s.starts, s.points, s.ends = s.starts[:0], s.points[:0], s.ends[:0]
	for _, event := range s.events {
		if event.Kind == IntersectionEvent {
			continue
		} else if lines[event.Seg].Degenerate() {
			if event.Kind == StartEvent {
				s.points = append(s.points, event.Seg)
			}
		} else if event.Kind == StartEvent {
			s.starts = append(s.starts, event.Seg)
		} else {
			s.ends = append(s.ends, event.Seg)
		}
	}

	// the run of segments through the position, ending there or passing it
	_, lowest, highest, _ := s.status.Bracket()
	s.run = s.run[:0]
	if lowest != nil {
		for n := lowest; ; n = n.Next() {
			s.run = append(s.run, n.Seg)
			if n == highest {
				break
			}
		}
	}
	for _, seg := range s.ends {
		if s.status.Node(seg) == nil || !s.status.contains(seg) {
			panic(preconditionf("segment %d ends at %v but is not in the sweep status at its position", seg, pos))
		}
	}

	// all segments through the position intersect there
	s.active = append(s.active[:0], s.run...)
	s.active = append(s.active, s.starts...)
	s.active = append(s.active, s.points...)
	if 1 < len(s.active) {
		slices.Sort(s.active)
		for i, a := range s.active {
			for _, b := range s.active[i+1:] {
				s.report(a, b, pos)
			}
		}
	}

	// two segments crossing at a point are swapped, otherwise all segments through the position are
	// reinserted in their order to the right of it
	if len(s.starts) == 0 && len(s.points) == 0 && len(s.run) == 2 {
		a, b := lines[s.run[0]], lines[s.run[1]]
		if !endsAt(a, pos) && !endsAt(b, pos) && crossSign(a.Start, a.End, b.Start, b.End) != 0 {
			s.status.Swap(s.run[0], s.run[1])
			s.checkBracket()
			return true
		}
	}
	for _, seg := range s.run {
		s.status.Remove(seg)
	}
	for _, seg := range s.run {
		if !endsAt(lines[seg], pos) {
			s.status.Insert(seg)
		}
	}
	for _, seg := range s.starts {
		s.status.Insert(seg)
	}
	s.checkBracket()
	return true
}

// checkBracket checks the segments through the current position for intersections with their outer
// neighbors, or the neighbors around the position against each other if there are none.
func (s *Sweeper) checkBracket() {
	below, lowest, highest, above := s.status.Bracket()
	if lowest == nil {
		s.check(below, above)
		return
	}
	s.check(below, lowest)
	s.check(highest, above)
}

// check tests two neighboring segments and schedules their intersection if it lies to the right of the
// current position. Each pair is tested only once.
func (s *Sweeper) check(na, nb *SweepNode) {
	if na == nil || nb == nil {
		return
	}
	a, b := na.Seg, nb.Seg
	if b < a {
		a, b = b, a
	}
	key := segmentPair{a, b}
	if s.handled[key] {
		return
	}
	s.handled[key] = true

	la, lb := s.status.segs[a], s.status.segs[b]
	z, pos := intersect(la.Start, la.End, lb.Start, lb.End)
	if z.Kind == SinglePoint && 0 < cmpPos(pos, s.status.pos) {
		s.queue.Push(SweepEvent{Pos: pos, Kind: IntersectionEvent, Seg: -1})
	}
}

// report adds the intersection of segments a < b, which both pass through the current position.
func (s *Sweeper) report(a, b int, pos Pos) {
	la, lb := s.status.segs[a], s.status.segs[b]
	var z Intersection
	if crossSign(la.Start, la.End, lb.Start, lb.End) == 0 {
		// collinear or degenerate, the overlap is reported once at its left endpoint
		start, end := la.Start, la.End
		if start.Less(lb.Start) {
			start = lb.Start
		}
		if lb.End.Less(end) {
			end = lb.End
		}
		if start.Equals(end) {
			z = Intersection{Kind: SinglePoint, Point: start}
		} else if pos.r == nil && start.Equals(pos.Point) {
			z = Intersection{Kind: Collinear, Overlap: Segment{start, end}}
		} else {
			return
		}
	} else {
		endpoint := pos.r == nil && (la.Start.Equals(pos.Point) || la.End.Equals(pos.Point) ||
			lb.Start.Equals(pos.Point) || lb.End.Equals(pos.Point))
		z = Intersection{Kind: SinglePoint, Point: pos.Point, Proper: !endpoint}
	}
	s.pending = append(s.pending, Pair{
		A:            a,
		B:            b,
		SegA:         s.segs[a],
		SegB:         s.segs[b],
		Intersection: z,
	})
}
