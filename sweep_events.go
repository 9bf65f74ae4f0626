package segint

import (
	"fmt"
	"io"
	"strings"
)

// EventKind is the kind of a sweep event.
type EventKind int

// see EventKind, events at the same position are ordered by kind
const (
	StartEvent EventKind = iota
	EndEvent
	IntersectionEvent
)

func (v EventKind) String() string {
	switch v {
	case StartEvent:
		return "Start"
	case EndEvent:
		return "End"
	}
	return "Intersection"
}

// SweepEvent is an event of the sweep: the left (start) or right (end) endpoint of segment Seg, or a
// discovered intersection, for which Seg is -1.
type SweepEvent struct {
	Pos
	Kind EventKind
	Seg  int
}

func (e SweepEvent) String() string {
	if e.Kind == IntersectionEvent {
		return fmt.Sprintf("%v%v", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%v%v S%d", e.Kind, e.Pos, e.Seg)
}

func (a SweepEvent) less(b SweepEvent) bool {
	// sort left to right, then bottom to top
	if cmp := cmpPos(a.Pos, b.Pos); cmp != 0 {
		return cmp < 0
	} else if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Seg < b.Seg
}

// SweepEvents is a heap priority queue of sweep events.
type SweepEvents []SweepEvent

func (q SweepEvents) Less(i, j int) bool {
	return q[i].less(q[j])
}

func (q SweepEvents) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

// AddSegment adds the start and end events of segment seg. A degenerate segment gets both at the same
// position.
func (q *SweepEvents) AddSegment(seg int, s Segment) {
	*q = append(*q,
		SweepEvent{Pos: Pos{Point: s.Left()}, Kind: StartEvent, Seg: seg},
		SweepEvent{Pos: Pos{Point: s.Right()}, Kind: EndEvent, Seg: seg},
	)
}

// Init establishes the heap ordering after events have been added with AddSegment.
func (q SweepEvents) Init() {
	n := len(q)
	for i := n/2 - 1; 0 <= i; i-- {
		q.down(i, n)
	}
}

func (q *SweepEvents) Push(item SweepEvent) {
	*q = append(*q, item)
	q.up(len(*q) - 1)
}

// PopMin removes and returns the smallest event.
func (q *SweepEvents) PopMin() (SweepEvent, bool) {
	if len(*q) == 0 {
		return SweepEvent{}, false
	}
	n := len(*q) - 1
	q.Swap(0, n)
	q.down(0, n)

	item := (*q)[n]
	*q = (*q)[:n]
	return item, true
}

// Pop removes all events at the smallest position and appends them to events in order. They are processed
// together as one event point.
func (q *SweepEvents) Pop(events []SweepEvent) []SweepEvent {
	event, ok := q.PopMin()
	if !ok {
		return events
	}
	events = append(events, event)
	for 0 < len(*q) && cmpPos((*q)[0].Pos, event.Pos) == 0 {
		next, _ := q.PopMin()
		events = append(events, next)
	}
	return events
}

// from container/heap
func (q SweepEvents) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !q.Less(j, i) {
			break
		}
		q.Swap(i, j)
		j = i
	}
}

func (q SweepEvents) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if n <= j1 || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && q.Less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !q.Less(j, i) {
			break
		}
		q.Swap(i, j)
		i = j
	}
}

func (q SweepEvents) Print(w io.Writer) {
	q2 := make(SweepEvents, len(q))
	copy(q2, q)
	for k := 0; 0 < len(q2); k++ {
		event, _ := q2.PopMin()
		fmt.Fprintln(w, k, event)
	}
}

func (q SweepEvents) String() string {
	sb := strings.Builder{}
	q.Print(&sb)
	str := sb.String()
	if 0 < len(str) {
		str = str[:len(str)-1]
	}
	return str
}
