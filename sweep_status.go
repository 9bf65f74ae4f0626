package segint

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// SweepNode is a node of the sweep status holding segment index Seg.
type SweepNode struct {
	parent, left, right *SweepNode
	height              int

	Seg int
}

func (n *SweepNode) Prev() *SweepNode {
	// go left
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right // find the right-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.left == n {
		n = n.parent // find first parent for which we're right
	}
	return n.parent // can be nil
}

func (n *SweepNode) Next() *SweepNode {
	// go right
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left // find the left-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.right == n {
		n = n.parent // find first parent for which we're left
	}
	return n.parent // can be nil
}

func (n *SweepNode) balance() int {
	r := 0
	if n.left != nil {
		r -= n.left.height
	}
	if n.right != nil {
		r += n.right.height
	}
	return r
}

func (n *SweepNode) updateHeight() {
	n.height = 0
	if n.left != nil {
		n.height = n.left.height
	}
	if n.right != nil && n.height < n.right.height {
		n.height = n.right.height
	}
	n.height++
}

func (n *SweepNode) swapChild(a, b *SweepNode) {
	if n.right == a {
		n.right = b
	} else {
		n.left = b
	}
	if b != nil {
		b.parent = n
	}
}

func (a *SweepNode) rotateLeft() *SweepNode {
	b := a.right
	if a.parent != nil {
		a.parent.swapChild(a, b)
	} else {
		b.parent = nil
	}
	a.parent = b
	if a.right = b.left; a.right != nil {
		a.right.parent = a
	}
	b.left = a
	return b
}

func (a *SweepNode) rotateRight() *SweepNode {
	b := a.left
	if a.parent != nil {
		a.parent.swapChild(a, b)
	} else {
		b.parent = nil
	}
	a.parent = b
	if a.left = b.right; a.left != nil {
		a.left.parent = a
	}
	b.right = a
	return b
}

func (n *SweepNode) Print(w io.Writer, indent int) {
	if n.right != nil {
		n.right.Print(w, indent+1)
	} else if n.left != nil {
		fmt.Fprintf(w, "%vnil\n", strings.Repeat("  ", indent+1))
	}
	fmt.Fprintf(w, "%vS%d\n", strings.Repeat("  ", indent), n.Seg)
	if n.left != nil {
		n.left.Print(w, indent+1)
	} else if n.right != nil {
		fmt.Fprintf(w, "%vnil\n", strings.Repeat("  ", indent+1))
	}
}

// SweepStatus is the active set of segments crossing the sweep line, ordered from bottom to top. It is an
// AVL tree of segment indices. Segments are compared at the current sweep position, keys are never cached.
type SweepStatus struct {
	root  *SweepNode
	nodes []*SweepNode // segment index to node, nil when not in the status
	size  int
	segs  []Segment // oriented from left to right
	pos   Pos
	pool  *sync.Pool
}

// NewSweepStatus returns an empty status for the given segments.
func NewSweepStatus(segs []Segment) *SweepStatus {
	lines := make([]Segment, len(segs))
	for i, seg := range segs {
		lines[i] = Segment{seg.Left(), seg.Right()}
	}
	return &SweepStatus{
		nodes: make([]*SweepNode, len(segs)),
		segs:  lines,
		pool:  &sync.Pool{New: func() any { return &SweepNode{} }},
	}
}

// MoveTo sets the current sweep position. Moving the position must not change the order of the segments
// in the status, ie. crossing segments must be swapped or reinserted at their intersection.
func (s *SweepStatus) MoveTo(pos Pos) {
	s.pos = pos
}

// Pos returns the current sweep position.
func (s *SweepStatus) Pos() Pos {
	return s.pos
}

// contains returns true if segment seg passes through the current position.
func (s *SweepStatus) contains(seg int) bool {
	return orientPos(s.segs[seg].Start, s.segs[seg].End, s.pos) == 0
}

// compare returns the order of segment a with respect to segment b at the current position, where a passes
// through the current position. Segments through the same point are ordered by their direction to the right
// of it, vertical segments are above all others.
func (s *SweepStatus) compare(a, b int) int {
	if a == b {
		return 0
	}
	sa, sb := s.segs[a], s.segs[b]
	if o := orientPos(sb.Start, sb.End, s.pos); o != 0 {
		return o
	} else if o := crossSign(sb.Start, sb.End, sa.Start, sa.End); o != 0 {
		return o
	} else if a < b {
		return -1
	}
	return 1
}

func (s *SweepStatus) newNode(seg int) *SweepNode {
	n := s.pool.Get().(*SweepNode)
	n.parent = nil
	n.left = nil
	n.right = nil
	n.height = 1
	n.Seg = seg
	s.nodes[seg] = n
	return n
}

func (s *SweepStatus) returnNode(n *SweepNode) {
	s.nodes[n.Seg] = nil
	n.parent, n.left, n.right = nil, nil, nil // help the GC
	s.pool.Put(n)
}

func (s *SweepStatus) rebalance(n *SweepNode) {
	for {
		oheight := n.height
		if balance := n.balance(); balance == 2 {
			// Tree is excessively right-heavy, rotate it to the left.
			if n.right != nil && n.right.balance() < 0 {
				// Right tree is left-heavy, which would cause the next rotation to result in
				// overall left-heaviness. Rotate the right tree to the right to counteract this.
				n.right = n.right.rotateRight()
				n.right.right.updateHeight()
			}
			n = n.rotateLeft()
			n.left.updateHeight()
		} else if balance == -2 {
			// Tree is excessively left-heavy, rotate it to the right
			if n.left != nil && n.left.balance() > 0 {
				// The left tree is right-heavy, which would cause the next rotation to result in
				// overall right-heaviness. Rotate the left tree to the left to compensate.
				n.left = n.left.rotateLeft()
				n.left.left.updateHeight()
			}
			n = n.rotateRight()
			n.right.updateHeight()
		} else if balance < -2 || 2 < balance {
			panic(preconditionf("sweep status tree too far out of shape"))
		}

		n.updateHeight()
		if n.parent == nil {
			s.root = n
			return
		}
		if oheight == n.height {
			return
		}
		n = n.parent
	}
}

func (s *SweepStatus) String() string {
	if s.root == nil {
		return "nil"
	}

	sb := strings.Builder{}
	s.root.Print(&sb, 0)
	str := sb.String()
	if 0 < len(str) {
		str = str[:len(str)-1]
	}
	return str
}

// Len returns the number of segments in the status.
func (s *SweepStatus) Len() int {
	return s.size
}

func (s *SweepStatus) First() *SweepNode {
	if s.root == nil {
		return nil
	}
	n := s.root
	for n.left != nil {
		n = n.left
	}
	return n
}

func (s *SweepStatus) Last() *SweepNode {
	if s.root == nil {
		return nil
	}
	n := s.root
	for n.right != nil {
		n = n.right
	}
	return n
}

// Node returns the node of segment seg, or nil if it is not in the status.
func (s *SweepStatus) Node(seg int) *SweepNode {
	return s.nodes[seg]
}

// Neighbors returns the nodes directly below and above segment seg. Either may be nil.
func (s *SweepStatus) Neighbors(seg int) (*SweepNode, *SweepNode) {
	n := s.nodes[seg]
	if n == nil {
		return nil, nil
	}
	return n.Prev(), n.Next()
}

// Segments returns the segment indices from bottom to top.
func (s *SweepStatus) Segments() []int {
	segs := make([]int, 0, s.size)
	for n := s.First(); n != nil; n = n.Next() {
		segs = append(segs, n.Seg)
	}
	return segs
}

// Search returns the lowest node for which f is true, or nil. The function f must be false for a bottom
// run of the status and true for the remainder.
func (s *SweepStatus) Search(f func(seg int) bool) *SweepNode {
	var found *SweepNode
	n := s.root
	for n != nil {
		if f(n.Seg) {
			found = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return found
}

// Bracket returns the lowest and highest node of the segments through the current position, or nil if there
// are none, and the nodes directly below and above them. If no segment passes through the position, below
// and above are the segments around it.
func (s *SweepStatus) Bracket() (below, lowest, highest, above *SweepNode) {
	n := s.Search(func(seg int) bool {
		return orientPos(s.segs[seg].Start, s.segs[seg].End, s.pos) <= 0
	})
	if n == nil || !s.contains(n.Seg) {
		if n == nil {
			return s.Last(), nil, nil, nil
		}
		return n.Prev(), nil, nil, n
	}

	lowest, highest = n, n
	for next := highest.Next(); next != nil && s.contains(next.Seg); next = highest.Next() {
		highest = next
	}
	return lowest.Prev(), lowest, highest, highest.Next()
}

// Insert adds segment seg at its place at the current sweep position, which must lie on the segment.
func (s *SweepStatus) Insert(seg int) *SweepNode {
	if s.nodes[seg] != nil {
		panic(preconditionf("segment %d inserted twice", seg))
	} else if s.root == nil {
		s.root = s.newNode(seg)
		s.size++
		return s.root
	}

	n := s.root
	for {
		cmp := s.compare(seg, n.Seg)
		if cmp < 0 {
			if n.left == nil {
				n.left = s.newNode(seg)
				n.left.parent = n
				n = n.left
				break
			}
			n = n.left
		} else if 0 < cmp {
			if n.right == nil {
				n.right = s.newNode(seg)
				n.right.parent = n
				n = n.right
				break
			}
			n = n.right
		} else {
			panic(preconditionf("segments %d and %d compare equal", seg, n.Seg))
		}
	}
	s.size++
	s.rebalance(n.parent)
	return n
}

// Remove removes segment seg.
func (s *SweepStatus) Remove(seg int) {
	n := s.nodes[seg]
	if n == nil {
		panic(preconditionf("segment %d not in sweep status", seg))
	}

	var o *SweepNode
	for {
		if n.left == nil && n.right == nil {
			o = n.parent
			if o != nil {
				o.swapChild(n, nil)
				s.rebalance(o)
			} else {
				s.root = nil
			}
			s.returnNode(n)
			s.size--
			return
		} else if n.right != nil {
			o = n.right
			for o.left != nil {
				o = o.left
			}
		} else {
			o = n.left
			for o.right != nil {
				o = o.right
			}
		}
		// move the segment down to a leaf, its neighbor in order takes its place
		n.Seg, o.Seg = o.Seg, n.Seg
		s.nodes[n.Seg], s.nodes[o.Seg] = n, o
		n = o
	}
}

// Swap exchanges the positions of segments a and b, used when two neighbors cross.
func (s *SweepStatus) Swap(a, b int) {
	na, nb := s.nodes[a], s.nodes[b]
	if na == nil || nb == nil {
		panic(preconditionf("swap of segments %d and %d not in sweep status", a, b))
	}
	na.Seg, nb.Seg = b, a
	s.nodes[a], s.nodes[b] = nb, na
}
