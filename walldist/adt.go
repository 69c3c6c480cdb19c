package walldist

import (
	"fmt"
	"math"
	"sort"

	"github.com/thecaptainuniverse/SU2/geometry"
)

// leafSize is the maximum number of sub-elements stored per leaf node.
const leafSize = 4

// noChild marks a node index slot with no referent.
const noChild = int32(-1)

// adtNode is one node of the alternating-digital-tree of bounding boxes.
// Nodes live in a flat arena and reference their children by index, so the
// whole tree is a pair of slices that can be shared read-only across
// goroutines. Every node covers the contiguous sub-element range
// order[first : first+count]; a leaf has left == noChild.
type adtNode struct {
	box          geometry.Box
	left, right  int32
	axis         int8 // split axis of an internal node
	first, count int32
}

func (n *adtNode) isLeaf() bool { return n.left == noChild }

// ElemADT is a static tree of axis-aligned bounding boxes over the linear
// sub-elements of the wall surface. It is built once and never mutated
// afterwards, so any number of goroutines may query it concurrently without
// synchronization.
type ElemADT struct {
	dim   int
	surf  *Extraction
	boxes []geometry.Box // one tight box per sub-element
	order []int32        // permutation of sub-element indices; leaves own ranges of it
	nodes []adtNode
	root  int32
}

// NewElemADT builds the bounding-box tree over an extracted wall surface.
// Construction never fails: zero sub-elements yield an explicitly empty
// tree and degenerate (zero-area) sub-elements contribute degenerate but
// valid boxes.
func NewElemADT(surf *Extraction) *ElemADT {
	t := &ElemADT{
		dim:  surf.Dim,
		surf: surf,
		root: noChild,
	}
	n := len(surf.SubElems)
	if n == 0 {
		return t
	}

	t.boxes = make([]geometry.Box, n)
	t.order = make([]int32, n)
	for i := range surf.SubElems {
		sub := &surf.SubElems[i]
		box := geometry.EmptyBox(t.dim)
		for k := 0; k < sub.NumNodes(); k++ {
			box.ExtendPoint(t.dim, surf.Vertex(sub.Nodes[k]))
		}
		t.boxes[i] = box
		t.order[i] = int32(i)
	}

	// Binary partitioning never needs more than 2n-1 nodes.
	t.nodes = make([]adtNode, 0, 2*n-1)
	t.root = t.build(0, n)
	return t
}

// build partitions order[lo:hi] and returns the arena index of the subtree
// root. Splitting is by the median box center along the axis of greatest
// extent, giving a balanced tree with deterministic construction.
func (t *ElemADT) build(lo, hi int) int32 {
	box := geometry.EmptyBox(t.dim)
	for _, e := range t.order[lo:hi] {
		box.ExtendBox(t.dim, t.boxes[e])
	}

	ni := int32(len(t.nodes))
	t.nodes = append(t.nodes, adtNode{
		box: box, left: noChild, right: noChild,
		first: int32(lo), count: int32(hi - lo),
	})

	if hi-lo <= leafSize {
		return ni
	}

	axis := box.LongestAxis(t.dim)
	part := t.order[lo:hi]
	sort.SliceStable(part, func(i, j int) bool {
		return t.boxes[part[i]].Center(axis) < t.boxes[part[j]].Center(axis)
	})
	mid := lo + (hi-lo)/2

	left := t.build(lo, mid)
	right := t.build(mid, hi)
	t.nodes[ni].left = left
	t.nodes[ni].right = right
	t.nodes[ni].axis = int8(axis)
	return ni
}

// IsEmpty reports whether the tree indexes no wall surface at all. Callers
// must check this before querying; with no viscous walls present every wall
// distance is zero by definition.
func (t *ElemADT) IsEmpty() bool {
	return t.root == noChild
}

// Len returns the number of indexed sub-elements.
func (t *ElemADT) Len() int {
	return len(t.boxes)
}

// Bounds returns the bounding box of the whole indexed surface. Only valid
// on a non-empty tree.
func (t *ElemADT) Bounds() geometry.Box {
	return t.nodes[t.root].box
}

// Verify walks the tree and checks its structural invariants: every node's
// box contains its children (or its leaf sub-elements) with zero tolerance,
// internal children split along the recorded axis, and the leaf ranges
// partition the element order exactly.
func (t *ElemADT) Verify() error {
	if t.IsEmpty() {
		if len(t.nodes) != 0 || len(t.order) != 0 {
			return fmt.Errorf("empty tree holds %d nodes and %d ordered elements", len(t.nodes), len(t.order))
		}
		return nil
	}
	seen := make([]bool, len(t.order))
	total, err := t.verifyNode(t.root, seen)
	if err != nil {
		return err
	}
	if total != len(t.order) {
		return fmt.Errorf("leaves own %d sub-elements, tree indexes %d", total, len(t.order))
	}
	for i, s := range seen {
		if !s {
			return fmt.Errorf("sub-element order slot %d not owned by any leaf", i)
		}
	}
	return nil
}

func (t *ElemADT) verifyNode(ni int32, seen []bool) (int, error) {
	n := &t.nodes[ni]
	if n.isLeaf() {
		if n.count == 0 {
			return 0, fmt.Errorf("node %d is an empty leaf", ni)
		}
		for _, slot := range t.order[n.first : n.first+n.count] {
			if !n.box.ContainsBox(t.dim, t.boxes[slot]) {
				return 0, fmt.Errorf("leaf %d does not contain sub-element %d", ni, slot)
			}
		}
		for i := n.first; i < n.first+n.count; i++ {
			if seen[i] {
				return 0, fmt.Errorf("order slot %d owned by more than one leaf", i)
			}
			seen[i] = true
		}
		return int(n.count), nil
	}

	for _, child := range []int32{n.left, n.right} {
		if child < 0 || int(child) >= len(t.nodes) {
			return 0, fmt.Errorf("node %d has child index %d out of range", ni, child)
		}
		if !n.box.ContainsBox(t.dim, t.nodes[child].box) {
			return 0, fmt.Errorf("node %d does not contain child %d", ni, child)
		}
	}
	left, right := &t.nodes[n.left], &t.nodes[n.right]
	if left.first != n.first || left.count+right.count != n.count || right.first != n.first+left.count {
		return 0, fmt.Errorf("node %d children do not tile its range [%d,%d)", ni, n.first, n.first+n.count)
	}
	axis := int(n.axis)
	maxLeft, minRight := math.Inf(-1), math.Inf(1)
	for _, slot := range t.order[left.first : left.first+left.count] {
		if c := t.boxes[slot].Center(axis); c > maxLeft {
			maxLeft = c
		}
	}
	for _, slot := range t.order[right.first : right.first+right.count] {
		if c := t.boxes[slot].Center(axis); c < minRight {
			minRight = c
		}
	}
	if maxLeft > minRight {
		return 0, fmt.Errorf("node %d children overlap along split axis %d", ni, axis)
	}

	nl, err := t.verifyNode(n.left, seen)
	if err != nil {
		return 0, err
	}
	nr, err := t.verifyNode(n.right, seen)
	if err != nil {
		return 0, err
	}
	return nl + nr, nil
}

// String returns a short summary of the tree shape.
func (t *ElemADT) String() string {
	if t.IsEmpty() {
		return "elem ADT: empty"
	}
	leaves, depth := 0, 0
	var walk func(ni int32, d int)
	walk = func(ni int32, d int) {
		if d > depth {
			depth = d
		}
		n := &t.nodes[ni]
		if n.isLeaf() {
			leaves++
			return
		}
		walk(n.left, d+1)
		walk(n.right, d+1)
	}
	walk(t.root, 0)
	return fmt.Sprintf("elem ADT: %d sub-elements, %d nodes (%d leaves), depth %d",
		t.Len(), len(t.nodes), leaves, depth)
}
