package walldist

import (
	"math"

	"github.com/thecaptainuniverse/SU2/geometry"
	"github.com/thecaptainuniverse/SU2/utils"
)

// LocalRank is the rank reported for elements owned by this worker. The
// rank field anticipates a distributed extension where each worker owns a
// disjoint shard of the wall geometry; in a single-process build it is
// always LocalRank.
const LocalRank = 0

// NearestResult identifies the wall sub-element closest to a query point.
type NearestResult struct {
	Distance float64
	MarkerID int
	ElemID   int
	RankID   int
}

// NearestElement returns the exact minimum distance from p to the indexed
// wall surface together with the identity of the closest element. The
// search is branch-and-bound: a subtree is skipped whenever the distance
// from p to its bounding box cannot beat the best distance found so far,
// and children are descended nearest-first to tighten the bound early.
// Ties keep the first sub-element reached, so repeated queries of the same
// immutable tree are bit-identical.
//
// Must not be called on an empty tree; callers check IsEmpty first.
func (t *ElemADT) NearestElement(p []float64) NearestResult {
	if t.IsEmpty() {
		panic("walldist: NearestElement on an empty tree")
	}

	best := nearestState{dist2: math.Inf(1), elem: -1}
	t.searchNode(t.root, p, &best)

	sub := &t.surf.SubElems[best.elem]
	return NearestResult{
		Distance: math.Sqrt(best.dist2),
		MarkerID: sub.MarkerID,
		ElemID:   sub.ElemID,
		RankID:   LocalRank,
	}
}

type nearestState struct {
	dist2 float64
	elem  int32
}

func (t *ElemADT) searchNode(ni int32, p []float64, best *nearestState) {
	n := &t.nodes[ni]
	if n.isLeaf() {
		for _, e := range t.order[n.first : n.first+n.count] {
			if d2 := t.subElemDistSquared(e, p); d2 < best.dist2 {
				best.dist2 = d2
				best.elem = e
			}
		}
		return
	}

	dl := t.nodes[n.left].box.DistSquaredToPoint(t.dim, p)
	dr := t.nodes[n.right].box.DistSquaredToPoint(t.dim, p)
	near, far := n.left, n.right
	dNear, dFar := dl, dr
	if dr < dl {
		near, far = n.right, n.left
		dNear, dFar = dr, dl
	}
	if dNear < best.dist2 {
		t.searchNode(near, p, best)
	}
	if dFar < best.dist2 {
		t.searchNode(far, p, best)
	}
}

// subElemDistSquared computes the exact squared distance from p to
// sub-element e, dispatching on the closed shape-tag set.
func (t *ElemADT) subElemDistSquared(e int32, p []float64) float64 {
	sub := &t.surf.SubElems[e]
	switch sub.Kind {
	case utils.Line:
		return geometry.PointSegmentDistSquared(t.dim, p,
			t.surf.Vertex(sub.Nodes[0]), t.surf.Vertex(sub.Nodes[1]))
	case utils.Tri:
		return geometry.PointTriangleDistSquared(p,
			t.surf.Vertex(sub.Nodes[0]), t.surf.Vertex(sub.Nodes[1]),
			t.surf.Vertex(sub.Nodes[2]))
	case utils.Quad:
		return geometry.PointQuadDistSquared(p,
			t.surf.Vertex(sub.Nodes[0]), t.surf.Vertex(sub.Nodes[1]),
			t.surf.Vertex(sub.Nodes[2]), t.surf.Vertex(sub.Nodes[3]))
	}
	panic("walldist: unknown sub-element shape")
}
