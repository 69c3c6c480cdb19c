// Package geometry provides the axis-aligned bounding boxes and the exact
// point-to-primitive distance kernels used by the wall-distance search tree.
package geometry

import "math"

// Box is an axis-aligned bounding box. Only the first dim axes are
// meaningful; the remaining components stay at their zero value. Boxes are
// plain values so that search-tree nodes can embed them without per-node
// heap allocation.
type Box struct {
	Min, Max [3]float64
}

// EmptyBox returns a box that contains nothing: extending it with any point
// yields the degenerate box of that point.
func EmptyBox(dim int) Box {
	var b Box
	for k := 0; k < dim; k++ {
		b.Min[k] = math.Inf(1)
		b.Max[k] = math.Inf(-1)
	}
	return b
}

// ExtendPoint grows the box to contain the point p.
func (b *Box) ExtendPoint(dim int, p []float64) {
	for k := 0; k < dim; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

// ExtendBox grows the box to the tight union with o.
func (b *Box) ExtendBox(dim int, o Box) {
	for k := 0; k < dim; k++ {
		if o.Min[k] < b.Min[k] {
			b.Min[k] = o.Min[k]
		}
		if o.Max[k] > b.Max[k] {
			b.Max[k] = o.Max[k]
		}
	}
}

// ContainsPoint reports whether p lies inside the box (boundary inclusive,
// zero tolerance).
func (b *Box) ContainsPoint(dim int, p []float64) bool {
	for k := 0; k < dim; k++ {
		if p[k] < b.Min[k] || p[k] > b.Max[k] {
			return false
		}
	}
	return true
}

// ContainsBox reports whether o lies entirely inside the box.
func (b *Box) ContainsBox(dim int, o Box) bool {
	for k := 0; k < dim; k++ {
		if o.Min[k] < b.Min[k] || o.Max[k] > b.Max[k] {
			return false
		}
	}
	return true
}

// Center returns the box center coordinate along the given axis.
func (b *Box) Center(axis int) float64 {
	return 0.5 * (b.Min[axis] + b.Max[axis])
}

// LongestAxis returns the axis along which the box has its greatest extent.
func (b *Box) LongestAxis(dim int) int {
	axis := 0
	ext := b.Max[0] - b.Min[0]
	for k := 1; k < dim; k++ {
		if e := b.Max[k] - b.Min[k]; e > ext {
			ext = e
			axis = k
		}
	}
	return axis
}

// DistSquaredToPoint returns the squared Euclidean distance from p to the
// nearest point of the box: zero when p is inside, otherwise the distance
// to the nearest face, edge or corner. This is the lower bound used to
// prune subtrees during the nearest-element search.
func (b *Box) DistSquaredToPoint(dim int, p []float64) float64 {
	var d2 float64
	for k := 0; k < dim; k++ {
		if d := b.Min[k] - p[k]; d > 0 {
			d2 += d * d
		} else if d := p[k] - b.Max[k]; d > 0 {
			d2 += d * d
		}
	}
	return d2
}

// DiagonalSquared returns the squared length of the box diagonal, an upper
// bound on any distance between two points inside the box.
func (b *Box) DiagonalSquared(dim int) float64 {
	var d2 float64
	for k := 0; k < dim; k++ {
		d := b.Max[k] - b.Min[k]
		d2 += d * d
	}
	return d2
}
