package geometry

import "gonum.org/v1/gonum/spatial/r3"

// Exact point-to-primitive distance kernels. Each kernel handles the three
// distance regimes: the nearest point lies in the interior of the primitive,
// on one of its edges, or on a vertex. Squared distances are returned so
// callers can compare without a square root on the hot path.

// PointSegmentDistSquared returns the squared distance from the point p to
// the segment ab. Works for any spatial dimension up to 3; a zero-length
// segment degenerates to the distance to the point a.
func PointSegmentDistSquared(dim int, p, a, b []float64) float64 {
	var abLen2, t float64
	for k := 0; k < dim; k++ {
		d := b[k] - a[k]
		abLen2 += d * d
		t += (p[k] - a[k]) * d
	}
	if abLen2 > 0 {
		t /= abLen2
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	} else {
		t = 0
	}
	var d2 float64
	for k := 0; k < dim; k++ {
		d := p[k] - (a[k] + t*(b[k]-a[k]))
		d2 += d * d
	}
	return d2
}

// vec3 adapts a coordinate slice to an r3 vector.
func vec3(p []float64) r3.Vec {
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

// PointTriangleDistSquared returns the squared distance from the 3D point p
// to the triangle abc. The closest point is found by classifying p against
// the triangle's Voronoi regions (vertex, edge and face regimes). A
// zero-area triangle falls back to the minimum of its edge distances.
func PointTriangleDistSquared(p, a, b, c []float64) float64 {
	return triangleDistSquared(vec3(p), vec3(a), vec3(b), vec3(c))
}

func triangleDistSquared(p, a, b, c r3.Vec) float64 {
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ap := r3.Sub(p, a)

	d1 := r3.Dot(ab, ap)
	d2 := r3.Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return r3.Norm2(ap) // vertex region a
	}

	bp := r3.Sub(p, b)
	d3 := r3.Dot(ab, bp)
	d4 := r3.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return r3.Norm2(bp) // vertex region b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 && d1 != d3 {
		t := d1 / (d1 - d3) // edge region ab
		return r3.Norm2(r3.Sub(p, r3.Add(a, r3.Scale(t, ab))))
	}

	cp := r3.Sub(p, c)
	d5 := r3.Dot(ab, cp)
	d6 := r3.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return r3.Norm2(cp) // vertex region c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 && d2 != d6 {
		t := d2 / (d2 - d6) // edge region ac
		return r3.Norm2(r3.Sub(p, r3.Add(a, r3.Scale(t, ac))))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 && (d4-d3)+(d5-d6) > 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6)) // edge region bc
		return r3.Norm2(r3.Sub(p, r3.Add(b, r3.Scale(t, r3.Sub(c, b)))))
	}

	denom := va + vb + vc
	if denom <= 0 {
		// Degenerate (zero-area) triangle: the face regime does not exist,
		// so the minimum over the three edges is the exact distance.
		d := segmentDistSquared(p, a, b)
		if e := segmentDistSquared(p, b, c); e < d {
			d = e
		}
		if e := segmentDistSquared(p, c, a); e < d {
			d = e
		}
		return d
	}

	// Interior (face) region: project with barycentric coordinates.
	v := vb / denom
	w := vc / denom
	q := r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac)))
	return r3.Norm2(r3.Sub(p, q))
}

func segmentDistSquared(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	ab2 := r3.Norm2(ab)
	var t float64
	if ab2 > 0 {
		t = r3.Dot(r3.Sub(p, a), ab) / ab2
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return r3.Norm2(r3.Sub(p, r3.Add(a, r3.Scale(t, ab))))
}

// PointQuadDistSquared returns the squared distance from the 3D point p to
// the quadrilateral abcd (vertices in perimeter order). The quad is split
// along the diagonal ac into the triangles abc and acd; for a planar quad
// the result is exact, for a warped bilinear quad it is the distance to this
// two-triangle linearization.
func PointQuadDistSquared(p, a, b, c, d []float64) float64 {
	pv, av, cv := vec3(p), vec3(a), vec3(c)
	d2 := triangleDistSquared(pv, av, vec3(b), cv)
	if e := triangleDistSquared(pv, av, cv, vec3(d)); e < d2 {
		d2 = e
	}
	return d2
}
