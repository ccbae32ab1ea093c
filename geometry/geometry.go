package geometry

import "math"

// Kernels for projecting a query point onto mesh primitives in 2D or 3D.
// Points are coordinate slices of length 2 or 3; all distances are squared
// Euclidean distances, which keeps them directly usable as kd-tree metrics.

// DegenTol guards the denominators of the projection formulas. A primitive
// whose squared length / Gram determinant falls below it has no usable
// projection.
const DegenTol = 1.e-12

func dot(a, b []float64) (s float64) {
	for i := range a {
		s += a[i] * b[i]
	}
	return
}

func diff(a, b []float64) (d []float64) {
	d = make([]float64, len(a))
	for i := range a {
		d[i] = a[i] - b[i]
	}
	return
}

// DistSq returns the squared distance between two points
func DistSq(p, q []float64) (d float64) {
	for i := range p {
		dd := p[i] - q[i]
		d += dd * dd
	}
	return
}

// ProjectionParam returns the parameter t of the perpendicular projection of
// p onto the infinite line through a and b, so that the projected point is
// a + t*(b-a). t outside [0,1] means the projection falls beyond the
// segment. ok is false for a degenerate (zero length) segment.
func ProjectionParam(p, a, b []float64) (t float64, ok bool) {
	ab := diff(b, a)
	den := dot(ab, ab)
	if den < DegenTol {
		return 0, false
	}
	t = dot(diff(p, a), ab) / den
	return t, true
}

// Barycentric returns the barycentric coordinates (u,v,w) of the projection
// of p onto the plane of triangle (a,b,c), satisfying
//
//	proj(p) = u*a + v*b + w*c,  u+v+w = 1
//
// Negative components mean the projection lies outside the triangle. ok is
// false for a degenerate (zero area) triangle.
func Barycentric(p, a, b, c []float64) (u, v, w float64, ok bool) {
	v0 := diff(b, a)
	v1 := diff(c, a)
	v2 := diff(p, a)
	d00 := dot(v0, v0)
	d01 := dot(v0, v1)
	d11 := dot(v1, v1)
	d20 := dot(v2, v0)
	d21 := dot(v2, v1)
	den := d00*d11 - d01*d01
	if math.Abs(den) < DegenTol {
		return 0, 0, 0, false
	}
	v = (d11*d20 - d01*d21) / den
	w = (d00*d21 - d01*d20) / den
	u = 1. - v - w
	return u, v, w, true
}

// DistToEdgeSq returns the squared distance from p to the closest point on
// segment (a,b).
func DistToEdgeSq(p, a, b []float64) float64 {
	t, ok := ProjectionParam(p, a, b)
	if !ok {
		return DistSq(p, a)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := make([]float64, len(a))
	for i := range a {
		closest[i] = a[i] + t*(b[i]-a[i])
	}
	return DistSq(p, closest)
}

// DistToTriangleSq returns the squared distance from p to the closest point
// on triangle (a,b,c). When the in-plane projection falls inside the
// triangle this is the distance to the plane, otherwise the closest point
// lies on one of the edges.
func DistToTriangleSq(p, a, b, c []float64) float64 {
	u, v, w, ok := Barycentric(p, a, b, c)
	if ok && u >= 0 && v >= 0 && w >= 0 {
		closest := make([]float64, len(a))
		for i := range a {
			closest[i] = u*a[i] + v*b[i] + w*c[i]
		}
		return DistSq(p, closest)
	}
	d := DistToEdgeSq(p, a, b)
	if d2 := DistToEdgeSq(p, b, c); d2 < d {
		d = d2
	}
	if d2 := DistToEdgeSq(p, c, a); d2 < d {
		d = d2
	}
	return d
}

// Centroid returns the arithmetic mean of the given points
func Centroid(points ...[]float64) (c []float64) {
	c = make([]float64, len(points[0]))
	for _, p := range points {
		for i := range p {
			c[i] += p[i]
		}
	}
	for i := range c {
		c[i] /= float64(len(points))
	}
	return
}
