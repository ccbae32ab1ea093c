package mapping

import (
	"github.com/notargets/meshmap/geometry"
	"github.com/notargets/meshmap/mesh"
)

// Interpolation element generators: project a query point onto a single
// primitive and express it as a weighted combination of the primitive's
// vertices. Pure functions; out-of-primitive projections come back with
// negative weights and the caller decides acceptance.

// WeightTolerance is the acceptance slack for projections. A projection
// landing exactly on a primitive boundary can produce a weight like -1e-16
// from rounding; rejecting it into the fallback would be wrong, so weights
// down to -WeightTolerance count as inside and are clamped to zero when
// stored. The same tolerance decides whether a weight is zero during
// tagging.
const WeightTolerance = 1.e-13

// VertexInterpolation maps a query point to a single vertex with weight 1.
// This is the terminal fallback and is always acceptable.
func VertexInterpolation(v mesh.Vertex) []InterpolationElement {
	return []InterpolationElement{{VertexID: v.ID, Weight: 1.}}
}

// EdgeInterpolation projects p onto the infinite line through the edge's
// endpoints and returns weights (1-t, t). A degenerate edge yields weights
// that fail the acceptance test.
func EdgeInterpolation(p []float64, m *mesh.Mesh, e mesh.Edge) []InterpolationElement {
	a, b := m.Vertices[e.V[0]], m.Vertices[e.V[1]]
	t, ok := geometry.ProjectionParam(p, a.Coords, b.Coords)
	if !ok {
		return rejected(a.ID, b.ID)
	}
	return []InterpolationElement{
		{VertexID: a.ID, Weight: 1. - t},
		{VertexID: b.ID, Weight: t},
	}
}

// TriangleInterpolation returns the barycentric weights of p's in-plane
// projection; the three weights sum to 1 by construction. A degenerate
// triangle yields weights that fail the acceptance test.
func TriangleInterpolation(p []float64, m *mesh.Mesh, tri mesh.Triangle) []InterpolationElement {
	a, b, c := m.Vertices[tri.V[0]], m.Vertices[tri.V[1]], m.Vertices[tri.V[2]]
	u, v, w, ok := geometry.Barycentric(p, a.Coords, b.Coords, c.Coords)
	if !ok {
		return rejected(a.ID, b.ID, c.ID)
	}
	return []InterpolationElement{
		{VertexID: a.ID, Weight: u},
		{VertexID: b.ID, Weight: v},
		{VertexID: c.ID, Weight: w},
	}
}

// rejected builds a weight list no acceptance test can pass, used for
// degenerate primitives so the cascade moves on.
func rejected(ids ...int) []InterpolationElement {
	elems := make([]InterpolationElement, len(ids))
	for i, id := range ids {
		elems[i] = InterpolationElement{VertexID: id, Weight: -1.}
	}
	return elems
}

// accepted reports whether the projection lies on the primitive: every
// weight non-negative within tolerance.
func accepted(elems []InterpolationElement) bool {
	for _, el := range elems {
		if el.Weight < -WeightTolerance {
			return false
		}
	}
	return true
}

// clampWeights zeroes the tolerated boundary negatives so stored weight
// lists never contain negative entries.
func clampWeights(elems []InterpolationElement) []InterpolationElement {
	for i := range elems {
		if elems[i].Weight < 0 {
			elems[i].Weight = 0
		}
	}
	return elems
}
