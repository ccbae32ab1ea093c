package mapping

// Package mapping computes nearest-projection correspondences between two
// meshes and applies them to transfer per-vertex field data. The weight set
// is the only persistent state of a computed mapping; programming errors
// (mismatched sizes, mapping before computing) panic rather than returning
// errors, while degraded geometry (missing edges or triangles) is handled by
// the fallback cascade and logged as a warning.

// Constraint selects the transfer direction of a mapping. It is fixed when
// the mapping is created: it determines which mesh plays the origin role
// while weights are computed and how data is scattered when they are
// applied.
type Constraint int

const (
	// Consistent interpolates input values onto the output mesh. Smooth,
	// but the summed quantity is not conserved.
	Consistent Constraint = iota
	// Conservative scatters each input contribution onto the output mesh
	// with the transposed operator, conserving the summed quantity.
	Conservative
)

func (c Constraint) String() string {
	switch c {
	case Consistent:
		return "consistent"
	case Conservative:
		return "conservative"
	}
	return "unknown"
}

// InterpolationElement pairs a search-space vertex with its projection
// weight. The vertex is referenced by its stable ID (its index in the
// search-space mesh's vertex slice) so weight sets stay valid if vertex
// storage is relocated.
type InterpolationElement struct {
	VertexID int
	Weight   float64
}
