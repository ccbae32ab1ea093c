package mapping

import (
	"github.com/james-bowman/sparse"
)

// Operator exports the computed weight set as a sparse matrix A acting on
// per-vertex scalars, out = A*in, with rows indexed by output-mesh vertices
// and columns by input-mesh vertices. The conservative operator is the
// transpose of the consistent one by construction. Returns nil when either
// mesh has no vertices. Map and Operator agree: applying A to a
// single-component field reproduces Map on a zeroed destination.
func (npm *NearestProjectionMapping) Operator() *sparse.CSR {
	if !npm.hasComputedMapping {
		panic("Operator called before ComputeMapping")
	}
	rows, cols := npm.output.VertexCount(), npm.input.VertexCount()
	if rows == 0 || cols == 0 {
		return nil
	}
	dok := sparse.NewDOK(rows, cols)
	if npm.constraint == Consistent {
		for i, elems := range npm.weights {
			for _, el := range elems {
				dok.Set(i, el.VertexID, el.Weight)
			}
		}
	} else {
		for i, elems := range npm.weights {
			for _, el := range elems {
				dok.Set(el.VertexID, i, el.Weight)
			}
		}
	}
	return dok.ToCSR()
}
