package mapping

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/notargets/meshmap/mesh"
	"github.com/notargets/meshmap/spatial"
)

// DefaultCandidateCount is how many nearest primitives are fetched for
// detailed comparison per origin vertex. The margin makes it likely that at
// least one of the fetched candidates contains the true projection, since
// the index's centroid-based tree can under-rank a primitive whose surface
// is closer than its centroid.
const DefaultCandidateCount = 4

// NearestProjectionMapping projects every origin-mesh vertex onto the
// nearest suitable search-space primitive, descending from the highest
// primitive dimension to single vertices, and stores one weight list per
// origin vertex. Constraint and dimensionality are fixed at construction.
//
// Lifecycle: ComputeMapping populates the weight set, any number of Map
// calls may then apply it, Clear empties it again. Recomputation is always
// full.
type NearestProjectionMapping struct {
	constraint     Constraint
	dimensions     int
	input, output  *mesh.Mesh
	candidateCount int

	weights            [][]InterpolationElement
	hasComputedMapping bool
}

func NewNearestProjectionMapping(constraint Constraint, dimensions int,
	input, output *mesh.Mesh) *NearestProjectionMapping {
	if constraint != Consistent && constraint != Conservative {
		panic(fmt.Sprintf("unknown mapping constraint %d", constraint))
	}
	if dimensions != 2 && dimensions != 3 {
		panic(fmt.Sprintf("unsupported mapping dimension %d", dimensions))
	}
	return &NearestProjectionMapping{
		constraint:     constraint,
		dimensions:     dimensions,
		input:          input,
		output:         output,
		candidateCount: DefaultCandidateCount,
	}
}

func (npm *NearestProjectionMapping) Constraint() Constraint { return npm.constraint }

// SetCandidateCount overrides the per-vertex candidate fetch count. Must be
// called before ComputeMapping.
func (npm *NearestProjectionMapping) SetCandidateCount(n int) {
	if n < 1 {
		panic(fmt.Sprintf("candidate count must be positive, got %d", n))
	}
	npm.candidateCount = n
}

// originSearch resolves the role of the two meshes under the constraint:
// consistent projects output vertices into the input mesh, conservative the
// reverse.
func (npm *NearestProjectionMapping) originSearch() (origins, searchSpace *mesh.Mesh) {
	if npm.constraint == Consistent {
		return npm.output, npm.input
	}
	return npm.input, npm.output
}

// candidateSource is one stage of the fallback cascade: an index to query
// and the matching weight generator. Stages are tried in order under a
// single acceptance predicate, which keeps the 2D and 3D cascades symmetric.
type candidateSource struct {
	index    *spatial.Index
	generate func(p []float64, primitive int) []InterpolationElement
}

// ComputeMapping fills the weight set with one weight list per origin
// vertex. In 2D the cascade is edges then vertices; in 3D triangles, then
// edges, then vertices. A search space missing its highest primitive kind
// is valid degraded geometry: it is warned about once per call and the
// cascade simply starts lower.
func (npm *NearestProjectionMapping) ComputeMapping() {
	origins, searchSpace := npm.originSearch()
	npm.weights = make([][]InterpolationElement, origins.VertexCount())

	var sources []candidateSource
	if npm.dimensions == 3 {
		if len(searchSpace.Triangles) == 0 {
			if origins.VertexCount() > 0 {
				log.Printf("WARNING: 3D mesh %q contains no triangles, "+
					"nearest projection mapping will map to primitives of lower dimension",
					searchSpace.Name)
			}
		} else {
			ix := spatial.TriangleIndex(searchSpace)
			sources = append(sources, candidateSource{
				index: ix,
				generate: func(p []float64, primitive int) []InterpolationElement {
					return TriangleInterpolation(p, searchSpace, searchSpace.Triangles[primitive])
				},
			})
		}
	}
	if len(searchSpace.Edges) == 0 {
		if npm.dimensions == 2 && origins.VertexCount() > 0 {
			log.Printf("WARNING: 2D mesh %q contains no edges, "+
				"nearest projection mapping falls back to nearest neighbor mapping",
				searchSpace.Name)
		}
	} else {
		ix := spatial.EdgeIndex(searchSpace)
		sources = append(sources, candidateSource{
			index: ix,
			generate: func(p []float64, primitive int) []InterpolationElement {
				return EdgeInterpolation(p, searchSpace, searchSpace.Edges[primitive])
			},
		})
	}
	vertexIndex := spatial.VertexIndex(searchSpace)

	for i := range origins.Vertices {
		npm.weights[i] = npm.project(origins.Vertices[i].Coords,
			sources, vertexIndex, searchSpace)
	}
	npm.hasComputedMapping = true
}

// project runs the cascade for one origin point: the first candidate whose
// projection lands on the primitive wins, in ascending distance order within
// each stage. If every stage rejects, the nearest vertex takes the point
// with weight 1.
func (npm *NearestProjectionMapping) project(p []float64,
	sources []candidateSource, vertexIndex *spatial.Index,
	searchSpace *mesh.Mesh) []InterpolationElement {
	for _, src := range sources {
		for _, cand := range src.index.Nearest(p, npm.candidateCount) {
			if elems := src.generate(p, cand.Index); accepted(elems) {
				return clampWeights(elems)
			}
		}
	}
	nearest := vertexIndex.Nearest(p, 1)
	if len(nearest) == 0 {
		// Search space without vertices; nothing to reference
		return nil
	}
	return VertexInterpolation(searchSpace.Vertices[nearest[0].Index])
}

// HasComputedMapping reports whether ComputeMapping has run since the last
// Clear.
func (npm *NearestProjectionMapping) HasComputedMapping() bool {
	return npm.hasComputedMapping
}

// Clear empties the weight set and returns the mapping to the not-computed
// state. Idempotent.
func (npm *NearestProjectionMapping) Clear() {
	npm.weights = nil
	npm.hasComputedMapping = false
}

// Map applies the computed weights, accumulating input field values into the
// output field. The output is deliberately not zeroed first: callers that do
// not want accumulation clear the destination before the first Map of a
// sequence. Mismatched field dimensionality, a stale weight set or
// out-of-bounds offsets are programming errors and panic.
func (npm *NearestProjectionMapping) Map(inputData, outputData string) {
	if !npm.hasComputedMapping {
		panic("Map called before ComputeMapping")
	}
	inField := npm.input.Data(inputData)
	outField := npm.output.Data(outputData)
	if inField.Dimensions != outField.Dimensions {
		panic(fmt.Sprintf("field dimension mismatch: %s has %d components, %s has %d",
			inField.Name, inField.Dimensions, outField.Name, outField.Dimensions))
	}
	dims := inField.Dimensions
	inVals := inField.Values.RawVector().Data
	outVals := outField.Values.RawVector().Data

	if npm.constraint == Consistent {
		if len(npm.weights) != npm.output.VertexCount() {
			panic(fmt.Sprintf("weight set size %d does not match output vertex count %d",
				len(npm.weights), npm.output.VertexCount()))
		}
		for i, elems := range npm.weights {
			outOffset := i * dims
			for _, el := range elems {
				inOffset := el.VertexID * dims
				checkOffsets(inOffset, outOffset, dims, len(inVals), len(outVals))
				for d := 0; d < dims; d++ {
					outVals[outOffset+d] += el.Weight * inVals[inOffset+d]
				}
			}
		}
		return
	}

	if len(npm.weights) != npm.input.VertexCount() {
		panic(fmt.Sprintf("weight set size %d does not match input vertex count %d",
			len(npm.weights), npm.input.VertexCount()))
	}
	for i, elems := range npm.weights {
		inOffset := i * dims
		for _, el := range elems {
			outOffset := el.VertexID * dims
			checkOffsets(inOffset, outOffset, dims, len(inVals), len(outVals))
			for d := 0; d < dims; d++ {
				outVals[outOffset+d] += el.Weight * inVals[inOffset+d]
			}
		}
	}
}

func checkOffsets(inOffset, outOffset, dims, inLen, outLen int) {
	if inOffset+dims > inLen {
		panic(fmt.Sprintf("input field offset %d out of bounds (len %d)",
			inOffset+dims-1, inLen))
	}
	if outOffset+dims > outLen {
		panic(fmt.Sprintf("output field offset %d out of bounds (len %d)",
			outOffset+dims-1, outLen))
	}
}

// TagMeshFirstRound recomputes the mapping, marks every search-space vertex
// referenced with a non-zero weight on that mesh's tagged bitmap, and clears
// the mapping again. External mesh-pruning logic uses the tags to decide
// which vertices must be retained.
func (npm *NearestProjectionMapping) TagMeshFirstRound() {
	npm.ComputeMapping()

	_, searchSpace := npm.originSearch()
	total := searchSpace.VertexCount()
	tagged := make(map[int]struct{}, total)

	for _, elems := range npm.weights {
		for _, el := range elems {
			if !scalar.EqualWithinAbs(el.Weight, 0, WeightTolerance) {
				tagged[el.VertexID] = struct{}{}
			}
		}
		// Shortcut once every reachable vertex is tagged
		if len(tagged) == total {
			break
		}
	}
	for id := range tagged {
		searchSpace.Tag(id)
	}

	npm.Clear()
}

// TagMeshSecondRound is a no-op: the first round already captures the full
// support of a projection mapping. Kernels whose support can grow with
// neighborhood information need this hook; this one does not.
func (npm *NearestProjectionMapping) TagMeshSecondRound() {}
