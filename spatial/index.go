package spatial

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/notargets/meshmap/geometry"
	"github.com/notargets/meshmap/mesh"
)

// Nearest-neighbor indexes over mesh primitives, backed by kd-trees on the
// primitive centroids. The tree metric is the true squared distance from the
// query point to the primitive (closest point on the edge/triangle, not its
// centroid), so query results order candidates by real proximity. Because
// the splitting planes run through centroids, a k=1 query can miss a
// primitive whose surface is closer than its centroid suggests; callers
// over-fetch a few candidates to compensate.

type primitiveKind int

const (
	vertexKind primitiveKind = iota
	edgeKind
	triangleKind
)

// item is a kd-tree element for one primitive. Query points reuse the same
// type with index < 0 and only the centroid set, so Distance has to work out
// which operand is the primitive.
type item struct {
	centroid []float64
	index    int
	kind     primitiveKind
	m        *mesh.Mesh
}

func (it *item) Dims() int { return len(it.centroid) }

func (it *item) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return it.centroid[d] - c.(*item).centroid[d]
}

// Distance returns the squared distance between the query point and the
// closest point on the primitive, satisfying the kd-tree's expectation of a
// squared Euclidean metric.
func (it *item) Distance(c kdtree.Comparable) float64 {
	o := c.(*item)
	q, prim := o, it
	if it.index < 0 {
		q, prim = it, o
	}
	switch prim.kind {
	case vertexKind:
		return geometry.DistSq(q.centroid, prim.centroid)
	case edgeKind:
		e := prim.m.Edges[prim.index]
		return geometry.DistToEdgeSq(q.centroid,
			prim.m.Vertices[e.V[0]].Coords,
			prim.m.Vertices[e.V[1]].Coords)
	default:
		tri := prim.m.Triangles[prim.index]
		return geometry.DistToTriangleSq(q.centroid,
			prim.m.Vertices[tri.V[0]].Coords,
			prim.m.Vertices[tri.V[1]].Coords,
			prim.m.Vertices[tri.V[2]].Coords)
	}
}

type items []*item

func (p items) Index(i int) kdtree.Comparable { return p[i] }
func (p items) Len() int                      { return len(p) }
func (p items) Pivot(d kdtree.Dim) int        { return plane{items: p, Dim: d}.Pivot() }
func (p items) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

type plane struct {
	kdtree.Dim
	items
}

func (p plane) Less(i, j int) bool {
	return p.items[i].centroid[p.Dim] < p.items[j].centroid[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.items = p.items[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.items[i], p.items[j] = p.items[j], p.items[i]
}

// Candidate is one query result: the primitive's index within its mesh slice
// and its squared distance to the query point.
type Candidate struct {
	Index int
	Dist  float64
}

// Index answers k-nearest-primitive queries for one primitive kind of one
// mesh. Read-only after construction and safe for concurrent queries.
type Index struct {
	tree *kdtree.Tree
	size int
}

// Empty reports whether the index contains no primitives. Nearest on an
// empty index returns no candidates.
func (ix *Index) Empty() bool { return ix == nil || ix.size == 0 }

// Nearest returns up to k primitives ordered by increasing squared distance
// to p.
func (ix *Index) Nearest(p []float64, k int) []Candidate {
	if ix.Empty() || k < 1 {
		return nil
	}
	keep := kdtree.NewNKeeper(k)
	ix.tree.NearestSet(keep, &item{centroid: p, index: -1})
	matches := make([]Candidate, 0, k)
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		matches = append(matches, Candidate{
			Index: c.Comparable.(*item).index,
			Dist:  c.Dist,
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Dist < matches[j].Dist
	})
	return matches
}

func buildIndex(m *mesh.Mesh, kind primitiveKind) *Index {
	var elems items
	switch kind {
	case vertexKind:
		elems = make(items, len(m.Vertices))
		for i := range m.Vertices {
			elems[i] = &item{
				centroid: m.Vertices[i].Coords,
				index:    i,
				kind:     vertexKind,
				m:        m,
			}
		}
	case edgeKind:
		elems = make(items, len(m.Edges))
		for i, e := range m.Edges {
			elems[i] = &item{
				centroid: geometry.Centroid(
					m.Vertices[e.V[0]].Coords,
					m.Vertices[e.V[1]].Coords),
				index: i,
				kind:  edgeKind,
				m:     m,
			}
		}
	case triangleKind:
		elems = make(items, len(m.Triangles))
		for i, tri := range m.Triangles {
			elems[i] = &item{
				centroid: geometry.Centroid(
					m.Vertices[tri.V[0]].Coords,
					m.Vertices[tri.V[1]].Coords,
					m.Vertices[tri.V[2]].Coords),
				index: i,
				kind:  triangleKind,
				m:     m,
			}
		}
	}
	if len(elems) == 0 {
		return &Index{}
	}
	return &Index{tree: kdtree.New(elems, false), size: len(elems)}
}
