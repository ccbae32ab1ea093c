package spatial

import (
	"sync"

	"github.com/notargets/meshmap/mesh"
)

// Per-mesh index cache. Indexes are built lazily on first request and keyed
// by mesh identity; the mutex guards against two mappings sharing a mesh
// racing to build the same index. Mesh geometry is assumed immutable while
// a cached index exists; Invalidate drops the cached indexes after a mesh
// changes.

var indexCache = struct {
	sync.Mutex
	byKind [3]map[*mesh.Mesh]*Index
}{
	byKind: [3]map[*mesh.Mesh]*Index{
		make(map[*mesh.Mesh]*Index),
		make(map[*mesh.Mesh]*Index),
		make(map[*mesh.Mesh]*Index),
	},
}

func cachedIndex(m *mesh.Mesh, kind primitiveKind) *Index {
	indexCache.Lock()
	defer indexCache.Unlock()
	if ix, ok := indexCache.byKind[kind][m]; ok {
		return ix
	}
	ix := buildIndex(m, kind)
	indexCache.byKind[kind][m] = ix
	return ix
}

// VertexIndex returns the cached nearest-vertex index for m, building it on
// first use.
func VertexIndex(m *mesh.Mesh) *Index { return cachedIndex(m, vertexKind) }

// EdgeIndex returns the cached nearest-edge index for m, building it on
// first use.
func EdgeIndex(m *mesh.Mesh) *Index { return cachedIndex(m, edgeKind) }

// TriangleIndex returns the cached nearest-triangle index for m, building it
// on first use.
func TriangleIndex(m *mesh.Mesh) *Index { return cachedIndex(m, triangleKind) }

// Invalidate drops all cached indexes for m. Call it after mutating the
// mesh's primitives.
func Invalidate(m *mesh.Mesh) {
	indexCache.Lock()
	defer indexCache.Unlock()
	for kind := range indexCache.byKind {
		delete(indexCache.byKind[kind], m)
	}
}
