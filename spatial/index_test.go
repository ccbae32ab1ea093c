package spatial

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/meshmap/mesh"
)

func lineMesh2D() *mesh.Mesh {
	// Five collinear vertices along x, four unit-quarter edges
	m := mesh.NewMesh("line", 2)
	for i := 0; i < 5; i++ {
		m.AddVertex([]float64{float64(i) * 0.25, 0})
	}
	for i := 0; i < 4; i++ {
		m.AddEdge(i, i+1)
	}
	return m
}

func TestVertexIndexOrdering(t *testing.T) {
	m := lineMesh2D()
	defer Invalidate(m)

	ix := VertexIndex(m)
	require.False(t, ix.Empty())

	got := ix.Nearest([]float64{0.3, 1}, 3)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Index) // x=0.25 is nearest
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Dist, got[i].Dist)
	}
	assert.InDelta(t, 0.05*0.05+1, got[0].Dist, 1.e-12)
}

func TestEdgeIndexUsesTrueDistance(t *testing.T) {
	m := lineMesh2D()
	defer Invalidate(m)

	ix := EdgeIndex(m)
	got := ix.Nearest([]float64{0.3, 0.5}, 2)
	require.NotEmpty(t, got)
	// The point projects onto edge 1 (x in [0.25,0.5]); distance is purely
	// the normal offset, not the distance to the edge midpoint.
	assert.Equal(t, 1, got[0].Index)
	assert.InDelta(t, 0.25, got[0].Dist, 1.e-12)
}

func TestTriangleIndex(t *testing.T) {
	m := mesh.NewMesh("tris", 3)
	a := m.AddVertex([]float64{0, 0, 0})
	b := m.AddVertex([]float64{1, 0, 0})
	c := m.AddVertex([]float64{0, 1, 0})
	d := m.AddVertex([]float64{5, 5, 0})
	e := m.AddVertex([]float64{6, 5, 0})
	f := m.AddVertex([]float64{5, 6, 0})
	m.AddTriangle(a, b, c)
	m.AddTriangle(d, e, f)
	defer Invalidate(m)

	ix := TriangleIndex(m)
	got := ix.Nearest([]float64{0.25, 0.25, 2}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.InDelta(t, 4., got[0].Dist, 1.e-12)
}

func TestEmptyIndex(t *testing.T) {
	m := mesh.NewMesh("points", 2)
	m.AddVertex([]float64{0, 0})
	defer Invalidate(m)

	ix := EdgeIndex(m)
	assert.True(t, ix.Empty())
	assert.Empty(t, ix.Nearest([]float64{0, 0}, 4))

	var nilIx *Index
	assert.True(t, nilIx.Empty())
}

func TestFewerPrimitivesThanRequested(t *testing.T) {
	m := lineMesh2D()
	defer Invalidate(m)

	got := EdgeIndex(m).Nearest([]float64{0, 0}, 10)
	assert.Len(t, got, 4)
	assert.False(t, math.IsInf(got[len(got)-1].Dist, 1))
}

func TestCacheIdentityAndInvalidate(t *testing.T) {
	m := lineMesh2D()
	defer Invalidate(m)

	ix1 := EdgeIndex(m)
	ix2 := EdgeIndex(m)
	assert.Same(t, ix1, ix2)

	Invalidate(m)
	ix3 := EdgeIndex(m)
	assert.NotSame(t, ix1, ix3)
}

func TestConcurrentFirstUse(t *testing.T) {
	m := lineMesh2D()
	defer Invalidate(m)

	var wg sync.WaitGroup
	got := make([]*Index, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = VertexIndex(m)
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(got); i++ {
		assert.Same(t, got[0], got[i])
	}
}
