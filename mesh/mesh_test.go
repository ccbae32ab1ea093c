package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeshBuild(t *testing.T) {
	m := NewMesh("unit", 2)
	a := m.AddVertex([]float64{0, 0})
	b := m.AddVertex([]float64{1, 0})
	c := m.AddVertex([]float64{0, 1})
	m.AddEdge(a, b)
	m.AddTriangle(a, b, c)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, []int{0, 1, 2}, []int{a, b, c})
	assert.Equal(t, [2]int{0, 1}, m.Edges[0].V)
	assert.Equal(t, [3]int{0, 1, 2}, m.Triangles[0].V)

	assert.Panics(t, func() { m.AddEdge(0, 3) })
	assert.Panics(t, func() { m.AddVertex([]float64{0, 0, 0}) })
	assert.Panics(t, func() { NewMesh("bad", 4) })
}

func TestFieldData(t *testing.T) {
	m := NewMesh("unit", 2)
	m.AddVertex([]float64{0, 0})
	m.AddVertex([]float64{1, 0})

	f := m.CreateData("Temperature", 3)
	assert.Equal(t, 6, f.Values.Len())
	assert.Equal(t, 3, f.Dimensions)

	f.Values.SetVec(1*3+2, 42.)
	assert.Equal(t, 42., m.Data("Temperature").Values.AtVec(5))

	assert.Panics(t, func() { m.Data("Pressure") })
	assert.Panics(t, func() { m.CreateData("bad", 0) })
}

func TestTagging(t *testing.T) {
	m := NewMesh("unit", 3)
	m.AddVertex([]float64{0, 0, 0})
	m.AddVertex([]float64{1, 0, 0})

	assert.False(t, m.IsTagged(0))
	m.Tag(0)
	assert.True(t, m.IsTagged(0))
	assert.False(t, m.IsTagged(1))
	assert.Equal(t, 1, m.TaggedCount())

	m.ClearTags()
	assert.Equal(t, 0, m.TaggedCount())
	assert.Panics(t, func() { m.Tag(5) })
}
