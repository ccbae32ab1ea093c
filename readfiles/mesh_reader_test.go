package readfiles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/meshmap/mesh"
)

const sampleMesh = `
% a 2D mesh with one triangle
NAME= fluid
NDIME= 2
NPOIN= 3
0.0 0.0
1.0 0.0   % trailing comment
0.5 1.0
NEDGE= 2
0 1
1 2
NTRI= 1
0 1 2
`

func TestReadMesh(t *testing.T) {
	m, err := ReadMesh(strings.NewReader(sampleMesh))
	require.NoError(t, err)

	assert.Equal(t, "fluid", m.Name)
	assert.Equal(t, 2, m.Dim)
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, []float64{0.5, 1}, m.Vertices[2].Coords)
	require.Len(t, m.Edges, 2)
	assert.Equal(t, [2]int{1, 2}, m.Edges[1].V)
	require.Len(t, m.Triangles, 1)
	assert.Equal(t, [3]int{0, 1, 2}, m.Triangles[0].V)
}

func TestReadMeshErrors(t *testing.T) {
	cases := []struct {
		name, in, wantErr string
	}{
		{"missing NDIME", "NPOIN= 1\n0 0\n", "before NDIME"},
		{"bad dimension", "NDIME= 4\n", "unsupported dimension"},
		{"truncated vertices", "NDIME= 2\nNPOIN= 2\n0 0\n", "unexpected EOF"},
		{"bad coordinate", "NDIME= 2\nNPOIN= 1\nx y\n", "invalid coordinate"},
		{"edge out of range", "NDIME= 2\nNPOIN= 1\n0 0\nNEDGE= 1\n0 4\n", "out of range"},
		{"garbage line", "NDIME= 2\nWAT= 1\n", "unrecognized"},
		{"empty file", "\n% comment only\n", "missing NDIME"},
	}
	for _, tc := range cases {
		_, err := ReadMesh(strings.NewReader(tc.in))
		require.Error(t, err, tc.name)
		assert.Contains(t, err.Error(), tc.wantErr, tc.name)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := mesh.NewMesh("solid", 3)
	m.AddVertex([]float64{0, 0, 0})
	m.AddVertex([]float64{1, 0, 0.25})
	m.AddVertex([]float64{0, 1, 1. / 3.})
	m.AddEdge(0, 1)
	m.AddTriangle(0, 1, 2)

	path := filepath.Join(t.TempDir(), "solid.mesh")
	require.NoError(t, WriteMeshFile(path, m))

	got, err := ReadMeshFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.Dim, got.Dim)
	require.Equal(t, m.VertexCount(), got.VertexCount())
	for i := range m.Vertices {
		assert.Equal(t, m.Vertices[i].Coords, got.Vertices[i].Coords)
	}
	assert.Equal(t, m.Edges, got.Edges)
	assert.Equal(t, m.Triangles, got.Triangles)
}

func TestReadMeshFileMissing(t *testing.T) {
	_, err := ReadMeshFile(filepath.Join(t.TempDir(), "nope.mesh"))
	assert.True(t, os.IsNotExist(err))
}
