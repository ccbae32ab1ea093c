package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vertex is a mesh node. ID equals the vertex's position in the mesh vertex
// slice and is the index used for per-vertex field data.
type Vertex struct {
	ID     int
	Coords []float64
}

// Edge connects two vertices by index
type Edge struct {
	V [2]int
}

// Triangle connects three vertices by index
type Triangle struct {
	V [3]int
}

// Field is a dense per-vertex data vector attached to a mesh. Values holds
// Dimensions scalar components per vertex, laid out as
// vertexID*Dimensions + component.
type Field struct {
	Name       string
	Dimensions int
	Values     *mat.VecDense
}

// Mesh is an ordered collection of vertices, edges and triangles plus the
// field data attached to them. A mesh with zero edges or triangles is a
// valid lower-dimensional or point-cloud mesh, not an error state. Geometry
// is treated as immutable while a mapping over the mesh is being computed.
type Mesh struct {
	Name      string
	Dim       int // spatial dimension, 2 or 3
	Vertices  []Vertex
	Edges     []Edge
	Triangles []Triangle

	fields map[string]*Field
	tagged []bool
}

func NewMesh(name string, dim int) *Mesh {
	if dim != 2 && dim != 3 {
		panic(fmt.Sprintf("mesh %s: unsupported dimension %d", name, dim))
	}
	return &Mesh{
		Name:   name,
		Dim:    dim,
		fields: make(map[string]*Field),
	}
}

// AddVertex appends a vertex and returns its ID
func (m *Mesh) AddVertex(coords []float64) int {
	if len(coords) != m.Dim {
		panic(fmt.Sprintf("mesh %s: vertex has %d coordinates, mesh dimension is %d",
			m.Name, len(coords), m.Dim))
	}
	id := len(m.Vertices)
	m.Vertices = append(m.Vertices, Vertex{ID: id, Coords: coords})
	m.tagged = append(m.tagged, false)
	return id
}

func (m *Mesh) AddEdge(a, b int) {
	m.checkVertexID(a)
	m.checkVertexID(b)
	m.Edges = append(m.Edges, Edge{V: [2]int{a, b}})
}

func (m *Mesh) AddTriangle(a, b, c int) {
	m.checkVertexID(a)
	m.checkVertexID(b)
	m.checkVertexID(c)
	m.Triangles = append(m.Triangles, Triangle{V: [3]int{a, b, c}})
}

func (m *Mesh) VertexCount() int { return len(m.Vertices) }

func (m *Mesh) checkVertexID(id int) {
	if id < 0 || id >= len(m.Vertices) {
		panic(fmt.Sprintf("mesh %s: vertex index %d out of range [0,%d)",
			m.Name, id, len(m.Vertices)))
	}
}

// CreateData allocates a zeroed field with the given component count over
// the mesh's current vertices and attaches it under name.
func (m *Mesh) CreateData(name string, dimensions int) *Field {
	if dimensions < 1 {
		panic(fmt.Sprintf("mesh %s: field %s needs at least one component", m.Name, name))
	}
	n := len(m.Vertices) * dimensions
	if n == 0 {
		n = 1 // VecDense cannot be zero length
	}
	f := &Field{
		Name:       name,
		Dimensions: dimensions,
		Values:     mat.NewVecDense(n, nil),
	}
	m.fields[name] = f
	return f
}

// Data returns the named field, panicking if it was never created. A missing
// field at mapping time is a caller programming error, not recoverable input.
func (m *Mesh) Data(name string) *Field {
	f, ok := m.fields[name]
	if !ok {
		panic(fmt.Sprintf("mesh %s has no field %q", m.Name, name))
	}
	return f
}

// Tag marks a vertex as contributing to a computed mapping. The tagged bits
// live on the mesh rather than on Vertex values so the tagging pass mutates
// one mesh-owned bitmap instead of shared vertex objects.
func (m *Mesh) Tag(id int) {
	m.checkVertexID(id)
	m.tagged[id] = true
}

func (m *Mesh) IsTagged(id int) bool {
	m.checkVertexID(id)
	return m.tagged[id]
}

func (m *Mesh) TaggedCount() (n int) {
	for _, t := range m.tagged {
		if t {
			n++
		}
	}
	return
}

// ClearTags resets the tagged bitmap
func (m *Mesh) ClearTags() {
	for i := range m.tagged {
		m.tagged[i] = false
	}
}
