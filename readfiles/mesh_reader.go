package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/meshmap/mesh"
)

// ReadMeshFile reads a mesh from the plain text format used by the meshmap
// CLI. The format is keyword-sectioned in the SU2 style:
//
//	NAME= fluid
//	NDIME= 2
//	NPOIN= 3
//	0.0 0.0
//	1.0 0.0
//	0.5 1.0
//	NEDGE= 2
//	0 1
//	1 2
//	NTRI= 1
//	0 1 2
//
// Vertex IDs are implicit, 0-based, in order of appearance. Comments start
// with % and empty lines are skipped. NEDGE and NTRI sections are optional;
// a mesh without them is a valid point cloud.
func ReadMeshFile(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadMesh(file)
}

// ReadMesh reads the same format from any reader
func ReadMesh(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)

	name := "unnamed"
	ndime := 0
	var msh *mesh.Mesh

	for scanner.Scan() {
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "NAME="):
			name = strings.TrimSpace(strings.TrimPrefix(line, "NAME="))

		case strings.HasPrefix(line, "NDIME="):
			fmt.Sscanf(line, "NDIME=%d", &ndime)
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}
			msh = mesh.NewMesh(name, ndime)

		case strings.HasPrefix(line, "NPOIN="):
			if msh == nil {
				return nil, fmt.Errorf("NPOIN section before NDIME")
			}
			var npoin int
			fmt.Sscanf(line, "NPOIN=%d", &npoin)
			for i := 0; i < npoin; i++ {
				fields, err := nextFields(scanner, ndime, "vertex")
				if err != nil {
					return nil, err
				}
				coords := make([]float64, ndime)
				for j := 0; j < ndime; j++ {
					if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("invalid coordinate: %v", err)
					}
				}
				msh.AddVertex(coords)
			}

		case strings.HasPrefix(line, "NEDGE="):
			if msh == nil {
				return nil, fmt.Errorf("NEDGE section before NDIME")
			}
			var nedge int
			fmt.Sscanf(line, "NEDGE=%d", &nedge)
			for i := 0; i < nedge; i++ {
				ids, err := nextIDs(scanner, 2, msh.VertexCount(), "edge")
				if err != nil {
					return nil, err
				}
				msh.AddEdge(ids[0], ids[1])
			}

		case strings.HasPrefix(line, "NTRI="):
			if msh == nil {
				return nil, fmt.Errorf("NTRI section before NDIME")
			}
			var ntri int
			fmt.Sscanf(line, "NTRI=%d", &ntri)
			for i := 0; i < ntri; i++ {
				ids, err := nextIDs(scanner, 3, msh.VertexCount(), "triangle")
				if err != nil {
					return nil, err
				}
				msh.AddTriangle(ids[0], ids[1], ids[2])
			}

		default:
			return nil, fmt.Errorf("unrecognized mesh file line: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if msh == nil {
		return nil, fmt.Errorf("mesh file missing NDIME section")
	}
	return msh, nil
}

func stripComment(line string) string {
	if idx := strings.Index(line, "%"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

func nextFields(scanner *bufio.Scanner, n int, what string) ([]string, error) {
	for scanner.Scan() {
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < n {
			return nil, fmt.Errorf("invalid %s line: expected %d fields, got %d",
				what, n, len(fields))
		}
		return fields, nil
	}
	return nil, fmt.Errorf("unexpected EOF reading %s data", what)
}

func nextIDs(scanner *bufio.Scanner, n, vertexCount int, what string) ([]int, error) {
	fields, err := nextFields(scanner, n, what)
	if err != nil {
		return nil, err
	}
	ids := make([]int, n)
	for j := 0; j < n; j++ {
		if ids[j], err = strconv.Atoi(fields[j]); err != nil {
			return nil, fmt.Errorf("invalid %s vertex index: %v", what, err)
		}
		if ids[j] < 0 || ids[j] >= vertexCount {
			return nil, fmt.Errorf("%s vertex index %d out of range [0,%d)",
				what, ids[j], vertexCount)
		}
	}
	return ids, nil
}

// WriteMeshFile writes a mesh in the format ReadMeshFile reads
func WriteMeshFile(filename string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "NAME= %s\n", m.Name)
	fmt.Fprintf(w, "NDIME= %d\n", m.Dim)
	fmt.Fprintf(w, "NPOIN= %d\n", m.VertexCount())
	for _, v := range m.Vertices {
		for j, c := range v.Coords {
			if j > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%.17g", c)
		}
		fmt.Fprintln(w)
	}
	if len(m.Edges) > 0 {
		fmt.Fprintf(w, "NEDGE= %d\n", len(m.Edges))
		for _, e := range m.Edges {
			fmt.Fprintf(w, "%d %d\n", e.V[0], e.V[1])
		}
	}
	if len(m.Triangles) > 0 {
		fmt.Fprintf(w, "NTRI= %d\n", len(m.Triangles))
		for _, tri := range m.Triangles {
			fmt.Fprintf(w, "%d %d %d\n", tri.V[0], tri.V[1], tri.V[2])
		}
	}
	return w.Flush()
}
