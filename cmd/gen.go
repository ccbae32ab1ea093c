/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/pradeep-pyro/triangle"
	"github.com/spf13/cobra"

	"github.com/notargets/meshmap/mesh"
	"github.com/notargets/meshmap/readfiles"
)

// GenCmd represents the gen command
var GenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a random triangulated 2D mesh file",
	Long: `Scatters points over the unit square, Delaunay-triangulates them and
writes the resulting mesh (vertices, unique triangle edges, triangles)
in the meshmap text format. Useful for producing non-matching search
space meshes for mapping experiments.`,
	Run: func(cmd *cobra.Command, args []string) {
		n, _ := cmd.Flags().GetInt("numPoints")
		seed, _ := cmd.Flags().GetInt64("seed")
		name, _ := cmd.Flags().GetString("name")
		outFile, _ := cmd.Flags().GetString("outFile")
		if n < 3 {
			fmt.Println("need at least 3 points to triangulate")
			os.Exit(1)
		}
		m := GenerateMesh(name, n, seed)
		if err := readfiles.WriteMeshFile(outFile, m); err != nil {
			fmt.Printf("unable to write mesh file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s: %d vertices, %d edges, %d triangles\n",
			outFile, m.VertexCount(), len(m.Edges), len(m.Triangles))
	},
}

func init() {
	rootCmd.AddCommand(GenCmd)
	GenCmd.Flags().IntP("numPoints", "n", 50, "number of scattered points")
	GenCmd.Flags().Int64("seed", 1, "random seed")
	GenCmd.Flags().String("name", "generated", "mesh name")
	GenCmd.Flags().StringP("outFile", "o", "generated.mesh", "output mesh file")
}

// GenerateMesh builds a Delaunay-triangulated mesh over n random points in
// the unit square
func GenerateMesh(name string, n int, seed int64) *mesh.Mesh {
	rnd := rand.New(rand.NewSource(seed))
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{rnd.Float64(), rnd.Float64()}
	}

	faces := triangle.Delaunay(pts)

	m := mesh.NewMesh(name, 2)
	for _, p := range pts {
		m.AddVertex([]float64{p[0], p[1]})
	}
	seen := make(map[[2]int]bool)
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		if !seen[[2]int{a, b}] {
			seen[[2]int{a, b}] = true
			m.AddEdge(a, b)
		}
	}
	for _, f := range faces {
		a, b, c := int(f[0]), int(f[1]), int(f[2])
		m.AddTriangle(a, b, c)
		addEdge(a, b)
		addEdge(b, c)
		addEdge(c, a)
	}
	return m
}
