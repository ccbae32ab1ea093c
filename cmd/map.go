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
	"math"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/meshmap/InputParameters"
	"github.com/notargets/meshmap/mapping"
	"github.com/notargets/meshmap/mesh"
	"github.com/notargets/meshmap/readfiles"
	"github.com/notargets/meshmap/utils"
)

type MapModel struct {
	ParamFile string
	Profile   bool
	Tag       bool
}

// MapCmd represents the map command
var MapCmd = &cobra.Command{
	Use:   "map",
	Short: "Run a nearest projection mapping between two mesh files",
	Long: `Reads the two meshes named in the YAML parameter file, initializes a
field on the input mesh, computes the nearest projection mapping and
transfers the field onto the output mesh, reporting per-component sums
and timings.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mm := &MapModel{}
		if mm.ParamFile, err = cmd.Flags().GetString("paramFile"); err != nil {
			panic(err)
		}
		mm.Profile, _ = cmd.Flags().GetBool("profile")
		mm.Tag, _ = cmd.Flags().GetBool("tag")
		mp := processMapInput(mm)
		RunMap(mm, mp)
	},
}

func init() {
	rootCmd.AddCommand(MapCmd)
	MapCmd.Flags().StringP("paramFile", "c", "mapping.yaml",
		"YAML file describing the mapping run")
	MapCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
	MapCmd.Flags().Bool("tag", false, "report the tagged vertex counts after mapping")
}

func processMapInput(mm *MapModel) *InputParameters.MappingParameters {
	data, err := os.ReadFile(mm.ParamFile)
	if err != nil {
		fmt.Printf("unable to read parameter file: %v\n", err)
		os.Exit(1)
	}
	mp := &InputParameters.MappingParameters{}
	if err = mp.Parse(data); err != nil {
		fmt.Printf("unable to parse parameter file: %v\n", err)
		os.Exit(1)
	}
	mp.Print()
	return mp
}

func RunMap(mm *MapModel, mp *InputParameters.MappingParameters) {
	if mm.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	inMesh := readMeshOrExit(mp.InputMeshFile)
	outMesh := readMeshOrExit(mp.OutputMeshFile)
	fmt.Printf("input mesh %q: %d vertices, %d edges, %d triangles\n",
		inMesh.Name, inMesh.VertexCount(), len(inMesh.Edges), len(inMesh.Triangles))
	fmt.Printf("output mesh %q: %d vertices, %d edges, %d triangles\n",
		outMesh.Name, outMesh.VertexCount(), len(outMesh.Edges), len(outMesh.Triangles))

	constraint := mapping.Consistent
	if mp.Constraint == "conservative" {
		constraint = mapping.Conservative
	}

	initField(inMesh.CreateData("field", mp.DataDimensions), inMesh, mp)
	outMesh.CreateData("field", mp.DataDimensions)

	npm := mapping.NewNearestProjectionMapping(constraint, mp.Dimensions, inMesh, outMesh)
	if mp.CandidateCount > 0 {
		npm.SetCandidateCount(mp.CandidateCount)
	}

	start := time.Now()
	npm.ComputeMapping()
	fmt.Printf("computeMapping: %v\n", time.Since(start))

	start = time.Now()
	npm.Map("field", "field")
	fmt.Printf("map (%s): %v\n", constraint, time.Since(start))

	inSums := utils.ComponentSums(inMesh.Data("field").Values, mp.DataDimensions)
	outSums := utils.ComponentSums(outMesh.Data("field").Values, mp.DataDimensions)
	fmt.Printf("input component sums:  %v\n", inSums)
	fmt.Printf("output component sums: %v\n", outSums)

	if mm.Tag {
		npm.TagMeshFirstRound()
		npm.TagMeshSecondRound()
		tagMesh := inMesh
		if constraint == mapping.Conservative {
			tagMesh = outMesh
		}
		fmt.Printf("tagged %d/%d vertices of mesh %q\n",
			tagMesh.TaggedCount(), tagMesh.VertexCount(), tagMesh.Name)
	}
}

func readMeshOrExit(filename string) *mesh.Mesh {
	m, err := readfiles.ReadMeshFile(filename)
	if err != nil {
		fmt.Printf("unable to read mesh file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return m
}

// initField fills the input field from the analytic function named in the
// parameter file, per component so conservation is visible in the sums
func initField(f *mesh.Field, m *mesh.Mesh, mp *InputParameters.MappingParameters) {
	for i, v := range m.Vertices {
		var val float64
		switch mp.InitField {
		case "", "ones":
			val = 1.
		case "linear":
			for _, c := range v.Coords {
				val += c
			}
		case "radial":
			var r2 float64
			for _, c := range v.Coords {
				r2 += c * c
			}
			val = math.Sqrt(r2)
		}
		val *= mp.InitScale
		for d := 0; d < f.Dimensions; d++ {
			f.Values.SetVec(i*f.Dimensions+d, val*float64(d+1))
		}
	}
}
