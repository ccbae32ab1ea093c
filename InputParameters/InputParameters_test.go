package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
Title: plate coupling
InputMeshFile: fluid.mesh
OutputMeshFile: solid.mesh
Constraint: conservative
Dimensions: 3
DataDimensions: 3
CandidateCount: 8
InitField: radial
`

func TestParse(t *testing.T) {
	var mp MappingParameters
	require.NoError(t, mp.Parse([]byte(sampleYAML)))

	assert.Equal(t, "plate coupling", mp.Title)
	assert.Equal(t, "fluid.mesh", mp.InputMeshFile)
	assert.Equal(t, "conservative", mp.Constraint)
	assert.Equal(t, 3, mp.Dimensions)
	assert.Equal(t, 3, mp.DataDimensions)
	assert.Equal(t, 8, mp.CandidateCount)
	assert.Equal(t, "radial", mp.InitField)
	assert.Equal(t, 1., mp.InitScale) // defaulted
}

func TestParseDefaults(t *testing.T) {
	var mp MappingParameters
	err := mp.Parse([]byte(`
InputMeshFile: a.mesh
OutputMeshFile: b.mesh
Constraint: consistent
Dimensions: 2
`))
	require.NoError(t, err)
	assert.Equal(t, 1, mp.DataDimensions)
	assert.Equal(t, 0, mp.CandidateCount) // 0 means use the mapping default
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name, yamlIn, wantErr string
	}{
		{"bad constraint",
			"InputMeshFile: a\nOutputMeshFile: b\nConstraint: magic\nDimensions: 2\n",
			"unknown Constraint"},
		{"bad dimensions",
			"InputMeshFile: a\nOutputMeshFile: b\nConstraint: consistent\nDimensions: 5\n",
			"Dimensions must be 2 or 3"},
		{"missing mesh files",
			"Constraint: consistent\nDimensions: 2\n",
			"must be set"},
		{"bad init field",
			"InputMeshFile: a\nOutputMeshFile: b\nConstraint: consistent\nDimensions: 2\nInitField: sawtooth\n",
			"unknown InitField"},
	}
	for _, tc := range cases {
		var mp MappingParameters
		err := mp.Parse([]byte(tc.yamlIn))
		require.Error(t, err, tc.name)
		assert.Contains(t, err.Error(), tc.wantErr, tc.name)
	}
}
