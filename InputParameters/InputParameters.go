package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file describing one mapping run
type MappingParameters struct {
	Title          string  `yaml:"Title"`
	InputMeshFile  string  `yaml:"InputMeshFile"`
	OutputMeshFile string  `yaml:"OutputMeshFile"`
	Constraint     string  `yaml:"Constraint"` // consistent | conservative
	Dimensions     int     `yaml:"Dimensions"`
	DataDimensions int     `yaml:"DataDimensions"` // components per vertex
	CandidateCount int     `yaml:"CandidateCount"` // nearest primitives fetched per vertex
	InitField      string  `yaml:"InitField"`      // ones | linear | radial
	InitScale      float64 `yaml:"InitScale"`
}

func (mp *MappingParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, mp); err != nil {
		return err
	}
	return mp.Validate()
}

func (mp *MappingParameters) Validate() error {
	switch mp.Constraint {
	case "consistent", "conservative":
	default:
		return fmt.Errorf("unknown Constraint %q, want consistent or conservative", mp.Constraint)
	}
	if mp.Dimensions != 2 && mp.Dimensions != 3 {
		return fmt.Errorf("Dimensions must be 2 or 3, got %d", mp.Dimensions)
	}
	if mp.InputMeshFile == "" || mp.OutputMeshFile == "" {
		return fmt.Errorf("both InputMeshFile and OutputMeshFile must be set")
	}
	if mp.DataDimensions == 0 {
		mp.DataDimensions = 1
	}
	if mp.DataDimensions < 0 {
		return fmt.Errorf("DataDimensions must be positive, got %d", mp.DataDimensions)
	}
	if mp.CandidateCount < 0 {
		return fmt.Errorf("CandidateCount must be positive, got %d", mp.CandidateCount)
	}
	switch mp.InitField {
	case "", "ones", "linear", "radial":
	default:
		return fmt.Errorf("unknown InitField %q", mp.InitField)
	}
	if mp.InitScale == 0 {
		mp.InitScale = 1
	}
	return nil
}

func (mp *MappingParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mp.Title)
	fmt.Printf("[%s]\t= Input Mesh File\n", mp.InputMeshFile)
	fmt.Printf("[%s]\t= Output Mesh File\n", mp.OutputMeshFile)
	fmt.Printf("[%s]\t= Constraint\n", mp.Constraint)
	fmt.Printf("[%d]\t\t\t= Dimensions\n", mp.Dimensions)
	fmt.Printf("[%d]\t\t\t= Data Dimensions\n", mp.DataDimensions)
	if mp.CandidateCount != 0 {
		fmt.Printf("[%d]\t\t\t= Candidate Count\n", mp.CandidateCount)
	}
	if mp.InitField != "" {
		fmt.Printf("[%s]\t\t= Init Field\n", mp.InitField)
	}
}
