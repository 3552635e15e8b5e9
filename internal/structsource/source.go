// internal/structsource/source.go

// Package structsource reads the hierarchical structural/dynamics
// store from its JSON export. The container file itself (however it
// was produced) is an external concern; this package only maps its
// keyed per-chain views onto structural.Source.
package structsource

import (
	"fmt"

	"resagg-core/structural"

	"resagg/internal/jsonutil"
)

type sasaDoc struct {
	Average           []float64 `json:"average,omitempty"`
	StandardDeviation []float64 `json:"standard_deviation,omitempty"`
}

type chainDoc struct {
	ID                 string               `json:"id"`
	Sequence           string               `json:"sequence"`
	ResidueNumbers     []int                `json:"residue_numbers,omitempty"`
	SecondaryStructure map[string][]int     `json:"secondary_structure,omitempty"`
	RMSF               []float64            `json:"rmsf"`
	SASA               *sasaDoc             `json:"sasa,omitempty"`
	DihedralStd        map[string][]float64 `json:"dihedral_standard_deviation,omitempty"`
}

type document struct {
	Chains []chainDoc `json:"chains"`
}

// File is a structural.Source backed by one JSON document.
type File struct {
	doc document
}

// Open reads and validates the document at path.
func Open(path string) (*File, error) {
	var doc document
	if err := jsonutil.DecodeFile(path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Chains) == 0 {
		return nil, fmt.Errorf("%s: no chains", path)
	}
	for i, c := range doc.Chains {
		if c.ID == "" {
			return nil, fmt.Errorf("%s: chain %d has no id", path, i)
		}
	}
	return &File{doc: doc}, nil
}

// Chains implements structural.Source.
func (f *File) Chains() []string {
	ids := make([]string, len(f.doc.Chains))
	for i, c := range f.doc.Chains {
		ids[i] = c.ID
	}
	return ids
}

func (f *File) chain(i int) (*chainDoc, error) {
	if i < 0 || i >= len(f.doc.Chains) {
		return nil, fmt.Errorf("chain index %d out of range", i)
	}
	return &f.doc.Chains[i], nil
}

// Sequence implements structural.Source.
func (f *File) Sequence(chain int) (string, error) {
	c, err := f.chain(chain)
	if err != nil {
		return "", err
	}
	return c.Sequence, nil
}

// ResidueNumbers implements structural.Source. nil means positional.
func (f *File) ResidueNumbers(chain int) ([]int, error) {
	c, err := f.chain(chain)
	if err != nil {
		return nil, err
	}
	return c.ResidueNumbers, nil
}

// SecondaryStructureCounts implements structural.Source. Codes the
// document does not carry read as nil (all zeros).
func (f *File) SecondaryStructureCounts(chain int, code string) ([]int, error) {
	c, err := f.chain(chain)
	if err != nil {
		return nil, err
	}
	return c.SecondaryStructure[code], nil
}

// RMSF implements structural.Source.
func (f *File) RMSF(chain int) ([]float64, error) {
	c, err := f.chain(chain)
	if err != nil {
		return nil, err
	}
	return c.RMSF, nil
}

// SASA implements structural.Source. Documents without a sasa group
// read as nil (all zeros).
func (f *File) SASA(chain int) ([]float64, []float64, error) {
	c, err := f.chain(chain)
	if err != nil {
		return nil, nil, err
	}
	if c.SASA == nil {
		return nil, nil, nil
	}
	return c.SASA.Average, c.SASA.StandardDeviation, nil
}

// DihedralStd implements structural.Source.
func (f *File) DihedralStd(chain int, angle structural.Angle) ([]float64, error) {
	c, err := f.chain(chain)
	if err != nil {
		return nil, err
	}
	return c.DihedralStd[string(angle)], nil
}
