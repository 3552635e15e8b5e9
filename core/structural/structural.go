// core/structural/structural.go
package structural

import (
	"fmt"
)

// Angle names a backbone dihedral whose variability is summarized per
// residue as a standard deviation.
type Angle string

const (
	Phi   Angle = "phi"
	Psi   Angle = "psi"
	Omega Angle = "omega"
)

// Angles is the fixed dihedral order used throughout merged output.
var Angles = []Angle{Phi, Psi, Omega}

// Source is the read side of the hierarchical per-chain store. The
// container format behind it is an external concern; implementations
// only need to hand back the per-chain views below. A nil slice from
// ResidueNumbers means "use 1-based positions"; a nil slice from
// SecondaryStructureCounts, SASA, or DihedralStd means the dataset is
// absent and is treated as all zeros.
type Source interface {
	// Chains returns the chain IDs in their stored order.
	Chains() []string
	Sequence(chain int) (string, error)
	ResidueNumbers(chain int) ([]int, error)
	SecondaryStructureCounts(chain int, code string) ([]int, error)
	RMSF(chain int) ([]float64, error)
	// SASA returns the per-residue solvent accessible surface area
	// summaries over the trajectory: average and standard deviation.
	SASA(chain int) (average, std []float64, err error)
	DihedralStd(chain int, angle Angle) ([]float64, error)
}

// Code is one secondary-structure classification code with its
// human-readable category label.
type Code struct {
	Code  string
	Label string
}

// CodeTable is an ordered code → category lookup. It is passed into
// LoadChain explicitly; there is no ambient default in the loader.
type CodeTable []Code

// DSSP returns the standard eight-category DSSP code table.
func DSSP() CodeTable {
	return CodeTable{
		{"H", "α-helix"},
		{"G", "3₁₀-helix"},
		{"I", "π-helix"},
		{"E", "β-strand"},
		{"B", "β-bridge"},
		{"T", "turn"},
		{"S", "bend"},
		{"~", "loop"},
	}
}

// Residue is one row of a chain table.
type Residue struct {
	Index       int    // 1-based position within the chain
	Name        string // one-letter residue code
	Number      int    // source residue numbering; Index when the source has none
	SSCounts    map[string]int
	RMSF        float64
	SASAMean    float64
	SASAStd     float64
	DihedralStd map[Angle]float64
}

// ChainTable is the ordered per-residue structural view of one chain.
// Residue order is authoritative and preserved through every merge.
type ChainTable struct {
	ID       string
	Codes    CodeTable
	Residues []Residue
}

// Len returns the chain's sequence length.
func (t *ChainTable) Len() int { return len(t.Residues) }

// SchemaError reports a per-residue array whose length disagrees with
// the chain's sequence length. It is fatal for the chain.
type SchemaError struct {
	Chain string
	Field string
	Want  int
	Got   int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("chain %s: %s has %d entries, want %d", e.Chain, e.Field, e.Got, e.Want)
}
