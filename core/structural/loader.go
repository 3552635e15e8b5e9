// core/structural/loader.go
package structural

import (
	"fmt"
)

// LoadChain reads one chain from src and assembles its per-residue
// table: one row per sequence character, carrying secondary-structure
// occupancy counts for every code in codes, RMSF, SASA summaries, and
// phi/psi/omega standard deviations. Every non-nil per-residue array
// must match the sequence length exactly; a mismatch is a
// *SchemaError.
func LoadChain(src Source, chain int, codes CodeTable) (*ChainTable, error) {
	ids := src.Chains()
	if chain < 0 || chain >= len(ids) {
		return nil, fmt.Errorf("chain index %d out of range (have %d chains)", chain, len(ids))
	}
	id := ids[chain]

	seq, err := src.Sequence(chain)
	if err != nil {
		return nil, fmt.Errorf("chain %s: sequence: %w", id, err)
	}
	n := len(seq)

	numbers, err := src.ResidueNumbers(chain)
	if err != nil {
		return nil, fmt.Errorf("chain %s: residue numbers: %w", id, err)
	}
	if numbers != nil && len(numbers) != n {
		return nil, &SchemaError{Chain: id, Field: "residue_numbers", Want: n, Got: len(numbers)}
	}

	counts := make(map[string][]int, len(codes))
	for _, c := range codes {
		v, err := src.SecondaryStructureCounts(chain, c.Code)
		if err != nil {
			return nil, fmt.Errorf("chain %s: secondary structure %q: %w", id, c.Code, err)
		}
		if v != nil && len(v) != n {
			return nil, &SchemaError{Chain: id, Field: "secondary_structure." + c.Code, Want: n, Got: len(v)}
		}
		counts[c.Code] = v
	}

	rmsf, err := src.RMSF(chain)
	if err != nil {
		return nil, fmt.Errorf("chain %s: rmsf: %w", id, err)
	}
	if len(rmsf) != n {
		return nil, &SchemaError{Chain: id, Field: "rmsf", Want: n, Got: len(rmsf)}
	}

	sasaMean, sasaStd, err := src.SASA(chain)
	if err != nil {
		return nil, fmt.Errorf("chain %s: sasa: %w", id, err)
	}
	if sasaMean != nil && len(sasaMean) != n {
		return nil, &SchemaError{Chain: id, Field: "sasa.average", Want: n, Got: len(sasaMean)}
	}
	if sasaStd != nil && len(sasaStd) != n {
		return nil, &SchemaError{Chain: id, Field: "sasa.standard_deviation", Want: n, Got: len(sasaStd)}
	}

	dihedrals := make(map[Angle][]float64, len(Angles))
	for _, ang := range Angles {
		v, err := src.DihedralStd(chain, ang)
		if err != nil {
			return nil, fmt.Errorf("chain %s: dihedral %s: %w", id, ang, err)
		}
		if v != nil && len(v) != n {
			return nil, &SchemaError{Chain: id, Field: "dihedral_standard_deviation." + string(ang), Want: n, Got: len(v)}
		}
		dihedrals[ang] = v
	}

	table := &ChainTable{ID: id, Codes: codes, Residues: make([]Residue, n)}
	for i := 0; i < n; i++ {
		r := Residue{
			Index:       i + 1,
			Name:        string(seq[i]),
			Number:      i + 1,
			SSCounts:    make(map[string]int, len(codes)),
			RMSF:        rmsf[i],
			DihedralStd: make(map[Angle]float64, len(Angles)),
		}
		if numbers != nil {
			r.Number = numbers[i]
		}
		if sasaMean != nil {
			r.SASAMean = sasaMean[i]
		}
		if sasaStd != nil {
			r.SASAStd = sasaStd[i]
		}
		for _, c := range codes {
			if v := counts[c.Code]; v != nil {
				r.SSCounts[c.Code] = v[i]
			} else {
				r.SSCounts[c.Code] = 0
			}
		}
		for _, ang := range Angles {
			if v := dihedrals[ang]; v != nil {
				r.DihedralStd[ang] = v[i]
			} else {
				r.DihedralStd[ang] = 0
			}
		}
		table.Residues[i] = r
	}
	return table, nil
}
