// core/residue/merge.go
package residue

import (
	"fmt"

	"resagg-core/align"
	"resagg-core/structural"
)

// Merge joins one chain's structural table with its aligned potential
// rows into a categorized ChainRecord. Categories appear in the fixed
// order sequence, secondary_structure, rmsf, sasa,
// dihedral_standard_deviation, surface_potential; rows are never
// reordered or dropped, so the record length always equals the chain's
// sequence length.
func Merge(table *structural.ChainTable, pots []align.Potential) (*ChainRecord, error) {
	n := table.Len()
	if len(pots) != n {
		return nil, fmt.Errorf("chain %s: %d potential rows for %d residues", table.ID, len(pots), n)
	}

	resn := make([]string, n)
	resi := make(Float64s, n)
	for i, r := range table.Residues {
		resn[i] = r.Name
		resi[i] = float64(r.Number)
	}

	ssCols := make([]Column, 0, len(table.Codes))
	for _, c := range table.Codes {
		counts := make(Float64s, n)
		for i, r := range table.Residues {
			counts[i] = float64(r.SSCounts[c.Code])
		}
		ssCols = append(ssCols, Column{Name: c.Code, Label: c.Label, Values: counts})
	}

	rmsf := make(Float64s, n)
	sasaMean := make(Float64s, n)
	sasaStd := make(Float64s, n)
	for i, r := range table.Residues {
		rmsf[i] = r.RMSF
		sasaMean[i] = r.SASAMean
		sasaStd[i] = r.SASAStd
	}

	dihedralCols := make([]Column, 0, len(structural.Angles))
	for _, ang := range structural.Angles {
		v := make(Float64s, n)
		for i, r := range table.Residues {
			v[i] = r.DihedralStd[ang]
		}
		dihedralCols = append(dihedralCols, Column{Name: string(ang), Values: v})
	}

	potCols := []Column{
		{Name: "mean_total", Values: pick(pots, func(p align.Potential) float64 { return p.MeanTotal })},
		{Name: "std_total", Values: pick(pots, func(p align.Potential) float64 { return p.StdTotal })},
		{Name: "mean_mean", Values: pick(pots, func(p align.Potential) float64 { return p.MeanMean })},
		{Name: "std_mean", Values: pick(pots, func(p align.Potential) float64 { return p.StdMean })},
		{Name: "pdb_total", Values: pick(pots, func(p align.Potential) float64 { return p.RefTotal })},
		{Name: "pdb_mean", Values: pick(pots, func(p align.Potential) float64 { return p.RefMean })},
	}

	rec := &ChainRecord{
		Length: n,
		Categories: []Category{
			{Name: CategorySequence, Columns: []Column{
				{Name: "resn", Text: resn},
				{Name: "resi", Values: resi},
			}},
			{Name: CategorySecondaryStructure, Columns: ssCols},
			{Name: CategoryRMSF, Columns: []Column{{Name: "rmsf", Values: rmsf}}},
			{Name: CategorySASA, Columns: []Column{
				{Name: "average", Values: sasaMean},
				{Name: "standard_deviation", Values: sasaStd},
			}},
			{Name: CategoryDihedralStd, Columns: dihedralCols},
			{Name: CategorySurfacePotential, Columns: potCols},
		},
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func pick(pots []align.Potential, get func(align.Potential) float64) Float64s {
	out := make(Float64s, len(pots))
	for i, p := range pots {
		out[i] = get(p)
	}
	return out
}
