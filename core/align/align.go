// core/align/align.go
package align

import (
	"resagg-core/ensemble"
	"resagg-core/structural"
)

// Strategy maps a structural residue number into the numbering used by
// the potential files. The mapping is explicit and injectable; nothing
// in the pipeline renumbers residues implicitly.
type Strategy func(residueNumber int) int

// Identity assumes the two numberings coincide.
func Identity(n int) int { return n }

// Offset shifts structural numbering by a constant before the lookup.
func Offset(d int) Strategy {
	return func(n int) int { return n + d }
}

// Potential is the aligned per-position potential row.
type Potential struct {
	MeanTotal float64
	StdTotal  float64
	MeanMean  float64
	StdMean   float64
	RefTotal  float64
	RefMean   float64
}

// Potentials aligns one chain's ensemble statistics against the chain
// table: one Potential per residue position, in table order. Positions
// with no matching potential entry default to zeros and are tallied in
// the returned miss count; no position is ever dropped.
func Potentials(table *structural.ChainTable, stats map[int]ensemble.Stat, strategy Strategy) ([]Potential, int) {
	if strategy == nil {
		strategy = Identity
	}
	out := make([]Potential, table.Len())
	misses := 0
	for i, r := range table.Residues {
		st, ok := stats[strategy(r.Number)]
		if !ok {
			misses++
			continue
		}
		out[i] = Potential{
			MeanTotal: st.MeanTotal,
			StdTotal:  st.StdTotal,
			MeanMean:  st.MeanMean,
			StdMean:   st.StdMean,
			RefTotal:  st.RefTotal,
			RefMean:   st.RefMean,
		}
	}
	return out, misses
}
