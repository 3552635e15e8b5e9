// core/potfile/potfile.go
package potfile

import "sort"

// Atom is one data row of a potential table: a single atom's surface
// electrostatic potential plus its reaction/coulomb/field components.
// The extra components are carried through untouched; only Potential
// feeds the per-residue reduction.
type Atom struct {
	Name      string
	Residue   string
	Chain     string
	ResSeq    int
	Potential float64
	Reaction  float64
	Coulomb   float64
	Ex        float64
	Ey        float64
	Ez        float64
}

// Sum accumulates the potential over one residue's atoms.
type Sum struct {
	Total float64
	Atoms int
}

// Mean is the per-atom mean potential for the residue.
func (s Sum) Mean() float64 {
	if s.Atoms == 0 {
		return 0
	}
	return s.Total / float64(s.Atoms)
}

// Series maps chain ID → residue sequence number → summed potential.
// Residue numbering is whatever the source file used; it is not assumed
// contiguous or 1-based.
type Series map[string]map[int]Sum

func (s Series) add(a Atom) {
	ch, ok := s[a.Chain]
	if !ok {
		ch = make(map[int]Sum)
		s[a.Chain] = ch
	}
	v := ch[a.ResSeq]
	v.Total += a.Potential
	v.Atoms++
	ch[a.ResSeq] = v
}

// Reduce groups atoms by chain and residue sequence number and sums
// their potentials. Summation is order-independent.
func Reduce(atoms []Atom) Series {
	s := make(Series)
	for _, a := range atoms {
		s.add(a)
	}
	return s
}

// Chain returns the residue map for one chain, or nil.
func (s Series) Chain(id string) map[int]Sum { return s[id] }

// Chains returns the chain IDs present in the series, sorted.
func (s Series) Chains() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
