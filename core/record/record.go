// core/record/record.go
package record

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"resagg-core/residue"
)

// ResidueRef names either a single residue (Start == End) or an
// inclusive residue range. It serializes the way annotation files
// write it: a bare number for a single residue, a two-element array
// for a range. The form is canonical, not preserved: a degenerate
// range [n, n] normalizes to the bare number on the next marshal.
type ResidueRef struct {
	Start int
	End   int
}

// Single returns a one-residue ref.
func Single(n int) ResidueRef { return ResidueRef{Start: n, End: n} }

// Range returns an inclusive range ref.
func Range(start, end int) ResidueRef { return ResidueRef{Start: start, End: end} }

func (r ResidueRef) MarshalJSON() ([]byte, error) {
	if r.Start == r.End {
		return json.Marshal(r.Start)
	}
	return json.Marshal([2]int{r.Start, r.End})
}

func (r *ResidueRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Single(n)
		return nil
	}
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("residue ref must be a number or [start, end]: %w", err)
	}
	*r = Range(pair[0], pair[1])
	return nil
}

// ChainAnnotations maps an annotation label (e.g. "Active Site") to
// the residues it marks.
type ChainAnnotations map[string][]ResidueRef

// ChainEntry pairs a chain ID with its categorized table. A slice of
// entries, rather than a map, keeps chain order stable through
// serialization.
type ChainEntry struct {
	ID   string               `json:"id"`
	Data *residue.ChainRecord `json:"data"`
}

// Output is the single serializable result of an aggregation run.
// Annotations are stored exactly as supplied.
type Output struct {
	Prefix      string                      `json:"prefix"`
	RunID       string                      `json:"run_id"`
	Annotations map[string]ChainAnnotations `json:"annotations,omitempty"`
	Chains      []ChainEntry                `json:"chains"`
}

// Chain returns the entry for one chain ID, or nil.
func (o *Output) Chain(id string) *ChainEntry {
	for i := range o.Chains {
		if o.Chains[i].ID == id {
			return &o.Chains[i]
		}
	}
	return nil
}

// Builder accumulates per-chain records in call order.
type Builder struct {
	chains []ChainEntry
}

// Add appends one chain's record.
func (b *Builder) Add(id string, rec *residue.ChainRecord) {
	b.chains = append(b.chains, ChainEntry{ID: id, Data: rec})
}

// Build assembles the output record and stamps a fresh run ID.
func (b *Builder) Build(prefix string, annotations map[string]ChainAnnotations) *Output {
	return &Output{
		Prefix:      prefix,
		RunID:       uuid.NewString(),
		Annotations: annotations,
		Chains:      b.chains,
	}
}
