// core/residue/table.go
package residue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Category names, in their fixed output order.
const (
	CategorySequence           = "sequence"
	CategorySecondaryStructure = "secondary_structure"
	CategoryRMSF               = "rmsf"
	CategorySASA               = "sasa"
	CategoryDihedralStd        = "dihedral_standard_deviation"
	CategorySurfacePotential   = "surface_potential"
)

// Float64s is a numeric column that survives JSON round-trips even
// when it carries NaN (serialized as null), which the ensemble stats
// use to mark "no data".
type Float64s []float64

func (f Float64s) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range f {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(v) {
			b.WriteString("null")
			continue
		}
		b.Write(strconv.AppendFloat(nil, v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

func (f *Float64s) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Float64s, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *p
		}
	}
	*f = out
	return nil
}

// Column is one named, fixed-length column. Exactly one of Text and
// Values is populated.
type Column struct {
	Name   string   `json:"name"`
	Label  string   `json:"label,omitempty"`
	Text   []string `json:"text,omitempty"`
	Values Float64s `json:"values,omitempty"`
}

// Len returns the column's row count.
func (c *Column) Len() int {
	if c.Text != nil {
		return len(c.Text)
	}
	return len(c.Values)
}

// Category groups the columns of one measurement family.
type Category struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column returns the named column, or nil.
func (c *Category) Column(name string) *Column {
	for i := range c.Columns {
		if c.Columns[i].Name == name {
			return &c.Columns[i]
		}
	}
	return nil
}

// ChainRecord is the categorized per-chain table: every column in
// every category has exactly Length rows and shares the row-position
// key (position k is residue k of the chain sequence).
type ChainRecord struct {
	Length     int        `json:"length"`
	Categories []Category `json:"categories"`
}

// Category returns the named category, or nil.
func (r *ChainRecord) Category(name string) *Category {
	for i := range r.Categories {
		if r.Categories[i].Name == name {
			return &r.Categories[i]
		}
	}
	return nil
}

// Validate checks the shared-length invariant.
func (r *ChainRecord) Validate() error {
	for _, cat := range r.Categories {
		for _, col := range cat.Columns {
			if col.Len() != r.Length {
				return fmt.Errorf("category %s column %s: %d rows, want %d", cat.Name, col.Name, col.Len(), r.Length)
			}
		}
	}
	return nil
}
