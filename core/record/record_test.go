// core/record/record_test.go
package record

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resagg-core/residue"
)

func sampleRecord() *residue.ChainRecord {
	return &residue.ChainRecord{
		Length: 2,
		Categories: []residue.Category{
			{Name: residue.CategorySequence, Columns: []residue.Column{
				{Name: "resn", Text: []string{"M", "K"}},
				{Name: "resi", Values: residue.Float64s{1, 2}},
			}},
			{Name: residue.CategorySurfacePotential, Columns: []residue.Column{
				{Name: "mean_total", Values: residue.Float64s{math.NaN(), 4.5}},
			}},
		},
	}
}

func TestBuilderKeepsChainOrder(t *testing.T) {
	var b Builder
	b.Add("B", sampleRecord())
	b.Add("A", sampleRecord())
	out := b.Build("lysozyme", nil)

	assert.Equal(t, "lysozyme", out.Prefix)
	require.Len(t, out.Chains, 2)
	assert.Equal(t, "B", out.Chains[0].ID)
	assert.Equal(t, "A", out.Chains[1].ID)
	_, err := uuid.Parse(out.RunID)
	assert.NoError(t, err)
	assert.NotNil(t, out.Chain("A"))
	assert.Nil(t, out.Chain("C"))
}

func TestOutputRoundTrip(t *testing.T) {
	var b Builder
	b.Add("A", sampleRecord())
	out := b.Build("test", map[string]ChainAnnotations{
		"A": {"Active Site": {Single(35), Range(52, 54)}},
	})

	first, err := json.Marshal(out)
	require.NoError(t, err)

	var back Output
	require.NoError(t, json.Unmarshal(first, &back))
	second, err := json.Marshal(&back)
	require.NoError(t, err)

	assert.Equal(t, first, second, "serialized tables must round-trip byte-for-byte")
	assert.Equal(t, out.Prefix, back.Prefix)
	assert.True(t, math.IsNaN(back.Chain("A").Data.Category(residue.CategorySurfacePotential).Column("mean_total").Values[0]))
}

func TestResidueRefJSON(t *testing.T) {
	b, err := json.Marshal([]ResidueRef{Single(7), Range(10, 12)})
	require.NoError(t, err)
	assert.Equal(t, `[7,[10,12]]`, string(b))

	var refs []ResidueRef
	require.NoError(t, json.Unmarshal([]byte(`[3,[5,9]]`), &refs))
	assert.Equal(t, []ResidueRef{Single(3), Range(5, 9)}, refs)

	var bad ResidueRef
	assert.Error(t, json.Unmarshal([]byte(`"x"`), &bad))
}

func TestResidueRefNormalizesDegenerateRange(t *testing.T) {
	var ref ResidueRef
	require.NoError(t, json.Unmarshal([]byte(`[11,11]`), &ref))
	assert.Equal(t, Single(11), ref)

	b, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.Equal(t, `11`, string(b), "degenerate ranges re-marshal in the canonical single form")
}
