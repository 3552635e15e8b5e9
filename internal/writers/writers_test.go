// internal/writers/writers_test.go
package writers

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resagg-core/record"
	"resagg-core/residue"
)

func sampleOutput() *record.Output {
	rec := &residue.ChainRecord{
		Length: 2,
		Categories: []residue.Category{
			{Name: residue.CategorySequence, Columns: []residue.Column{
				{Name: "resn", Text: []string{"M", "K"}},
				{Name: "resi", Values: residue.Float64s{1, 2}},
			}},
			{Name: residue.CategoryRMSF, Columns: []residue.Column{
				{Name: "rmsf", Values: residue.Float64s{0.5, math.NaN()}},
			}},
		},
	}
	var b record.Builder
	b.Add("A", rec)
	return b.Build("test", nil)
}

func TestFormatsRegistered(t *testing.T) {
	assert.Equal(t, []string{"json", "tsv"}, Formats())
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write("yaml", &bytes.Buffer{}, sampleOutput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "yaml"`)
}

func TestJSONRoundTrip(t *testing.T) {
	out := sampleOutput()

	var first bytes.Buffer
	require.NoError(t, Write("json", &first, out))

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, first.Bytes(), 0o644))

	back, err := ReadJSON(path)
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, Write("json", &second, back))
	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.True(t, math.IsNaN(back.Chain("A").Data.Category(residue.CategoryRMSF).Column("rmsf").Values[1]))
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write("tsv", &buf, sampleOutput()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// prefix, chain, category row, column row, two data rows
	require.Len(t, lines, 6)
	assert.Equal(t, "# prefix\ttest", lines[0])
	assert.Equal(t, "# chain\tA", lines[1])
	assert.Equal(t, "sequence\tsequence\trmsf", lines[2])
	assert.Equal(t, "resn\tresi\trmsf", lines[3])
	assert.Equal(t, "M\t1\t0.5", lines[4])
	assert.Equal(t, "K\t2\tNA", lines[5])
}
