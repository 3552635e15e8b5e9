// core/structural/loader_test.go
package structural

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource is an in-memory Source for tests.
type memSource struct {
	ids      []string
	seq      map[int]string
	numbers  map[int][]int
	ss       map[int]map[string][]int
	rmsf     map[int][]float64
	sasaMean map[int][]float64
	sasaStd  map[int][]float64
	dihedral map[int]map[Angle][]float64
}

func (m *memSource) Chains() []string                { return m.ids }
func (m *memSource) Sequence(c int) (string, error)  { return m.seq[c], nil }
func (m *memSource) ResidueNumbers(c int) ([]int, error) { return m.numbers[c], nil }
func (m *memSource) RMSF(c int) ([]float64, error)   { return m.rmsf[c], nil }

func (m *memSource) SecondaryStructureCounts(c int, code string) ([]int, error) {
	return m.ss[c][code], nil
}

func (m *memSource) SASA(c int) ([]float64, []float64, error) {
	return m.sasaMean[c], m.sasaStd[c], nil
}

func (m *memSource) DihedralStd(c int, a Angle) ([]float64, error) {
	return m.dihedral[c][a], nil
}

func twoResidueSource() *memSource {
	return &memSource{
		ids:     []string{"A"},
		seq:     map[int]string{0: "MK"},
		numbers: map[int][]int{0: {10, 11}},
		ss: map[int]map[string][]int{0: {
			"H": {5, 0},
			"E": {0, 3},
		}},
		rmsf:     map[int][]float64{0: {0.12, 0.34}},
		sasaMean: map[int][]float64{0: {70.5, 81.0}},
		sasaStd:  map[int][]float64{0: {4.2, 6.1}},
		dihedral: map[int]map[Angle][]float64{0: {
			Phi: {0.5, 0.6},
			Psi: {0.7, 0.8},
		}},
	}
}

func TestLoadChain(t *testing.T) {
	table, err := LoadChain(twoResidueSource(), 0, DSSP())
	require.NoError(t, err)

	assert.Equal(t, "A", table.ID)
	require.Equal(t, 2, table.Len())

	first := table.Residues[0]
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, "M", first.Name)
	assert.Equal(t, 10, first.Number)
	assert.Equal(t, 5, first.SSCounts["H"])
	assert.Equal(t, 0, first.SSCounts["E"])
	assert.Equal(t, 0, first.SSCounts["T"]) // absent dataset reads as zeros
	assert.Equal(t, 0.12, first.RMSF)
	assert.Equal(t, 70.5, first.SASAMean)
	assert.Equal(t, 4.2, first.SASAStd)
	assert.Equal(t, 0.5, first.DihedralStd[Phi])
	assert.Equal(t, 0.0, first.DihedralStd[Omega])

	second := table.Residues[1]
	assert.Equal(t, 2, second.Index)
	assert.Equal(t, "K", second.Name)
	assert.Equal(t, 11, second.Number)
}

func TestLoadChainDefaultsResidueNumbers(t *testing.T) {
	src := twoResidueSource()
	src.numbers = nil
	table, err := LoadChain(src, 0, DSSP())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Residues[0].Number)
	assert.Equal(t, 2, table.Residues[1].Number)
}

func TestLoadChainSchemaMismatch(t *testing.T) {
	src := twoResidueSource()
	src.seq[0] = "MKVLITGAGI" // length 10
	src.numbers = nil
	src.ss = nil
	src.dihedral = nil
	src.rmsf[0] = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9} // length 9

	_, err := LoadChain(src, 0, DSSP())
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "rmsf", se.Field)
	assert.Equal(t, 10, se.Want)
	assert.Equal(t, 9, se.Got)
}

func TestLoadChainAbsentSASAReadsAsZeros(t *testing.T) {
	src := twoResidueSource()
	src.sasaMean = nil
	src.sasaStd = nil
	table, err := LoadChain(src, 0, DSSP())
	require.NoError(t, err)
	assert.Equal(t, 0.0, table.Residues[0].SASAMean)
	assert.Equal(t, 0.0, table.Residues[1].SASAStd)
}

func TestLoadChainSASASchemaMismatch(t *testing.T) {
	src := twoResidueSource()
	src.sasaStd = map[int][]float64{0: {4.2}}

	_, err := LoadChain(src, 0, DSSP())
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "sasa.standard_deviation", se.Field)
	assert.Equal(t, 2, se.Want)
	assert.Equal(t, 1, se.Got)
}

func TestLoadChainIndexOutOfRange(t *testing.T) {
	_, err := LoadChain(twoResidueSource(), 3, DSSP())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestDSSPOrderIsStable(t *testing.T) {
	codes := DSSP()
	var order []string
	for _, c := range codes {
		order = append(order, c.Code)
	}
	assert.Equal(t, []string{"H", "G", "I", "E", "B", "T", "S", "~"}, order)
}
