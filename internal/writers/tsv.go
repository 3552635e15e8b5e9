// internal/writers/tsv.go
package writers

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"resagg-core/record"
	"resagg-core/residue"
)

func init() {
	Register("tsv", WriteTSV)
}

// WriteTSV dumps one block per chain: a comment header naming the
// chain, two header rows (category, column), then one row per residue
// position. NaN statistics print as NA so spreadsheet imports do not
// choke.
func WriteTSV(w io.Writer, out *record.Output) error {
	bw := bufio.NewWriter(w)

	write := func(s string) {
		_, _ = bw.WriteString(s)
	}

	write("# prefix\t" + out.Prefix + "\n")
	for _, chain := range out.Chains {
		write("# chain\t" + chain.ID + "\n")
		var cats, cols []string
		for _, cat := range chain.Data.Categories {
			for _, col := range cat.Columns {
				cats = append(cats, cat.Name)
				cols = append(cols, col.Name)
			}
		}
		writeRow(bw, cats)
		writeRow(bw, cols)

		for k := 0; k < chain.Data.Length; k++ {
			row := make([]string, 0, len(cols))
			for _, cat := range chain.Data.Categories {
				for _, col := range cat.Columns {
					row = append(row, cell(&col, k))
				}
			}
			writeRow(bw, row)
		}
	}
	return bw.Flush()
}

func writeRow(bw *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			_ = bw.WriteByte('\t')
		}
		_, _ = bw.WriteString(f)
	}
	_ = bw.WriteByte('\n')
}

func cell(col *residue.Column, k int) string {
	if col.Text != nil {
		return col.Text[k]
	}
	v := col.Values[k]
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
