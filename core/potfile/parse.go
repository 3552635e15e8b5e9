// core/potfile/parse.go
package potfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Potential files carry a fixed-size preamble and trailer around the
// atom table.
const (
	HeaderLines = 12
	FooterLines = 2
	fieldCount  = 10
)

// ParseError reports a malformed data line with enough context to be
// actionable. Callers choose whether one bad file aborts the run.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// Atoms reads one potential table from r. name is used in error
// messages only. The first HeaderLines and last FooterLines lines are
// skipped; everything between must be whitespace-delimited rows of
// exactly fieldCount fields:
//
//	atom residue chain resSeq potential reaction coulomb Ex Ey Ez
func Atoms(r io.Reader, name string) ([]Atom, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(lines) < HeaderLines+FooterLines {
		return nil, &ParseError{Path: name, Line: len(lines), Reason: "file too short for header and footer"}
	}

	var atoms []Atom
	for i := HeaderLines; i < len(lines)-FooterLines; i++ {
		ln := i + 1
		f := strings.Fields(lines[i])
		if len(f) == 0 {
			continue
		}
		if len(f) != fieldCount {
			return nil, &ParseError{Path: name, Line: ln, Reason: fmt.Sprintf("bad field count %d (want %d)", len(f), fieldCount)}
		}
		resSeq, err := strconv.Atoi(f[3])
		if err != nil {
			return nil, &ParseError{Path: name, Line: ln, Reason: fmt.Sprintf("bad residue number %q", f[3])}
		}
		a := Atom{Name: f[0], Residue: f[1], Chain: f[2], ResSeq: resSeq}
		for j, dst := range []*float64{&a.Potential, &a.Reaction, &a.Coulomb, &a.Ex, &a.Ey, &a.Ez} {
			v, err := strconv.ParseFloat(f[4+j], 64)
			if err != nil {
				return nil, &ParseError{Path: name, Line: ln, Reason: fmt.Sprintf("bad value %q", f[4+j])}
			}
			*dst = v
		}
		atoms = append(atoms, a)
	}
	return atoms, nil
}

// Parse reads one potential table and reduces it per residue.
func Parse(r io.Reader, name string) (Series, error) {
	atoms, err := Atoms(r, name)
	if err != nil {
		return nil, err
	}
	return Reduce(atoms), nil
}

// Load parses the potential file at path.
func Load(path string) (Series, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Parse(fh, path)
}
