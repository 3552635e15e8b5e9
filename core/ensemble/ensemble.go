// core/ensemble/ensemble.go
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"resagg-core/potfile"
)

// ErrEmptyEnsemble marks a run where no potential files matched the
// directory scan. It is a surfaced condition, not a hard failure:
// Collect still returns Stats with the reference series populated.
var ErrEmptyEnsemble = errors.New("no potential files matched")

// Options controls one ensemble collection.
type Options struct {
	Dir           string // directory scanned for ensemble potential files
	Suffix        string // filename suffix filter, e.g. ".pot"
	ReferencePath string // mandatory single reference potential file
	SkipMalformed bool   // skip-and-warn on malformed ensemble files instead of aborting
	Workers       int    // parse workers; <=0 means all CPUs
	Log           *zap.Logger
}

// Stat holds the ensemble statistics for one residue: mean and sample
// standard deviation of the per-residue total and per-atom mean
// potential across the file ensemble, plus the reference values.
type Stat struct {
	MeanTotal float64
	StdTotal  float64
	MeanMean  float64
	StdMean   float64
	RefTotal  float64
	RefMean   float64
}

// Stats is the collected ensemble: per chain, per residue sequence
// number. Files lists the matrix columns in their deterministic
// (lexicographic) order; Skipped lists malformed files dropped under
// SkipMalformed.
type Stats struct {
	Files   []string
	Skipped []string
	Empty   bool
	Chains  map[string]map[int]Stat
}

// Chain returns the per-residue stats for one chain, or nil.
func (s *Stats) Chain(id string) map[int]Stat { return s.Chains[id] }

// Discover lists the matching files in dir, sorted lexicographically so
// matrix column order is reproducible across platforms.
func Discover(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		names = append(names, filepath.Join(dir, e.Name()))
	}
	sort.Strings(names)
	return names, nil
}

// Collect parses the reference file and every matching ensemble file,
// assembles the residue × file matrix, and reduces it to per-residue
// statistics. Parsing fans out over a worker pool; results are slotted
// by file index, so output never depends on completion order.
func Collect(ctx context.Context, opts Options) (*Stats, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	ref, err := potfile.Load(opts.ReferencePath)
	if err != nil {
		return nil, fmt.Errorf("reference potential: %w", err)
	}

	files, err := Discover(opts.Dir, opts.Suffix)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", opts.Dir, err)
	}

	series, skipped, err := parseAll(ctx, files, opts.Workers, opts.SkipMalformed, log)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(files))
	cols := make([]potfile.Series, 0, len(files))
	for i, s := range series {
		if s == nil {
			continue
		}
		kept = append(kept, files[i])
		cols = append(cols, s)
	}

	st := &Stats{
		Files:   kept,
		Skipped: skipped,
		Empty:   len(cols) == 0,
		Chains:  reduce(cols, ref),
	}
	if st.Empty {
		log.Warn("empty potential ensemble", zap.String("dir", opts.Dir), zap.String("suffix", opts.Suffix))
	}
	return st, nil
}

// parseAll parses files concurrently. The returned slice is indexed
// like files; nil entries mark skipped files.
func parseAll(ctx context.Context, files []string, workers int, skip bool, log *zap.Logger) ([]potfile.Series, []string, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	series := make([]potfile.Series, len(files))
	errs := make([]error, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					series[i], errs[i] = potfile.Load(files[i])
				}
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var skipped []string
	for i, err := range errs {
		if err == nil {
			continue
		}
		if !skip {
			return nil, nil, err
		}
		log.Warn("skipping malformed potential file", zap.String("file", files[i]), zap.Error(err))
		skipped = append(skipped, files[i])
		series[i] = nil
	}
	return series, skipped, nil
}

// reduce builds the zero-filled matrix rows and computes the ensemble
// statistics. With zero columns every residue of the reference series
// is emitted with NaN mean/std so "no data" stays distinct from zero.
func reduce(cols []potfile.Series, ref potfile.Series) map[string]map[int]Stat {
	rows := make(map[string]map[int][]potfile.Sum)
	for j, s := range cols {
		for chain, residues := range s {
			byRes, ok := rows[chain]
			if !ok {
				byRes = make(map[int][]potfile.Sum)
				rows[chain] = byRes
			}
			for res, sum := range residues {
				vec, ok := byRes[res]
				if !ok {
					vec = make([]potfile.Sum, len(cols))
					byRes[res] = vec
				}
				vec[j] = sum
			}
		}
	}
	if len(cols) == 0 {
		for chain, residues := range ref {
			byRes := make(map[int][]potfile.Sum, len(residues))
			for res := range residues {
				byRes[res] = nil
			}
			rows[chain] = byRes
		}
	}

	out := make(map[string]map[int]Stat, len(rows))
	for chain, byRes := range rows {
		stats := make(map[int]Stat, len(byRes))
		for res, vec := range byRes {
			totals := make([]float64, len(vec))
			means := make([]float64, len(vec))
			for j, sum := range vec {
				totals[j] = sum.Total
				means[j] = sum.Mean()
			}
			st := Stat{
				MeanTotal: mean(totals),
				StdTotal:  sampleStd(totals),
				MeanMean:  mean(means),
				StdMean:   sampleStd(means),
			}
			if r, ok := ref[chain][res]; ok {
				st.RefTotal = r.Total
				st.RefMean = r.Mean()
			}
			stats[res] = st
		}
		out[chain] = stats
	}
	return out
}
