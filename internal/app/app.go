// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"resagg-core/align"
	"resagg-core/ensemble"
	"resagg-core/record"
	"resagg-core/residue"
	"resagg-core/structural"

	"resagg/internal/config"
	"resagg/internal/jsonutil"
	"resagg/internal/structsource"
	"resagg/internal/writers"
	"resagg/pkg/logging"
	"resagg/pkg/metrics"
)

// RunContext executes one aggregation run and returns the process exit
// code: 0 on success, 1 on any run failure. Usage errors never reach
// here; the CLI layer rejects them first.
func RunContext(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) int {
	log, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Quiet: cfg.Quiet})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	met := metrics.NewPipeline()

	fail := func(err error) int {
		log.Error("aggregation failed", zap.Error(err))
		return 1
	}

	src, err := structsource.Open(cfg.Structure)
	if err != nil {
		return fail(fmt.Errorf("structure: %w", err))
	}

	stats, err := ensemble.Collect(ctx, ensemble.Options{
		Dir:           cfg.PotentialsDir,
		Suffix:        cfg.Suffix,
		ReferencePath: cfg.Reference,
		SkipMalformed: cfg.SkipMalformed,
		Workers:       cfg.Workers,
		Log:           log,
	})
	if err != nil {
		return fail(err)
	}
	met.FilesParsed.Add(float64(len(stats.Files)))
	met.FilesSkipped.Add(float64(len(stats.Skipped)))
	if stats.Empty {
		met.EmptyEnsembles.Inc()
		log.Warn("continuing with undefined ensemble statistics",
			zap.String("dir", cfg.PotentialsDir), zap.Error(ensemble.ErrEmptyEnsemble))
	}

	var annotations map[string]record.ChainAnnotations
	if cfg.Annotations != "" {
		if err := jsonutil.DecodeFile(cfg.Annotations, &annotations); err != nil {
			return fail(fmt.Errorf("annotations: %w", err))
		}
	}

	codes := structural.DSSP()
	var builder record.Builder
	for i, id := range src.Chains() {
		table, err := structural.LoadChain(src, i, codes)
		if err != nil {
			return fail(err)
		}

		strategy := align.Strategy(align.Identity)
		if d, ok := cfg.Offsets[id]; ok {
			strategy = align.Offset(d)
		}

		chainStats := stats.Chain(id)
		if chainStats == nil {
			log.Warn("no potential data for chain", zap.String("chain", id))
		}
		pots, misses := align.Potentials(table, chainStats, strategy)
		if misses > 0 {
			met.AlignmentMisses.WithLabelValues(id).Add(float64(misses))
			log.Warn("residues without potential entries defaulted to zero",
				zap.String("chain", id), zap.Int("misses", misses), zap.Int("residues", table.Len()))
		}

		rec, err := residue.Merge(table, pots)
		if err != nil {
			return fail(err)
		}
		builder.Add(id, rec)
		met.ChainsMerged.Inc()
	}

	out := builder.Build(cfg.Prefix, annotations)

	dst := stdout
	if cfg.Output != "" {
		fh, err := os.Create(cfg.Output)
		if err != nil {
			return fail(err)
		}
		defer func() { _ = fh.Close() }()
		dst = fh
	}
	if err := writers.Write(cfg.Format, dst, out); err != nil {
		return fail(err)
	}

	if cfg.Stats {
		if err := met.Dump(stderr); err != nil {
			log.Warn("metrics dump failed", zap.Error(err))
		}
	}
	log.Info("aggregation complete",
		zap.String("run_id", out.RunID),
		zap.Int("chains", len(out.Chains)),
		zap.Int("ensemble_files", len(stats.Files)),
		zap.Int("skipped_files", len(stats.Skipped)))
	return 0
}
