// internal/cli/cli.go
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"resagg/internal/app"
	"resagg/internal/config"
	"resagg/internal/version"
	"resagg/internal/writers"
)

// Execute parses argv and runs the selected command. Exit codes:
// 0 success, 1 run failure, 2 usage or configuration error.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	code := 0
	root := newRootCmd(stdout, stderr, &code)
	root.SetArgs(argv)
	if err := root.ExecuteContext(ctx); err != nil {
		return 2
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "resagg",
		Short:         "aggregate per-residue measurements of a biomolecular structure",
		Version:       version.Version,
		SilenceUsage:  false,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newResidueCmd(stdout, stderr, code))
	return root
}

func newResidueCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	flagCfg := config.Default()
	var configFile string

	cmd := &cobra.Command{
		Use:   "residue",
		Short: "merge structural attributes and ensemble potentials into one per-chain table",
		Long: `residue parses an ensemble of potential files, reduces them to
per-residue statistics, aligns them with the structural tables, and
writes one categorized record per chain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configFile != "" {
				if err := config.LoadFile(configFile, cfg); err != nil {
					return err
				}
			}
			applyFlags(cmd, flagCfg, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !knownFormat(cfg.Format) {
				return fmt.Errorf("invalid --format %q (have %v)", cfg.Format, writers.Formats())
			}
			cmd.SilenceUsage = true
			*code = app.RunContext(cmd.Context(), cfg, stdout, stderr)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&configFile, "config", "c", "", "YAML run-config file; flags override it")
	fl.StringVar(&flagCfg.PotentialsDir, "potentials", "", "directory scanned for ensemble potential files")
	fl.StringVar(&flagCfg.Suffix, "suffix", flagCfg.Suffix, "filename suffix filter for the directory scan")
	fl.StringVar(&flagCfg.Reference, "reference", "", "reference (PDB) potential file, mandatory")
	fl.StringVar(&flagCfg.Structure, "structure", "", "structural/dynamics store (JSON export)")
	fl.StringVar(&flagCfg.Annotations, "annotations", "", "optional annotation file (label → residues per chain)")
	fl.StringToIntVar(&flagCfg.Offsets, "offset", nil, "chain=N residue numbering offset (repeatable)")
	fl.StringVarP(&flagCfg.Output, "output", "o", "", "output file (default stdout)")
	fl.StringVar(&flagCfg.Format, "format", flagCfg.Format, "output format: json | tsv")
	fl.StringVar(&flagCfg.Prefix, "prefix", "", "free-form label stored in the output record")
	fl.BoolVar(&flagCfg.SkipMalformed, "skip-malformed", false, "skip malformed ensemble files instead of aborting")
	fl.IntVar(&flagCfg.Workers, "workers", 0, "parse workers (0 = all CPUs)")
	fl.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "log level: debug | info | warn | error")
	fl.StringVar(&flagCfg.LogFormat, "log-format", flagCfg.LogFormat, "log format: console | json")
	fl.BoolVarP(&flagCfg.Quiet, "quiet", "q", false, "only log errors")
	fl.BoolVar(&flagCfg.Stats, "stats", false, "print run counters to stderr when done")
	return cmd
}

// applyFlags copies every flag the user actually set over the
// file-derived config, so precedence is defaults < file < flags.
func applyFlags(cmd *cobra.Command, from, to *config.Config) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("potentials", func() { to.PotentialsDir = from.PotentialsDir })
	set("suffix", func() { to.Suffix = from.Suffix })
	set("reference", func() { to.Reference = from.Reference })
	set("structure", func() { to.Structure = from.Structure })
	set("annotations", func() { to.Annotations = from.Annotations })
	set("offset", func() { to.Offsets = from.Offsets })
	set("output", func() { to.Output = from.Output })
	set("format", func() { to.Format = from.Format })
	set("prefix", func() { to.Prefix = from.Prefix })
	set("skip-malformed", func() { to.SkipMalformed = from.SkipMalformed })
	set("workers", func() { to.Workers = from.Workers })
	set("log-level", func() { to.LogLevel = from.LogLevel })
	set("log-format", func() { to.LogFormat = from.LogFormat })
	set("quiet", func() { to.Quiet = from.Quiet })
	set("stats", func() { to.Stats = from.Stats })
}

func knownFormat(format string) bool {
	for _, f := range writers.Formats() {
		if f == format {
			return true
		}
	}
	return false
}
