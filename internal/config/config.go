// internal/config/config.go
package config

import (
	"errors"
	"fmt"
)

// Config holds every knob of one aggregation run. Flags and the
// optional run-config file both land here; flags win.
type Config struct {
	// Inputs
	PotentialsDir string `koanf:"potentials_dir"`
	Suffix        string `koanf:"suffix"`
	Reference     string `koanf:"reference"`
	Structure     string `koanf:"structure"`
	Annotations   string `koanf:"annotations"`

	// Alignment: per-chain constant offset added to structural residue
	// numbers before the potential lookup.
	Offsets map[string]int `koanf:"offsets"`

	// Output
	Output string `koanf:"output"` // file path; empty = stdout
	Format string `koanf:"format"`
	Prefix string `koanf:"prefix"`

	// Run policy
	SkipMalformed bool `koanf:"skip_malformed"`
	Workers       int  `koanf:"workers"`

	// Reporting
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	Quiet     bool   `koanf:"quiet"`
	Stats     bool   `koanf:"stats"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Suffix:    ".pot",
		Format:    "json",
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Validate checks the required inputs and basic ranges. Format
// validity is checked against the writer registry by the CLI layer.
func (c *Config) Validate() error {
	switch {
	case c.PotentialsDir == "":
		return errors.New("potentials directory is required")
	case c.Reference == "":
		return errors.New("reference potential file is required")
	case c.Structure == "":
		return errors.New("structure file is required")
	case c.Suffix == "":
		return errors.New("suffix must not be empty")
	case c.Workers < 0:
		return fmt.Errorf("workers must be ≥ 0, got %d", c.Workers)
	}
	return nil
}
