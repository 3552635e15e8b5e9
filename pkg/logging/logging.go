// Package logging builds the structured logger used across the
// pipeline.
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug | info | warn | error
	Format string // "json" or "console"
	Quiet  bool   // raise the floor to error regardless of Level
}

// New constructs a zap logger. Unknown levels fall back to info rather
// than failing the run.
func New(cfg Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.DisableStacktrace = true

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if cfg.Quiet {
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	zc.Level = level

	if cfg.Format == "console" {
		zc.Encoding = "console"
	} else {
		zc.Encoding = "json"
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
