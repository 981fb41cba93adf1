package main

import (
	"context"
	"os"

	"tally/internal/cli"
	"tally/internal/config"
	"tally/internal/pipeline"
)

// tally runs one pipeline pass and writes the totals JSON to stdout.
// Diagnostics go to stderr; a non-zero exit means no JSON was emitted.
func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	cfg := config.Load()

	// A positional argument overrides the configured input and forces the
	// file backend.
	if len(os.Args) > 1 {
		cfg.InputFile = os.Args[1]
		cfg.InputBackend = config.FileBackend
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	reader, err := pipeline.ReaderFor(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize input reader", "error", err, "backend", cfg.InputBackend)
		os.Exit(1)
	}

	report, err := pipeline.Run(ctx, reader, os.Stdout)
	if err != nil {
		logger.Error("Pipeline failed", "error", err, "backend", cfg.InputBackend)
		os.Exit(1)
	}

	logger.Info("Totals emitted", "rows", report.Rows, "categories", len(report.Result))
}
