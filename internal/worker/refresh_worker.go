// Package worker republishes the totals artifact whenever a refresh is
// requested, and records each run in the history store.
package worker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/amqp"
	"tally/internal/config"
	"tally/internal/pipeline"
	"tally/internal/storage"
)

// RefreshWorker re-runs the pipeline on demand and on a fallback ticker.
type RefreshWorker struct {
	cfg      *config.Config
	history  *storage.Repository
	bus      *amqp.Client // nil when AMQP is not configured
	interval time.Duration
}

func NewRefreshWorker(cfg *config.Config, history *storage.Repository, bus *amqp.Client) *RefreshWorker {
	return &RefreshWorker{
		cfg:      cfg,
		history:  history,
		bus:      bus,
		interval: cfg.RefreshInterval,
	}
}

// Run blocks until ctx is cancelled, refreshing on bus messages and on the
// interval ticker. The ticker is the backup path for lost messages, so both
// loops run even when the bus is connected.
func (w *RefreshWorker) Run(ctx context.Context) error {
	// Publish once at startup so a fresh deployment serves totals
	// immediately.
	if err := w.Refresh(ctx, "startup"); err != nil {
		return fmt.Errorf("initial refresh: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if w.bus != nil {
		g.Go(func() error {
			return w.bus.ConsumeRefreshRequests(ctx, func(ctx context.Context, msg *amqp.RefreshRequest) error {
				return w.Refresh(ctx, msg.Reason)
			})
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.Refresh(ctx, "interval"); err != nil {
					// A broken input should not kill the worker;
					// the last good artifact stays published.
					slog.ErrorContext(ctx, "Scheduled refresh failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// Refresh runs one pipeline pass, atomically replaces the artifact file,
// records the run, and announces completion on the bus.
func (w *RefreshWorker) Refresh(ctx context.Context, reason string) error {
	started := time.Now()

	reader, err := pipeline.ReaderFor(ctx, w.cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	report, err := pipeline.Run(ctx, reader, &buf)
	if err != nil {
		return err
	}

	if err := writeArtifact(w.cfg.OutputFile, buf.Bytes()); err != nil {
		return err
	}

	source := w.cfg.InputFile
	if w.cfg.InputBackend == config.SheetsBackend {
		source = "sheets:" + w.cfg.GoogleSpreadsheetID
	}

	runID, err := w.history.RecordRun(ctx, source, report.Rows, report.Result)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	if w.bus != nil {
		if err := w.bus.PublishRunCompleted(ctx, runID, len(report.Result)); err != nil {
			slog.WarnContext(ctx, "Failed to announce run completion", "error", err, "run_id", runID)
		}
	}

	slog.InfoContext(ctx, "Totals republished",
		"reason", reason,
		"run_id", runID,
		"rows", report.Rows,
		"categories", len(report.Result),
		"artifact", w.cfg.OutputFile,
		"duration_ms", time.Since(started).Milliseconds())

	return nil
}

// writeArtifact replaces the artifact via rename so readers never observe a
// half-written document.
func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}
