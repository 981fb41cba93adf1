// Package pipeline wires the four stages of one run: load, validate,
// aggregate, serialize. The flow is strictly linear with no retries and no
// partial output.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"tally/internal/config"
	"tally/internal/core"
	"tally/internal/emit"
	"tally/internal/ingest"
	"tally/internal/ingest/csvfile"
	gsheet "tally/internal/ingest/google"
	"tally/internal/ingest/xlsxfile"
)

// Report describes one successful pass.
type Report struct {
	Result core.Result
	Rows   int
}

// Run executes one load → validate → aggregate → serialize pass, writing the
// JSON document to out in a single call. Nothing is written unless every
// stage succeeds, so out stays uncontaminated on failure.
func Run(ctx context.Context, reader ingest.TableReader, out io.Writer) (Report, error) {
	table, err := reader.ReadTable(ctx)
	if err != nil {
		return Report{}, err
	}
	rows, err := table.Validate()
	if err != nil {
		return Report{}, err
	}
	result := core.Aggregate(rows)
	data, err := emit.Marshal(result)
	if err != nil {
		return Report{}, err
	}
	if _, err := out.Write(data); err != nil {
		return Report{}, fmt.Errorf("write output: %w", err)
	}
	return Report{Result: result, Rows: len(rows)}, nil
}

// ReaderFor picks the loader backend for the configured input: Google Sheets
// when the sheets backend is selected, otherwise a local file chosen by
// extension.
func ReaderFor(ctx context.Context, cfg *config.Config) (ingest.TableReader, error) {
	if cfg.InputBackend == config.SheetsBackend {
		cli, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleReadRange)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets reader: %w", err)
		}
		return cli, nil
	}
	switch ext := strings.ToLower(filepath.Ext(cfg.InputFile)); ext {
	case ".csv":
		return csvfile.New(cfg.InputFile), nil
	case ".xlsx":
		return xlsxfile.New(cfg.InputFile), nil
	default:
		return nil, &core.IngestionError{Source: cfg.InputFile, Err: fmt.Errorf("unsupported input format %q", ext)}
	}
}
