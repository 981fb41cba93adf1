package ingest

import (
	"context"

	"tally/internal/core"
)

// Ports for inbound adapters.
type (
	// TableReader materializes one spreadsheet-format input as a raw table.
	// A failed read reports a core.IngestionError naming the source.
	TableReader interface {
		ReadTable(ctx context.Context) (core.Table, error)
	}
)
