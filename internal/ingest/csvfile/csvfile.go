// Package csvfile reads a local CSV document into a raw table.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"strings"

	"tally/internal/core"
	ports "tally/internal/ingest"
)

type Reader struct {
	path string
}

// Ensure interface conformance
var _ ports.TableReader = (*Reader)(nil)

func New(path string) *Reader {
	return &Reader{path: path}
}

// ReadTable parses the whole file in one pass. The first record is the
// header; every later record is a data row. Rows may be ragged, missing
// trailing cells read as empty.
func (r *Reader) ReadTable(_ context.Context) (core.Table, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return core.Table{}, &core.IngestionError{Source: r.path, Err: err}
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return core.Table{}, &core.IngestionError{Source: r.path, Err: err}
	}
	if len(records) == 0 {
		return core.Table{}, &core.IngestionError{Source: r.path, Err: errors.New("empty file: no header row")}
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.TrimSpace(c)
	}
	return core.Table{Columns: columns, Rows: records[1:]}, nil
}
