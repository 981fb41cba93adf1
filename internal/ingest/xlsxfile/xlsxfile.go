// Package xlsxfile reads the first sheet of a local .xlsx workbook into a
// raw table.
package xlsxfile

import (
	"context"
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"

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

func (r *Reader) ReadTable(_ context.Context) (core.Table, error) {
	wb, err := excelize.OpenFile(r.path)
	if err != nil {
		return core.Table{}, &core.IngestionError{Source: r.path, Err: err}
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return core.Table{}, &core.IngestionError{Source: r.path, Err: errors.New("workbook has no sheets")}
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return core.Table{}, &core.IngestionError{Source: r.path, Err: err}
	}
	if len(rows) == 0 {
		return core.Table{}, &core.IngestionError{Source: r.path, Err: errors.New("empty sheet: no header row")}
	}

	columns := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		columns[i] = strings.TrimSpace(c)
	}
	return core.Table{Columns: columns, Rows: rows[1:]}, nil
}
