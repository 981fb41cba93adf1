package core

import (
	"strconv"
	"strings"
)

// Column names the pipeline requires in every input. Matching is exact and
// case-sensitive; anything else in the header is carried along but ignored.
const (
	ColumnCategory = "Category"
	ColumnValue    = "Value"
	ColumnDate     = "Date"
)

type (
	// Table is the raw product of ingestion: one header plus the data rows,
	// every cell still a string. It lives only for the duration of one run.
	Table struct {
		Columns []string
		Rows    [][]string
	}

	// Row is one typed record after schema validation.
	Row struct {
		Category string
		Value    float64
		Date     string
	}
)

// Validate checks that the table carries the required columns and converts
// the raw rows into typed ones. A missing column yields a SchemaError; a
// Value cell that cannot be parsed as a number yields a DataTypeError. No
// coercion, no skipping: a malformed cell fails the whole run.
func (t Table) Validate() ([]Row, error) {
	catIdx := indexOf(t.Columns, ColumnCategory)
	valIdx := indexOf(t.Columns, ColumnValue)
	if catIdx == -1 || valIdx == -1 {
		var missing []string
		if catIdx == -1 {
			missing = append(missing, ColumnCategory)
		}
		if valIdx == -1 {
			missing = append(missing, ColumnValue)
		}
		return nil, &SchemaError{Missing: missing, Found: append([]string(nil), t.Columns...)}
	}
	dateIdx := indexOf(t.Columns, ColumnDate)

	rows := make([]Row, 0, len(t.Rows))
	for i, cells := range t.Rows {
		raw := strings.TrimSpace(safeGet(cells, valIdx))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Spreadsheet row number: header is row 1.
			return nil, &DataTypeError{Line: i + 2, Column: ColumnValue, Cell: raw}
		}
		rows = append(rows, Row{
			Category: strings.TrimSpace(safeGet(cells, catIdx)),
			Value:    value,
			Date:     strings.TrimSpace(safeGet(cells, dateIdx)),
		})
	}
	return rows, nil
}

func indexOf(columns []string, target string) int {
	for i, c := range columns {
		if strings.TrimSpace(c) == target {
			return i
		}
	}
	return -1
}

func safeGet(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
