package core

import (
	"fmt"
	"strings"
)

// IngestionError reports an input that could not be opened or parsed.
type IngestionError struct {
	Source string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingest %s: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// SchemaError reports required columns absent from the input header.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns %s (found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// DataTypeError reports a cell that cannot be interpreted as a number.
// Line is the spreadsheet row number, counting the header as row 1.
type DataTypeError struct {
	Line   int
	Column string
	Cell   string
}

func (e *DataTypeError) Error() string {
	return fmt.Sprintf("row %d: column %s: %q is not a number", e.Line, e.Column, e.Cell)
}
