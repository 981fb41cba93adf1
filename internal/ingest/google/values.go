package google

import (
	"fmt"
	"strconv"
	"strings"

	"tally/internal/core"
)

// tableFromValues converts a values matrix (as returned by the Sheets API)
// into a raw table. The first row is the header; numbers arrive as float64
// or string depending on cell formatting, both are rendered as strings.
func tableFromValues(values [][]interface{}) core.Table {
	columns := toStrings(values[0])
	rows := make([][]string, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		rows = append(rows, toStrings(values[i]))
	}
	return core.Table{Columns: columns, Rows: rows}
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(formatCell(v))
	}
	return out
}

// formatCell keeps numeric cells parseable: fmt.Sprint on a float64 would
// render large values in scientific notation, which the validator rejects.
func formatCell(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
