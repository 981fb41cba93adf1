package google

import (
	"testing"
)

// Build a small matrix emulating what the Sheets API returns for an
// entries range: mixed float64 and string cells.
func TestTableFromValues(t *testing.T) {
	values := [][]interface{}{
		{"Category", "Value", "Date"},
		{"Groceries", 104.5, "2025-03-01"},
		{"Rent", "1200", "2025-03-01"},
		{"Groceries", 31.0, "2025-03-04"},
	}
	table := tableFromValues(values)
	if len(table.Columns) != 3 || table.Columns[1] != "Value" {
		t.Fatalf("columns: %v", table.Columns)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(table.Rows))
	}
	if table.Rows[0][1] != "104.5" {
		t.Fatalf("float cell: %q", table.Rows[0][1])
	}
	if table.Rows[1][1] != "1200" {
		t.Fatalf("string cell: %q", table.Rows[1][1])
	}
	if table.Rows[2][1] != "31" {
		t.Fatalf("integral float cell: %q", table.Rows[2][1])
	}
}

func TestTableFromValues_LargeNumbersStayPlain(t *testing.T) {
	values := [][]interface{}{
		{"Category", "Value"},
		{"A", 1234567890123.0},
	}
	table := tableFromValues(values)
	if table.Rows[0][1] != "1234567890123" {
		t.Fatalf("large cell: %q", table.Rows[0][1])
	}
}

func TestTableFromValues_RaggedRows(t *testing.T) {
	values := [][]interface{}{
		{"Category", "Value"},
		{"A"},
	}
	table := tableFromValues(values)
	if len(table.Rows[0]) != 1 {
		t.Fatalf("row: %v", table.Rows[0])
	}
}

func TestTableFromValues_ValidatesDownstream(t *testing.T) {
	values := [][]interface{}{
		{"Category", "Value"},
		{"A", 100.0},
		{"B", 50.5},
		{"A", 25.0},
	}
	rows, err := tableFromValues(values).Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(rows) != 3 || rows[1].Value != 50.5 {
		t.Fatalf("rows: %+v", rows)
	}
}
