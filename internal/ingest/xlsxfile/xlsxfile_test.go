package xlsxfile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"tally/internal/core"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := wb.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "entries.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestReadTable(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Category", "Value", "Date"},
		{"A", 100, "2025-01-02"},
		{"B", 150.5, "2025-01-03"},
	})
	table, err := New(path).ReadTable(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table.Columns) != 3 || table.Columns[0] != "Category" {
		t.Fatalf("columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "A" || table.Rows[0][1] != "100" {
		t.Fatalf("row 0: %v", table.Rows[0])
	}
	if table.Rows[1][1] != "150.5" {
		t.Fatalf("row 1 value: %q", table.Rows[1][1])
	}
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.xlsx")).ReadTable(context.Background())
	var ingErr *core.IngestionError
	if !errors.As(err, &ingErr) {
		t.Fatalf("expected IngestionError, got %v", err)
	}
}
