package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tally/internal/config"
	"tally/internal/storage"
)

func newTestWorker(t *testing.T, csvContent string) (*RefreshWorker, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "entries.csv")
	if err := os.WriteFile(input, []byte(csvContent), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg := &config.Config{
		InputBackend:    config.FileBackend,
		InputFile:       input,
		OutputFile:      filepath.Join(dir, "public", "totals.json"),
		SQLiteDBPath:    filepath.Join(dir, "tally.db"),
		RefreshInterval: time.Minute,
	}
	history, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { history.Close() })
	return NewRefreshWorker(cfg, history, nil), cfg
}

func TestRefresh_PublishesArtifactAndRecordsRun(t *testing.T) {
	w, cfg := newTestWorker(t, "Category,Value,Date\nA,100,2025-01-02\nB,150,2025-01-03\nA,50,2025-01-04\n")

	if err := w.Refresh(context.Background(), "test"); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	want := "{\n  \"A\": 150,\n  \"B\": 150\n}\n"
	if string(data) != want {
		t.Fatalf("artifact:\n%s\nwant:\n%s", data, want)
	}

	totals, ok, err := w.history.LatestTotals(context.Background())
	if err != nil || !ok {
		t.Fatalf("latest totals: ok=%v err=%v", ok, err)
	}
	if totals["A"] != 150 || totals["B"] != 150 {
		t.Fatalf("totals: %v", totals)
	}
}

func TestRefresh_BrokenInputKeepsLastArtifact(t *testing.T) {
	w, cfg := newTestWorker(t, "Category,Value\nA,100\n")

	if err := w.Refresh(context.Background(), "test"); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	good, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	// Corrupt the input; the refresh must fail and leave the artifact alone.
	if err := os.WriteFile(cfg.InputFile, []byte("Category,Value\nA,oops\n"), 0644); err != nil {
		t.Fatalf("corrupt input: %v", err)
	}
	if err := w.Refresh(context.Background(), "test"); err == nil {
		t.Fatal("expected refresh to fail on bad input")
	}
	after, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(after) != string(good) {
		t.Fatalf("artifact changed after failed refresh:\n%s", after)
	}
}
