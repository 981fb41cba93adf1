package storage

import (
	"context"
	"path/filepath"
	"testing"

	"tally/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRecordRunAndLatestTotals(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	runID, err := repo.RecordRun(ctx, "data/entries.csv", 5, core.Result{"A": 150, "B": 225, "C": 200})
	if err != nil {
		t.Fatalf("record run: %v", err)
	}
	if runID == 0 {
		t.Fatal("run ID should be non-zero")
	}

	totals, ok, err := repo.LatestTotals(ctx)
	if err != nil {
		t.Fatalf("latest totals: %v", err)
	}
	if !ok {
		t.Fatal("expected totals after recording a run")
	}
	if len(totals) != 3 || totals["A"] != 150 || totals["B"] != 225 || totals["C"] != 200 {
		t.Fatalf("totals: %v", totals)
	}
}

func TestLatestTotals_ReflectsNewestRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.RecordRun(ctx, "data/entries.csv", 2, core.Result{"A": 1}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := repo.RecordRun(ctx, "data/entries.csv", 3, core.Result{"A": 2, "B": 5}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	totals, ok, err := repo.LatestTotals(ctx)
	if err != nil || !ok {
		t.Fatalf("latest totals: ok=%v err=%v", ok, err)
	}
	if totals["A"] != 2 || totals["B"] != 5 {
		t.Fatalf("totals: %v", totals)
	}
}

func TestLatestTotals_EmptyHistory(t *testing.T) {
	repo := newTestRepository(t)
	_, ok, err := repo.LatestTotals(context.Background())
	if err != nil {
		t.Fatalf("latest totals: %v", err)
	}
	if ok {
		t.Fatal("expected no totals for an empty history")
	}
}

func TestRuns(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.RecordRun(ctx, "sheets:abc123", i, core.Result{"A": float64(i)}); err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
	}

	runs, err := repo.Runs(ctx, 2)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs: got %d, want 2", len(runs))
	}
	if runs[0].ID <= runs[1].ID {
		t.Fatalf("runs should be newest first: %+v", runs)
	}
	if runs[0].Source != "sheets:abc123" || runs[0].RowCount != 2 {
		t.Fatalf("newest run: %+v", runs[0])
	}
	if runs[0].CreatedAt.IsZero() {
		t.Fatal("created_at should be set")
	}
}

func TestRecordRun_EmptyResult(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.RecordRun(ctx, "data/entries.csv", 0, core.Result{}); err != nil {
		t.Fatalf("record empty run: %v", err)
	}
	totals, ok, err := repo.LatestTotals(ctx)
	if err != nil || !ok {
		t.Fatalf("latest totals: ok=%v err=%v", ok, err)
	}
	if len(totals) != 0 {
		t.Fatalf("totals: %v", totals)
	}
}
