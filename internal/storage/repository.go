package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// Repository keeps the history of published runs in SQLite.
type Repository struct {
	db *sql.DB
}

// RunRecord is one recorded pipeline run.
type RunRecord struct {
	ID        int64
	Source    string
	RowCount  int
	CreatedAt time.Time
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordRun stores one run and its per-category totals, returning the run ID.
func (r *Repository) RecordRun(ctx context.Context, source string, rowCount int, result core.Result) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, row_count, created_at) VALUES (?, ?, ?)`,
		source, rowCount, time.Now().UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	categories := make([]string, 0, len(result))
	for cat := range result {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO category_totals (run_id, category, total) VALUES (?, ?, ?)`,
			runID, cat, result[cat]); err != nil {
			return 0, fmt.Errorf("insert total for %s: %w", cat, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}

	slog.InfoContext(ctx, "Run recorded",
		"run_id", runID,
		"source", source,
		"rows", rowCount,
		"categories", len(categories))

	return runID, nil
}

// LatestTotals returns the totals of the most recent run. ok is false when
// no run has been recorded yet.
func (r *Repository) LatestTotals(ctx context.Context) (core.Result, bool, error) {
	var runID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("latest run: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, total FROM category_totals WHERE run_id = ?`, runID)
	if err != nil {
		return nil, false, fmt.Errorf("totals for run %d: %w", runID, err)
	}
	defer rows.Close()

	result := core.Result{}
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, false, fmt.Errorf("scan total: %w", err)
		}
		result[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate totals: %w", err)
	}
	return result, true, nil
}

// Runs lists recorded runs, newest first.
func (r *Repository) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source, row_count, created_at FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.RowCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}
