package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/prompt-distributor/pkg/db"
)

// InsertRun inserts a run and its entries in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, entries []db.RunEntry) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO distribution_run (id, seed, source, entry_count)
		VALUES ($1, $2, $3, $4)
	`, run.ID, run.Seed, run.Source, run.EntryCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	rows := make([][]any, len(entries))
	for i, e := range entries {
		rows[i] = []any{e.RunID, e.Position, e.Category, e.Prompt}
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"distribution_entry"},
		[]string{"run_id", "position", "category", "prompt"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	return nil
}

// GetRuns retrieves up to limit runs, most recent first
func (d *DB) GetRuns(ctx context.Context, limit int) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, seed, source, entry_count
		FROM distribution_run
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &createdAt, &r.Seed, &r.Source, &r.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRunEntries retrieves the entries of a run in position order
func (d *DB) GetRunEntries(ctx context.Context, runID string) ([]db.RunEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id, position, category, prompt
		FROM distribution_entry
		WHERE run_id = $1
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run entries: %w", err)
	}
	defer rows.Close()

	var entries []db.RunEntry
	for rows.Next() {
		var e db.RunEntry
		if err := rows.Scan(&e.RunID, &e.Position, &e.Category, &e.Prompt); err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run entries: %w", err)
	}

	return entries, nil
}
