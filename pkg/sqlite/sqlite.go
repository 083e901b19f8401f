package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jakechorley/prompt-distributor/pkg/db"
)

// createdAtLayout is fixed width so text order matches time order
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS distribution_run (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	seed INTEGER NOT NULL,
	source TEXT NOT NULL,
	entry_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_distribution_run_created_at ON distribution_run(created_at);

CREATE TABLE IF NOT EXISTS distribution_entry (
	run_id TEXT NOT NULL REFERENCES distribution_run(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	category TEXT NOT NULL,
	prompt TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// DB stores distribution history in a local SQLite file
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// NewDB opens (creating if needed) the SQLite file at path and ensures the schema exists
func NewDB(ctx context.Context, path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	// One writer at a time; also keeps the foreign_keys pragma on the only connection
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &DB{conn: conn, now: time.Now}, nil
}

// Close closes the database
func (d *DB) Close() error {
	return d.conn.Close()
}

// InsertRun inserts a run and its entries in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, entries []db.RunEntry) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := d.now().UTC().Format(createdAtLayout)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO distribution_run (id, created_at, seed, source, entry_count)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, createdAt, run.Seed, run.Source, run.EntryCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO distribution_entry (run_id, position, category, prompt)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.RunID, e.Position, e.Category, e.Prompt); err != nil {
			return fmt.Errorf("failed to insert run entry %d: %w", e.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	return nil
}

// GetRuns retrieves up to limit runs, most recent first
func (d *DB) GetRuns(ctx context.Context, limit int) ([]db.Run, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, created_at, seed, source, entry_count
		FROM distribution_run
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.Seed, &r.Source, &r.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		t, err := time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at of run %s: %w", r.ID, err)
		}
		r.CreatedAt = t.Format(time.RFC3339)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRunEntries retrieves the entries of a run in position order
func (d *DB) GetRunEntries(ctx context.Context, runID string) ([]db.RunEntry, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT run_id, position, category, prompt
		FROM distribution_entry
		WHERE run_id = ?
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
