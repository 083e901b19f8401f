package db

import "context"

// RunStore defines the interface for distribution history operations.
// postgres.DB and sqlite.DB implement this interface.
type RunStore interface {
	// InsertRun stores a run and all of its entries atomically
	InsertRun(ctx context.Context, run *Run, entries []RunEntry) error

	// GetRuns returns up to limit runs, most recent first
	GetRuns(ctx context.Context, limit int) ([]Run, error)

	// GetRunEntries returns the entries of a run ordered by position
	GetRunEntries(ctx context.Context, runID string) ([]RunEntry, error)
}
