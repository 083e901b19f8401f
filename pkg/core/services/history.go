package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
	"github.com/jakechorley/prompt-distributor/pkg/db"
)

// ErrNoStore is returned by history operations when no database is configured
var ErrNoStore = errors.New("no history store configured (set databaseURL or historyPath in the config file)")

// RecordRun stores a distribution run and its entries
func RecordRun(ctx context.Context, store db.RunStore, logger *zap.Logger, runID string, seed int64, source string, entries []sequencer.Entry) error {
	if store == nil {
		return ErrNoStore
	}

	run := &db.Run{
		ID:         runID,
		Seed:       seed,
		Source:     source,
		EntryCount: len(entries),
	}

	rows := make([]db.RunEntry, len(entries))
	for i, entry := range entries {
		rows[i] = db.RunEntry{
			RunID:    runID,
			Position: i,
			Category: entry.Category,
			Prompt:   entry.Prompt,
		}
	}

	logger.Debug("Recording run", zap.String("run_id", runID), zap.Int("entries", len(rows)))

	if err := store.InsertRun(ctx, run, rows); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	logger.Info("Run recorded", zap.String("run_id", runID))
	return nil
}

// ListRuns returns up to count recorded runs, most recent first
func ListRuns(ctx context.Context, store db.RunStore, logger *zap.Logger, count int) ([]db.Run, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	runs, err := store.GetRuns(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	logger.Debug("Fetched runs", zap.Int("count", len(runs)))
	return runs, nil
}

// GetRun returns the entries of one recorded run as a prompt sequence
func GetRun(ctx context.Context, store db.RunStore, logger *zap.Logger, runID string) ([]sequencer.Entry, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	rows, err := store.GetRunEntries(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run entries: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	entries := make([]sequencer.Entry, len(rows))
	for i, row := range rows {
		entries[i] = sequencer.Entry{Category: row.Category, Prompt: row.Prompt}
	}

	logger.Debug("Fetched run", zap.String("run_id", runID), zap.Int("entries", len(entries)))
	return entries, nil
}
