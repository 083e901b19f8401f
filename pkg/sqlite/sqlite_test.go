package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/prompt-distributor/pkg/db"
)

var _ db.RunStore = (*DB)(nil)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func entriesFor(runID string, n int) []db.RunEntry {
	entries := make([]db.RunEntry, n)
	for i := range entries {
		entries[i] = db.RunEntry{
			RunID:    runID,
			Position: i,
			Category: fmt.Sprintf("Category %d", i%2),
			Prompt:   fmt.Sprintf("prompt %d", i),
		}
	}
	return entries
}

func TestInsertAndGetRunEntries(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	run := &db.Run{ID: "run-1", Seed: 42, Source: "prompts.txt", EntryCount: 3}
	require.NoError(t, d.InsertRun(ctx, run, entriesFor("run-1", 3)))

	got, err := d.GetRunEntries(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, entriesFor("run-1", 3), got)

	missing, err := d.GetRunEntries(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestGetRuns_MostRecentFirst(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		d.now = func() time.Time { return at }
		id := fmt.Sprintf("run-%d", i)
		require.NoError(t, d.InsertRun(ctx, &db.Run{ID: id, Seed: int64(i), Source: "p.txt", EntryCount: 1}, entriesFor(id, 1)))
	}

	runs, err := d.GetRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "2026-03-01T11:00:00Z", runs[0].CreatedAt)
	assert.Equal(t, int64(2), runs[0].Seed)
	assert.Equal(t, "p.txt", runs[0].Source)
	assert.Equal(t, 1, runs[0].EntryCount)
	assert.Equal(t, "run-1", runs[1].ID)
}

func TestGetRuns_SameInstantUsesInsertOrder(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return at }
	require.NoError(t, d.InsertRun(ctx, &db.Run{ID: "b", Source: "p.txt"}, nil))
	require.NoError(t, d.InsertRun(ctx, &db.Run{ID: "a", Source: "p.txt"}, nil))

	runs, err := d.GetRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestInsertRun_RollsBackOnDuplicateEntry(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	entries := []db.RunEntry{
		{RunID: "run-1", Position: 0, Category: "A", Prompt: "a1"},
		{RunID: "run-1", Position: 0, Category: "A", Prompt: "a2"},
	}
	err := d.InsertRun(ctx, &db.Run{ID: "run-1", Source: "p.txt", EntryCount: 2}, entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert run entry")

	runs, err := d.GetRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNewDB_ReopensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	d, err := NewDB(ctx, path)
	require.NoError(t, err)
	require.NoError(t, d.InsertRun(ctx, &db.Run{ID: "run-1", Source: "p.txt", EntryCount: 1}, entriesFor("run-1", 1)))
	require.NoError(t, d.Close())

	d, err = NewDB(ctx, path)
	require.NoError(t, err)
	defer d.Close()

	runs, err := d.GetRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}
