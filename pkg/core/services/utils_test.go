package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/prompt-distributor/pkg/db"
)

// mockRunStore implements db.RunStore
type mockRunStore struct {
	runs      []db.Run
	entries   map[string][]db.RunEntry
	insertErr error
	getErr    error

	lastLimit int
}

func newMockRunStore() *mockRunStore {
	return &mockRunStore{entries: make(map[string][]db.RunEntry)}
}

func (m *mockRunStore) InsertRun(ctx context.Context, run *db.Run, entries []db.RunEntry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.runs = append([]db.Run{*run}, m.runs...)
	m.entries[run.ID] = entries
	return nil
}

func (m *mockRunStore) GetRuns(ctx context.Context, limit int) ([]db.Run, error) {
	m.lastLimit = limit
	if m.getErr != nil {
		return nil, m.getErr
	}
	if limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockRunStore) GetRunEntries(ctx context.Context, runID string) ([]db.RunEntry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries[runID], nil
}

var errStore = errors.New("connection refused")

// writePromptFile writes lines to a file in a temporary directory and returns its path
func writePromptFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.txt")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// readLines returns the non-empty lines of a file
func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return nonEmptyLines(string(data))
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
