package db

// Run represents a recorded distribution run
type Run struct {
	ID         string
	CreatedAt  string
	Seed       int64
	Source     string
	EntryCount int
}

// RunEntry represents one position of a recorded distribution run
type RunEntry struct {
	RunID    string
	Position int
	Category string
	Prompt   string
}
