// Package promptfile reads and writes prompt lists in the
// "<category> | <prompt>" line format.
package promptfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
)

// DefaultSeparator splits the category from the prompt text
const DefaultSeparator = " | "

// maxLineSize allows prompts well beyond bufio.Scanner's 64KiB default
const maxLineSize = 1024 * 1024

// ParseStats counts what happened to each input line
type ParseStats struct {
	Lines     int
	Prompts   int
	Blank     int
	Malformed int
}

// Collection is a parsed prompt list
type Collection struct {
	// Entries in file order
	Entries []sequencer.Entry
	Stats   ParseStats
}

// Buckets groups the entries by category. Categories keep the order in which
// they first appear and prompts keep their file order.
func (c *Collection) Buckets() []sequencer.Bucket {
	var buckets []sequencer.Bucket
	index := make(map[string]int)
	for _, entry := range c.Entries {
		i, ok := index[entry.Category]
		if !ok {
			i = len(buckets)
			index[entry.Category] = i
			buckets = append(buckets, sequencer.Bucket{Category: entry.Category})
		}
		buckets[i].Prompts = append(buckets[i].Prompts, entry.Prompt)
	}
	return buckets
}

// Categories returns the distinct category names in order of first appearance
func (c *Collection) Categories() []string {
	buckets := c.Buckets()
	names := make([]string, len(buckets))
	for i, bucket := range buckets {
		names[i] = bucket.Category
	}
	return names
}

// Parse reads prompt lines from r. Each line is trimmed and split on the first
// separator; the category and prompt are trimmed again. Blank lines and lines
// without the separator are skipped and counted.
func Parse(r io.Reader, separator string) (*Collection, error) {
	if separator == "" {
		return nil, fmt.Errorf("separator must not be empty")
	}

	collection := &Collection{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		collection.Stats.Lines++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			collection.Stats.Blank++
			continue
		}

		category, prompt, found := strings.Cut(line, separator)
		if !found {
			collection.Stats.Malformed++
			continue
		}

		collection.Entries = append(collection.Entries, sequencer.Entry{
			Category: strings.TrimSpace(category),
			Prompt:   strings.TrimSpace(prompt),
		})
		collection.Stats.Prompts++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}

	return collection, nil
}

// ReadFile parses the prompt file at path
func ReadFile(path string, separator string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompt file: %w", err)
	}
	defer f.Close()

	return Parse(f, separator)
}

// Write writes one "<category><separator><prompt>" line per entry
func Write(w io.Writer, entries []sequencer.Entry, separator string) error {
	bw := bufio.NewWriter(w)
	for _, entry := range entries {
		if _, err := fmt.Fprintf(bw, "%s%s%s\n", entry.Category, separator, entry.Prompt); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush prompts: %w", err)
	}
	return nil
}

// WriteFile writes entries to path. The data goes to a temporary file in the
// same directory first and is renamed into place, so a failed write never
// leaves a truncated file behind.
func WriteFile(path string, entries []sequencer.Entry, separator string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, entries, separator); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
