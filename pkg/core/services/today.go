package services

import (
	"time"

	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
)

// PromptForDate picks the prompt of the day from a distributed list. Day N of
// the year maps to entry (N-1) mod len(entries), so a list shorter than a
// year wraps around.
func PromptForDate(entries []sequencer.Entry, date time.Time) (int, sequencer.Entry, error) {
	if len(entries) == 0 {
		return 0, sequencer.Entry{}, ErrNoPrompts
	}

	index := (date.YearDay() - 1) % len(entries)
	return index, entries[index], nil
}
