package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
)

func calendarEntries(n int) []sequencer.Entry {
	entries := make([]sequencer.Entry, n)
	for i := range entries {
		entries[i] = sequencer.Entry{Category: "A", Prompt: string(rune('a' + i))}
	}
	return entries
}

func TestBuildCalendar_Daily(t *testing.T) {
	start := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
	entries := calendarEntries(4)

	days, err := BuildCalendar(entries, "FREQ=DAILY", start, 0)
	require.NoError(t, err)
	require.Len(t, days, 4)

	for i, day := range days {
		assert.Equal(t, start.AddDate(0, 0, i).Format("2006-01-02"), day.Date.Format("2006-01-02"))
		assert.Equal(t, entries[i], day.Entry)
	}
}

func TestBuildCalendar_Limit(t *testing.T) {
	start := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)

	days, err := BuildCalendar(calendarEntries(10), "FREQ=DAILY", start, 3)
	require.NoError(t, err)
	assert.Len(t, days, 3)
}

func TestBuildCalendar_Weekdays(t *testing.T) {
	// Friday
	start := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)

	days, err := BuildCalendar(calendarEntries(3), "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR", start, 0)
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, "2026-04-03", days[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2026-04-06", days[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2026-04-07", days[2].Date.Format("2006-01-02"))
}

func TestBuildCalendar_RuleEndsEarly(t *testing.T) {
	start := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)

	days, err := BuildCalendar(calendarEntries(5), "FREQ=DAILY;COUNT=2", start, 0)
	require.NoError(t, err)
	assert.Len(t, days, 2)
}

func TestBuildCalendar_Errors(t *testing.T) {
	start := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)

	_, err := BuildCalendar(nil, "FREQ=DAILY", start, 0)
	assert.ErrorIs(t, err, ErrNoPrompts)

	_, err = BuildCalendar(calendarEntries(2), "NOT_A_RULE", start, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse cadence")
}
