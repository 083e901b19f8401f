package commands

import (
	"fmt"
	"time"

	"github.com/jakechorley/prompt-distributor/pkg/core/services"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD flag value. An empty value means the calendar
// date of now in now's own location, so "today" follows the local clock.
func parseDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	return date, nil
}

// formatCalendarDay renders "2026-04-06 (Mon)  <category><sep><prompt>"
func formatCalendarDay(day services.CalendarDay, separator string, st *styler) string {
	return fmt.Sprintf("%s  %s%s%s",
		st.dim(day.Date.Format(dateLayout+" (Mon)")),
		st.category(day.Entry.Category),
		separator,
		day.Entry.Prompt,
	)
}
