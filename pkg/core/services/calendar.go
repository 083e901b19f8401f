package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
)

// CalendarDay is a prompt scheduled on a date
type CalendarDay struct {
	Date  time.Time
	Entry sequencer.Entry
}

// BuildCalendar assigns dates from the cadence rule to the entries in order,
// starting at start. limit caps the number of days; zero or less means all
// entries. If the rule ends early (COUNT or UNTIL) the calendar is shorter.
func BuildCalendar(entries []sequencer.Entry, cadence string, start time.Time, limit int) ([]CalendarDay, error) {
	if len(entries) == 0 {
		return nil, ErrNoPrompts
	}

	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}

	opt, err := rrule.StrToROption(cadence)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cadence: %w", err)
	}

	opt.Dtstart = start
	if opt.Count == 0 || opt.Count > n {
		opt.Count = n
	}

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build cadence rule: %w", err)
	}

	dates := rule.All()

	days := make([]CalendarDay, 0, len(dates))
	for i, date := range dates {
		if i >= n {
			break
		}
		days = append(days, CalendarDay{Date: date, Entry: entries[i]})
	}

	return days, nil
}
