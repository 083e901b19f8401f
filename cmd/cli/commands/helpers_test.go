package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
	"github.com/jakechorley/prompt-distributor/pkg/core/services"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 5, 17, 23, 30, 0, 0, time.FixedZone("BST", 3600))

	t.Run("empty uses the local date", func(t *testing.T) {
		date, err := parseDate("", now)
		require.NoError(t, err)
		assert.Equal(t, "2026-05-17", date.Format(dateLayout))
		assert.Equal(t, 0, date.Hour())
	})

	t.Run("evening west of UTC stays on the local day", func(t *testing.T) {
		evening := time.Date(2026, 1, 1, 20, 0, 0, 0, time.FixedZone("PST", -8*3600))

		date, err := parseDate("", evening)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-01", date.Format(dateLayout))
		assert.Equal(t, 1, date.YearDay())
	})

	t.Run("early morning east of UTC stays on the local day", func(t *testing.T) {
		morning := time.Date(2026, 3, 1, 6, 0, 0, 0, time.FixedZone("AEDT", 11*3600))

		date, err := parseDate("", morning)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-01", date.Format(dateLayout))
	})

	t.Run("explicit date", func(t *testing.T) {
		date, err := parseDate("2026-02-28", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := parseDate("2026-02-30", now)
		require.Error(t, err)
	})
}

func TestFormatCalendarDay(t *testing.T) {
	day := services.CalendarDay{
		Date:  time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		Entry: sequencer.Entry{Category: "Self-Analysis", Prompt: "Who are you?"},
	}

	assert.Equal(t, "2026-04-06 (Mon)  Self-Analysis | Who are you?", formatCalendarDay(day, " | ", &styler{}))
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{"simple", "distribute in.txt out.txt", []string{"distribute", "in.txt", "out.txt"}, false},
		{"extra spaces", "  today   file.txt ", []string{"today", "file.txt"}, false},
		{"double quotes", `distribute "my prompts.txt"`, []string{"distribute", "my prompts.txt"}, false},
		{"single quotes", `today 'a b.txt' --date 2026-01-01`, []string{"today", "a b.txt", "--date", "2026-01-01"}, false},
		{"empty quotes", `history ""`, []string{"history", ""}, false},
		{"empty", "", nil, false},
		{"unclosed", `today "file.txt`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
