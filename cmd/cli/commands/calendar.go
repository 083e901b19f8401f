package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/prompt-distributor/pkg/core/services"
	"github.com/jakechorley/prompt-distributor/pkg/promptfile"
)

// CalendarCmd creates the calendar command
func CalendarCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar <distributed_file>",
		Short: "Schedule a distributed file on dates from the configured cadence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startFlag, _ := cmd.Flags().GetString("start")
			limit, _ := cmd.Flags().GetInt("limit")

			start, err := parseDate(startFlag, time.Now())
			if err != nil {
				return err
			}

			collection, err := promptfile.ReadFile(args[0], app.Cfg.Separator)
			if err != nil {
				return err
			}

			days, err := services.BuildCalendar(collection.Entries, app.Cfg.Cadence, start, limit)
			if err != nil {
				return err
			}

			app.Logger.Debug("Calendar built",
				zap.String("cadence", app.Cfg.Cadence),
				zap.Int("days", len(days)))

			out := cmd.OutOrStdout()
			st := newStyler(out, app.Cfg)
			for _, day := range days {
				fmt.Fprintln(out, formatCalendarDay(day, app.Cfg.Separator, st))
			}

			return nil
		},
	}

	cmd.Flags().String("start", "", "First date (YYYY-MM-DD, default today)")
	cmd.Flags().Int("limit", 0, "Maximum number of days to show (0 shows all)")

	return cmd
}
