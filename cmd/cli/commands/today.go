package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/prompt-distributor/pkg/core/services"
	"github.com/jakechorley/prompt-distributor/pkg/promptfile"
)

// TodayCmd creates the today command
func TodayCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today <distributed_file>",
		Short: "Show the prompt for today (or --date) from a distributed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateFlag, _ := cmd.Flags().GetString("date")
			date, err := parseDate(dateFlag, time.Now())
			if err != nil {
				return err
			}

			collection, err := promptfile.ReadFile(args[0], app.Cfg.Separator)
			if err != nil {
				return err
			}

			index, entry, err := services.PromptForDate(collection.Entries, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyler(out, app.Cfg)
			fmt.Fprintf(out, "%s %s\n",
				st.header(date.Format("Monday, 2 January 2006")),
				st.dim(fmt.Sprintf("(day %d of %d)", index+1, len(collection.Entries))))
			fmt.Fprintln(out, st.category(entry.Category))
			fmt.Fprintln(out, entry.Prompt)

			return nil
		},
	}

	cmd.Flags().String("date", "", "Date to show (YYYY-MM-DD, default today)")

	return cmd
}
