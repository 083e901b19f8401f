package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/prompt-distributor/pkg/core/services"
	"github.com/jakechorley/prompt-distributor/pkg/promptfile"
)

const defaultHistoryCount = 10

// HistoryCmd creates the history command
func HistoryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history [count]",
		Short: "List recent distribution runs (default 10)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := defaultHistoryCount
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("count must be a number: %w", err)
				}
				count = n
			}

			runs, err := services.ListRuns(app.Ctx, app.Database, app.Logger, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			st := newStyler(out, app.Cfg)
			fmt.Fprintln(out, st.header(fmt.Sprintf("%-36s  %-20s  %7s  %-20s  %s", "RUN ID", "CREATED", "PROMPTS", "SEED", "SOURCE")))
			for _, run := range runs {
				fmt.Fprintf(out, "%-36s  %-20s  %7d  %-20d  %s\n", run.ID, run.CreatedAt, run.EntryCount, run.Seed, run.Source)
			}

			return nil
		},
		Annotations: map[string]string{historyAnnotation: historyRequired},
	}
}

// ShowRunCmd creates the showRun command
func ShowRunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showRun <run_id> [output_file]",
		Short: "Print or restore the prompt order of a recorded run",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := services.GetRun(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			if len(args) > 1 {
				if err := promptfile.WriteFile(args[1], entries, app.Cfg.Separator); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Restored %d prompts to %s\n", len(entries), args[1])
				return nil
			}

			return promptfile.Write(cmd.OutOrStdout(), entries, app.Cfg.Separator)
		},
		Annotations: map[string]string{historyAnnotation: historyRequired},
	}
}
