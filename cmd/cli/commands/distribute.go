package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/prompt-distributor/pkg/core/services"
)

// DistributeCmd creates the distribute command
func DistributeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute <input_file> [output_file]",
		Short: "Reorder prompts so consecutive days vary in category and intensity",
		Long: `Reads "<category> | <prompt>" lines and writes every prompt exactly once,
reordered so the same category does not come back too soon and each weekday
follows the light/medium/heavy weekly pattern.

The result goes to output_file, or stdout when no output file is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetInt64("seed")
			noRecord, _ := cmd.Flags().GetBool("no-record")

			input := services.DistributeInput{
				InputPath: args[0],
				Seed:      seed,
				Record:    !noRecord,
			}
			if len(args) > 1 {
				input.OutputPath = args[1]
			}

			app.Logger.Debug("distribute command",
				zap.String("input", input.InputPath),
				zap.String("output", input.OutputPath),
				zap.Int64("seed", seed),
				zap.Bool("record", input.Record))

			result, err := services.Distribute(app.Ctx, app.Database, app.Cfg, app.Logger, cmd.OutOrStdout(), input)
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			fmt.Fprintf(stderr, "Redistributed %d prompts with optimal daily variety\n", len(result.Outcome.Entries))
			fmt.Fprintf(stderr, "Seed: %d\n", result.Seed)
			if result.Recorded {
				fmt.Fprintf(stderr, "Run ID: %s\n", result.RunID)
			}

			return nil
		},
		Annotations: map[string]string{historyAnnotation: historyOptional},
	}

	cmd.Flags().Int64("seed", 0, "Seed for random choices (0 picks one from the clock)")
	cmd.Flags().Bool("no-record", false, "Do not store this run in the history database")

	return cmd
}
