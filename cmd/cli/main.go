package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/prompt-distributor/cmd/cli/commands"
	"github.com/jakechorley/prompt-distributor/internal/config"
	"github.com/jakechorley/prompt-distributor/pkg/postgres"
	"github.com/jakechorley/prompt-distributor/pkg/sqlite"
	"github.com/jakechorley/prompt-distributor/pkg/utils/logging"
)

var (
	env        string
	configPath string
	verbose    bool
	logDir     string

	closeStore func()
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prompt-distributor",
		Short: "Prompt Distributor - reorder writing prompts for daily variety",
		Long: `A CLI tool that takes a categorised list of prompts and reorders it so each
day gets a different category, matched to a light/medium/heavy weekly rhythm.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initApp(); err != nil {
				return err
			}
			return openHistoryFor(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "local", "Environment (selects prompt_config_<env>.yaml and the log file prefix)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (overrides the lookup by environment)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "logs", "Directory for log files")

	rootCmd.AddCommand(commands.DistributeCmd(app))
	rootCmd.AddCommand(commands.TodayCmd(app))
	rootCmd.AddCommand(commands.CalendarCmd(app))
	rootCmd.AddCommand(commands.HistoryCmd(app))
	rootCmd.AddCommand(commands.ShowRunCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp sets up the logger and config
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(logging.Options{Env: env, Dir: logDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		app.Logger.Debug("Configuration loaded", zap.String("path", configPath))
	} else {
		var found string
		app.Cfg, found, err = config.LoadWithEnv(env)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if found == "" {
			app.Logger.Debug("No config file found, using defaults")
		} else {
			app.Logger.Debug("Configuration loaded", zap.String("path", found))
		}
	}

	return nil
}

// openHistoryFor opens the history store only for commands that use it. A
// store that fails to open is fatal for history and showRun but only logged
// for commands that can run without it.
func openHistoryFor(cmd *cobra.Command) error {
	switch commands.HistoryNeedOf(cmd) {
	case commands.HistoryRequired:
		return openHistoryStore()
	case commands.HistoryOptional:
		if err := openHistoryStore(); err != nil {
			app.Logger.Warn("History store unavailable, continuing without it", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: run history disabled: %v\n", err)
			closeHistoryStore()
		}
		return nil
	default:
		app.Logger.Debug("History store not needed", zap.String("command", cmd.Name()))
		return nil
	}
}

// openHistoryStore connects the Postgres or SQLite run history, whichever is configured
func openHistoryStore() error {
	switch {
	case app.Cfg.DatabaseURL != "":
		app.Logger.Info("Connecting to database")
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		closeStore = pg.Close

		applied, err := pg.RunMigrations(app.Ctx)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if len(applied) > 0 {
			app.Logger.Info("Applied migrations", zap.Strings("files", applied))
		}
		app.Database = pg

	case app.Cfg.HistoryPath != "":
		app.Logger.Debug("Opening history file", zap.String("path", app.Cfg.HistoryPath))
		lite, err := sqlite.NewDB(app.Ctx, app.Cfg.HistoryPath)
		if err != nil {
			return err
		}
		closeStore = func() { _ = lite.Close() }
		app.Database = lite

	default:
		app.Logger.Debug("No history store configured, run history disabled")
		return nil
	}

	app.Logger.Debug("History store initialized successfully")
	return nil
}

func closeHistoryStore() {
	if closeStore != nil {
		closeStore()
		closeStore = nil
	}
	app.Database = nil
}

func closeApp() {
	closeHistoryStore()
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
}
