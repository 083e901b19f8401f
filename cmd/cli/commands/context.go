package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/prompt-distributor/internal/config"
	"github.com/jakechorley/prompt-distributor/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg *config.Config

	// Database is nil when no databaseURL is configured
	Database db.RunStore

	Logger *zap.Logger
	Ctx    context.Context
}
