package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/internal/config"
	"github.com/ashgrove-care/bedplanner/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}
