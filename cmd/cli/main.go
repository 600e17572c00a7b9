package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/cmd/cli/commands"
	"github.com/ashgrove-care/bedplanner/internal/config"
	"github.com/ashgrove-care/bedplanner/pkg/postgres"
	"github.com/ashgrove-care/bedplanner/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bedplanner",
		Short: "Bed planner CLI - Manage bed assignments and occupancy",
		Long:  `A CLI tool for ranking vacant beds, checking placement constraints, and optimizing room occupancy.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.RankBedsCmd(appRef()))
	rootCmd.AddCommand(commands.CheckBedCmd(appRef()))
	rootCmd.AddCommand(commands.OptimizeCmd(appRef()))
	rootCmd.AddCommand(commands.ConfirmAssignmentCmd(appRef()))
	rootCmd.AddCommand(commands.ListResidentsCmd(appRef()))
	rootCmd.AddCommand(commands.ExportReportCmd(appRef()))
	rootCmd.AddCommand(commands.InteractiveCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext. Commands capture the pointer before
// initApp fills it in, so the struct itself must exist up front.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{Ctx: context.Background()}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	a := appRef()

	// Load configuration first: it carries the log level
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.Cfg = cfg

	a.Logger, err = logging.InitLogger(env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.Logger.Info("Starting application", zap.String("environment", env))

	a.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(a.Ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	a.Logger.Debug("Running migrations")
	if err := database.RunMigrations(a.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.Database = database
	a.Logger.Info("Database initialized successfully")

	return nil
}
