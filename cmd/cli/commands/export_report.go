package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/services"
	"github.com/ashgrove-care/bedplanner/pkg/report"
)

// ExportReportCmd creates the exportReport command
func ExportReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "exportReport <file.xlsx>",
		Short: "Export occupancy recommendations to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			app.Logger.Debug("exportReport command", zap.String("path", path))

			cfg := optimizeConfigFrom(app)
			result, err := services.OptimizeOccupancy(app.Ctx, app.Database, app.Logger, cfg)
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}

			if err := report.WriteOccupancyReport(path, result.Unplaced, result.Moves); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			app.Logger.Info("Report exported",
				zap.String("path", path),
				zap.Int("moves", len(result.Moves)),
				zap.Int("unplaced", len(result.Unplaced)))
			fmt.Printf("\n✅ Report written to %s (%d recommendations, %d unplaced residents)\n\n", path, len(result.Moves), len(result.Unplaced))

			return nil
		},
	}
}
