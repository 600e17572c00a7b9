package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/placement"
	"github.com/ashgrove-care/bedplanner/pkg/core/services"
)

// OptimizeCmd creates the optimize command
func OptimizeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Propose moves that consolidate occupancy and place unplaced residents",
		RunE: func(cmd *cobra.Command, args []string) error {
			noPlacements, _ := cmd.Flags().GetBool("no-placements")

			app.Logger.Debug("optimize command", zap.Bool("no_placements", noPlacements))

			cfg := optimizeConfigFrom(app)
			if noPlacements {
				cfg.DirectPlacements = false
			}

			result, err := services.OptimizeOccupancy(app.Ctx, app.Database, app.Logger, cfg)
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}

			fmt.Printf("\n📋 Occupancy recommendations\n\n")
			fmt.Printf("Unplaced residents: %d\n\n", len(result.Unplaced))

			if len(result.Moves) == 0 {
				fmt.Println("No recommendations — occupancy cannot be improved right now.")
				return nil
			}

			for _, m := range result.Moves {
				switch m.Kind {
				case placement.MoveConsolidation:
					fmt.Printf("🔁 Move %s: bed %s → bed %s (room %s)\n", m.PersonName, m.FromBedID, m.ToBedID, m.ToRoomNumber)
				default:
					fmt.Printf("➕ Place %s: bed %s (room %s)\n", m.PersonName, m.ToBedID, m.ToRoomNumber)
				}
				fmt.Printf("   %s (impact %d)\n", m.Reason, m.Impact)
				if m.Compatibility != nil {
					fmt.Printf("   roommate compatibility: age %d, diagnosis %d\n", m.Compatibility.Age, m.Compatibility.Diagnosis)
				}
			}
			fmt.Println()
			fmt.Println("💡 Apply an approved move with: confirmAssignment <resident_id> <bed_id>")

			return nil
		},
	}

	cmd.Flags().Bool("no-placements", false, "Only propose consolidation moves, skip direct placements")

	return cmd
}

func optimizeConfigFrom(app *AppContext) placement.OptimizeConfig {
	cfg := placement.DefaultOptimizeConfig()
	cfg.DirectPlacements = app.Cfg.Optimizer.DirectPlacements
	cfg.MinCompatibility = app.Cfg.Optimizer.MinCompatibility
	return cfg
}
