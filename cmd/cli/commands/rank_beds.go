package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/placement"
	"github.com/ashgrove-care/bedplanner/pkg/core/services"
)

// RankBedsCmd creates the rankBeds command
func RankBedsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rankBeds <resident_id>",
		Short: "Rank every vacant bed for a resident by compatibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			residentID := args[0]

			app.Logger.Debug("rankBeds command", zap.String("resident_id", residentID))

			cfg := rankConfigFrom(app)
			result, err := services.RecommendBeds(app.Ctx, app.Database, app.Logger, residentID, cfg)
			if err != nil {
				return fmt.Errorf("ranking failed: %w", err)
			}

			fmt.Printf("\n🛏  Bed recommendations for %s\n\n", result.Person.FullName())
			if len(result.Scores) == 0 {
				fmt.Println("No compatible vacant beds found.")
				return nil
			}

			fmt.Printf("%-12s %-8s %6s %5s %5s %5s  %s\n", "Bed", "Room", "Total", "Age", "Diag", "Flex", "Roommate")
			fmt.Println(strings.Repeat("-", 70))
			for _, s := range result.Scores {
				marker := " "
				if s.Recommended {
					marker = "★"
				}
				roommate := "(empty room)"
				if s.RoommateName != "" {
					roommate = s.RoommateName
				}
				fmt.Printf("%-12s %-8s %5d%s %5d %5d %5d  %s\n",
					s.BedID, s.RoomNumber, s.Total, marker,
					s.AgeScore, s.DiagnosisScore, s.FlexibilityScore, roommate)
				for _, w := range s.Warnings {
					fmt.Printf("             ⚠ %s\n", w)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func rankConfigFrom(app *AppContext) placement.RankConfig {
	cfg := placement.DefaultRankConfig()
	cfg.AgeWeight = app.Cfg.Scoring.AgeWeight
	cfg.DiagnosisWeight = app.Cfg.Scoring.DiagnosisWeight
	cfg.FlexibilityWeight = app.Cfg.Scoring.FlexibilityWeight
	return cfg
}
