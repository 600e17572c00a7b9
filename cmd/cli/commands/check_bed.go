package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
	"github.com/ashgrove-care/bedplanner/pkg/core/placement"
)

// CheckBedCmd creates the checkBed command
func CheckBedCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkBed <bed_id> <gender>",
		Short: "Check whether a candidate may legally take a bed",
		Long:  "Run the hard constraint check (gender segregation, isolation precaution, shared-bathroom propagation) for a candidate against the current occupancy state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bedID := args[0]
			gender := model.Gender(strings.ToLower(args[1]))
			isolation, _ := cmd.Flags().GetBool("isolation")

			if !gender.IsValid() {
				return fmt.Errorf("gender must be male, female or other, got %q", args[1])
			}

			app.Logger.Debug("checkBed command",
				zap.String("bed_id", bedID),
				zap.String("gender", string(gender)),
				zap.Bool("isolation", isolation))

			snap, err := app.Database.GetSnapshot(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch snapshot: %w", err)
			}

			result := placement.CheckConstraint(snap, bedID, gender, isolation)

			fmt.Printf("\n🔎 Constraint check for bed %s\n\n", bedID)
			if result.Compatible {
				fmt.Println("Result:   ✅ compatible")
			} else {
				fmt.Println("Result:   ❌ incompatible")
				fmt.Printf("Reason:   %s\n", result.Reason)
			}
			if result.ExistingGender != "" {
				fmt.Printf("Existing gender: %s\n", result.ExistingGender)
			}
			if result.RoomBedCount > 0 {
				fmt.Printf("Beds in room:    %d\n", result.RoomBedCount)
			}
			if len(result.SharedBathroomRooms) > 0 {
				fmt.Printf("Shared bathroom with rooms: %s\n", strings.Join(result.SharedBathroomRooms, ", "))
			}

			if required, ok := placement.RequiredGender(snap, bedID); ok {
				fmt.Printf("Required gender: %s\n", required)
			} else {
				fmt.Println("Required gender: none (no restriction)")
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("isolation", false, "Candidate is under isolation precautions")

	return cmd
}
