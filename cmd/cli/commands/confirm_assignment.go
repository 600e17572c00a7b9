package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/services"
	"github.com/ashgrove-care/bedplanner/pkg/db"
)

// ConfirmAssignmentCmd creates the confirmAssignment command
func ConfirmAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "confirmAssignment <resident_id> <bed_id>",
		Short: "Re-check and apply an approved bed assignment",
		Long:  "Fetch fresh occupancy state, re-run the constraint check, and commit the assignment. Aborts with a visible conflict when the bed was taken or the placement became illegal in the meantime.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			residentID := args[0]
			bedID := args[1]

			app.Logger.Debug("confirmAssignment command",
				zap.String("resident_id", residentID),
				zap.String("bed_id", bedID))

			result, err := services.ConfirmAssignment(app.Ctx, app.Database, app.Logger, residentID, bedID)
			switch {
			case errors.Is(err, db.ErrBedConflict):
				fmt.Printf("\n❌ Conflict: bed %s is no longer vacant. Re-run the recommendation and pick another bed.\n\n", bedID)
				return nil
			case errors.Is(err, services.ErrIncompatible):
				fmt.Printf("\n❌ Conflict: %s\n\n", result.Check.Reason)
				return nil
			case err != nil:
				return fmt.Errorf("assignment failed: %w", err)
			}

			fmt.Printf("\n✅ %s assigned to bed %s\n\n", result.Person.FullName(), bedID)
			return nil
		},
	}
}
