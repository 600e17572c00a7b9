package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

// ListResidentsCmd creates the listResidents command
func ListResidentsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listResidents",
		Short: "List all active residents and their bed assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			unplacedOnly, _ := cmd.Flags().GetBool("unplaced")

			snap, err := app.Database.GetSnapshot(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch snapshot: %w", err)
			}

			var residents []model.Person
			if unplacedOnly {
				residents = snap.Unplaced()
			} else {
				for _, p := range snap.People() {
					if p.Active {
						residents = append(residents, p)
					}
				}
			}

			fmt.Printf("\nFound %d residents:\n\n", len(residents))
			for _, p := range residents {
				location := "unplaced"
				if p.BedID != "" {
					location = fmt.Sprintf("bed %s", p.BedID)
					if bed, ok := snap.Bed(p.BedID); ok {
						if room, ok := snap.Room(bed.RoomID); ok {
							location = fmt.Sprintf("room %s, bed %s", room.Number, p.BedID)
						}
					}
				}
				flags := ""
				if p.Isolation {
					flags = " [isolation]"
				}
				fmt.Printf("- %s (%s) - %s - %s%s\n", p.FullName(), p.ID, p.Gender, location, flags)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("unplaced", false, "Only show residents without a bed")

	return cmd
}
