package placement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

// refTime is the fixed reference for age calculation in tests. Birth dates
// produced by dob land on 1 January, so ages are exact at this time.
var refTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func dob(age int) *time.Time {
	t := time.Date(2025-age, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func testRoom(id, number, groupID string, bedIDs ...string) model.Room {
	return model.Room{
		ID:                id,
		Number:            number,
		BedIDs:            bedIDs,
		HasSharedBathroom: groupID != "",
		BathroomGroupID:   groupID,
	}
}

func testBed(id, roomID string, status model.BedStatus) model.Bed {
	return model.Bed{ID: id, RoomID: roomID, Status: status}
}

func resident(id, name string, gender model.Gender, age int, diagnosis, bedID string) model.Person {
	return model.Person{
		ID:          id,
		FirstName:   name,
		LastName:    "Resident",
		Gender:      gender,
		DateOfBirth: dob(age),
		Diagnosis:   diagnosis,
		Active:      true,
		BedID:       bedID,
	}
}

func mustSnapshot(t *testing.T, rooms []model.Room, beds []model.Bed, people []model.Person) *model.Snapshot {
	t.Helper()
	for i := range beds {
		if beds[i].Status == model.BedOccupied {
			for _, p := range people {
				if p.BedID == beds[i].ID {
					beds[i].OccupantID = p.ID
				}
			}
		}
	}
	snap, err := model.NewSnapshot(rooms, beds, people)
	require.NoError(t, err)
	return snap
}
