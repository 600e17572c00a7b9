package placement

import (
	"fmt"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

// ConstraintResult reports whether a candidate may legally take a bed, with
// a human-readable reason when they may not.
type ConstraintResult struct {
	Compatible          bool
	Reason              string
	ExistingGender      model.Gender // gender already present in the room/group, empty when none
	RoomBedCount        int
	SharedBathroomRooms []string // display numbers of other rooms in the bathroom group
	IsolationConflict   bool
}

// CheckConstraint decides hard legality of placing a candidate with the
// given gender and isolation status into the target bed. It checks the
// room-local isolation rule and the gender rule across the room and its
// shared-bathroom group.
//
// When the bed or room cannot be resolved the check fails open and reports
// compatible: a data-layer gap must not block the flow. Callers that need
// strict enforcement re-run the check against fresh state at commit time.
func CheckConstraint(snap *model.Snapshot, bedID string, gender model.Gender, isolation bool) ConstraintResult {
	bed, ok := snap.Bed(bedID)
	if !ok {
		return ConstraintResult{Compatible: true}
	}
	room, ok := snap.Room(bed.RoomID)
	if !ok {
		return ConstraintResult{Compatible: true}
	}

	result := ConstraintResult{
		Compatible:   true,
		RoomBedCount: len(room.BedIDs),
	}

	var groupRooms []model.Room
	if room.BathroomGroupID != "" {
		for _, r := range snap.BathroomGroupRooms(room.BathroomGroupID) {
			if r.ID == room.ID {
				continue
			}
			groupRooms = append(groupRooms, r)
			result.SharedBathroomRooms = append(result.SharedBathroomRooms, r.Number)
		}
	}

	// A single-occupancy room with no shared bathroom has no constraint
	// surface at all.
	if !room.IsMultiBed() && len(groupRooms) == 0 {
		return result
	}

	roomOccupants := snap.RoomOccupants(room.ID)

	// Isolation precaution applies within the room only, not across the
	// bathroom group: isolation residents may only share a room with other
	// isolation residents.
	for _, occ := range roomOccupants {
		if occ.Isolation && !isolation {
			result.Compatible = false
			result.IsolationConflict = true
			result.Reason = fmt.Sprintf("room %s holds a resident under isolation precautions; only isolation residents may be placed there", room.Number)
			return result
		}
		if !occ.Isolation && isolation {
			result.Compatible = false
			result.IsolationConflict = true
			result.Reason = fmt.Sprintf("room %s holds a non-isolation resident; a resident under isolation precautions may not be placed there", room.Number)
			return result
		}
	}

	// Gender rule spans the room and every room sharing its bathroom.
	genders := make(map[model.Gender]bool)
	for _, occ := range roomOccupants {
		genders[occ.Gender] = true
	}
	var conflictingGroupRoom string
	for _, gr := range groupRooms {
		for _, occ := range snap.RoomOccupants(gr.ID) {
			genders[occ.Gender] = true
			if occ.Gender != gender && conflictingGroupRoom == "" {
				conflictingGroupRoom = gr.Number
			}
		}
	}

	if len(genders) == 0 {
		return result
	}

	if len(genders) > 1 {
		// Should not happen: the engine never produces a mixed state, but a
		// discovered one is reported rather than crashed on.
		result.Compatible = false
		result.Reason = fmt.Sprintf("room %s and its shared-bathroom rooms already hold residents of more than one gender", room.Number)
		return result
	}

	var existing model.Gender
	for g := range genders {
		existing = g
	}
	result.ExistingGender = existing

	if existing != gender {
		result.Compatible = false
		if len(roomOccupants) > 0 {
			result.Reason = fmt.Sprintf("room %s is occupied by %s residents", room.Number, existing)
		} else {
			result.Reason = fmt.Sprintf("room %s shares a bathroom with room %s, occupied by %s residents", room.Number, conflictingGroupRoom, existing)
		}
		return result
	}

	return result
}

// RequiredGender returns the gender a candidate must have to take the given
// bed, or false when the bed carries no gender restriction. It is the cheap
// pre-filter companion to CheckConstraint: same occupant collection, no
// narrative reasons.
func RequiredGender(snap *model.Snapshot, bedID string) (model.Gender, bool) {
	bed, ok := snap.Bed(bedID)
	if !ok {
		return "", false
	}
	room, ok := snap.Room(bed.RoomID)
	if !ok {
		return "", false
	}
	if !room.IsMultiBed() && room.BathroomGroupID == "" {
		return "", false
	}

	if occupants := snap.RoomOccupants(room.ID); len(occupants) > 0 {
		return occupants[0].Gender, true
	}
	if room.BathroomGroupID != "" {
		for _, gr := range snap.BathroomGroupRooms(room.BathroomGroupID) {
			if gr.ID == room.ID {
				continue
			}
			if occupants := snap.RoomOccupants(gr.ID); len(occupants) > 0 {
				return occupants[0].Gender, true
			}
		}
	}
	return "", false
}
