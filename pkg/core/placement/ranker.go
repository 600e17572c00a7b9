package placement

import (
	"fmt"
	"sort"
	"time"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

// CompatibilityScore is the ranked evaluation of one vacant bed for one
// candidate. Every number is traceable to a specific rule, so the caller can
// show why a bed ranks where it does.
type CompatibilityScore struct {
	BedID      string
	RoomID     string
	RoomNumber string

	Total            int
	AgeScore         int
	DiagnosisScore   int
	FlexibilityScore int

	RoommateID   string // primary roommate, empty when the room is empty
	RoommateName string

	Warnings    []string
	Recommended bool // set on the single top-ranked entry only
}

// RankConfig carries the ranking weights and the reference time for age
// calculation. The weights are configuration points that unify the scoring
// variants found across deployments; DefaultRankConfig matches the standard
// weighting.
type RankConfig struct {
	AgeWeight         float64
	DiagnosisWeight   float64
	FlexibilityWeight float64
	Now               time.Time
}

func DefaultRankConfig() RankConfig {
	return RankConfig{
		AgeWeight:         WeightAge,
		DiagnosisWeight:   WeightDiagnosis,
		FlexibilityWeight: WeightFlexibility,
		Now:               time.Now(),
	}
}

// RankBeds evaluates every vacant bed in the snapshot for the candidate,
// discards hard constraint violations, and returns the survivors scored and
// sorted by total score descending. The top entry is flagged Recommended.
//
// The candidate may be an existing resident or a hypothetical admission that
// has not been created yet; only gender, isolation status, date of birth and
// diagnosis are read.
func RankBeds(snap *model.Snapshot, candidate model.Person, cfg RankConfig) []CompatibilityScore {
	candidateAge := candidate.AgeAt(cfg.Now)

	var scores []CompatibilityScore
	for _, bed := range snap.VacantBeds() {
		room, ok := snap.Room(bed.RoomID)
		if !ok {
			continue
		}
		occupants := snap.RoomOccupants(room.ID)

		if !roomGenderAllows(occupants, candidate.Gender) {
			continue
		}
		if !bathroomGroupAllows(snap, room, candidate.Gender) {
			continue
		}
		if !isolationAllows(occupants, candidate.Isolation) {
			continue
		}

		score := CompatibilityScore{
			BedID:      bed.ID,
			RoomID:     room.ID,
			RoomNumber: room.Number,
		}

		// Primary roommate: first occupant in the room's bed enumeration
		// order. Empty rooms are maximally compatible on age and diagnosis.
		var roommate *model.Person
		if len(occupants) > 0 {
			roommate = &occupants[0]
			score.RoommateID = roommate.ID
			score.RoommateName = roommate.FullName()
		}

		var conflictReason string
		if roommate == nil {
			score.AgeScore = 100
			score.DiagnosisScore = 100
		} else {
			roommateAge := roommate.AgeAt(cfg.Now)
			score.AgeScore = AgeScore(candidateAge, roommateAge)
			score.DiagnosisScore, conflictReason = DiagnosisScore(candidate.Diagnosis, roommate.Diagnosis)

			if score.AgeScore < NeutralScore && candidateAge != nil && roommateAge != nil {
				gap := *candidateAge - *roommateAge
				if gap < 0 {
					gap = -gap
				}
				score.Warnings = append(score.Warnings, fmt.Sprintf("Large age gap: %d years between candidate and %s", gap, roommate.FullName()))
			}
			if conflictReason != "" {
				score.Warnings = append(score.Warnings, conflictReason)
			}
		}

		score.FlexibilityScore = flexibilityScore(snap, room, occupants, candidate.Gender, &score.Warnings)

		score.Total = roundScore(
			float64(score.AgeScore)*cfg.AgeWeight +
				float64(score.DiagnosisScore)*cfg.DiagnosisWeight +
				float64(score.FlexibilityScore)*cfg.FlexibilityWeight,
		)

		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Total != scores[j].Total {
			return scores[i].Total > scores[j].Total
		}
		if scores[i].RoomNumber != scores[j].RoomNumber {
			return scores[i].RoomNumber < scores[j].RoomNumber
		}
		return scores[i].BedID < scores[j].BedID
	})

	if len(scores) > 0 {
		scores[0].Recommended = true
	}

	return scores
}

// flexibilityScore reflects how much taking a bed in this room constrains
// future occupancy. Gender mismatches cannot normally reach this point
// because of the hard filters; when one does it scores 0 with an explicit
// warning rather than being silently accepted.
func flexibilityScore(snap *model.Snapshot, room model.Room, occupants []model.Person, gender model.Gender, warnings *[]string) int {
	for _, occ := range occupants {
		if occ.Gender != gender {
			*warnings = append(*warnings, fmt.Sprintf("Gender mismatch with current occupants of room %s", room.Number))
			return FlexibilityMismatch
		}
	}

	if room.BathroomGroupID != "" {
		for _, gr := range snap.BathroomGroupRooms(room.BathroomGroupID) {
			if gr.ID == room.ID {
				continue
			}
			for _, occ := range snap.RoomOccupants(gr.ID) {
				if occ.Gender != gender {
					*warnings = append(*warnings, fmt.Sprintf("Room %s shares a bathroom with room %s, occupied by %s residents", room.Number, gr.Number, occ.Gender))
					return FlexibilityMismatch
				}
			}
		}
	}

	vacancies := len(snap.VacantBedsInRoom(room.ID))
	switch {
	case len(occupants) == 0 && !room.IsMultiBed():
		return FlexibilityEmptySingleRoom
	case len(occupants) == 0:
		// Filling one bed locks the whole room to one gender.
		return FlexibilityEmptyMultiRoom
	case vacancies == 1:
		return FlexibilityLastVacancy
	default:
		return FlexibilityMoreVacancies
	}
}

// roomGenderAllows reports whether the candidate's gender matches every
// current occupant of the room. A mixed room never matches.
func roomGenderAllows(occupants []model.Person, gender model.Gender) bool {
	for _, occ := range occupants {
		if occ.Gender != gender {
			return false
		}
	}
	return true
}

// bathroomGroupAllows applies the gender rule restricted to the other rooms
// of the target room's shared-bathroom group.
func bathroomGroupAllows(snap *model.Snapshot, room model.Room, gender model.Gender) bool {
	if room.BathroomGroupID == "" {
		return true
	}
	for _, gr := range snap.BathroomGroupRooms(room.BathroomGroupID) {
		if gr.ID == room.ID {
			continue
		}
		for _, occ := range snap.RoomOccupants(gr.ID) {
			if occ.Gender != gender {
				return false
			}
		}
	}
	return true
}

// isolationAllows applies the room-local isolation rule: isolation residents
// only share with isolation residents, and vice versa.
func isolationAllows(occupants []model.Person, isolation bool) bool {
	for _, occ := range occupants {
		if occ.Isolation != isolation {
			return false
		}
	}
	return true
}
