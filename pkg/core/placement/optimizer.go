package placement

import (
	"fmt"
	"sort"
	"time"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

// MoveKind distinguishes the two recommendation classes the optimizer emits.
type MoveKind string

const (
	// MoveConsolidation relocates a room's occupants to free the whole room.
	MoveConsolidation MoveKind = "consolidation"
	// MovePlacement assigns an unplaced resident straight into a vacant bed.
	MovePlacement MoveKind = "placement"
)

// PairScore carries the compatibility sub-scores for the roommate pairing a
// move would create.
type PairScore struct {
	Age       int
	Diagnosis int
}

// MoveRecommendation proposes assigning a resident to a target bed. A move
// with an empty FromBedID is a direct placement of an unplaced resident;
// otherwise the resident is relocated from their current bed.
type MoveRecommendation struct {
	Kind          MoveKind
	PersonID      string
	PersonName    string
	FromBedID     string
	ToBedID       string
	ToRoomID      string
	ToRoomNumber  string
	Reason        string
	Impact        int // beds freed for consolidations, vacancies remaining for placements
	Compatibility *PairScore
}

// OptimizeConfig unifies the optimizer variants found across deployments:
// whether direct placements are generated at all, the minimum pairwise
// composite a consolidation must clear, and the composite weights.
type OptimizeConfig struct {
	DirectPlacements bool
	MinCompatibility int
	AgeWeight        float64
	DiagnosisWeight  float64
	Now              time.Time
}

func DefaultOptimizeConfig() OptimizeConfig {
	return OptimizeConfig{
		DirectPlacements: true,
		MinCompatibility: MinConsolidationCompatibility,
		AgeWeight:        CompositeWeightAge,
		DiagnosisWeight:  CompositeWeightDiagnosis,
		Now:              time.Now(),
	}
}

// Optimize analyzes the occupancy graph and proposes moves that relieve
// capacity pressure. Consolidation moves come first (ordered by beds freed,
// descending), then direct placements for unplaced residents (grouped by
// resident name, best compatibility first). The engine only proposes —
// applying a move and re-querying is the caller's job.
func Optimize(snap *model.Snapshot, unplaced []model.Person, cfg OptimizeConfig) []MoveRecommendation {
	claimed := make(map[string]bool) // room IDs consumed by a consolidation this pass
	covered := make(map[string]bool) // person IDs already given a consolidation move

	consolidations := consolidationMoves(snap, unplaced, cfg, claimed, covered)

	var placements []MoveRecommendation
	if cfg.DirectPlacements {
		placements = directPlacements(snap, unplaced, cfg, covered)
	}

	return append(consolidations, placements...)
}

// consolidationMoves frees entire partially-occupied rooms of gender G by
// relocating their occupants into another same-gender room, when unplaced
// residents of the opposite gender are waiting for a room.
func consolidationMoves(snap *model.Snapshot, unplaced []model.Person, cfg OptimizeConfig, claimed, covered map[string]bool) []MoveRecommendation {
	var moves []MoveRecommendation

	for _, src := range snap.Rooms() {
		if claimed[src.ID] || !src.IsMultiBed() {
			continue
		}
		occupants := snap.RoomOccupants(src.ID)
		if len(occupants) == 0 || len(snap.VacantBedsInRoom(src.ID)) == 0 {
			continue
		}

		gender, ok := effectiveGender(occupants)
		if !ok {
			// Mixed room, anomalous upstream state. Leave it alone.
			continue
		}
		opposite, ok := gender.Opposite()
		if !ok {
			continue
		}
		if !anyUnplacedOfGender(unplaced, opposite) {
			continue
		}

		target, targetBeds := findConsolidationTarget(snap, src, occupants, gender, cfg, claimed)
		if target == nil {
			continue
		}

		targetOccupants := snap.RoomOccupants(target.ID)
		for i, occ := range occupants {
			if covered[occ.ID] {
				continue
			}
			covered[occ.ID] = true

			move := MoveRecommendation{
				Kind:         MoveConsolidation,
				PersonID:     occ.ID,
				PersonName:   occ.FullName(),
				FromBedID:    occ.BedID,
				ToBedID:      targetBeds[i].ID,
				ToRoomID:     target.ID,
				ToRoomNumber: target.Number,
				Reason: fmt.Sprintf("Moving to room %s frees all %d beds in room %s for %s admissions",
					target.Number, len(src.BedIDs), src.Number, opposite),
				Impact: len(src.BedIDs),
			}
			if len(targetOccupants) > 0 {
				age := AgeScore(occ.AgeAt(cfg.Now), targetOccupants[0].AgeAt(cfg.Now))
				diagnosis, _ := DiagnosisScore(occ.Diagnosis, targetOccupants[0].Diagnosis)
				move.Compatibility = &PairScore{Age: age, Diagnosis: diagnosis}
			}
			moves = append(moves, move)
		}

		claimed[src.ID] = true
		claimed[target.ID] = true
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Impact > moves[j].Impact
	})
	return moves
}

// findConsolidationTarget searches not-yet-claimed rooms of the source
// gender with enough vacancies to absorb every source occupant, requiring
// each pairwise (source occupant, target occupant) compatibility composite
// to clear the minimum bar with no flagged category conflict. Returns the
// target room and the vacant beds the occupants would take, or nil.
func findConsolidationTarget(snap *model.Snapshot, src model.Room, occupants []model.Person, gender model.Gender, cfg OptimizeConfig, claimed map[string]bool) (*model.Room, []model.Bed) {
	for _, tgt := range snap.Rooms() {
		if tgt.ID == src.ID || claimed[tgt.ID] {
			continue
		}
		targetOccupants := snap.RoomOccupants(tgt.ID)
		if len(targetOccupants) == 0 {
			continue
		}
		targetGender, ok := effectiveGender(targetOccupants)
		if !ok || targetGender != gender {
			continue
		}
		vacant := snap.VacantBedsInRoom(tgt.ID)
		if len(vacant) < len(occupants) {
			continue
		}

		if !pairwiseCompatible(occupants, targetOccupants, cfg) {
			continue
		}

		room := tgt
		return &room, vacant[:len(occupants)]
	}
	return nil, nil
}

// pairwiseCompatible checks every (mover, target occupant) pair against the
// consolidation bar: matching isolation status, composite score at or above
// the minimum, and no declared category conflict.
func pairwiseCompatible(movers, targetOccupants []model.Person, cfg OptimizeConfig) bool {
	for _, mover := range movers {
		for _, occ := range targetOccupants {
			if mover.Isolation != occ.Isolation {
				return false
			}
			age := AgeScore(mover.AgeAt(cfg.Now), occ.AgeAt(cfg.Now))
			diagnosis, conflict := DiagnosisScore(mover.Diagnosis, occ.Diagnosis)
			if conflict != "" {
				return false
			}
			if CompositeScore(age, diagnosis, cfg.AgeWeight, cfg.DiagnosisWeight) < cfg.MinCompatibility {
				return false
			}
		}
	}
	return true
}

// directPlacements proposes rooms for every unplaced resident not already
// covered by a consolidation move. A resident may legitimately be offered
// several rooms; duplicates per (person, bed) pair are dropped.
func directPlacements(snap *model.Snapshot, unplaced []model.Person, cfg OptimizeConfig, covered map[string]bool) []MoveRecommendation {
	type scoredMove struct {
		move  MoveRecommendation
		score int
	}
	var scored []scoredMove

	for _, person := range unplaced {
		if covered[person.ID] {
			continue
		}
		seenBeds := make(map[string]bool)

		for _, room := range snap.Rooms() {
			vacant := snap.VacantBedsInRoom(room.ID)
			if len(vacant) == 0 {
				continue
			}
			occupants := snap.RoomOccupants(room.ID)
			if len(occupants) > 0 {
				gender, ok := effectiveGender(occupants)
				if !ok || gender != person.Gender {
					continue
				}
				if !isolationAllows(occupants, person.Isolation) {
					continue
				}
			}

			bed := vacant[0]
			if seenBeds[bed.ID] {
				continue
			}
			seenBeds[bed.ID] = true

			move := MoveRecommendation{
				Kind:         MovePlacement,
				PersonID:     person.ID,
				PersonName:   person.FullName(),
				ToBedID:      bed.ID,
				ToRoomID:     room.ID,
				ToRoomNumber: room.Number,
				Impact:       len(vacant) - 1,
			}

			composite := 100
			if len(occupants) > 0 {
				primary := occupants[0]
				age := AgeScore(person.AgeAt(cfg.Now), primary.AgeAt(cfg.Now))
				diagnosis, _ := DiagnosisScore(person.Diagnosis, primary.Diagnosis)
				composite = CompositeScore(age, diagnosis, cfg.AgeWeight, cfg.DiagnosisWeight)
				move.Compatibility = &PairScore{Age: age, Diagnosis: diagnosis}
				move.Reason = fmt.Sprintf("%s compatibility with %s in room %s", compatibilityBand(composite), primary.FullName(), room.Number)
			} else {
				move.Reason = fmt.Sprintf("Room %s is empty and available", room.Number)
			}

			scored = append(scored, scoredMove{move: move, score: composite})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.move.PersonName != b.move.PersonName {
			return a.move.PersonName < b.move.PersonName
		}
		if a.move.PersonID != b.move.PersonID {
			return a.move.PersonID < b.move.PersonID
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.move.Impact > b.move.Impact
	})

	moves := make([]MoveRecommendation, len(scored))
	for i, sm := range scored {
		moves[i] = sm.move
	}
	return moves
}

func compatibilityBand(composite int) string {
	switch {
	case composite >= GoodCompatibilityThreshold:
		return "Good"
	case composite >= ModerateCompatibilityThreshold:
		return "Moderate"
	default:
		return "Low"
	}
}

// effectiveGender returns the single gender shared by all occupants, or
// false when the room is empty or holds a mixed-gender anomaly.
func effectiveGender(occupants []model.Person) (model.Gender, bool) {
	if len(occupants) == 0 {
		return "", false
	}
	gender := occupants[0].Gender
	for _, occ := range occupants[1:] {
		if occ.Gender != gender {
			return "", false
		}
	}
	return gender, true
}

func anyUnplacedOfGender(unplaced []model.Person, gender model.Gender) bool {
	for _, p := range unplaced {
		if p.Gender == gender {
			return true
		}
	}
	return false
}
