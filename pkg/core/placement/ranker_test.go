package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

func rankConfig() RankConfig {
	return RankConfig{
		AgeWeight:         WeightAge,
		DiagnosisWeight:   WeightDiagnosis,
		FlexibilityWeight: WeightFlexibility,
		Now:               refTime,
	}
}

// wardSnapshot builds a small ward:
//
//	room 101: two beds, one occupied by an 80-year-old female with dementia
//	room 102: empty single room
//	room 103: empty two-bed room
//	room 104: single room, out-of-service bed
func wardSnapshot(t *testing.T) *model.Snapshot {
	rooms := []model.Room{
		testRoom("r101", "101", "", "b1", "b2"),
		testRoom("r102", "102", "", "b3"),
		testRoom("r103", "103", "", "b4", "b5"),
		testRoom("r104", "104", "", "b6"),
	}
	beds := []model.Bed{
		testBed("b1", "r101", model.BedOccupied),
		testBed("b2", "r101", model.BedVacant),
		testBed("b3", "r102", model.BedVacant),
		testBed("b4", "r103", model.BedVacant),
		testBed("b5", "r103", model.BedVacant),
		testBed("b6", "r104", model.BedOutOfService),
	}
	people := []model.Person{
		resident("p1", "Mary", model.GenderFemale, 80, "Dementia", "b1"),
	}
	return mustSnapshot(t, rooms, beds, people)
}

func TestRankBeds_FiltersGenderAndScoresRest(t *testing.T) {
	snap := wardSnapshot(t)
	candidate := resident("c1", "George", model.GenderMale, 79, "Congestive heart failure", "")

	scores := RankBeds(snap, candidate, rankConfig())

	// b2 is excluded by gender, b6 is out of service.
	require.Len(t, scores, 3)
	for _, s := range scores {
		assert.NotEqual(t, "b2", s.BedID)
		assert.NotEqual(t, "b6", s.BedID)
	}

	// Empty single room outranks empty multi-bed beds:
	// 100*0.3 + 100*0.4 + 100*0.3 = 100 vs 100*0.3 + 100*0.4 + 60*0.3 = 88.
	assert.Equal(t, "b3", scores[0].BedID)
	assert.Equal(t, 100, scores[0].Total)
	assert.True(t, scores[0].Recommended)
	assert.Equal(t, 88, scores[1].Total)
}

func TestRankBeds_ExactlyOneRecommended(t *testing.T) {
	snap := wardSnapshot(t)
	candidate := resident("c1", "Jane", model.GenderFemale, 79, "", "")

	scores := RankBeds(snap, candidate, rankConfig())
	require.NotEmpty(t, scores)

	recommended := 0
	for _, s := range scores {
		if s.Recommended {
			recommended++
		}
	}
	assert.Equal(t, 1, recommended)
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Total, scores[i].Total)
	}
}

func TestRankBeds_RoommateScoring(t *testing.T) {
	snap := wardSnapshot(t)
	// Female candidate, age 82, dementia: room 101's bed scores against Mary.
	candidate := resident("c1", "Jane", model.GenderFemale, 82, "Dementia", "")

	scores := RankBeds(snap, candidate, rankConfig())
	require.Len(t, scores, 4)

	var b2 *CompatibilityScore
	for i := range scores {
		if scores[i].BedID == "b2" {
			b2 = &scores[i]
		}
	}
	require.NotNil(t, b2)

	assert.Equal(t, "p1", b2.RoommateID)
	assert.Equal(t, "Mary Resident", b2.RoommateName)
	assert.Equal(t, 90, b2.AgeScore)
	assert.Equal(t, 100, b2.DiagnosisScore, "identical diagnosis is an exact match, not a conflict")
	assert.Equal(t, FlexibilityLastVacancy, b2.FlexibilityScore)
	// 90*0.3 + 100*0.4 + 80*0.3 = 91
	assert.Equal(t, 91, b2.Total)
	assert.Empty(t, b2.Warnings)
}

func TestRankBeds_ConflictWarning(t *testing.T) {
	snap := wardSnapshot(t)
	candidate := resident("c1", "Jane", model.GenderFemale, 80, "Alzheimer's disease", "")

	scores := RankBeds(snap, candidate, rankConfig())

	var b2 *CompatibilityScore
	for i := range scores {
		if scores[i].BedID == "b2" {
			b2 = &scores[i]
		}
	}
	require.NotNil(t, b2)

	assert.Equal(t, 0, b2.DiagnosisScore)
	require.Len(t, b2.Warnings, 1)
	assert.Contains(t, b2.Warnings[0], "supervision")
	// The bed stays in the ranking: diagnosis conflicts are soft.
	assert.False(t, b2.Recommended)
}

func TestRankBeds_AgeGapWarning(t *testing.T) {
	snap := wardSnapshot(t)
	candidate := resident("c1", "Jane", model.GenderFemale, 55, "Dementia", "")

	scores := RankBeds(snap, candidate, rankConfig())

	var b2 *CompatibilityScore
	for i := range scores {
		if scores[i].BedID == "b2" {
			b2 = &scores[i]
		}
	}
	require.NotNil(t, b2)

	assert.Equal(t, 0, b2.AgeScore)
	require.NotEmpty(t, b2.Warnings)
	assert.Contains(t, b2.Warnings[0], "Large age gap: 25 years")
	assert.Contains(t, b2.Warnings[0], "Mary Resident")
}

func TestRankBeds_UnknownAgeNoGapWarning(t *testing.T) {
	snap := wardSnapshot(t)
	candidate := resident("c1", "Jane", model.GenderFemale, 55, "Dementia", "")
	candidate.DateOfBirth = nil

	scores := RankBeds(snap, candidate, rankConfig())

	for _, s := range scores {
		if s.BedID == "b2" {
			assert.Equal(t, NeutralScore, s.AgeScore)
			for _, w := range s.Warnings {
				assert.NotContains(t, w, "age gap")
			}
		}
	}
}

func TestRankBeds_IsolationCandidateOnlyGetsEmptyRooms(t *testing.T) {
	snap := wardSnapshot(t)
	candidate := resident("c1", "Jane", model.GenderFemale, 80, "Influenza", "")
	candidate.Isolation = true

	scores := RankBeds(snap, candidate, rankConfig())

	require.Len(t, scores, 3)
	for _, s := range scores {
		assert.NotEqual(t, "b2", s.BedID, "occupied room must be filtered for an isolation candidate")
	}
}

func TestRankBeds_BathroomGroupFilter(t *testing.T) {
	rooms := []model.Room{
		testRoom("r1", "101", "bg1", "b1"),
		testRoom("r2", "102", "bg1", "b2"),
	}
	beds := []model.Bed{
		testBed("b1", "r1", model.BedOccupied),
		testBed("b2", "r2", model.BedVacant),
	}
	people := []model.Person{
		resident("p1", "George", model.GenderMale, 82, "", "b1"),
	}
	snap := mustSnapshot(t, rooms, beds, people)

	scores := RankBeds(snap, resident("c1", "Jane", model.GenderFemale, 80, "", ""), rankConfig())
	assert.Empty(t, scores, "bathroom group locks the vacancy to male candidates")

	scores = RankBeds(snap, resident("c2", "Tom", model.GenderMale, 80, "", ""), rankConfig())
	require.Len(t, scores, 1)
	assert.Equal(t, "b2", scores[0].BedID)
	assert.Equal(t, FlexibilityEmptySingleRoom, scores[0].FlexibilityScore)
}

func TestRankBeds_MoreVacanciesFlexibility(t *testing.T) {
	rooms := []model.Room{testRoom("r1", "101", "", "b1", "b2", "b3")}
	beds := []model.Bed{
		testBed("b1", "r1", model.BedOccupied),
		testBed("b2", "r1", model.BedVacant),
		testBed("b3", "r1", model.BedVacant),
	}
	people := []model.Person{
		resident("p1", "Mary", model.GenderFemale, 80, "", "b1"),
	}
	snap := mustSnapshot(t, rooms, beds, people)

	scores := RankBeds(snap, resident("c1", "Jane", model.GenderFemale, 80, "", ""), rankConfig())
	require.Len(t, scores, 2)
	for _, s := range scores {
		assert.Equal(t, FlexibilityMoreVacancies, s.FlexibilityScore)
	}
}

func TestRankBeds_Deterministic(t *testing.T) {
	snap := wardSnapshot(t)
	candidate := resident("c1", "Jane", model.GenderFemale, 82, "Dementia", "")

	first := RankBeds(snap, candidate, rankConfig())
	second := RankBeds(snap, candidate, rankConfig())

	assert.Equal(t, first, second)
}

func TestRankBeds_TieBreakByRoomNumberThenBed(t *testing.T) {
	rooms := []model.Room{
		testRoom("r2", "202", "", "b3", "b4"),
		testRoom("r1", "201", "", "b1", "b2"),
	}
	beds := []model.Bed{
		testBed("b3", "r2", model.BedVacant),
		testBed("b4", "r2", model.BedVacant),
		testBed("b1", "r1", model.BedVacant),
		testBed("b2", "r1", model.BedVacant),
	}
	snap := mustSnapshot(t, rooms, beds, nil)

	scores := RankBeds(snap, resident("c1", "Jane", model.GenderFemale, 80, "", ""), rankConfig())
	require.Len(t, scores, 4)

	// All beds score identically, so ordering falls back to room number
	// and bed ID.
	assert.Equal(t, []string{"b1", "b2", "b3", "b4"}, []string{
		scores[0].BedID, scores[1].BedID, scores[2].BedID, scores[3].BedID,
	})
}

func TestRankBeds_NoVacantBeds(t *testing.T) {
	rooms := []model.Room{testRoom("r1", "101", "", "b1")}
	beds := []model.Bed{testBed("b1", "r1", model.BedOccupied)}
	people := []model.Person{
		resident("p1", "Mary", model.GenderFemale, 80, "", "b1"),
	}
	snap := mustSnapshot(t, rooms, beds, people)

	scores := RankBeds(snap, resident("c1", "Jane", model.GenderFemale, 80, "", ""), rankConfig())
	assert.Empty(t, scores)
}
