package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

var (
	testLogger = zap.NewNop()
	refTime    = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

// mockDatabase is a hand-rolled db.Database double: canned snapshot and
// errors in, recorded mutation calls out.
type mockDatabase struct {
	snapshot    *model.Snapshot
	snapshotErr error

	assignErr   error
	unassignErr error

	assignCalls   [][2]string // (residentID, bedID)
	unassignCalls []string
	statusCalls   [][2]string // (bedID, status)
}

func (m *mockDatabase) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	return m.snapshot, nil
}

func (m *mockDatabase) AssignResident(ctx context.Context, residentID, bedID string) error {
	m.assignCalls = append(m.assignCalls, [2]string{residentID, bedID})
	return m.assignErr
}

func (m *mockDatabase) UnassignResident(ctx context.Context, residentID string) error {
	m.unassignCalls = append(m.unassignCalls, residentID)
	return m.unassignErr
}

func (m *mockDatabase) SetBedStatus(ctx context.Context, bedID string, status model.BedStatus) error {
	m.statusCalls = append(m.statusCalls, [2]string{bedID, string(status)})
	return nil
}

func dob(age int) *time.Time {
	t := time.Date(2025-age, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

// wardSnapshot builds the standard test ward:
//
//	room 101: beds b1 (occupied, Mary, female, 80, dementia) and b2 (vacant)
//	room 102: bed b3 (vacant, single room)
//	unplaced: Jane (female, 79), plus one discharged record
func wardSnapshot(t *testing.T) *model.Snapshot {
	t.Helper()
	rooms := []model.Room{
		{ID: "r101", Number: "101", BedIDs: []string{"b1", "b2"}},
		{ID: "r102", Number: "102", BedIDs: []string{"b3"}},
	}
	beds := []model.Bed{
		{ID: "b1", RoomID: "r101", Status: model.BedOccupied, OccupantID: "p1"},
		{ID: "b2", RoomID: "r101", Status: model.BedVacant},
		{ID: "b3", RoomID: "r102", Status: model.BedVacant},
	}
	people := []model.Person{
		{ID: "p1", FirstName: "Mary", LastName: "Hill", Gender: model.GenderFemale, DateOfBirth: dob(80), Diagnosis: "Dementia", Active: true, BedID: "b1"},
		{ID: "p2", FirstName: "Jane", LastName: "Kerr", Gender: model.GenderFemale, DateOfBirth: dob(79), Active: true},
		{ID: "p3", FirstName: "Gone", LastName: "Away", Gender: model.GenderMale, Active: false},
	}
	snap, err := model.NewSnapshot(rooms, beds, people)
	require.NoError(t, err)
	return snap
}
