package db

import (
	"context"
	"errors"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

// ErrBedConflict is returned when an assignment loses the race for a bed:
// the bed was vacant in the caller's snapshot but is no longer vacant at
// commit time. The caller must surface the conflict, never overwrite.
var ErrBedConflict = errors.New("bed is no longer vacant")

// SnapshotStore provides read-only access to the occupancy graph.
type SnapshotStore interface {
	// GetSnapshot returns a validated snapshot of all rooms, beds and
	// residents. The engine treats it as immutable.
	GetSnapshot(ctx context.Context) (*model.Snapshot, error)
}

// AssignmentStore applies single-entity occupancy mutations. The engine
// never calls these itself; the service layer sequences them around engine
// calls and re-fetches a fresh snapshot afterwards.
type AssignmentStore interface {
	// AssignResident places a resident into a vacant bed. Returns
	// ErrBedConflict when the bed is no longer vacant.
	AssignResident(ctx context.Context, residentID, bedID string) error

	// UnassignResident releases the resident's current bed, if any.
	UnassignResident(ctx context.Context, residentID string) error

	// SetBedStatus changes a bed's lifecycle state. Occupied beds cannot be
	// taken out of service.
	SetBedStatus(ctx context.Context, bedID string, status model.BedStatus) error
}

// Database combines the read and write sides.
type Database interface {
	SnapshotStore
	AssignmentStore
}
