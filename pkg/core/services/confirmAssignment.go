package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
	"github.com/ashgrove-care/bedplanner/pkg/core/placement"
	"github.com/ashgrove-care/bedplanner/pkg/db"
)

// ErrIncompatible is returned when the commit-time re-check rejects the
// assignment. The wrapped ConfirmResult carries the narrative reason.
var ErrIncompatible = errors.New("assignment is no longer compatible")

// ConfirmResult reports the commit-time re-check outcome for display.
type ConfirmResult struct {
	Person model.Person
	Bed    model.Bed
	Check  placement.ConstraintResult
}

// ConfirmAssignment applies an approved bed assignment using the optimistic
// double-check pattern: fetch a fresh snapshot, re-run the constraint check
// against it, and only then issue the write. The persistence layer's vacancy
// guard resolves any remaining race — a lost race surfaces as
// db.ErrBedConflict, never as a silent overwrite.
//
// The constraint checker fails open on missing reference data; here that is
// not acceptable, so missing person or bed lookups are hard errors.
func ConfirmAssignment(ctx context.Context, database db.Database, logger *zap.Logger, residentID, bedID string) (*ConfirmResult, error) {
	logger.Info("Confirming assignment",
		zap.String("resident_id", residentID),
		zap.String("bed_id", bedID))

	snap, err := database.GetSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	person, ok := snap.Person(residentID)
	if !ok {
		return nil, fmt.Errorf("resident %s not found", residentID)
	}
	if !person.Active {
		return nil, fmt.Errorf("resident %s is discharged", residentID)
	}
	bed, ok := snap.Bed(bedID)
	if !ok {
		return nil, fmt.Errorf("bed %s not found", bedID)
	}

	result := &ConfirmResult{Person: person, Bed: bed}

	if bed.Status != model.BedVacant {
		logger.Warn("Bed no longer vacant at confirmation time",
			zap.String("bed_id", bedID),
			zap.String("status", string(bed.Status)))
		return result, db.ErrBedConflict
	}

	result.Check = placement.CheckConstraint(snap, bedID, person.Gender, person.Isolation)
	if !result.Check.Compatible {
		logger.Warn("Commit-time re-check rejected assignment",
			zap.String("resident_id", residentID),
			zap.String("bed_id", bedID),
			zap.String("reason", result.Check.Reason))
		return result, fmt.Errorf("%w: %s", ErrIncompatible, result.Check.Reason)
	}

	if person.BedID != "" {
		logger.Info("Releasing current bed before reassignment",
			zap.String("resident_id", residentID),
			zap.String("from_bed_id", person.BedID))
		if err := database.UnassignResident(ctx, residentID); err != nil {
			return nil, fmt.Errorf("failed to release current bed: %w", err)
		}
	}

	if err := database.AssignResident(ctx, residentID, bedID); err != nil {
		if errors.Is(err, db.ErrBedConflict) {
			logger.Warn("Lost assignment race", zap.String("bed_id", bedID))
			return result, err
		}
		return nil, fmt.Errorf("failed to assign resident: %w", err)
	}

	logger.Info("Assignment confirmed",
		zap.String("resident_id", residentID),
		zap.String("bed_id", bedID))
	return result, nil
}
