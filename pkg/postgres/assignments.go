package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
	"github.com/ashgrove-care/bedplanner/pkg/db"
)

// AssignResident places a resident into a vacant bed. The vacancy guard is
// the system's optimistic concurrency mechanism: whichever write lands first
// wins, and the loser gets db.ErrBedConflict instead of a silent overwrite.
func (d *DB) AssignResident(ctx context.Context, residentID, bedID string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE bed SET status = 'occupied'
		WHERE id = $1 AND status = 'vacant'
	`, bedID)
	if err != nil {
		return fmt.Errorf("failed to occupy bed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrBedConflict
	}

	tag, err = tx.Exec(ctx, `
		UPDATE resident SET bed_id = $2
		WHERE id = $1 AND status = 'active' AND bed_id IS NULL
	`, residentID, bedID)
	if err != nil {
		return fmt.Errorf("failed to update resident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resident %s is not active and unplaced", residentID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bed_assignment (id, resident_id, bed_id)
		VALUES ($1, $2, $3)
	`, uuid.New().String(), residentID, bedID)
	if err != nil {
		return fmt.Errorf("failed to record assignment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignment: %w", err)
	}
	return nil
}

// UnassignResident releases the resident's current bed, if any.
func (d *DB) UnassignResident(ctx context.Context, residentID string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var bedID *string
	err = tx.QueryRow(ctx, `
		SELECT bed_id FROM resident WHERE id = $1 FOR UPDATE
	`, residentID).Scan(&bedID)
	if err != nil {
		return fmt.Errorf("failed to look up resident %s: %w", residentID, err)
	}
	if bedID == nil {
		return nil
	}

	if _, err := tx.Exec(ctx, `UPDATE resident SET bed_id = NULL WHERE id = $1`, residentID); err != nil {
		return fmt.Errorf("failed to clear resident bed: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE bed SET status = 'vacant' WHERE id = $1 AND status = 'occupied'`, *bedID); err != nil {
		return fmt.Errorf("failed to vacate bed: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE bed_assignment SET released_at = NOW()
		WHERE resident_id = $1 AND bed_id = $2 AND released_at IS NULL
	`, residentID, *bedID); err != nil {
		return fmt.Errorf("failed to close assignment record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit unassignment: %w", err)
	}
	return nil
}

// SetBedStatus changes a bed's lifecycle state. Occupied beds must be
// unassigned first.
func (d *DB) SetBedStatus(ctx context.Context, bedID string, status model.BedStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid bed status %q", status)
	}
	if status == model.BedOccupied {
		return fmt.Errorf("beds become occupied through assignment, not directly")
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE bed SET status = $2
		WHERE id = $1 AND status <> 'occupied'
	`, bedID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update bed status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bed %s not found or currently occupied", bedID)
	}
	return nil
}
