package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
)

// GetSnapshot loads the full occupancy graph and returns it as a validated,
// typed snapshot. Row validation happens once here (and in model.NewSnapshot);
// the engine never re-checks shapes.
func (d *DB) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	rooms, err := d.loadRooms(ctx)
	if err != nil {
		return nil, err
	}
	beds, bedOrder, err := d.loadBeds(ctx)
	if err != nil {
		return nil, err
	}
	people, err := d.loadResidents(ctx)
	if err != nil {
		return nil, err
	}

	// Attach beds to rooms in position order and derive bed occupants from
	// the residents' bed references.
	for i := range rooms {
		rooms[i].BedIDs = bedOrder[rooms[i].ID]
	}
	occupant := make(map[string]string)
	for _, p := range people {
		if p.Active && p.BedID != "" {
			occupant[p.BedID] = p.ID
		}
	}
	for i := range beds {
		beds[i].OccupantID = occupant[beds[i].ID]
	}

	snap, err := model.NewSnapshot(rooms, beds, people)
	if err != nil {
		return nil, fmt.Errorf("inconsistent occupancy data: %w", err)
	}
	return snap, nil
}

func (d *DB) loadRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, number, wing_id, has_shared_bathroom, COALESCE(bathroom_group_id, '')
		FROM room
		ORDER BY number, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.Number, &r.WingID, &r.HasSharedBathroom, &r.BathroomGroupID); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}
	return rooms, nil
}

// loadBeds returns all beds plus each room's bed IDs in position order.
func (d *DB) loadBeds(ctx context.Context) ([]model.Bed, map[string][]string, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, room_id, status
		FROM bed
		ORDER BY room_id, position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query beds: %w", err)
	}
	defer rows.Close()

	var beds []model.Bed
	order := make(map[string][]string)
	for rows.Next() {
		var b model.Bed
		if err := rows.Scan(&b.ID, &b.RoomID, &b.Status); err != nil {
			return nil, nil, fmt.Errorf("failed to scan bed: %w", err)
		}
		beds = append(beds, b)
		order[b.RoomID] = append(order[b.RoomID], b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating beds: %w", err)
	}
	return beds, order, nil
}

func (d *DB) loadResidents(ctx context.Context) ([]model.Person, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, gender, date_of_birth, diagnosis,
		       isolation, isolation_category, status, COALESCE(bed_id, '')
		FROM resident
		ORDER BY last_name, first_name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query residents: %w", err)
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		var p model.Person
		var dob *time.Time
		var status string
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Gender, &dob,
			&p.Diagnosis, &p.Isolation, &p.IsolationCategory, &status, &p.BedID); err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		p.DateOfBirth = dob
		p.Active = status == "active"
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating residents: %w", err)
	}
	return people, nil
}
