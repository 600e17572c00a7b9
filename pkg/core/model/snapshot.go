package model

import "fmt"

// Snapshot is an immutable view of the occupancy graph: every room, bed and
// active resident at one point in time. The engine only ever reads it —
// callers apply approved moves through the persistence layer and fetch a
// fresh snapshot afterwards.
//
// NewSnapshot validates referential integrity once, so engine code can rely
// on fully-typed, consistent values without runtime shape checks.
type Snapshot struct {
	rooms  []Room
	beds   []Bed
	people []Person

	roomsByID     map[string]int
	bedsByID      map[string]int
	peopleByID    map[string]int
	occupantByBed map[string]int      // bed ID -> index into people
	groupRooms    map[string][]string // bathroom group ID -> room IDs, in room order
}

// NewSnapshot builds a validated snapshot from raw slices. It returns an
// error when a bed references an unknown room, a room lists an unknown or
// foreign bed, a resident references an unknown bed, or the bed-status
// invariant (occupied ⇔ exactly one active occupant) is broken.
func NewSnapshot(rooms []Room, beds []Bed, people []Person) (*Snapshot, error) {
	s := &Snapshot{
		rooms:         rooms,
		beds:          beds,
		people:        people,
		roomsByID:     make(map[string]int, len(rooms)),
		bedsByID:      make(map[string]int, len(beds)),
		peopleByID:    make(map[string]int, len(people)),
		occupantByBed: make(map[string]int),
		groupRooms:    make(map[string][]string),
	}

	for i, r := range rooms {
		if r.ID == "" {
			return nil, fmt.Errorf("room at index %d has no ID", i)
		}
		if _, dup := s.roomsByID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate room ID %q", r.ID)
		}
		s.roomsByID[r.ID] = i
		if r.BathroomGroupID != "" {
			s.groupRooms[r.BathroomGroupID] = append(s.groupRooms[r.BathroomGroupID], r.ID)
		}
	}

	for i, b := range beds {
		if b.ID == "" {
			return nil, fmt.Errorf("bed at index %d has no ID", i)
		}
		if _, dup := s.bedsByID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate bed ID %q", b.ID)
		}
		if _, ok := s.roomsByID[b.RoomID]; !ok {
			return nil, fmt.Errorf("bed %q references unknown room %q", b.ID, b.RoomID)
		}
		if !b.Status.IsValid() {
			return nil, fmt.Errorf("bed %q has invalid status %q", b.ID, b.Status)
		}
		s.bedsByID[b.ID] = i
	}

	for _, r := range rooms {
		for _, bedID := range r.BedIDs {
			bi, ok := s.bedsByID[bedID]
			if !ok {
				return nil, fmt.Errorf("room %q lists unknown bed %q", r.ID, bedID)
			}
			if beds[bi].RoomID != r.ID {
				return nil, fmt.Errorf("room %q lists bed %q which belongs to room %q", r.ID, bedID, beds[bi].RoomID)
			}
		}
	}

	for i, p := range people {
		if p.ID == "" {
			return nil, fmt.Errorf("person at index %d has no ID", i)
		}
		if _, dup := s.peopleByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate person ID %q", p.ID)
		}
		if !p.Gender.IsValid() {
			return nil, fmt.Errorf("person %q has invalid gender %q", p.ID, p.Gender)
		}
		s.peopleByID[p.ID] = i
		if p.BedID == "" || !p.Active {
			continue
		}
		bi, ok := s.bedsByID[p.BedID]
		if !ok {
			return nil, fmt.Errorf("person %q references unknown bed %q", p.ID, p.BedID)
		}
		if prev, taken := s.occupantByBed[p.BedID]; taken {
			return nil, fmt.Errorf("bed %q has two active occupants: %q and %q", p.BedID, people[prev].ID, p.ID)
		}
		if beds[bi].Status != BedOccupied {
			return nil, fmt.Errorf("person %q occupies bed %q with status %q", p.ID, p.BedID, beds[bi].Status)
		}
		s.occupantByBed[p.BedID] = i
	}

	for _, b := range beds {
		if b.Status == BedOccupied {
			if _, ok := s.occupantByBed[b.ID]; !ok {
				return nil, fmt.Errorf("bed %q is occupied but has no active occupant", b.ID)
			}
		}
	}

	return s, nil
}

// Rooms returns all rooms in declaration order.
func (s *Snapshot) Rooms() []Room { return s.rooms }

// Beds returns all beds in declaration order.
func (s *Snapshot) Beds() []Bed { return s.beds }

// People returns all residents, active and discharged.
func (s *Snapshot) People() []Person { return s.people }

func (s *Snapshot) Room(id string) (Room, bool) {
	i, ok := s.roomsByID[id]
	if !ok {
		return Room{}, false
	}
	return s.rooms[i], true
}

func (s *Snapshot) Bed(id string) (Bed, bool) {
	i, ok := s.bedsByID[id]
	if !ok {
		return Bed{}, false
	}
	return s.beds[i], true
}

func (s *Snapshot) Person(id string) (Person, bool) {
	i, ok := s.peopleByID[id]
	if !ok {
		return Person{}, false
	}
	return s.people[i], true
}

// Occupant returns the active resident in the given bed, if any.
func (s *Snapshot) Occupant(bedID string) (Person, bool) {
	i, ok := s.occupantByBed[bedID]
	if !ok {
		return Person{}, false
	}
	return s.people[i], true
}

// RoomBeds returns the room's beds in enumeration order.
func (s *Snapshot) RoomBeds(roomID string) []Bed {
	room, ok := s.Room(roomID)
	if !ok {
		return nil
	}
	beds := make([]Bed, 0, len(room.BedIDs))
	for _, bedID := range room.BedIDs {
		if b, ok := s.Bed(bedID); ok {
			beds = append(beds, b)
		}
	}
	return beds
}

// RoomOccupants returns the room's occupants in bed enumeration order, so
// the first entry is the room's primary roommate for scoring.
func (s *Snapshot) RoomOccupants(roomID string) []Person {
	var occupants []Person
	for _, b := range s.RoomBeds(roomID) {
		if p, ok := s.Occupant(b.ID); ok {
			occupants = append(occupants, p)
		}
	}
	return occupants
}

// VacantBedsInRoom returns the room's vacant beds in enumeration order.
// Out-of-service beds are not vacant.
func (s *Snapshot) VacantBedsInRoom(roomID string) []Bed {
	var vacant []Bed
	for _, b := range s.RoomBeds(roomID) {
		if b.Status == BedVacant {
			vacant = append(vacant, b)
		}
	}
	return vacant
}

// VacantBeds returns every vacant bed, ordered by room declaration order and
// bed enumeration order within each room. The ordering makes ranking output
// deterministic for a given snapshot.
func (s *Snapshot) VacantBeds() []Bed {
	var vacant []Bed
	for _, r := range s.rooms {
		vacant = append(vacant, s.VacantBedsInRoom(r.ID)...)
	}
	return vacant
}

// BathroomGroupRooms returns the rooms in a shared-bathroom group, in room
// declaration order. Nil when the group is unknown.
func (s *Snapshot) BathroomGroupRooms(groupID string) []Room {
	ids, ok := s.groupRooms[groupID]
	if !ok {
		return nil
	}
	rooms := make([]Room, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.Room(id); ok {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// Unplaced returns all active residents with no bed assignment, in
// declaration order.
func (s *Snapshot) Unplaced() []Person {
	var unplaced []Person
	for _, p := range s.people {
		if p.Active && p.BedID == "" {
			unplaced = append(unplaced, p)
		}
	}
	return unplaced
}
