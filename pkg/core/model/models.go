package model

import (
	"fmt"
	"time"
)

// Gender of a resident. Room gender constraints compare these values directly.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Opposite returns the gender whose admissions benefit from freeing a room
// currently locked to g. Only defined for male and female.
func (g Gender) Opposite() (Gender, bool) {
	switch g {
	case GenderMale:
		return GenderFemale, true
	case GenderFemale:
		return GenderMale, true
	default:
		return "", false
	}
}

// BedStatus is the lifecycle state of a bed.
type BedStatus string

const (
	BedVacant       BedStatus = "vacant"
	BedOccupied     BedStatus = "occupied"
	BedOutOfService BedStatus = "out_of_service"
)

func (s BedStatus) IsValid() bool {
	return s == BedVacant || s == BedOccupied || s == BedOutOfService
}

// Person represents a resident of the facility.
type Person struct {
	ID                string
	FirstName         string
	LastName          string
	Gender            Gender
	DateOfBirth       *time.Time // nil when unknown
	Diagnosis         string     // free text, empty when unknown
	Isolation         bool
	IsolationCategory string // e.g. "contact", "droplet"; empty when not applicable
	Active            bool   // false once discharged
	BedID             string // empty when the resident is unplaced
}

func (p Person) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// AgeAt returns the resident's age in whole years at the given time,
// or nil when the date of birth is unknown.
func (p Person) AgeAt(t time.Time) *int {
	if p.DateOfBirth == nil {
		return nil
	}
	dob := *p.DateOfBirth
	years := t.Year() - dob.Year()
	// Not yet had this year's birthday
	if t.Month() < dob.Month() || (t.Month() == dob.Month() && t.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return &years
}

// Bed belongs to exactly one room. OccupantID is derived from the resident
// currently assigned to the bed, empty when the bed is not occupied.
type Bed struct {
	ID         string
	RoomID     string
	Status     BedStatus
	OccupantID string
}

// Room holds an ordered set of beds. The order of BedIDs is the room's bed
// enumeration order, which determines the primary roommate for scoring.
type Room struct {
	ID                string
	Number            string // display number, e.g. "101"
	BedIDs            []string
	HasSharedBathroom bool
	BathroomGroupID   string // empty when the room's bathroom is not shared
	WingID            string
}

func (r Room) IsMultiBed() bool {
	return len(r.BedIDs) > 1
}
