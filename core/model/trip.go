package model

import (
	"strings"
	"time"
)

// TripState tracks the lifecycle of a trip.
type TripState int

const (
	TripUnassigned TripState = iota
	TripAssigned
	TripCompleted
)

// String returns a human-readable representation of the trip state.
func (s TripState) String() string {
	switch s {
	case TripUnassigned:
		return "unassigned"
	case TripAssigned:
		return "assigned"
	case TripCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseTripState maps a stored state string back to its TripState. Unknown
// values resolve to TripUnassigned.
func ParseTripState(s string) TripState {
	switch s {
	case "assigned":
		return TripAssigned
	case "completed":
		return TripCompleted
	default:
		return TripUnassigned
	}
}

// Trip represents a single pickup-to-dropoff transport job.
type Trip struct {
	ID       int64
	Client   string
	Pickup   string // pickup place name
	Dropoff  string // drop-off place name
	Cargo    string // free-text cargo description
	Km       int    // declared route distance
	Price    float64
	Deadline time.Time // required pickup deadline, zero when unknown
	Notes    string
	Zone     string

	AssignedDriver string // driver ID, empty while unassigned
	AssignedUnit   string // tractor plate in effect at commit time
	State          TripState

	// MirrorRow points at the trip's row in the external mirror record.
	// Negative when the trip has no mirror row.
	MirrorRow int
}

// Markers scanned in the trip free text to detect urgency.
var urgentMarkers = []string{"URGENTE", "URGENT", "HOY", "INMEDIATO", "PRIORIDAD", "ASAP", "EXPRESS"}

// Urgent reports whether the trip notes or client name carry an urgency marker.
func (t Trip) Urgent() bool {
	text := strings.ToUpper(t.Notes + " " + t.Client)
	for _, m := range urgentMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// CargoClass classifies the trip cargo from its free-text description.
func (t Trip) CargoClass() CargoClass {
	return ClassifyCargo(t.Cargo)
}

// NeedsRefrigeration reports whether the cargo requires a reefer trailer.
func (t Trip) NeedsRefrigeration() bool {
	return t.CargoClass().NeedsRefrigeration()
}

// averageSpeedKmh is the fleet-wide planning speed used to estimate trip
// duration from the declared distance.
const averageSpeedKmh = 70

// EstimatedHours returns the planned driving time for the trip including a
// fixed hour for loading. Trips without a declared distance default to two
// hours.
func (t Trip) EstimatedHours() float64 {
	if t.Km <= 0 {
		return 2.0
	}
	return float64(t.Km)/averageSpeedKmh + 1.0
}

// DaysUntilDeadline returns the whole days between now and the pickup
// deadline. The second return is false when no deadline is set.
func (t Trip) DaysUntilDeadline(now time.Time) (int, bool) {
	if t.Deadline.IsZero() {
		return 0, false
	}
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Deadline.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24), true
}
