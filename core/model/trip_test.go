package model

import (
	"testing"
	"time"
)

func TestTripUrgent(t *testing.T) {
	cases := []struct {
		name   string
		trip   Trip
		urgent bool
	}{
		{"plain", Trip{Notes: "entrega normal"}, false},
		{"urgente in notes", Trip{Notes: "URGENTE salida hoy mismo"}, true},
		{"lowercase marker", Trip{Notes: "urgente"}, true},
		{"marker in client", Trip{Client: "Logistica Express SL"}, true},
		{"hoy", Trip{Notes: "cargar HOY"}, true},
		{"empty", Trip{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.trip.Urgent(); got != c.urgent {
				t.Fatalf("Urgent() = %v, want %v", got, c.urgent)
			}
		})
	}
}

func TestTripEstimatedHours(t *testing.T) {
	trip := Trip{Km: 350}
	if h := trip.EstimatedHours(); h != 6.0 {
		t.Fatalf("350 km should estimate 6h, got %v", h)
	}
	short := Trip{Km: 0}
	if h := short.EstimatedHours(); h != 2.0 {
		t.Fatalf("unknown distance should default to 2h, got %v", h)
	}
}

func TestTripDaysUntilDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	trip := Trip{Deadline: time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)}
	days, ok := trip.DaysUntilDeadline(now)
	if !ok || days != 2 {
		t.Fatalf("expected 2 days, got %d ok=%v", days, ok)
	}

	past := Trip{Deadline: time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)}
	days, ok = past.DaysUntilDeadline(now)
	if !ok || days != -1 {
		t.Fatalf("expected -1 day, got %d ok=%v", days, ok)
	}

	none := Trip{}
	if _, ok := none.DaysUntilDeadline(now); ok {
		t.Fatalf("trip without deadline should report ok=false")
	}
}

func TestTripStateRoundTrip(t *testing.T) {
	for _, s := range []TripState{TripUnassigned, TripAssigned, TripCompleted} {
		if got := ParseTripState(s.String()); got != s {
			t.Fatalf("ParseTripState(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if got := ParseTripState("garbage"); got != TripUnassigned {
		t.Fatalf("unknown state should parse as unassigned, got %v", got)
	}
}
