package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/friomar/dispatch/core/model"
	"github.com/friomar/dispatch/core/store"
)

func newTestEngine(t *testing.T, ms *store.MemoryStore, cfg Config) *Engine {
	t.Helper()
	resolver := NewPositionResolver(nil, ms, 0, nil)
	e, err := NewEngine(ms, ms, resolver, nil, nil, nil, nil, nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestRankDriversByDistance(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.PutTrip(model.Trip{ID: 1, Pickup: "CALAHORRA", Dropoff: "MADRID", Zone: "NORTE"})
	// Home bases resolve through the place index; AZAGRA is ~7 km from
	// the pickup, BARCELONA several hundred.
	ms.PutDriver(model.Driver{ID: "near", Name: "Near", Zone: "NORTE", HomeBase: "AZAGRA"})
	ms.PutDriver(model.Driver{ID: "far", Name: "Far", Zone: "NORTE", HomeBase: "BARCELONA"})
	e := newTestEngine(t, ms, Config{})

	cands, err := e.RankDriversForTrip(context.Background(), 1)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Driver.ID != "near" {
		t.Fatalf("expected nearest driver first, got %s", cands[0].Driver.ID)
	}
	if !cands[0].HasDistance || cands[0].DistanceKm > 20 {
		t.Fatalf("unexpected distance for nearest: %+v", cands[0])
	}
}

func TestRankAbsenceDominatesDistance(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.PutTrip(model.Trip{ID: 1, Pickup: "MADRID", Zone: "CENTRO"})
	// The absent driver is at the pickup itself; the present one has no
	// resolvable position at all. The present driver must still rank first.
	ms.PutDriver(model.Driver{ID: "absent", Name: "Absent", Zone: "CENTRO", HomeBase: "MADRID", AbsenceReason: "vacaciones"})
	ms.PutDriver(model.Driver{ID: "present", Name: "Present", Zone: "CENTRO", HomeBase: "ATLANTIS"})
	e := newTestEngine(t, ms, Config{})

	cands, err := e.RankDriversForTrip(context.Background(), 1)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if cands[0].Driver.ID != "present" {
		t.Fatalf("absent driver ranked ahead of present one: %+v", cands)
	}
	if !cands[1].Absent {
		t.Fatalf("expected absent flag on %s", cands[1].Driver.ID)
	}
	if cands[0].HasDistance {
		t.Fatalf("present driver should have no computable distance")
	}
}

func TestRankCompletedTripRejected(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.PutTrip(model.Trip{ID: 1, State: model.TripCompleted, Zone: "NORTE"})
	e := newTestEngine(t, ms, Config{})

	_, err := e.RankDriversForTrip(context.Background(), 1)
	if !errors.Is(err, ErrTripCompleted) {
		t.Fatalf("expected ErrTripCompleted, got %v", err)
	}
	if !IsNotFound(err) {
		t.Fatalf("completed trip should be NotFound-class")
	}

	_, err = e.RankDriversForTrip(context.Background(), 42)
	if !IsNotFound(err) {
		t.Fatalf("expected NotFound-class error for missing trip, got %v", err)
	}
}

func TestSortCandidatesUnknownDistanceLast(t *testing.T) {
	cands := []Candidate{
		{Driver: model.Driver{ID: "a"}},
		{Driver: model.Driver{ID: "b"}, DistanceKm: 500, HasDistance: true},
		{Driver: model.Driver{ID: "c"}, DistanceKm: 12, HasDistance: true},
	}
	sortCandidates(cands)
	if cands[0].Driver.ID != "c" || cands[1].Driver.ID != "b" || cands[2].Driver.ID != "a" {
		t.Fatalf("unexpected order: %s %s %s", cands[0].Driver.ID, cands[1].Driver.ID, cands[2].Driver.ID)
	}
}
