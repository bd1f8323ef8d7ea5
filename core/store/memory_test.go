package store

import (
	"context"
	"errors"
	"testing"

	"github.com/friomar/dispatch/core/model"
)

func TestMemoryStoreAssign(t *testing.T) {
	s := NewMemoryStore()
	s.PutTrip(model.Trip{ID: 1, Client: "ACME"})

	asn, err := s.Assign(context.Background(), 1, "d1", "1234-ABC", false)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if asn.Repeat || asn.Previous != "" {
		t.Fatalf("unexpected assignment flags: %+v", asn)
	}
	trip, _ := s.Trip(context.Background(), 1)
	if trip.AssignedDriver != "d1" || trip.State != model.TripAssigned {
		t.Fatalf("trip not committed: %+v", trip)
	}
}

func TestMemoryStoreAssignRepeat(t *testing.T) {
	s := NewMemoryStore()
	s.PutTrip(model.Trip{ID: 1})
	if _, err := s.Assign(context.Background(), 1, "d1", "p", false); err != nil {
		t.Fatalf("assign: %v", err)
	}
	asn, err := s.Assign(context.Background(), 1, "d1", "p", false)
	if err != nil {
		t.Fatalf("repeat assign: %v", err)
	}
	if !asn.Repeat {
		t.Fatalf("expected repeat flag")
	}
}

func TestMemoryStoreAssignConflict(t *testing.T) {
	s := NewMemoryStore()
	s.PutTrip(model.Trip{ID: 1})
	if _, err := s.Assign(context.Background(), 1, "d1", "p1", false); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if _, err := s.Assign(context.Background(), 1, "d2", "p2", false); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}

	asn, err := s.Assign(context.Background(), 1, "d2", "p2", true)
	if err != nil {
		t.Fatalf("supersede: %v", err)
	}
	if asn.Previous != "d1" {
		t.Fatalf("expected previous d1, got %q", asn.Previous)
	}
	audit, err := s.AuditTrail(context.Background(), 1)
	if err != nil || len(audit) != 1 {
		t.Fatalf("expected one audit record, got %v err=%v", audit, err)
	}
	if audit[0].FromDriver != "d1" || audit[0].ToDriver != "d2" {
		t.Fatalf("bad audit record: %+v", audit[0])
	}
}

func TestMemoryStoreAssignErrors(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Assign(context.Background(), 99, "d1", "p", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	s.PutTrip(model.Trip{ID: 2, State: model.TripCompleted})
	if _, err := s.Assign(context.Background(), 2, "d1", "p", false); !errors.Is(err, ErrTripCompleted) {
		t.Fatalf("expected ErrTripCompleted, got %v", err)
	}
}

func TestMemoryStoreListings(t *testing.T) {
	s := NewMemoryStore()
	s.PutTrip(model.Trip{ID: 3})
	s.PutTrip(model.Trip{ID: 1})
	s.PutTrip(model.Trip{ID: 2, AssignedDriver: "d1", State: model.TripAssigned})
	s.PutTrip(model.Trip{ID: 4, AssignedDriver: "d1", State: model.TripAssigned})
	s.PutTrip(model.Trip{ID: 5, AssignedDriver: "d1", State: model.TripCompleted})

	unassigned, err := s.UnassignedTrips(context.Background())
	if err != nil {
		t.Fatalf("unassigned: %v", err)
	}
	if len(unassigned) != 2 || unassigned[0].ID != 1 || unassigned[1].ID != 3 {
		t.Fatalf("unexpected unassigned listing: %+v", unassigned)
	}

	active, err := s.ActiveTrips(context.Background(), "d1")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 2 || active[0].ID != 4 {
		t.Fatalf("active trips should be newest first: %+v", active)
	}
}

func TestMemoryStoreDrivers(t *testing.T) {
	s := NewMemoryStore()
	s.PutDriver(model.Driver{ID: "d2", Name: "B", Zone: "NORTE"})
	s.PutDriver(model.Driver{ID: "d1", Name: "A", Zone: "NORTE"})
	s.PutDriver(model.Driver{ID: "d3", Name: "C", Zone: "SUR"})

	if _, err := s.Driver(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	ds, err := s.DriversInZone(context.Background(), "NORTE")
	if err != nil {
		t.Fatalf("zone: %v", err)
	}
	if len(ds) != 2 || ds[0].Name != "A" {
		t.Fatalf("unexpected zone listing: %+v", ds)
	}
}
