package store

import (
	"context"
	"sort"
	"sync"

	"github.com/friomar/dispatch/core/model"
)

// MemoryStore is an in-memory TripStore/DriverStore used by tests and the
// fleet simulator.
type MemoryStore struct {
	mu      sync.RWMutex
	trips   map[int64]model.Trip
	drivers map[string]model.Driver
	audit   []AuditRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trips:   map[int64]model.Trip{},
		drivers: map[string]model.Driver{},
	}
}

// PutTrip inserts or replaces a trip record.
func (s *MemoryStore) PutTrip(t model.Trip) {
	s.mu.Lock()
	s.trips[t.ID] = t
	s.mu.Unlock()
}

// PutDriver inserts or replaces a driver record.
func (s *MemoryStore) PutDriver(d model.Driver) {
	s.mu.Lock()
	s.drivers[d.ID] = d
	s.mu.Unlock()
}

func (s *MemoryStore) Trip(_ context.Context, id int64) (model.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trips[id]
	if !ok {
		return model.Trip{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) UnassignedTrips(context.Context) ([]model.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Trip
	for _, t := range s.trips {
		if t.State == model.TripUnassigned && t.AssignedDriver == "" {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *MemoryStore) ActiveTrips(_ context.Context, driverID string) ([]model.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Trip
	for _, t := range s.trips {
		if t.AssignedDriver == driverID && t.State != model.TripCompleted {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

func (s *MemoryStore) Assign(_ context.Context, tripID int64, driverID, plate string, allowReassign bool) (Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[tripID]
	if !ok {
		return Assignment{}, ErrNotFound
	}
	if t.State == model.TripCompleted {
		return Assignment{}, ErrTripCompleted
	}
	asn := Assignment{TripID: tripID, DriverID: driverID, Plate: plate}
	if t.AssignedDriver == driverID {
		asn.Repeat = true
		return asn, nil
	}
	if t.AssignedDriver != "" {
		if !allowReassign {
			return Assignment{}, ErrAlreadyAssigned
		}
		asn.Previous = t.AssignedDriver
		s.audit = append(s.audit, AuditRecord{TripID: tripID, FromDriver: t.AssignedDriver, ToDriver: driverID})
	}
	t.AssignedDriver = driverID
	t.AssignedUnit = plate
	t.State = model.TripAssigned
	s.trips[tripID] = t
	return asn, nil
}

func (s *MemoryStore) Driver(_ context.Context, id string) (model.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return model.Driver{}, ErrNotFound
	}
	return d, nil
}

func (s *MemoryStore) DriversInZone(_ context.Context, zone string) ([]model.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Driver
	for _, d := range s.drivers {
		if d.Zone == zone {
			res = append(res, d)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (s *MemoryStore) AuditTrail(_ context.Context, tripID int64) ([]AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []AuditRecord
	for _, r := range s.audit {
		if r.TripID == tripID {
			res = append(res, r)
		}
	}
	return res, nil
}
