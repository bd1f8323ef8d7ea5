// Package store defines the system-of-record interfaces for trips and
// drivers. The engine owns the only mutating operation (Assign); everything
// else is created and updated by external sync layers.
package store

import (
	"context"
	"errors"

	"github.com/friomar/dispatch/core/model"
)

var (
	// ErrNotFound is returned when a referenced trip or driver does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrTripCompleted is returned when assigning a trip that already ran.
	ErrTripCompleted = errors.New("store: trip completed")
	// ErrAlreadyAssigned is returned under the reject policy when the trip
	// has a different driver committed.
	ErrAlreadyAssigned = errors.New("store: trip already assigned")
)

// Assignment is the committed trip-to-driver relationship.
type Assignment struct {
	TripID   int64
	DriverID string
	Plate    string
	// Previous holds the superseded driver ID on reassignment, empty on a
	// first assignment.
	Previous string
	// Repeat is true when the trip was already committed to this driver and
	// the call changed nothing.
	Repeat bool
}

// TripStore reads and mutates trip records.
type TripStore interface {
	Trip(ctx context.Context, id int64) (model.Trip, error)

	// UnassignedTrips returns trips with no driver, excluding completed
	// ones, in no particular order.
	UnassignedTrips(ctx context.Context) ([]model.Trip, error)

	// ActiveTrips returns the driver's non-completed trips, newest first.
	ActiveTrips(ctx context.Context, driverID string) ([]model.Trip, error)

	// Assign atomically commits the trip to the driver. When allowReassign
	// is false a trip already assigned to another driver fails with
	// ErrAlreadyAssigned; when true the prior driver is superseded and
	// recorded in the returned assignment and the audit trail. Assigning
	// the committed driver again is a no-op in both modes. Completed trips
	// fail with ErrTripCompleted.
	Assign(ctx context.Context, tripID int64, driverID, plate string, allowReassign bool) (Assignment, error)
}

// DriverStore reads driver records.
type DriverStore interface {
	Driver(ctx context.Context, id string) (model.Driver, error)
	DriversInZone(ctx context.Context, zone string) ([]model.Driver, error)
}

// AuditRecord captures a superseding reassignment for later review.
type AuditRecord struct {
	TripID     int64
	FromDriver string
	ToDriver   string
}

// Auditor is implemented by stores that persist reassignment audit records.
type Auditor interface {
	AuditTrail(ctx context.Context, tripID int64) ([]AuditRecord, error)
}
