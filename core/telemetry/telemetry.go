// Package telemetry defines the interface to the external vehicle tracking
// provider. Implementations live under infra.
package telemetry

import (
	"context"
	"errors"
	"time"
)

// ErrNoFix is returned when the provider has no position for a plate.
var ErrNoFix = errors.New("telemetry: no fix")

// Fix is the last known GPS reading for a vehicle.
type Fix struct {
	Lat       float64
	Lon       float64
	Timestamp time.Time
}

// Valid reports whether the fix carries a usable position. Providers report
// (0,0) as a sentinel when the unit has no satellite lock.
func (f Fix) Valid() bool {
	return !(f.Lat == 0 && f.Lon == 0)
}

// Availability summarises a driver's tachograph state.
type Availability struct {
	RemainingDutyHours        float64
	MinutesUntilMandatoryRest int
}

// Resting reports whether the driver is currently in a mandatory rest window.
func (a Availability) Resting() bool {
	return a.MinutesUntilMandatoryRest <= 0
}

// Provider exposes the vehicle tracking API. Calls may block on network I/O;
// callers are expected to bound them with a context timeout.
type Provider interface {
	// LastKnownPosition returns the most recent fix for the tractor plate.
	// ErrNoFix is returned when the provider knows nothing about the plate.
	LastKnownPosition(ctx context.Context, plate string) (Fix, error)

	// Availability returns the remaining duty hours for the driver of the
	// given tractor plate.
	Availability(ctx context.Context, plate string) (Availability, error)
}
