package dispatch

import (
	"errors"

	"github.com/friomar/dispatch/core/store"
)

// Error taxonomy surfaced by the engine. Store sentinels are re-exported so
// callers only depend on this package.
var (
	// ErrNotFound covers missing trips and drivers.
	ErrNotFound = store.ErrNotFound

	// ErrTripCompleted rejects operations on trips that already ran. It is
	// NotFound-class: completed trips no longer exist for dispatch purposes.
	ErrTripCompleted = store.ErrTripCompleted

	// ErrAlreadyAssigned rejects a second commit under the reject policy.
	ErrAlreadyAssigned = store.ErrAlreadyAssigned

	// ErrStaleSession is returned when a cached candidate index no longer
	// matches the live state of a trip; the caller must re-rank.
	ErrStaleSession = errors.New("dispatch: stale session, re-rank required")
)

// IsNotFound reports whether err is NotFound-class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrTripCompleted)
}
