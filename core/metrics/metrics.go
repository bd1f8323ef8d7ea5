// Package metrics defines the sink interface used to persist assignment
// outcomes to external time-series backends.
package metrics

import "time"

// AssignmentRecord is one committed (or attempted) assignment decision.
type AssignmentRecord struct {
	TripID      int64
	DriverID    string
	Zone        string
	DistanceKm  int
	HasDistance bool
	Source      string // position source used for the ranking distance
	Chained     bool
	Reassigned  bool
	Committed   bool
	Time        time.Time
}

// Sink persists assignment records.
type Sink interface {
	RecordAssignment([]AssignmentRecord) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordAssignment([]AssignmentRecord) error { return nil }
