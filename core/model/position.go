package model

// PositionSource identifies where a resolved driver position came from, in
// decreasing order of freshness.
type PositionSource int

const (
	SourceUnknown PositionSource = iota
	SourceTelemetry
	SourceLastDropoff
	SourceHomeBase
)

// String returns a human-readable representation of the position source.
func (s PositionSource) String() string {
	switch s {
	case SourceTelemetry:
		return "telemetry"
	case SourceLastDropoff:
		return "last_dropoff"
	case SourceHomeBase:
		return "home_base"
	default:
		return "unknown"
	}
}

// Position is a driver's best-known location at decision time. It is
// recomputed per ranking call and never persisted.
type Position struct {
	Lat    float64
	Lon    float64
	Source PositionSource
}

// Known reports whether the position carries usable coordinates.
func (p Position) Known() bool {
	return p.Source != SourceUnknown
}
