package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/friomar/dispatch/core/geo"
	"github.com/friomar/dispatch/core/logger"
	"github.com/friomar/dispatch/core/model"
	"github.com/friomar/dispatch/core/store"
	"github.com/friomar/dispatch/core/telemetry"
)

// DefaultTelemetryTimeout bounds a single telemetry lookup so one hanging
// vehicle cannot stall a whole ranking pass.
const DefaultTelemetryTimeout = 2 * time.Second

// PositionResolver determines a driver's best-known location through a
// fallback chain of decreasing freshness: live telemetry, then the drop-off
// of the newest active trip, then the registered home base. The order is
// load-bearing; reordering silently changes ranking results.
type PositionResolver struct {
	telemetry telemetry.Provider
	trips     store.TripStore
	timeout   time.Duration
	log       logger.Logger
}

// NewPositionResolver creates a resolver. A zero timeout falls back to
// DefaultTelemetryTimeout.
func NewPositionResolver(p telemetry.Provider, trips store.TripStore, timeout time.Duration, log logger.Logger) *PositionResolver {
	if timeout <= 0 {
		timeout = DefaultTelemetryTimeout
	}
	if log == nil {
		log = nopLogger{}
	}
	return &PositionResolver{telemetry: p, trips: trips, timeout: timeout, log: log}
}

// Resolve walks the fallback chain and returns the first stage that yields a
// position. Stage failures are logged at debug level and swallowed; the chain
// always terminates, in the worst case with SourceUnknown.
func (r *PositionResolver) Resolve(ctx context.Context, d model.Driver) model.Position {
	stages := []struct {
		name string
		fn   func(context.Context, model.Driver) (model.Position, error)
	}{
		{"telemetry", r.fromTelemetry},
		{"last_dropoff", r.fromLastDropoff},
		{"home_base", r.fromHomeBase},
	}
	for _, st := range stages {
		pos, err := st.fn(ctx, d)
		if err != nil {
			r.log.Debugw("position stage failed", map[string]any{
				"driver": d.ID,
				"stage":  st.name,
				"err":    err.Error(),
			})
			continue
		}
		positionResolved.WithLabelValues(pos.Source.String()).Inc()
		return pos
	}
	positionResolved.WithLabelValues(model.SourceUnknown.String()).Inc()
	return model.Position{Source: model.SourceUnknown}
}

func (r *PositionResolver) fromTelemetry(ctx context.Context, d model.Driver) (model.Position, error) {
	if r.telemetry == nil {
		return model.Position{}, fmt.Errorf("no telemetry provider")
	}
	if d.TractorPlate == "" {
		return model.Position{}, fmt.Errorf("driver %s has no tractor plate", d.ID)
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	fix, err := r.telemetry.LastKnownPosition(ctx, d.TractorPlate)
	if err != nil {
		telemetryFailures.Inc()
		return model.Position{}, fmt.Errorf("telemetry %s: %w", d.TractorPlate, err)
	}
	if !fix.Valid() {
		return model.Position{}, fmt.Errorf("telemetry %s: no satellite fix", d.TractorPlate)
	}
	return model.Position{Lat: fix.Lat, Lon: fix.Lon, Source: model.SourceTelemetry}, nil
}

func (r *PositionResolver) fromLastDropoff(ctx context.Context, d model.Driver) (model.Position, error) {
	if r.trips == nil {
		return model.Position{}, fmt.Errorf("no trip store")
	}
	active, err := r.trips.ActiveTrips(ctx, d.ID)
	if err != nil {
		return model.Position{}, fmt.Errorf("active trips for %s: %w", d.ID, err)
	}
	if len(active) == 0 {
		return model.Position{}, fmt.Errorf("driver %s has no active trip", d.ID)
	}
	c, ok := geo.Resolve(active[0].Dropoff)
	if !ok {
		return model.Position{}, fmt.Errorf("drop-off %q not in place index", active[0].Dropoff)
	}
	return model.Position{Lat: c.Lat, Lon: c.Lon, Source: model.SourceLastDropoff}, nil
}

func (r *PositionResolver) fromHomeBase(_ context.Context, d model.Driver) (model.Position, error) {
	c, ok := geo.Resolve(d.HomeBase)
	if !ok {
		return model.Position{}, fmt.Errorf("home base %q not in place index", d.HomeBase)
	}
	return model.Position{Lat: c.Lat, Lon: c.Lon, Source: model.SourceHomeBase}, nil
}

// nopLogger keeps the resolver and engine usable without a configured logger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
