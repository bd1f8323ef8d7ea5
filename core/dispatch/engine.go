package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/friomar/dispatch/core/logger"
	"github.com/friomar/dispatch/core/metrics"
	"github.com/friomar/dispatch/core/model"
	"github.com/friomar/dispatch/core/store"
	"github.com/friomar/dispatch/internal/eventbus"
)

// ReassignPolicy decides what happens when a trip that already has a driver
// is assigned again.
type ReassignPolicy string

const (
	// PolicyReject refuses the second assignment with ErrAlreadyAssigned.
	PolicyReject ReassignPolicy = "reject"
	// PolicySupersede atomically replaces the prior driver and records an
	// audit entry.
	PolicySupersede ReassignPolicy = "supersede"
)

// Config defines engine tunables.
type Config struct {
	// ChainRadiusKm is the maximum drop-off to next-pickup distance for two
	// trips to chain.
	ChainRadiusKm int `json:"chain_radius_km"`
	// ReassignPolicy is PolicyReject or PolicySupersede.
	ReassignPolicy ReassignPolicy `json:"reassign_policy"`
	// PageSize bounds ListUnassignedTrips pages.
	PageSize int `json:"page_size"`
	// DutyMarginHours is added to the estimated trip hours when checking a
	// driver's remaining duty time.
	DutyMarginHours float64 `json:"duty_margin_hours"`
	// TelemetryTimeoutSeconds bounds availability lookups during auto
	// assignment.
	TelemetryTimeoutSeconds int `json:"telemetry_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ChainRadiusKm <= 0 {
		c.ChainRadiusKm = 150
	}
	if c.ReassignPolicy == "" {
		c.ReassignPolicy = PolicyReject
	}
	if c.PageSize <= 0 {
		c.PageSize = 8
	}
	if c.DutyMarginHours <= 0 {
		c.DutyMarginHours = 1.0
	}
	if c.TelemetryTimeoutSeconds <= 0 {
		c.TelemetryTimeoutSeconds = 2
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.ReassignPolicy != PolicyReject && c.ReassignPolicy != PolicySupersede {
		return fmt.Errorf("unknown reassign policy %q", c.ReassignPolicy)
	}
	return nil
}

// Mirror is the external spreadsheet-style record kept in sync for human
// consumption. Row references come from the trip record.
type Mirror interface {
	// SetDriver writes the driver name into the trip's mirror row.
	SetDriver(ctx context.Context, row int, name string) error
	// Upload pushes the whole mirror artifact to its backing store.
	Upload(ctx context.Context) error
}

// Notifier sends trip details to a driver's linked contact channel.
type Notifier interface {
	Notify(ctx context.Context, contactRef string, trip model.Trip) error
}

// Result reports the outcome of one assignment. Committed reflects the
// system-of-record only; mirror and notification failures leave the
// assignment logically committed and are carried in Errors.
type Result struct {
	Committed    bool
	MirrorSynced bool
	Notified     bool
	Reassigned   bool
	// PreviousDriver is the superseded driver ID, empty unless Reassigned.
	PreviousDriver string
	Errors         []error
}

// Engine is the trip dispatch and assignment executor. All commits go through
// it; a mutex serializes them so two concurrent assignments of the same trip
// cannot silently overwrite each other.
type Engine struct {
	trips    store.TripStore
	drivers  store.DriverStore
	resolver *PositionResolver
	mirror   Mirror
	notifier Notifier
	sink     metrics.Sink
	bus      eventbus.EventBus
	log      logger.Logger
	cfg      Config

	mu sync.Mutex
}

// NewEngine creates an engine. Mirror, notifier, sink and bus may be nil;
// stores and resolver are mandatory.
func NewEngine(trips store.TripStore, drivers store.DriverStore, resolver *PositionResolver,
	mirror Mirror, notifier Notifier, sink metrics.Sink, bus eventbus.EventBus,
	log logger.Logger, cfg Config) (*Engine, error) {
	if trips == nil || drivers == nil || resolver == nil {
		return nil, fmt.Errorf("dispatch: nil store or resolver provided to NewEngine")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{
		trips:    trips,
		drivers:  drivers,
		resolver: resolver,
		mirror:   mirror,
		notifier: notifier,
		sink:     sink,
		bus:      bus,
		log:      log,
		cfg:      cfg,
	}, nil
}

// Close releases resources held by the engine.
func (e *Engine) Close() error {
	if e.bus != nil {
		e.bus.Close()
	}
	return nil
}

// ListUnassignedTrips returns one page of unassigned trips in handling order.
// Pages are zero-based; a page past the end is empty.
func (e *Engine) ListUnassignedTrips(ctx context.Context, page int) ([]model.Trip, error) {
	trips, err := e.trips.UnassignedTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("unassigned trips: %w", err)
	}
	ordered := Prioritize(trips, time.Now())
	if page < 0 {
		page = 0
	}
	start := page * e.cfg.PageSize
	if start >= len(ordered) {
		return nil, nil
	}
	end := start + e.cfg.PageSize
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[start:end], nil
}

// rankingMeta carries the chosen candidate's ranking context into the
// emitted metrics record. The zero value marks a direct assignment with no
// ranking behind it.
type rankingMeta struct {
	DistanceKm  int
	HasDistance bool
	Source      string
	Chained     bool
}

// candidateMeta extracts the metrics context from a ranked candidate. A
// chained candidate's distance was measured from the last drop-off, not from
// the resolved position.
func candidateMeta(c Candidate) rankingMeta {
	m := rankingMeta{DistanceKm: c.DistanceKm, HasDistance: c.HasDistance, Chained: c.Chained}
	if c.Chained {
		m.Source = model.SourceLastDropoff.String()
	} else {
		m.Source = c.Position.Source.String()
	}
	return m
}

// Assign commits the trip to the driver. The system-of-record update is the
// only must-succeed step: its failure aborts with an error and nothing is
// considered assigned. Mirror and notification failures are reported in the
// result but do not undo the commit. Assigning the committed driver again is
// a no-op success with no repeated side effects.
func (e *Engine) Assign(ctx context.Context, tripID int64, driverID string) (Result, error) {
	return e.assign(ctx, tripID, driverID, rankingMeta{Source: model.SourceUnknown.String()})
}

func (e *Engine) assign(ctx context.Context, tripID int64, driverID string, meta rankingMeta) (Result, error) {
	trip, err := e.trips.Trip(ctx, tripID)
	if err != nil {
		return Result{}, fmt.Errorf("assign trip %d: %w", tripID, err)
	}
	driver, err := e.drivers.Driver(ctx, driverID)
	if err != nil {
		return Result{}, fmt.Errorf("assign trip %d: driver %s: %w", tripID, driverID, err)
	}

	e.mu.Lock()
	asn, err := e.trips.Assign(ctx, tripID, driver.ID, driver.TractorPlate, e.cfg.ReassignPolicy == PolicySupersede)
	e.mu.Unlock()
	if err != nil {
		return Result{}, fmt.Errorf("assign trip %d: %w", tripID, err)
	}
	if asn.Repeat {
		e.log.Infof("trip %d already assigned to %s, nothing to do", tripID, driver.ID)
		return Result{Committed: true}, nil
	}

	res := Result{Committed: true, Reassigned: asn.Previous != "", PreviousDriver: asn.Previous}
	assignmentsTotal.WithLabelValues(trip.Zone).Inc()
	if res.Reassigned {
		e.log.Warnf("trip %d reassigned %s -> %s", tripID, asn.Previous, driver.ID)
	} else {
		e.log.Infof("trip %d (%s -> %s) assigned to %s", tripID, trip.Pickup, trip.Dropoff, driver.ID)
	}
	if e.bus != nil {
		e.bus.Publish(AssignmentEvent{
			TripID:     tripID,
			DriverID:   driver.ID,
			Previous:   asn.Previous,
			Reassigned: res.Reassigned,
			Committed:  true,
		})
	}

	e.syncMirror(ctx, trip, driver, &res)
	e.notify(ctx, trip, driver, &res)
	if len(res.Errors) > 0 {
		partialCommits.Inc()
	}

	if err := e.sink.RecordAssignment([]metrics.AssignmentRecord{{
		TripID:      tripID,
		DriverID:    driver.ID,
		Zone:        trip.Zone,
		DistanceKm:  meta.DistanceKm,
		HasDistance: meta.HasDistance,
		Source:      meta.Source,
		Chained:     meta.Chained,
		Reassigned:  res.Reassigned,
		Committed:   true,
		Time:        time.Now(),
	}}); err != nil {
		e.log.Errorf("metrics sink: %v", err)
	}
	return res, nil
}

// AssignIndexed commits the idx-th candidate of a previously cached ranking.
// The cached entry and the live trip state are both checked so a stale
// session cannot assign through an outdated list.
func (e *Engine) AssignIndexed(ctx context.Context, cache *SessionCache, sessionID string, tripID int64, idx int) (Result, error) {
	cand, err := cache.Candidate(sessionID, tripID, idx)
	if err != nil {
		return Result{}, err
	}
	trip, err := e.trips.Trip(ctx, tripID)
	if err != nil {
		return Result{}, fmt.Errorf("assign trip %d: %w", tripID, err)
	}
	if trip.State != model.TripUnassigned {
		return Result{}, ErrStaleSession
	}
	res, err := e.assign(ctx, tripID, cand.Driver.ID, candidateMeta(cand))
	if err == nil {
		cache.InvalidateTrip(tripID)
	}
	return res, err
}

// syncMirror updates and uploads the external mirror record.
func (e *Engine) syncMirror(ctx context.Context, trip model.Trip, driver model.Driver, res *Result) {
	if e.mirror == nil || trip.MirrorRow < 0 {
		return
	}
	if err := e.mirror.SetDriver(ctx, trip.MirrorRow, driver.Name); err != nil {
		e.log.Warnf("mirror update for trip %d: %v", trip.ID, err)
		res.Errors = append(res.Errors, fmt.Errorf("mirror update: %w", err))
		return
	}
	if err := e.mirror.Upload(ctx); err != nil {
		e.log.Warnf("mirror upload for trip %d: %v", trip.ID, err)
		res.Errors = append(res.Errors, fmt.Errorf("mirror upload: %w", err))
		return
	}
	res.MirrorSynced = true
}

// notify sends the trip details to the driver's contact channel.
func (e *Engine) notify(ctx context.Context, trip model.Trip, driver model.Driver, res *Result) {
	if e.notifier == nil || driver.ContactRef == "" {
		return
	}
	if err := e.notifier.Notify(ctx, driver.ContactRef, trip); err != nil {
		e.log.Warnf("notify driver %s: %v", driver.ID, err)
		res.Errors = append(res.Errors, fmt.Errorf("notify: %w", err))
		return
	}
	res.Notified = true
}
