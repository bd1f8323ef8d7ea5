package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/friomar/dispatch/core/geo"
	"github.com/friomar/dispatch/core/model"
	"github.com/friomar/dispatch/core/telemetry"
)

// defaultAvailability is assumed when the telemetry availability lookup
// fails: a telemetry outage must not stall dispatching, so drivers are given
// a fresh daily allowance.
var defaultAvailability = telemetry.Availability{
	RemainingDutyHours:        9,
	MinutesUntilMandatoryRest: 9 * 60,
}

// AutoAssignment records one commit made by an automatic pass.
type AutoAssignment struct {
	TripID     int64
	Client     string
	Route      string
	DriverID   string
	Plate      string
	DistanceKm int
	Chained    bool
	// From names the place the distance was measured from: the driver's
	// last drop-off when chained, otherwise their resolved position source.
	From string
}

// AutoResult summarises one automatic assignment pass.
type AutoResult struct {
	Pending     int
	Assigned    int
	Unassigned  int
	Chained     int
	Assignments []AutoAssignment
	Rejected    []int64
}

// AutoAssign walks the unassigned trips in priority order and commits each to
// the closest eligible driver in its zone. Drivers who already carry a trip
// only take work whose pickup chains off their last drop-off; commits made
// earlier in the pass feed into later chain checks through the store.
func (e *Engine) AutoAssign(ctx context.Context) (AutoResult, error) {
	pending, err := e.trips.UnassignedTrips(ctx)
	if err != nil {
		return AutoResult{}, fmt.Errorf("auto assign: %w", err)
	}
	ordered := Prioritize(pending, time.Now())

	res := AutoResult{Pending: len(ordered)}
	for _, trip := range ordered {
		cands, err := e.autoCandidates(ctx, trip)
		if err != nil {
			e.log.Errorf("candidates for trip %d: %v", trip.ID, err)
			res.Unassigned++
			res.Rejected = append(res.Rejected, trip.ID)
			continue
		}
		if len(cands) == 0 {
			res.Unassigned++
			res.Rejected = append(res.Rejected, trip.ID)
			continue
		}
		best := cands[0]
		if _, err := e.assign(ctx, trip.ID, best.Driver.ID, candidateMeta(best)); err != nil {
			e.log.Errorf("auto assign trip %d to %s: %v", trip.ID, best.Driver.ID, err)
			res.Unassigned++
			res.Rejected = append(res.Rejected, trip.ID)
			continue
		}
		res.Assigned++
		if best.Chained {
			res.Chained++
		}
		from := best.From
		if from == "" {
			from = best.Position.Source.String()
		}
		res.Assignments = append(res.Assignments, AutoAssignment{
			TripID:     trip.ID,
			Client:     trip.Client,
			Route:      trip.Pickup + " -> " + trip.Dropoff,
			DriverID:   best.Driver.ID,
			Plate:      best.Driver.TractorPlate,
			DistanceKm: best.DistanceKm,
			Chained:    best.Chained,
			From:       from,
		})
	}

	e.log.Infof("auto pass: %d/%d assigned (%d chained)", res.Assigned, res.Pending, res.Chained)
	if e.bus != nil {
		e.bus.Publish(AutoPassEvent{Pending: res.Pending, Assigned: res.Assigned, Chained: res.Chained})
	}
	return res, nil
}

// NextTripForDriver selects the next trip to hand a driver who is finishing
// (or has finished) their current load: among unassigned trips in the
// driver's zone that the driver is eligible for, the chainable one with the
// shortest approach wins. ErrNotFound is returned when nothing fits.
func (e *Engine) NextTripForDriver(ctx context.Context, driverID string) (model.Trip, error) {
	driver, err := e.drivers.Driver(ctx, driverID)
	if err != nil {
		return model.Trip{}, fmt.Errorf("next trip: driver %s: %w", driverID, err)
	}
	pending, err := e.trips.UnassignedTrips(ctx)
	if err != nil {
		return model.Trip{}, fmt.Errorf("next trip: %w", err)
	}

	best := model.Trip{}
	bestDist := unknownDistance + 1
	found := false
	for _, trip := range Prioritize(pending, time.Now()) {
		if trip.Zone != driver.Zone {
			continue
		}
		cand, ok := e.evalAutoCandidate(ctx, trip, driver)
		if !ok {
			continue
		}
		dist := unknownDistance
		if cand.HasDistance {
			dist = cand.DistanceKm
		}
		if dist < bestDist {
			best = trip
			bestDist = dist
			found = true
		}
	}
	if !found {
		return model.Trip{}, fmt.Errorf("next trip for %s: %w", driverID, ErrNotFound)
	}
	return best, nil
}

// autoCandidates returns the eligible drivers for the trip in ascending
// approach-distance order. Unlike the admin-facing ranking, absent and
// ineligible drivers are dropped entirely.
func (e *Engine) autoCandidates(ctx context.Context, trip model.Trip) ([]Candidate, error) {
	drivers, err := e.drivers.DriversInZone(ctx, trip.Zone)
	if err != nil {
		return nil, err
	}
	var cands []Candidate
	for _, d := range drivers {
		if c, ok := e.evalAutoCandidate(ctx, trip, d); ok {
			cands = append(cands, c)
		}
	}
	sortCandidates(cands)
	return cands, nil
}

// evalAutoCandidate applies the automatic-mode eligibility rules to one
// driver: on duty, enough tachograph hours for the trip plus margin,
// compatible trailer, and a chainable pickup when the driver already carries
// a trip.
func (e *Engine) evalAutoCandidate(ctx context.Context, trip model.Trip, d model.Driver) (Candidate, bool) {
	if d.Absent() {
		return Candidate{}, false
	}
	avail := e.availability(ctx, d)
	if avail.Resting() {
		e.log.Debugf("skip %s for trip %d: resting", d.ID, trip.ID)
		return Candidate{}, false
	}
	if need := trip.EstimatedHours() + e.cfg.DutyMarginHours; avail.RemainingDutyHours < need {
		e.log.Debugf("skip %s for trip %d: %.1fh left, need %.1fh", d.ID, trip.ID, avail.RemainingDutyHours, need)
		return Candidate{}, false
	}
	if !d.CanCarry(trip.CargoClass()) {
		e.log.Debugf("skip %s for trip %d: cargo %s needs reefer", d.ID, trip.ID, trip.CargoClass())
		return Candidate{}, false
	}

	c := Candidate{Driver: d}
	pickup, pickupKnown := geo.Resolve(trip.Pickup)

	if active, err := e.trips.ActiveTrips(ctx, d.ID); err == nil && len(active) > 0 {
		c.ActiveTrips = len(active)
		if drop, ok := geo.Resolve(active[0].Dropoff); ok && pickupKnown {
			dist, ok := geo.Distance(drop, pickup)
			if ok && dist > e.cfg.ChainRadiusKm {
				e.log.Debugf("skip %s for trip %d: %s -> %s is %dkm, max %dkm",
					d.ID, trip.ID, active[0].Dropoff, trip.Pickup, dist, e.cfg.ChainRadiusKm)
				return Candidate{}, false
			}
			if ok {
				c.DistanceKm, c.HasDistance = dist, true
				c.Chained = true
				c.From = active[0].Dropoff
				return c, true
			}
		}
	}

	c.Position = e.resolver.Resolve(ctx, d)
	if pickupKnown && c.Position.Known() {
		c.DistanceKm, c.HasDistance = geo.DistanceKm(c.Position.Lat, c.Position.Lon, pickup.Lat, pickup.Lon)
	}
	return c, true
}

// availability queries the driver's tachograph state with a short timeout,
// assuming a fresh allowance when the lookup fails.
func (e *Engine) availability(ctx context.Context, d model.Driver) telemetry.Availability {
	if e.resolver.telemetry == nil || d.TractorPlate == "" {
		return defaultAvailability
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.TelemetryTimeoutSeconds)*time.Second)
	defer cancel()
	avail, err := e.resolver.telemetry.Availability(ctx, d.TractorPlate)
	if err != nil {
		telemetryFailures.Inc()
		e.log.Debugf("availability for %s: %v", d.TractorPlate, err)
		return defaultAvailability
	}
	return avail
}
