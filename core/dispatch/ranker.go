package dispatch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/friomar/dispatch/core/geo"
	"github.com/friomar/dispatch/core/model"
)

// unknownDistance sorts candidates without a computable distance last within
// their absence bucket.
const unknownDistance = 99999

// Candidate is a driver considered for one trip. It exists only for the
// duration of a ranking call (or its session cache entry).
type Candidate struct {
	Driver   model.Driver
	Position model.Position

	// DistanceKm to the trip pickup; meaningful only when HasDistance.
	DistanceKm  int
	HasDistance bool

	// ActiveTrips is the driver's current load, shown to the admin but not
	// part of the sort key.
	ActiveTrips int
	Absent      bool

	// Chained marks a distance measured from the driver's last drop-off
	// rather than their resolved position; From names that place.
	Chained bool
	From    string
}

// RankDriversForTrip ranks the zone's drivers for the trip by absence and
// distance to the pickup. Completed trips are rejected.
func (e *Engine) RankDriversForTrip(ctx context.Context, tripID int64) ([]Candidate, error) {
	trip, err := e.trips.Trip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("rank trip %d: %w", tripID, err)
	}
	if trip.State == model.TripCompleted {
		return nil, fmt.Errorf("rank trip %d: %w", tripID, ErrTripCompleted)
	}
	drivers, err := e.drivers.DriversInZone(ctx, trip.Zone)
	if err != nil {
		return nil, fmt.Errorf("drivers in zone %s: %w", trip.Zone, err)
	}
	cands := e.rankDrivers(ctx, trip, drivers)
	if e.bus != nil {
		e.bus.Publish(RankingEvent{TripID: trip.ID, Zone: trip.Zone, Candidates: len(cands)})
	}
	return cands, nil
}

// rankDrivers builds and orders the candidate list. The sort key is
// two-level: absence dominates distance (an absent driver at 5 km still sorts
// after a present driver with no distance at all), and within the same
// absence bucket unknown distance acts as a very large value.
func (e *Engine) rankDrivers(ctx context.Context, trip model.Trip, drivers []model.Driver) []Candidate {
	start := time.Now()
	defer func() { rankingDuration.Observe(time.Since(start).Seconds()) }()

	pickup, pickupKnown := geo.Resolve(trip.Pickup)
	cands := make([]Candidate, 0, len(drivers))
	for _, d := range drivers {
		c := Candidate{Driver: d, Absent: d.Absent()}
		c.Position = e.resolver.Resolve(ctx, d)
		if pickupKnown && c.Position.Known() {
			c.DistanceKm, c.HasDistance = geo.DistanceKm(c.Position.Lat, c.Position.Lon, pickup.Lat, pickup.Lon)
		}
		if active, err := e.trips.ActiveTrips(ctx, d.ID); err == nil {
			c.ActiveTrips = len(active)
		} else {
			e.log.Debugf("active trip count for %s: %v", d.ID, err)
		}
		cands = append(cands, c)
	}
	sortCandidates(cands)
	return cands
}

func sortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return candidateKey(cands[i]) < candidateKey(cands[j])
	})
}

// candidateKey folds the (absent, distance) pair into one ordered value.
func candidateKey(c Candidate) int {
	dist := unknownDistance
	if c.HasDistance {
		dist = c.DistanceKm
	}
	if c.Absent {
		return unknownDistance + 1 + dist
	}
	return dist
}
