package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/friomar/dispatch/core/metrics"
)

// PromSink records assignment outcomes in Prometheus metrics.
type PromSink struct {
	outcomes  *prometheus.CounterVec
	distances *prometheus.HistogramVec
}

// NewPromSink registers the sink metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_outcomes_total",
		Help: "Assignment decisions by outcome and position source",
	}, []string{"zone", "source", "committed"})
	distances := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_distance_km",
		Help:    "Driver-to-pickup distance of committed assignments",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800},
	}, []string{"zone"})

	if err := reg.Register(outcomes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			outcomes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(distances); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			distances = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{outcomes: outcomes, distances: distances}, nil
}

// RecordAssignment updates the counters for each decision.
func (s *PromSink) RecordAssignment(recs []coremetrics.AssignmentRecord) error {
	for _, r := range recs {
		committed := "false"
		if r.Committed {
			committed = "true"
		}
		s.outcomes.WithLabelValues(r.Zone, r.Source, committed).Inc()
		if r.Committed && r.HasDistance {
			s.distances.WithLabelValues(r.Zone).Observe(float64(r.DistanceKm))
		}
	}
	return nil
}
