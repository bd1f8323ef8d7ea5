package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	assignmentsTotal  *prometheus.CounterVec
	partialCommits    prometheus.Counter
	rankingDuration   prometheus.Histogram
	positionResolved  *prometheus.CounterVec
	telemetryFailures prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Counter, prometheus.Histogram, *prometheus.CounterVec, prometheus.Counter) {
	asn := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_assignments_total",
			Help: "Number of committed trip assignments",
		},
		[]string{"zone"},
	)
	part := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assignment_partial_total",
			Help: "Number of assignments committed with mirror or notification failures",
		},
	)
	rank := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_duration_seconds",
			Help:    "Latency of driver ranking passes",
			Buckets: prometheus.DefBuckets,
		},
	)
	pos := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "position_resolutions_total",
			Help: "Number of position resolutions by source",
		},
		[]string{"source"},
	)
	tel := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telemetry_failures_total",
			Help: "Number of failed telemetry lookups during ranking",
		},
	)
	return asn, part, rank, pos, tel
}

func init() {
	assignmentsTotal, partialCommits, rankingDuration, positionResolved, telemetryFailures = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(assignmentsTotal, partialCommits, rankingDuration, positionResolved, telemetryFailures)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	assignmentsTotal, partialCommits, rankingDuration, positionResolved, telemetryFailures = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
