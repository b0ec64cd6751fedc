package probe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProbeRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "probe_runs_total",
			Help: "Total number of probe runs by final outcome",
		},
		[]string{"target", "kind", "result"},
	)

	ProbeRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "probe_retries_total",
			Help: "Total number of scheduled probe retries",
		},
		[]string{"target", "kind"},
	)

	ProbeAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "probe_attempts",
			Help:    "Number of attempts a probe run took",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 11},
		},
		[]string{"target", "kind"},
	)

	ProbeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "probe_duration_seconds",
			Help:    "Duration of probe runs including backoff delays",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"target", "kind"},
	)

	ProbePublishFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "probe_publish_failures_total",
			Help: "Total number of probe results that could not be published",
		},
		[]string{"target"},
	)
)
