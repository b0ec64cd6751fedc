package probe_events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PublishRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "probe_events_publish_retries_total",
			Help: "Total number of retried probe event sends",
		},
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "probe_events_publish_duration_seconds",
			Help:    "Duration of probe event publishing including retries",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"result"},
	)
)
