package probe_run_post

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ProbeRunRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "probe_run_rejected_total",
		Help: "Total number of on-demand probe runs rejected by the per-target rate limiter",
	},
	[]string{"target"},
)
