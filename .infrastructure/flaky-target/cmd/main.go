package main

import (
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Нестабильная цель для ручной проверки ретраев retry-probe:
// /ping отвечает 503 с вероятностью FAIL_RATE и задерживает ответ до MAX_LATENCY.
var pingResponses = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "flaky_target_ping_responses_total",
	Help: "Ответы /ping по статусу",
}, []string{"status"})

func main() {
	failRate := envFloat("FAIL_RATE", 0.5)
	maxLatency := envDuration("MAX_LATENCY", 300*time.Millisecond)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(rand.N(maxLatency + 1))

		if rand.Float64() < failRate {
			pingResponses.WithLabelValues("503").Inc()
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		pingResponses.WithLabelValues("200").Inc()
		_, _ = w.Write([]byte("pong"))
	})

	server := &http.Server{
		Addr:              ":2112",
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("flaky target listening on %s, fail rate %.2f", server.Addr, failRate)
	log.Fatal(server.ListenAndServe())
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
