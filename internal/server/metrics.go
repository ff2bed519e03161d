package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// serverMetrics holds the Prometheus instrumentation for the optimize
// endpoint. Each handler owns its registry so tests can construct handlers
// independently without duplicate registration panics.
type serverMetrics struct {
	registry    *prometheus.Registry
	runsTotal   *prometheus.CounterVec
	runDuration prometheus.Histogram
}

func newServerMetrics() *serverMetrics {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "service_optimizer",
		Name:      "runs_total",
		Help:      "Optimization runs by outcome.",
	}, []string{"outcome"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "service_optimizer",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of optimization runs.",
		Buckets:   prometheus.DefBuckets,
	})

	registry.MustRegister(runsTotal, runDuration)

	return &serverMetrics{
		registry:    registry,
		runsTotal:   runsTotal,
		runDuration: runDuration,
	}
}

func (m *serverMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
