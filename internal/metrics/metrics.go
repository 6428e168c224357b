// Package metrics holds the Prometheus collectors for store queries and profile loads.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryLatency records store query latency by backend, operation and table.
	QueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pmfolio_store_query_latency_seconds",
		Help:    "Store query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "op", "table"})

	// QueryErrors counts failed store queries. No-rows outcomes are not failures.
	QueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pmfolio_store_query_errors_total",
		Help: "Total number of failed store queries",
	}, []string{"backend", "op", "table"})

	// ProfileLoads counts profile page loads by final page state.
	ProfileLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pmfolio_profile_loads_total",
		Help: "Total number of profile loads by final state",
	}, []string{"state"})
)

// ObserveQuery records one store query. Errors matching any of ignore are not
// counted as failures.
func ObserveQuery(backend, op, table string, start time.Time, err error, ignore ...error) {
	QueryLatency.WithLabelValues(backend, op, table).Observe(time.Since(start).Seconds())
	if err == nil {
		return
	}
	for _, target := range ignore {
		if errors.Is(err, target) {
			return
		}
	}
	QueryErrors.WithLabelValues(backend, op, table).Inc()
}
