// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts profile API calls by outcome:
	// success, not_found, canceled, failure, rejected.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leetstats",
		Name:      "upstream_requests_total",
		Help:      "Profile API requests by outcome.",
	}, []string{"outcome"})

	// UpstreamLatency tracks profile API round trips.
	UpstreamLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "leetstats",
		Name:      "upstream_request_duration_seconds",
		Help:      "Profile API round-trip latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// CircuitState is 0 closed, 1 half-open, 2 open.
	CircuitState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "leetstats",
		Name:      "upstream_circuit_state",
		Help:      "Profile API circuit breaker state.",
	})

	// CalendarFallbacks counts submission calendars that failed to decode.
	CalendarFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "leetstats",
		Name:      "calendar_decode_fallbacks_total",
		Help:      "Submission calendars replaced by an empty calendar after a decode failure.",
	})

	// HTTPRequests counts served requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leetstats",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "route", "status"})
)
