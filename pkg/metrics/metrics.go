package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Global metric vectors for the client. 'promauto' registers them on the
// default registry without extra initialization; applications that expose a
// /metrics endpoint pick them up automatically.

var (
	// RequestsTotal counts outgoing HTTP requests, labeled by client
	// operation and HTTP status ("error" when no response was received).
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neorest_requests_total",
			Help: "Total number of HTTP requests issued to the Neo4j server",
		},
		[]string{"operation", "status"},
	)

	// RequestDuration measures round-trip time per client operation.
	// Buckets cover cached-metadata fast paths up to slow Cypher queries.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neorest_request_duration_seconds",
			Help:    "Duration of HTTP requests to the Neo4j server in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
)
