package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langid_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Identification metrics
	identifyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_identify_requests_total",
			Help: "Total number of identification requests",
		},
		[]string{"status", "language"}, // status: ok, degenerate, error
	)

	identifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langid_identify_duration_seconds",
			Help:    "Identification duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	identifyTextLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langid_identify_text_length",
			Help:    "Length in runes of texts submitted for identification",
			Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "langid_websocket_connections",
			Help: "Number of active WebSocket connections",
		},
	)
)
