package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doctor_feed_fetch_total",
			Help: "Doctor feed fetch attempts by outcome",
		},
		[]string{"outcome"},
	)

	FeedCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doctor_feed_cache_total",
			Help: "Doctor feed cache lookups by result",
		},
		[]string{"result"},
	)

	FeedDoctors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "doctor_feed_doctors",
			Help: "Number of doctors in the last loaded feed",
		},
	)

	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doctor_search_total",
			Help: "Doctor searches by whether any filter was active",
		},
		[]string{"filtered"},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "doctor_search_results",
			Help:    "Number of doctors returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route and status",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
