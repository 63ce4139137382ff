package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// IngestProcessed counts reports accepted for the dual write.
	IngestProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_ingest_processed_total",
			Help: "Total number of position reports accepted for ingestion.",
		},
	)

	// IngestDropped counts stream messages dropped before any write.
	IngestDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_ingest_dropped_total",
			Help: "Total number of stream messages dropped before writing.",
		},
		[]string{"reason"}, // reason: malformed/invalid
	)

	// CacheWriteErrors counts latest-state writes that failed during ingest.
	CacheWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_cache_write_errors_total",
			Help: "Total number of failed latest-state cache writes.",
		},
	)

	// HistoryWriteErrors counts history appends that failed during ingest.
	HistoryWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_history_write_errors_total",
			Help: "Total number of failed history store appends.",
		},
	)

	// CacheHits / CacheMisses instrument the cache-aside read path.
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_cache_hits_total",
			Help: "Total number of reads served from the latest-state cache.",
		},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_cache_misses_total",
			Help: "Total number of reads that fell through to the history store.",
		},
	)

	// FeedRequests counts external feed calls by outcome.
	FeedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_feed_requests_total",
			Help: "Total number of external feed requests.",
		},
		[]string{"outcome"}, // outcome: success/failure/empty
	)

	// HTTPRequestDuration measures API latency per route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "code"},
	)
)

func init() {
	prometheus.MustRegister(
		IngestProcessed,
		IngestDropped,
		CacheWriteErrors,
		HistoryWriteErrors,
		CacheHits,
		CacheMisses,
		FeedRequests,
		HTTPRequestDuration,
	)
}
