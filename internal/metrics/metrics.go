package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resolution metrics
var (
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolutions_total",
			Help: "Total number of title resolutions by final outcome.",
		},
		[]string{"outcome"},
	)

	SearchAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_attempts_total",
			Help: "Total number of search catalog queries by strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)

	SearchDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Duration of search catalog queries, including the details page fetch.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)
)

// Source catalog and export metrics
var (
	SourceRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_records_total",
			Help: "Total number of records scraped from the source catalog.",
		},
		[]string{"status"},
	)

	ExportedRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exported_rows_total",
			Help: "Total number of CSV rows written per export file.",
		},
		[]string{"file"},
	)
)

// HTTP client metrics, labelled by catalog ("search" or "source")
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_requests_total",
			Help: "Total number of outgoing HTTP requests by catalog and status code.",
		},
		[]string{"catalog", "code"},
	)

	BreakerTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_breaker_transitions_total",
			Help: "Total number of circuit breaker state changes by catalog and new state.",
		},
		[]string{"catalog", "state"},
	)
)

func init() {
	prometheus.MustRegister(
		ResolutionsTotal,
		SearchAttemptsTotal,
		SearchDurationSeconds,
		SourceRecordsTotal,
		ExportedRowsTotal,
		HTTPRequestsTotal,
		BreakerTransitionsTotal,
	)
}
