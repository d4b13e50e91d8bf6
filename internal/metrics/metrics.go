package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "freiplatz_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freiplatz_search_requests_total",
			Help: "Availability searches by sort mode.",
		},
		[]string{"sort_by"},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "freiplatz_search_results",
			Help:    "Number of facilities matched per search.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	PlacesAllocated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freiplatz_places_allocated_total",
			Help: "Places created through bulk allocation.",
		},
	)

	CapacityRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freiplatz_capacity_rejections_total",
			Help: "Bulk allocations rejected because the facility was full.",
		},
	)

	AuditWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freiplatz_audit_write_failures_total",
			Help: "Audit records that could not be persisted.",
		},
	)

	AvailabilitySyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freiplatz_availability_sync_runs_total",
			Help: "Availability summary sync runs by outcome.",
		},
		[]string{"outcome"},
	)
)
