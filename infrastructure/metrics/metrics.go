package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for CatalogFetches.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeCanceled    = "canceled"
)

var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reporting_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds, by route, method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	RequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reporting_http_requests_in_flight",
		Help: "Number of HTTP requests currently being served.",
	})

	CatalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reporting_catalog_fetches_total",
		Help: "Catalog API fetches, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	CatalogFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reporting_catalog_fetch_duration_seconds",
		Help:    "Catalog API fetch duration in seconds, by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reporting_catalog_cache_hits_total",
		Help: "Catalog cache hits, by endpoint.",
	}, []string{"endpoint"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reporting_catalog_cache_misses_total",
		Help: "Catalog cache misses, by endpoint.",
	}, []string{"endpoint"})

	ReportBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reporting_report_build_duration_seconds",
		Help:    "Report build duration in seconds, by report.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
)
