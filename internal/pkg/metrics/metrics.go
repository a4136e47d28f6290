package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BalanceRequests counts enrichment requests by outcome.
	BalanceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_requests_total",
			Help: "Balance enrichment requests by outcome.",
		},
		[]string{"outcome"},
	)

	// FetchFallbacks counts live fetches recovered from the holdings cache.
	FetchFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_fetch_fallback_total",
			Help: "Live balance fetches that fell back to cached holdings.",
		},
	)

	// OracleFailures counts failed price-oracle calls.
	OracleFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "price_oracle_failures_total",
			Help: "Failed price oracle calls recovered via stale cache.",
		},
	)

	// ScannerFailures counts failed per-token malicious-token scans.
	ScannerFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "token_scanner_failures_total",
			Help: "Per-token scanner calls degraded to a null classification.",
		},
	)

	// RequestDuration observes end-to-end enrichment latency.
	RequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "balance_request_duration_seconds",
			Help:    "End-to-end balance enrichment latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		BalanceRequests,
		FetchFallbacks,
		OracleFailures,
		ScannerFailures,
		RequestDuration,
	)
}
