package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the REST client and the read
// cache layered on top of it. Pass to components that need to record.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RetriesTotal       prometheus.Counter
	ForcedLogoutsTotal prometheus.Counter
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "inkctl",
				Name:      "requests_total",
				Help:      "Total number of API requests issued",
			},
			[]string{"method", "status"}, // status=ok/error
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "inkctl",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   prometheus.DefBuckets, // 5ms to 10s
			},
			[]string{"method"},
		),
		RetriesTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "inkctl",
				Name:      "retries_total",
				Help:      "Total read-request retries",
			},
		),
		ForcedLogoutsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "inkctl",
				Name:      "forced_logouts_total",
				Help:      "Sessions cleared after an unauthorized response",
			},
		),
		CacheHitsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "inkctl",
				Name:      "cache_hits_total",
				Help:      "Read-cache hits",
			},
		),
		CacheMissesTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "inkctl",
				Name:      "cache_misses_total",
				Help:      "Read-cache misses",
			},
		),
	}
}
