// Package metrics provides Prometheus metrics for the cache service.
package metrics

import (
	"net/http"
	"time"

	"clinic-perf-cache/internal/cache"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	registry *prometheus.Registry

	// Cache snapshot metrics
	CacheHits        prometheus.Gauge
	CacheMisses      prometheus.Gauge
	CacheHitRate     prometheus.Gauge
	CacheEntries     prometheus.Gauge
	CacheSizeBytes   prometheus.Gauge
	CacheEvictions   prometheus.Gauge
	CacheExpirations prometheus.Gauge

	// Housekeeping metrics
	CleanupRuns    prometheus.Counter
	CleanupRemoved prometheus.Counter

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates a Metrics instance with the given namespace on its own registry.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		CacheHits: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_hits",
			Help:      "Sum of access counts over live cache entries",
		}),
		CacheMisses: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_misses",
			Help:      "Lookups that found no live entry",
		}),
		CacheHitRate: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_hit_rate",
			Help:      "Hits divided by hits plus misses",
		}),
		CacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Live cache entries",
		}),
		CacheSizeBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_size_bytes",
			Help:      "Estimated size of live cache entries",
		}),
		CacheEvictions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_evictions",
			Help:      "Entries removed to satisfy count or size bounds",
		}),
		CacheExpirations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_expirations",
			Help:      "Entries removed after their TTL passed",
		}),

		CleanupRuns: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_cleanup_runs_total",
			Help:      "Completed expiry sweeps",
		}),
		CleanupRemoved: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_cleanup_removed_total",
			Help:      "Entries removed by expiry sweeps",
		}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "route"}),
	}
}

// ObserveStats copies a cache snapshot into the gauges.
func (m *Metrics) ObserveStats(st cache.Stats) {
	m.CacheHits.Set(float64(st.Hits))
	m.CacheMisses.Set(float64(st.Misses))
	m.CacheHitRate.Set(st.HitRate)
	m.CacheEntries.Set(float64(st.Entries))
	m.CacheSizeBytes.Set(float64(st.TotalSize))
	m.CacheEvictions.Set(float64(st.Evictions))
	m.CacheExpirations.Set(float64(st.Expirations))
}

// ObserveCleanup records one expiry sweep.
func (m *Metrics) ObserveCleanup(removed int) {
	m.CleanupRuns.Inc()
	m.CleanupRemoved.Add(float64(removed))
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler returns the HTTP handler for the Prometheus metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
