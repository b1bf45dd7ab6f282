// Package monitoring provides Prometheus metrics for the recipe engine
// and its caches.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the application's Prometheus collectors. A nil
// *Metrics is valid and records nothing, which keeps tests free of
// registry setup.
type Metrics struct {
	registry *prometheus.Registry

	flattenTotal    prometheus.Counter
	flattenCycles   prometheus.Counter
	flattenDuration prometheus.Histogram
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	degradedTotal   prometheus.Counter
}

// New creates and registers the metrics bundle on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		flattenTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "platewise",
			Name:      "flatten_total",
			Help:      "Total recipe flatten operations.",
		}),
		flattenCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "platewise",
			Name:      "flatten_cycles_total",
			Help:      "Flatten operations that detected a cycle.",
		}),
		flattenDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "platewise",
			Name:      "flatten_duration_seconds",
			Help:      "Duration of recipe flatten operations.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "platewise",
			Name:      "cache_hits_total",
			Help:      "Cache hits by cache name.",
		}, []string{"cache"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "platewise",
			Name:      "cache_misses_total",
			Help:      "Cache misses by cache name.",
		}, []string{"cache"}),
		degradedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "platewise",
			Name:      "degraded_computations_total",
			Help:      "Sub-computations that fell back to a degraded result.",
		}),
	}

	registry.MustRegister(
		m.flattenTotal,
		m.flattenCycles,
		m.flattenDuration,
		m.cacheHits,
		m.cacheMisses,
		m.degradedTotal,
	)

	return m
}

// ObserveFlatten records one flatten operation.
func (m *Metrics) ObserveFlatten(d time.Duration, cycleDetected bool) {
	if m == nil {
		return
	}
	m.flattenTotal.Inc()
	m.flattenDuration.Observe(d.Seconds())
	if cycleDetected {
		m.flattenCycles.Inc()
	}
}

// ObserveCache records a cache lookup outcome.
func (m *Metrics) ObserveCache(cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.WithLabelValues(cache).Inc()
	} else {
		m.cacheMisses.WithLabelValues(cache).Inc()
	}
}

// ObserveDegraded records a degraded sub-computation.
func (m *Metrics) ObserveDegraded() {
	if m == nil {
		return
	}
	m.degradedTotal.Inc()
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
