// Package metrics holds the Prometheus instruments for the render pipeline.
// Collectors register with the global registry and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RenderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_render_duration_seconds",
			Help:    "Time spent turning a stored document into HTML and a table of contents.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		})

	RenderErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "content_render_errors_total",
			Help: "Documents that failed to decode.",
		})

	RenderCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_render_cache_total",
			Help: "Render cache lookups by result (hit, miss, error).",
		}, []string{"result"})

	CacheInvalidationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "content_cache_invalidations_total",
			Help: "Local cache entries dropped after a change event from a peer.",
		})
)

func init() {
	prometheus.MustRegister(
		RenderDuration,
		RenderErrorsTotal,
		RenderCacheTotal,
		CacheInvalidationsTotal,
	)
}
