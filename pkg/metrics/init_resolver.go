package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initResolverMetrics() {
	r.ResolutionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ubo_resolutions_total",
			Help: "Resolutions produced, labeled by confidence",
		},
		[]string{"confidence"},
	)

	r.ResolutionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ubo_resolution_duration_seconds",
			Help:    "Per-company resolution duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
	)

	r.ResolutionPathDepth = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ubo_resolution_path_depth",
			Help:    "Hop depth of resolved control paths",
			Buckets: []float64{1, 2, 3, 5, 8, 10, 15},
		},
	)

	r.ResolutionPartial = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ubo_resolution_partial_total",
			Help: "Companies whose traversal hit the depth or visit budget",
		},
	)

	r.ResolutionVisitCount = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ubo_resolution_visits",
			Help:    "Edge expansions per company traversal",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		},
	)
}
