package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesLoaded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ubo_graph_nodes_loaded",
			Help: "Nodes in the current ownership graph",
		},
	)

	r.GraphEdgesLoaded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ubo_graph_edges_loaded",
			Help: "Control edges in the current ownership graph",
		},
	)

	r.GraphEdgesExcluded = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ubo_graph_edges_excluded_total",
			Help: "Edges excluded during load for data-quality reasons",
		},
	)

	r.GraphLoadErrors = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ubo_graph_load_errors_total",
			Help: "Data-quality errors recorded during graph load",
		},
		[]string{"reason"},
	)

	r.GraphLoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ubo_graph_load_duration_seconds",
			Help:    "Graph bulk-load duration in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
	)
}
