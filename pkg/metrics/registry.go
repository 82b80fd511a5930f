// Package metrics exposes Prometheus instrumentation for analysis runs:
// graph load volume, resolver traversal cost, and detector findings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine
type Registry struct {
	registry *prometheus.Registry

	// Graph metrics
	GraphNodesLoaded   prometheus.Gauge
	GraphEdgesLoaded   prometheus.Gauge
	GraphEdgesExcluded prometheus.Counter
	GraphLoadErrors    *prometheus.CounterVec
	GraphLoadDuration  prometheus.Histogram

	// Resolver metrics
	ResolutionsTotal     *prometheus.CounterVec
	ResolutionDuration   prometheus.Histogram
	ResolutionPathDepth  prometheus.Histogram
	ResolutionPartial    prometheus.Counter
	ResolutionVisitCount prometheus.Histogram

	// Detector metrics
	FindingsTotal    *prometheus.CounterVec
	DetectorDuration *prometheus.HistogramVec
}

// NewRegistry creates a metrics registry with all collectors registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initGraphMetrics()
	r.initResolverMetrics()
	r.initDetectorMetrics()
	return r
}

// PrometheusRegistry returns the underlying registry for scraping or
// test inspection
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}
