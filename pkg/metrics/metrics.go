package metrics

import (
	"time"
)

// RecordGraphLoad records the outcome of one bulk load
func (r *Registry) RecordGraphLoad(nodes, edges, excluded int, duration time.Duration) {
	r.GraphNodesLoaded.Set(float64(nodes))
	r.GraphEdgesLoaded.Set(float64(edges))
	r.GraphEdgesExcluded.Add(float64(excluded))
	r.GraphLoadDuration.Observe(duration.Seconds())
}

// RecordLoadError counts one data-quality error by reason
func (r *Registry) RecordLoadError(reason string) {
	r.GraphLoadErrors.WithLabelValues(reason).Inc()
}

// RecordResolution counts one emitted resolution and its path depths
func (r *Registry) RecordResolution(confidence string, pathDepths []int) {
	r.ResolutionsTotal.WithLabelValues(confidence).Inc()
	for _, d := range pathDepths {
		r.ResolutionPathDepth.Observe(float64(d))
	}
}

// RecordResolutionPass records one per-company traversal pass
func (r *Registry) RecordResolutionPass(visits int, partial bool, duration time.Duration) {
	r.ResolutionDuration.Observe(duration.Seconds())
	r.ResolutionVisitCount.Observe(float64(visits))
	if partial {
		r.ResolutionPartial.Inc()
	}
}

// RecordFindings counts findings of one kind from one detector pass
func (r *Registry) RecordFindings(detector, kind string, count int, duration time.Duration) {
	r.FindingsTotal.WithLabelValues(kind).Add(float64(count))
	r.DetectorDuration.WithLabelValues(detector).Observe(duration.Seconds())
}
