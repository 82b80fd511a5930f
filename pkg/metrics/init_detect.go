package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDetectorMetrics() {
	r.FindingsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ubo_findings_total",
			Help: "Pattern findings produced, labeled by kind",
		},
		[]string{"kind"},
	)

	r.DetectorDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ubo_detector_duration_seconds",
			Help:    "Detector pass duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 1.0, 10.0, 60.0},
		},
		[]string{"detector"},
	)
}
