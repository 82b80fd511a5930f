package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func gatherValue(t *testing.T, r *Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := r.PrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if !labelsMatch(m, labels) {
				continue
			}
			return metricValue(m)
		}
	}
	t.Fatalf("Metric %s%v not found", name, labels)
	return 0
}

func labelsMatch(m *dto.Metric, labels map[string]string) bool {
	for _, pair := range m.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
			return false
		}
	}
	return true
}

func metricValue(m *dto.Metric) float64 {
	switch {
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	case m.GetHistogram() != nil:
		return float64(m.GetHistogram().GetSampleCount())
	}
	return 0
}

// TestRecordGraphLoad tests the load gauges and counters
func TestRecordGraphLoad(t *testing.T) {
	r := NewRegistry()
	r.RecordGraphLoad(100, 250, 3, 50*time.Millisecond)

	if v := gatherValue(t, r, "ubo_graph_nodes_loaded", nil); v != 100 {
		t.Errorf("Expected 100 nodes, got %v", v)
	}
	if v := gatherValue(t, r, "ubo_graph_edges_loaded", nil); v != 250 {
		t.Errorf("Expected 250 edges, got %v", v)
	}
	if v := gatherValue(t, r, "ubo_graph_edges_excluded_total", nil); v != 3 {
		t.Errorf("Expected 3 excluded, got %v", v)
	}
}

// TestRecordResolution tests confidence labeling and the partial counter
func TestRecordResolution(t *testing.T) {
	r := NewRegistry()
	r.RecordResolution("aggregated", []int{1, 2, 2})
	r.RecordResolution("uncertain", nil)
	r.RecordResolutionPass(17, false, time.Millisecond)
	r.RecordResolutionPass(99999, true, time.Second)

	if v := gatherValue(t, r, "ubo_resolutions_total", map[string]string{"confidence": "aggregated"}); v != 1 {
		t.Errorf("Expected 1 aggregated resolution, got %v", v)
	}
	if v := gatherValue(t, r, "ubo_resolution_partial_total", nil); v != 1 {
		t.Errorf("Expected 1 partial, got %v", v)
	}
	if v := gatherValue(t, r, "ubo_resolution_path_depth", nil); v != 3 {
		t.Errorf("Expected 3 depth observations, got %v", v)
	}
}

// TestRecordFindings tests the per-kind finding counter
func TestRecordFindings(t *testing.T) {
	r := NewRegistry()
	r.RecordFindings("cycles", "circular_ownership", 4, time.Millisecond)
	r.RecordFindings("bridges", "bridge_control", 2, time.Millisecond)

	if v := gatherValue(t, r, "ubo_findings_total", map[string]string{"kind": "circular_ownership"}); v != 4 {
		t.Errorf("Expected 4 cycle findings, got %v", v)
	}
	if v := gatherValue(t, r, "ubo_findings_total", map[string]string{"kind": "bridge_control"}); v != 2 {
		t.Errorf("Expected 2 bridge findings, got %v", v)
	}
}

// TestRecordLoadError tests per-reason error counting
func TestRecordLoadError(t *testing.T) {
	r := NewRegistry()
	r.RecordLoadError("unknown_endpoint")
	r.RecordLoadError("unknown_endpoint")
	r.RecordLoadError("duplicate_id")

	if v := gatherValue(t, r, "ubo_graph_load_errors_total", map[string]string{"reason": "unknown_endpoint"}); v != 2 {
		t.Errorf("Expected 2 unknown_endpoint errors, got %v", v)
	}
}
