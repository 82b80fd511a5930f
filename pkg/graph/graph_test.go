package graph

import (
	"errors"
	"testing"
)

func company(id string) Node {
	return Node{ID: id, Kind: KindCompany, Name: id, Company: &CompanyAttrs{Jurisdiction: "GB"}}
}

func person(id string) Node {
	return Node{ID: id, Kind: KindPerson, Name: id, Person: &PersonAttrs{}}
}

// TestLoad_BuildsAdjacency tests basic load and adjacency lookups
func TestLoad_BuildsAdjacency(t *testing.T) {
	g, report := Load(
		[]Node{person("P1"), company("C1"), company("C2")},
		[]EdgeRecord{
			{ControllerID: "P1", CompanyID: "C1", Descriptor: "ownership-of-shares-over-75-percent"},
			{ControllerID: "P1", CompanyID: "C2", Descriptor: "voting-rights-25-to-50-percent"},
		},
	)

	if len(report.Errors) != 0 {
		t.Fatalf("Unexpected load errors: %v", report.Errors)
	}
	if report.NodesLoaded != 3 || report.EdgesLoaded != 2 {
		t.Errorf("Expected 3 nodes / 2 edges, got %d / %d", report.NodesLoaded, report.EdgesLoaded)
	}

	out := g.OutgoingEdges("P1")
	if len(out) != 2 {
		t.Fatalf("Expected 2 outgoing edges, got %d", len(out))
	}
	// Sorted by target company ID
	if out[0].CompanyID != "C1" || out[1].CompanyID != "C2" {
		t.Errorf("Expected deterministic edge order, got %s, %s", out[0].CompanyID, out[1].CompanyID)
	}

	in := g.IncomingEdges("C1")
	if len(in) != 1 || in[0].ControllerID != "P1" {
		t.Errorf("Expected one incoming edge from P1, got %v", in)
	}
	if in[0].Range.Min != 75 || in[0].Range.Max != 100 {
		t.Errorf("Expected normalized [75,100], got %v", in[0].Range)
	}
}

// TestLoad_UnknownEndpointExcluded tests that a bad edge is excluded, not fatal
func TestLoad_UnknownEndpointExcluded(t *testing.T) {
	g, report := Load(
		[]Node{person("P1"), company("C1")},
		[]EdgeRecord{
			{ControllerID: "P1", CompanyID: "C1", Descriptor: "ownership-of-shares-exact-100"},
			{ControllerID: "GHOST", CompanyID: "C1", Descriptor: "ownership-of-shares-exact-50"},
		},
	)

	if report.EdgesLoaded != 1 || report.EdgesExcluded != 1 {
		t.Errorf("Expected 1 loaded / 1 excluded, got %d / %d", report.EdgesLoaded, report.EdgesExcluded)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("Expected 1 load error, got %d", len(report.Errors))
	}
	if !errors.Is(report.Errors[0], ErrUnknownEndpoint) {
		t.Errorf("Expected ErrUnknownEndpoint, got %v", report.Errors[0])
	}
	if len(g.IncomingEdges("C1")) != 1 {
		t.Errorf("Excluded edge leaked into adjacency")
	}
}

// TestLoad_DuplicateIDFirstSeenWins tests the duplicate-identifier policy
func TestLoad_DuplicateIDFirstSeenWins(t *testing.T) {
	first := company("C1")
	first.Name = "First Ltd"
	second := company("C1")
	second.Name = "Second Ltd"

	g, report := Load([]Node{first, second}, nil)

	if report.NodesLoaded != 1 {
		t.Errorf("Expected 1 node loaded, got %d", report.NodesLoaded)
	}
	if len(report.Errors) != 1 || !errors.Is(report.Errors[0], ErrDuplicateID) {
		t.Errorf("Expected one ErrDuplicateID, got %v", report.Errors)
	}

	n, err := g.Node("C1")
	if err != nil {
		t.Fatalf("Node lookup failed: %v", err)
	}
	if n.Name != "First Ltd" {
		t.Errorf("Expected first-seen record to win, got %q", n.Name)
	}
}

// TestLoad_WrongKindEndpoints tests kind constraints on edge endpoints
func TestLoad_WrongKindEndpoints(t *testing.T) {
	addr := Node{ID: "A1", Kind: KindAddress, Address: &AddressAttrs{Raw: "1 Main St"}}
	_, report := Load(
		[]Node{addr, company("C1"), person("P1")},
		[]EdgeRecord{
			{ControllerID: "A1", CompanyID: "C1", Descriptor: "x"}, // address cannot control
			{ControllerID: "P1", CompanyID: "P1", Descriptor: "x"}, // person is not a company
		},
	)

	if report.EdgesLoaded != 0 || report.EdgesExcluded != 2 {
		t.Errorf("Expected both edges excluded, got loaded=%d excluded=%d", report.EdgesLoaded, report.EdgesExcluded)
	}
	if !errors.Is(report.Errors[0], ErrNotAController) {
		t.Errorf("Expected ErrNotAController, got %v", report.Errors[0])
	}
	if !errors.Is(report.Errors[1], ErrBadTarget) {
		t.Errorf("Expected ErrBadTarget, got %v", report.Errors[1])
	}
}

// TestLoad_UnparsedDescriptorKept tests that a malformed descriptor keeps
// its edge with the fallback range
func TestLoad_UnparsedDescriptorKept(t *testing.T) {
	g, report := Load(
		[]Node{person("P1"), company("C1")},
		[]EdgeRecord{{ControllerID: "P1", CompanyID: "C1", Descriptor: "significant-influence-or-control"}},
	)

	if report.EdgesLoaded != 1 {
		t.Fatalf("Edge with unparsed descriptor must not be dropped")
	}
	if report.Unparsed != 1 {
		t.Errorf("Expected unparsed counter = 1, got %d", report.Unparsed)
	}
	e := g.IncomingEdges("C1")[0]
	if e.Range.Min != 0 || e.Range.Max != 100 || !e.Range.Unparsed {
		t.Errorf("Expected fallback range, got %v", e.Range)
	}
}

// TestNode_NotFound tests the structured lookup error
func TestNode_NotFound(t *testing.T) {
	g, _ := Load(nil, nil)
	_, err := g.Node("missing")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
	var ge *GraphError
	if !errors.As(err, &ge) || ge.ID != "missing" {
		t.Errorf("Expected GraphError with ID, got %v", err)
	}
}

// TestStatistics tests summary counts
func TestStatistics(t *testing.T) {
	g, _ := Load(
		[]Node{person("P1"), company("C1"), company("C2"),
			{ID: "A1", Kind: KindAddress, Address: &AddressAttrs{Raw: "x"}}},
		[]EdgeRecord{{ControllerID: "P1", CompanyID: "C1", Descriptor: "ownership-of-shares-exact-100"}},
	)

	stats := g.GetStatistics()
	if stats.NodeCount != 4 || stats.EdgeCount != 1 || stats.CompanyCount != 2 {
		t.Errorf("Unexpected statistics: %+v", stats)
	}
	if stats.KindCounts[KindCompany] != 2 || stats.KindCounts[KindAddress] != 1 {
		t.Errorf("Unexpected kind counts: %v", stats.KindCounts)
	}
}
