package graph

import (
	"context"
	"testing"
)

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	nodes := []Node{
		{ID: "P1", Kind: KindPerson, Name: "Alice", Person: &PersonAttrs{CountryCode: "GB"}},
		{ID: "C1", Kind: KindCompany, Name: "Acme", Company: &CompanyAttrs{Jurisdiction: "GB"}},
	}
	edges := []EdgeRecord{
		{ControllerID: "P1", CompanyID: "C1", Descriptor: "ownership-of-shares-exact-100"},
	}

	if err := store.SaveNodes(ctx, nodes); err != nil {
		t.Fatalf("SaveNodes failed: %v", err)
	}
	if err := store.SaveEdges(ctx, edges); err != nil {
		t.Fatalf("SaveEdges failed: %v", err)
	}

	gotNodes, gotEdges, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(gotNodes) != 2 {
		t.Errorf("Expected 2 nodes, got %d", len(gotNodes))
	}
	if gotNodes[0].ID != "C1" {
		t.Errorf("Expected sorted nodes starting with C1, got %s", gotNodes[0].ID)
	}
	if len(gotEdges) != 1 {
		t.Errorf("Expected 1 edge, got %d", len(gotEdges))
	}
}

func TestMemStoreUpsertAndDedup(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	if err := store.SaveNodes(ctx, []Node{{ID: "C1", Kind: KindCompany, Name: "Old Name"}}); err != nil {
		t.Fatalf("SaveNodes failed: %v", err)
	}
	if err := store.SaveNodes(ctx, []Node{{ID: "C1", Kind: KindCompany, Name: "New Name"}}); err != nil {
		t.Fatalf("SaveNodes failed: %v", err)
	}

	edge := EdgeRecord{ControllerID: "P1", CompanyID: "C1", Descriptor: "x"}
	if err := store.SaveEdges(ctx, []EdgeRecord{edge, edge}); err != nil {
		t.Fatalf("SaveEdges failed: %v", err)
	}

	nodes, edges, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "New Name" {
		t.Errorf("Expected upserted node, got %+v", nodes)
	}
	if len(edges) != 1 {
		t.Errorf("Expected deduplicated edge, got %d", len(edges))
	}
}

func TestBuildFromStore(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	err := store.SaveNodes(ctx, []Node{
		{ID: "P1", Kind: KindPerson, Name: "Alice", Person: &PersonAttrs{}},
		{ID: "C1", Kind: KindCompany, Name: "Acme", Company: &CompanyAttrs{Jurisdiction: "GB"}},
	})
	if err != nil {
		t.Fatalf("SaveNodes failed: %v", err)
	}
	err = store.SaveEdges(ctx, []EdgeRecord{
		{ControllerID: "P1", CompanyID: "C1", Descriptor: "ownership-of-shares-over-75-percent"},
	})
	if err != nil {
		t.Fatalf("SaveEdges failed: %v", err)
	}

	g, report, err := BuildFromStore(ctx, store)
	if err != nil {
		t.Fatalf("BuildFromStore failed: %v", err)
	}
	if report.NodesLoaded != 2 || report.EdgesLoaded != 1 {
		t.Errorf("Unexpected load report: %+v", report)
	}
	if !g.HasEdge("P1", "C1") {
		t.Error("Expected edge P1->C1 in rebuilt graph")
	}
}
