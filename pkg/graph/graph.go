// Package graph holds the in-memory ownership graph: typed nodes, directed
// control edges with normalized control ranges, and the adjacency indices
// the resolver and detectors traverse. The graph is built once per
// analysis run and is immutable afterwards; every detector pass is
// read-only, so the structure is safely shared across goroutines without
// locking.
package graph

import (
	"sort"

	"github.com/dd0wney/cluso-ubo/pkg/control"
	"github.com/dd0wney/cluso-ubo/pkg/validation"
)

// OwnershipGraph is the full node and edge set with O(1) amortized
// adjacency lookups by controller and by target company.
type OwnershipGraph struct {
	nodes    map[string]*Node
	outgoing map[string][]*ControlEdge // keyed by controller ID
	incoming map[string][]*ControlEdge // keyed by target company ID

	companies []string // sorted, for deterministic iteration
	edgeCount int
}

// LoadReport collects the data-quality errors of one bulk load. A non-empty
// report does not mean the load failed; it means some records were excluded
// or degraded and compliance users must be told.
type LoadReport struct {
	NodesLoaded   int
	EdgesLoaded   int
	EdgesExcluded int
	Unparsed      int // edges that fell back to the maximal-uncertainty range
	Errors        []LoadError
}

func (r *LoadReport) record(id string, err error) {
	r.Errors = append(r.Errors, LoadError{Record: id, Err: err})
}

// Load builds the graph from externally supplied typed records. Duplicate
// node IDs resolve first-seen-wins; edges referencing unknown nodes or
// nodes of the wrong kind are excluded. Both are reported, never fatal.
// Raw control descriptors are parsed here, exactly once.
func Load(nodes []Node, edges []EdgeRecord) (*OwnershipGraph, *LoadReport) {
	g := &OwnershipGraph{
		nodes:    make(map[string]*Node, len(nodes)),
		outgoing: make(map[string][]*ControlEdge),
		incoming: make(map[string][]*ControlEdge),
	}
	report := &LoadReport{}

	for i := range nodes {
		n := nodes[i]
		if err := validation.NodeID(n.ID); err != nil {
			report.record(n.Name, &GraphError{Op: "Load", Entity: "node", ID: n.ID, Cause: ErrInvalidRecord})
			continue
		}
		if _, exists := g.nodes[n.ID]; exists {
			// First seen wins
			report.record(n.ID, &GraphError{Op: "Load", Entity: "node", ID: n.ID, Cause: ErrDuplicateID})
			continue
		}
		g.nodes[n.ID] = &n
		report.NodesLoaded++
		if n.Kind == KindCompany {
			g.companies = append(g.companies, n.ID)
		}
	}
	sort.Strings(g.companies)

	for _, rec := range edges {
		if err := validation.Struct(rec); err != nil {
			report.record(rec.ControllerID+"->"+rec.CompanyID,
				&GraphError{Op: "Load", Entity: "edge", Cause: ErrInvalidRecord})
			report.EdgesExcluded++
			continue
		}

		controller, ok := g.nodes[rec.ControllerID]
		if !ok {
			report.record(rec.ControllerID, &GraphError{Op: "Load", Entity: "edge", ID: rec.ControllerID, Cause: ErrUnknownEndpoint})
			report.EdgesExcluded++
			continue
		}
		target, ok := g.nodes[rec.CompanyID]
		if !ok {
			report.record(rec.CompanyID, &GraphError{Op: "Load", Entity: "edge", ID: rec.CompanyID, Cause: ErrUnknownEndpoint})
			report.EdgesExcluded++
			continue
		}
		if !controller.IsController() {
			report.record(rec.ControllerID, &GraphError{Op: "Load", Entity: "edge", ID: rec.ControllerID, Cause: ErrNotAController})
			report.EdgesExcluded++
			continue
		}
		if !target.IsControllable() {
			report.record(rec.CompanyID, &GraphError{Op: "Load", Entity: "edge", ID: rec.CompanyID, Cause: ErrBadTarget})
			report.EdgesExcluded++
			continue
		}

		rng := control.Normalize(rec.Descriptor)
		if rng.Unparsed {
			report.Unparsed++
		}

		edge := &ControlEdge{
			ControllerID: rec.ControllerID,
			CompanyID:    rec.CompanyID,
			Range:        rng,
			Descriptor:   rec.Descriptor,
		}
		g.outgoing[edge.ControllerID] = append(g.outgoing[edge.ControllerID], edge)
		g.incoming[edge.CompanyID] = append(g.incoming[edge.CompanyID], edge)
		g.edgeCount++
		report.EdgesLoaded++
	}

	// Stable edge order makes traversal output reproducible across runs
	for _, edges := range g.outgoing {
		sortEdges(edges)
	}
	for _, edges := range g.incoming {
		sortEdges(edges)
	}

	return g, report
}

func sortEdges(edges []*ControlEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].ControllerID != edges[j].ControllerID {
			return edges[i].ControllerID < edges[j].ControllerID
		}
		if edges[i].CompanyID != edges[j].CompanyID {
			return edges[i].CompanyID < edges[j].CompanyID
		}
		return edges[i].Descriptor < edges[j].Descriptor
	})
}

// Node looks up a node by ID
func (g *OwnershipGraph) Node(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, &GraphError{Op: "Node", Entity: "node", ID: id, Cause: ErrNodeNotFound}
	}
	return n, nil
}

// HasEdge reports whether a direct control edge controller->company exists
func (g *OwnershipGraph) HasEdge(controllerID, companyID string) bool {
	for _, e := range g.outgoing[controllerID] {
		if e.CompanyID == companyID {
			return true
		}
	}
	return false
}

// OutgoingEdges returns the control edges a node exercises. The returned
// slice is shared and must not be mutated.
func (g *OwnershipGraph) OutgoingEdges(controllerID string) []*ControlEdge {
	return g.outgoing[controllerID]
}

// IncomingEdges returns the control edges into a company. The returned
// slice is shared and must not be mutated.
func (g *OwnershipGraph) IncomingEdges(companyID string) []*ControlEdge {
	return g.incoming[companyID]
}

// Companies returns all company IDs in sorted order
func (g *OwnershipGraph) Companies() []string {
	return g.companies
}

// Nodes iterates over all nodes in unspecified order
func (g *OwnershipGraph) Nodes(fn func(*Node) bool) {
	for _, n := range g.nodes {
		if !fn(n) {
			return
		}
	}
}
