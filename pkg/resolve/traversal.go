package resolve

import (
	"github.com/dd0wney/cluso-ubo/pkg/graph"
)

// frame is one level of the explicit DFS stack: a node on the current
// path and a cursor into its incoming control edges.
type frame struct {
	nodeID string
	edges  []*graph.ControlEdge
	next   int
}

// enumerate walks backward from the target company along incoming control
// edges and returns every path that terminates at an ultimate controller
// (a person, or any node with no incoming control edge) within MaxDepth
// hops. The traversal uses an explicit stack and a visited set scoped to
// the current path, so deep or adversarially cyclic graphs can neither
// blow the call stack nor grow memory beyond the active path.
//
// A path that revisits a node already on the current path is abandoned,
// not an error; circular ownership is the cycle detector's finding to
// report, not a traversal failure.
func (r *Resolver) enumerate(companyID string) (paths []Path, visits int, partial bool) {
	stack := []frame{{nodeID: companyID, edges: r.graph.IncomingEdges(companyID)}}
	onPath := map[string]bool{companyID: true}
	// edgePath[i] is the edge taken from stack[i+1].nodeID into stack[i].nodeID
	edgePath := make([]*graph.ControlEdge, 0, r.cfg.MaxDepth)

	truncated := false

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.next >= len(f.edges) {
			stack = stack[:len(stack)-1]
			delete(onPath, f.nodeID)
			if len(edgePath) > 0 {
				edgePath = edgePath[:len(edgePath)-1]
			}
			continue
		}

		edge := f.edges[f.next]
		f.next++

		controllerID := edge.ControllerID
		if onPath[controllerID] {
			// Revisit on the current path: abandon this branch
			continue
		}

		visits++
		if visits > r.cfg.VisitBudget {
			return paths, visits, true
		}

		node, err := r.graph.Node(controllerID)
		if err != nil {
			// Load guarantees edge endpoints exist; skip defensively
			continue
		}

		ultimate := node.Kind == graph.KindPerson || len(r.graph.IncomingEdges(controllerID)) == 0
		depth := len(stack) // hops on the path including this edge

		if ultimate {
			paths = append(paths, buildPath(edgePath, edge, companyID))
			continue
		}

		if depth < r.cfg.MaxDepth {
			stack = append(stack, frame{nodeID: controllerID, edges: r.graph.IncomingEdges(controllerID)})
			onPath[controllerID] = true
			edgePath = append(edgePath, edge)
		} else {
			// Chain cut short of an ultimate controller: the company's
			// results are only partial
			truncated = true
		}
	}

	return paths, visits, truncated
}

// buildPath assembles a controller-first Path from the edges currently on
// the stack plus the terminal edge, composing ranges multiplicatively from
// the ultimate controller down to the target.
func buildPath(edgePath []*graph.ControlEdge, terminal *graph.ControlEdge, companyID string) Path {
	// edgePath runs target-outward; the full chain controller-first is the
	// terminal edge followed by edgePath reversed.
	chain := make([]*graph.ControlEdge, 0, len(edgePath)+1)
	chain = append(chain, terminal)
	for i := len(edgePath) - 1; i >= 0; i-- {
		chain = append(chain, edgePath[i])
	}

	nodes := make([]string, 0, len(chain)+1)
	nodes = append(nodes, chain[0].ControllerID)
	for _, e := range chain {
		nodes = append(nodes, e.CompanyID)
	}

	rng := chain[0].Range
	mixed := false
	for _, e := range chain[1:] {
		if e.Range.Kind != chain[0].Range.Kind {
			mixed = true
		}
		rng = rng.Compose(e.Range)
	}

	return Path{Nodes: nodes, Range: rng, Mixed: mixed}
}
