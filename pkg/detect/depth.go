package detect

import (
	"github.com/dd0wney/cluso-ubo/pkg/graph"
)

// FindDeepChains measures, for every company, the longest backward control
// chain to any ultimate controller, and flags companies whose depth
// exceeds threshold. One memoized post-order pass over the incoming
// adjacency keeps the cost near-linear in edges; edges closing a cycle
// (into a node still on the active path) are skipped rather than followed,
// so adversarially cyclic input costs bounded revisits, not divergence.
func FindDeepChains(g *graph.OwnershipGraph, threshold int) []DeepChain {
	depth := make(map[string]int)
	choice := make(map[string]*graph.ControlEdge)
	color := make(map[string]int)

	for _, id := range allNodeIDs(g) {
		if color[id] == white {
			measureDepth(g, id, depth, choice, color)
		}
	}

	findings := make([]DeepChain, 0)
	for _, companyID := range g.Companies() {
		d := depth[companyID]
		if d <= threshold {
			continue
		}
		findings = append(findings, DeepChain{
			CompanyID: companyID,
			Depth:     d,
			Chain:     rebuildChain(companyID, choice),
		})
	}
	return findings
}

// measureDepth runs an explicit-stack post-order DFS computing the longest
// backward depth of every node reachable from start
func measureDepth(
	g *graph.OwnershipGraph,
	start string,
	depth map[string]int,
	choice map[string]*graph.ControlEdge,
	color map[string]int,
) {
	stack := []dfsFrame{{nodeID: start, edges: g.IncomingEdges(start)}}
	color[start] = gray

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.next < len(f.edges) {
			controllerID := f.edges[f.next].ControllerID
			f.next++
			if color[controllerID] == white {
				color[controllerID] = gray
				stack = append(stack, dfsFrame{nodeID: controllerID, edges: g.IncomingEdges(controllerID)})
			}
			continue
		}

		// Post-order: every non-cycle controller is memoized by now
		best := 0
		var bestEdge *graph.ControlEdge
		for _, e := range f.edges {
			if color[e.ControllerID] != black {
				// Still gray: this edge closes a cycle, skip it
				continue
			}
			if d := depth[e.ControllerID] + 1; d > best {
				best = d
				bestEdge = e
			}
		}
		depth[f.nodeID] = best
		if bestEdge != nil {
			choice[f.nodeID] = bestEdge
		}
		color[f.nodeID] = black
		stack = stack[:len(stack)-1]
	}
}

// rebuildChain follows the per-node best edge upward from the company and
// returns the chain ordered ultimate-controller first
func rebuildChain(companyID string, choice map[string]*graph.ControlEdge) []string {
	reversed := []string{companyID}
	for current := companyID; ; {
		e, ok := choice[current]
		if !ok {
			break
		}
		current = e.ControllerID
		reversed = append(reversed, current)
	}

	chain := make([]string, len(reversed))
	for i, id := range reversed {
		chain[len(reversed)-1-i] = id
	}
	return chain
}
