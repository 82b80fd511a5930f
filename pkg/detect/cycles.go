package detect

import (
	"sort"
	"strings"

	"github.com/dd0wney/cluso-ubo/pkg/graph"
)

// Three-color DFS marking
const (
	white = 0 // unvisited
	gray  = 1 // on the current DFS path
	black = 2 // fully explored
)

// dfsFrame is one level of the explicit DFS stack
type dfsFrame struct {
	nodeID string
	edges  []*graph.ControlEdge
	next   int
}

// FindCycles detects circular ownership loops. A back edge to a gray node
// closes a cycle; the loop is read off the active path, rotated to its
// lexicographically smallest node ID and de-duplicated, so each distinct
// loop is reported exactly once regardless of traversal entry point.
// Results are ordered by their normalized key for reproducibility.
func FindCycles(g *graph.OwnershipGraph) []CircularOwnership {
	ids := allNodeIDs(g)

	color := make(map[string]int, len(ids))
	seen := make(map[string]bool)
	findings := make([]CircularOwnership, 0)

	for _, start := range ids {
		if color[start] != white {
			continue
		}

		stack := []dfsFrame{{nodeID: start, edges: g.OutgoingEdges(start)}}
		color[start] = gray
		// path mirrors the stack's node sequence for cycle extraction
		path := []string{start}
		pathIndex := map[string]int{start: 0}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]

			if f.next >= len(f.edges) {
				color[f.nodeID] = black
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				delete(pathIndex, f.nodeID)
				continue
			}

			edge := f.edges[f.next]
			f.next++
			target := edge.CompanyID

			switch color[target] {
			case gray:
				// Back edge: the cycle is the path suffix from the target
				cycle := append([]string(nil), path[pathIndex[target]:]...)
				normalized := normalizeCycle(cycle)
				key := strings.Join(normalized, "\x1f")
				if !seen[key] {
					seen[key] = true
					findings = append(findings, CircularOwnership{Cycle: normalized})
				}
			case white:
				color[target] = gray
				pathIndex[target] = len(path)
				path = append(path, target)
				stack = append(stack, dfsFrame{nodeID: target, edges: g.OutgoingEdges(target)})
			}
			// black targets are forward/cross edges, no cycle
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		return strings.Join(findings[i].Cycle, "\x1f") < strings.Join(findings[j].Cycle, "\x1f")
	})
	return findings
}

// normalizeCycle rotates the cycle to start at its lexicographically
// smallest node ID, preserving edge direction
func normalizeCycle(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	smallest := 0
	for i, id := range cycle {
		if id < cycle[smallest] {
			smallest = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[smallest:]...)
	rotated = append(rotated, cycle[:smallest]...)
	return rotated
}

func allNodeIDs(g *graph.OwnershipGraph) []string {
	ids := make([]string, 0, g.GetStatistics().NodeCount)
	g.Nodes(func(n *graph.Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	sort.Strings(ids)
	return ids
}
