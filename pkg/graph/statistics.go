package graph

// Statistics summarizes the loaded graph
type Statistics struct {
	NodeCount    int
	EdgeCount    int
	CompanyCount int
	KindCounts   map[Kind]int
}

// GetStatistics computes summary counts over the graph
func (g *OwnershipGraph) GetStatistics() Statistics {
	stats := Statistics{
		NodeCount:    len(g.nodes),
		EdgeCount:    g.edgeCount,
		CompanyCount: len(g.companies),
		KindCounts:   make(map[Kind]int),
	}
	for _, n := range g.nodes {
		stats.KindCounts[n.Kind]++
	}
	return stats
}
