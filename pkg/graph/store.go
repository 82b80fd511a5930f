package graph

import (
	"context"
	"sort"
	"sync"
)

// Store is the persistence surface for graph records. The engine never
// assumes a query language of a backing store, only bulk-save and
// bulk-load of the typed record forms; the in-memory OwnershipGraph is
// always rebuilt from those records at the start of a run. pgstore
// provides the PostgreSQL implementation.
type Store interface {
	// SaveNodes persists a batch of nodes, upserting by ID
	SaveNodes(ctx context.Context, nodes []Node) error
	// SaveEdges persists a batch of raw edge records
	SaveEdges(ctx context.Context, edges []EdgeRecord) error
	// LoadAll returns every persisted node and edge record
	LoadAll(ctx context.Context) ([]Node, []EdgeRecord, error)
	// Close releases the store's resources
	Close() error
}

// BuildFromStore loads all records from a backing store and assembles the
// in-memory graph for a run.
func BuildFromStore(ctx context.Context, store Store) (*OwnershipGraph, *LoadReport, error) {
	nodes, edges, err := store.LoadAll(ctx)
	if err != nil {
		return nil, nil, &GraphError{Op: "BuildFromStore", Entity: "store", Cause: err}
	}
	g, report := Load(nodes, edges)
	return g, report, nil
}

// MemStore is the in-memory Store used when no database is configured.
// Saves upsert by the same keys the PostgreSQL store uses, so the two
// are interchangeable in tests.
type MemStore struct {
	mu    sync.Mutex
	nodes map[string]Node
	edges map[string]EdgeRecord
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{
		nodes: make(map[string]Node),
		edges: make(map[string]EdgeRecord),
	}
}

// SaveNodes upserts a batch of nodes by ID
func (s *MemStore) SaveNodes(_ context.Context, nodes []Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range nodes {
		s.nodes[n.ID] = n
	}
	return nil
}

// SaveEdges persists a batch of raw edge records, ignoring exact duplicates
func (s *MemStore) SaveEdges(_ context.Context, edges []EdgeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range edges {
		key := e.ControllerID + "\x1f" + e.CompanyID + "\x1f" + e.Descriptor
		s.edges[key] = e
	}
	return nil
}

// LoadAll returns every stored node and edge record in sorted order
func (s *MemStore) LoadAll(_ context.Context) ([]Node, []EdgeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	edges := make([]EdgeRecord, 0, len(s.edges))
	keys := make([]string, 0, len(s.edges))
	for k := range s.edges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		edges = append(edges, s.edges[k])
	}
	return nodes, edges, nil
}

// Close is a no-op for the in-memory store
func (s *MemStore) Close() error {
	return nil
}

var _ Store = (*MemStore)(nil)
