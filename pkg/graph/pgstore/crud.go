package pgstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dd0wney/cluso-ubo/pkg/graph"
)

// nodeAttrs is the JSONB envelope for kind-specific node attributes
type nodeAttrs struct {
	Company      *graph.CompanyAttrs      `json:"company,omitempty"`
	Person       *graph.PersonAttrs       `json:"person,omitempty"`
	Organization *graph.OrganizationAttrs `json:"organization,omitempty"`
	Address      *graph.AddressAttrs      `json:"address,omitempty"`
}

// SaveNodes upserts a batch of nodes by ID
func (s *Store) SaveNodes(ctx context.Context, nodes []graph.Node) error {
	query := `
		INSERT INTO ubo_nodes (id, kind, name, attrs)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET kind = $2, name = $3, attrs = $4
	`

	batch := &pgx.Batch{}
	for i := range nodes {
		n := &nodes[i]
		attrsJSON, err := json.Marshal(nodeAttrs{
			Company:      n.Company,
			Person:       n.Person,
			Organization: n.Organization,
			Address:      n.Address,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal attrs for node %s: %w", n.ID, err)
		}
		batch.Queue(query, n.ID, int16(n.Kind), n.Name, attrsJSON)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save nodes: %w", err)
	}
	return nil
}

// SaveEdges persists a batch of raw edge records. Exact duplicates are
// ignored; the descriptor is stored untouched for pkg/control to parse
// at load time.
func (s *Store) SaveEdges(ctx context.Context, edges []graph.EdgeRecord) error {
	query := `
		INSERT INTO ubo_edges (controller_id, company_id, descriptor)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, e := range edges {
		batch.Queue(query, e.ControllerID, e.CompanyID, e.Descriptor)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save edges: %w", err)
	}
	return nil
}

// LoadAll returns every persisted node and edge record
func (s *Store) LoadAll(ctx context.Context) ([]graph.Node, []graph.EdgeRecord, error) {
	nodes, err := s.loadNodes(ctx)
	if err != nil {
		return nil, nil, err
	}
	edges, err := s.loadEdges(ctx)
	if err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

func (s *Store) loadNodes(ctx context.Context) ([]graph.Node, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, kind, name, attrs FROM ubo_nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load nodes: %w", err)
	}
	defer rows.Close()

	nodes := make([]graph.Node, 0)
	for rows.Next() {
		var (
			n         graph.Node
			kind      int16
			attrsJSON []byte
		)
		if err := rows.Scan(&n.ID, &kind, &n.Name, &attrsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		n.Kind = graph.Kind(kind)

		if len(attrsJSON) > 0 {
			var attrs nodeAttrs
			if err := json.Unmarshal(attrsJSON, &attrs); err != nil {
				return nil, fmt.Errorf("failed to unmarshal attrs for node %s: %w", n.ID, err)
			}
			n.Company = attrs.Company
			n.Person = attrs.Person
			n.Organization = attrs.Organization
			n.Address = attrs.Address
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

func (s *Store) loadEdges(ctx context.Context) ([]graph.EdgeRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT controller_id, company_id, descriptor FROM ubo_edges ORDER BY controller_id, company_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load edges: %w", err)
	}
	defer rows.Close()

	edges := make([]graph.EdgeRecord, 0)
	for rows.Next() {
		var e graph.EdgeRecord
		if err := rows.Scan(&e.ControllerID, &e.CompanyID, &e.Descriptor); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
