package pgstore

import "context"

// migrate creates the necessary database tables
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS ubo_nodes (
		id TEXT PRIMARY KEY,
		kind SMALLINT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		attrs JSONB
	);

	CREATE INDEX IF NOT EXISTS idx_ubo_nodes_kind ON ubo_nodes(kind);

	CREATE TABLE IF NOT EXISTS ubo_edges (
		controller_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		descriptor TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (controller_id, company_id, descriptor)
	);

	CREATE INDEX IF NOT EXISTS idx_ubo_edges_company ON ubo_edges(company_id);
	CREATE INDEX IF NOT EXISTS idx_ubo_edges_controller ON ubo_edges(controller_id);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}
