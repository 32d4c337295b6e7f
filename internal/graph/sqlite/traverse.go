// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package sqlite

import (
	"context"

	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// EdgesOut returns ids of edges where nodeID is the source of a directed
// edge, or either endpoint of an undirected edge. Each matching edge row
// yields exactly one id, so self-loops never repeat within a result.
func (s *Store) EdgesOut(ctx context.Context, nodeID string) ([]string, error) {
	const query = `
SELECT id FROM edges
WHERE from_node = ? OR (directed = 0 AND to_node = ?)
ORDER BY created_at ASC, id ASC`
	return s.queryEdgeIDs(ctx, query, nodeID)
}

// EdgesIn returns ids of edges where nodeID is the target of a directed
// edge, or either endpoint of an undirected edge.
func (s *Store) EdgesIn(ctx context.Context, nodeID string) ([]string, error) {
	const query = `
SELECT id FROM edges
WHERE to_node = ? OR (directed = 0 AND from_node = ?)
ORDER BY created_at ASC, id ASC`
	return s.queryEdgeIDs(ctx, query, nodeID)
}

func (s *Store) queryEdgeIDs(ctx context.Context, query, nodeID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, nodeID, nodeID)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "traversing edges for node %s", nodeID)
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, gerr.Wrap(err, gerr.CodeDBQueryFailure, "scanning edge id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "iterating edges for node %s", nodeID)
	}
	return ids, nil
}
