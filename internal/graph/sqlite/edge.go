// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/graphctl-dev/graphctl/internal/graph"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// CreateEdge verifies both endpoints reference existing nodes, then inserts
// the edge row and all property rows in one transaction. A missing endpoint
// fails before any row is written, so it is always a clean no-op.
func (s *Store) CreateEdge(ctx context.Context, params graph.CreateEdgeParams) (*graph.Edge, error) {
	edgeType := strings.TrimSpace(params.EdgeType)
	if edgeType == "" {
		return nil, gerr.New(gerr.CodeGraphInputInvalid, "edge type must not be empty")
	}
	props, err := normalizeProps(params.Props)
	if err != nil {
		return nil, err
	}

	if err := s.checkEndpoint(ctx, s.db, "from", params.FromNode); err != nil {
		return nil, err
	}
	if err := s.checkEndpoint(ctx, s.db, "to", params.ToNode); err != nil {
		return nil, err
	}

	id := graph.NewID(graph.EdgeIDPrefix)
	now := time.Now().UTC()
	sqlNow := formatTime(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "beginning tx for edge %s", id)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertEdge = `
INSERT INTO edges (id, edge_type, from_node, to_node, directed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertEdge,
		id, edgeType, params.FromNode, params.ToNode, boolToInt(params.Directed), sqlNow, sqlNow,
	); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "inserting edge %s", id)
	}

	if err := s.edgeProps.insert(ctx, tx, id, props, sqlNow); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "committing edge %s", id)
	}

	return &graph.Edge{
		ID:        id,
		EdgeType:  edgeType,
		FromNode:  params.FromNode,
		ToNode:    params.ToNode,
		Directed:  params.Directed,
		Props:     propsToMap(props),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetEdge fetches an edge by id. Properties are populated only when
// withProps is set.
func (s *Store) GetEdge(ctx context.Context, id string, withProps bool) (*graph.Edge, error) {
	return s.getEdge(ctx, s.db, id, withProps)
}

func (s *Store) getEdge(ctx context.Context, q querier, id string, withProps bool) (*graph.Edge, error) {
	const query = `
SELECT id, edge_type, from_node, to_node, directed, created_at, updated_at
FROM edges WHERE id = ?`

	var e graph.Edge
	var directed int
	var createdAt, updatedAt string
	err := q.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.EdgeType, &e.FromNode, &e.ToNode, &directed, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, gerr.New(gerr.CodeGraphEdgeNotFound, "edge not found", gerr.FieldEdgeID(id))
	}
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "getting edge %s", id)
	}

	e.Directed = directed != 0
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	if withProps {
		if e.Props, err = s.edgeProps.load(ctx, q, id); err != nil {
			return nil, err
		}
	}

	return &e, nil
}

// ListEdges returns all edges with properties populated.
func (s *Store) ListEdges(ctx context.Context) ([]*graph.Edge, error) {
	const query = `
SELECT id, edge_type, from_node, to_node, directed, created_at, updated_at
FROM edges ORDER BY created_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, gerr.Wrap(err, gerr.CodeDBQueryFailure, "listing edges")
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	var edges []*graph.Edge
	for rows.Next() {
		var e graph.Edge
		var directed int
		var createdAt, updatedAt string
		if err := rows.Scan(
			&e.ID, &e.EdgeType, &e.FromNode, &e.ToNode, &directed, &createdAt, &updatedAt,
		); err != nil {
			return nil, gerr.Wrap(err, gerr.CodeDBQueryFailure, "scanning edge row")
		}
		e.Directed = directed != 0
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		edges = append(edges, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, gerr.Wrap(err, gerr.CodeDBQueryFailure, "iterating edge rows")
	}

	for _, e := range edges {
		if e.Props, err = s.edgeProps.load(ctx, s.db, e.ID); err != nil {
			return nil, err
		}
	}

	return edges, nil
}

// EdgeExists reports whether an edge row with the given id exists.
func (s *Store) EdgeExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM edges WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "checking edge %s", id)
	}
	return exists, nil
}

// UpdateEdge applies type, endpoint, direction, and property mutations in
// one transaction. Changed endpoints are re-validated against existing
// nodes before any row is touched.
func (s *Store) UpdateEdge(ctx context.Context, id string, params graph.UpdateEdgeParams) (*graph.Edge, error) {
	setProps, err := normalizeProps(params.SetProps)
	if err != nil {
		return nil, err
	}
	removeProps, err := normalizeKeys(params.RemoveProps)
	if err != nil {
		return nil, err
	}
	if params.EdgeType != nil && strings.TrimSpace(*params.EdgeType) == "" {
		return nil, gerr.New(gerr.CodeGraphInputInvalid, "edge type must not be empty")
	}

	if params.EdgeType == nil && params.FromNode == nil && params.ToNode == nil &&
		params.Directed == nil && len(setProps) == 0 && len(removeProps) == 0 {
		return s.GetEdge(ctx, id, true)
	}

	if params.FromNode != nil {
		if err := s.checkEndpoint(ctx, s.db, "from", *params.FromNode); err != nil {
			return nil, err
		}
	}
	if params.ToNode != nil {
		if err := s.checkEndpoint(ctx, s.db, "to", *params.ToNode); err != nil {
			return nil, err
		}
	}

	now := formatTime(time.Now().UTC())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "beginning tx for edge update %s", id)
	}
	defer tx.Rollback() //nolint:errcheck

	current, err := s.getEdge(ctx, tx, id, false)
	if err != nil {
		return nil, err
	}

	edgeType := current.EdgeType
	if params.EdgeType != nil {
		edgeType = strings.TrimSpace(*params.EdgeType)
	}
	fromNode := current.FromNode
	if params.FromNode != nil {
		fromNode = *params.FromNode
	}
	toNode := current.ToNode
	if params.ToNode != nil {
		toNode = *params.ToNode
	}
	directed := current.Directed
	if params.Directed != nil {
		directed = *params.Directed
	}

	const update = `
UPDATE edges SET edge_type = ?, from_node = ?, to_node = ?, directed = ?, updated_at = ?
WHERE id = ?`
	if _, err := tx.ExecContext(ctx, update,
		edgeType, fromNode, toNode, boolToInt(directed), now, id,
	); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "updating edge %s", id)
	}

	if err := s.edgeProps.upsert(ctx, tx, id, setProps, now); err != nil {
		return nil, err
	}
	if err := s.edgeProps.remove(ctx, tx, id, removeProps); err != nil {
		return nil, err
	}

	edge, err := s.getEdge(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "committing edge update %s", id)
	}

	return edge, nil
}

// DeleteEdge removes the edge row and its property rows in one transaction.
// Node rows are untouched.
func (s *Store) DeleteEdge(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "beginning tx for edge delete %s", id)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := s.edgeProps.removeAll(ctx, tx, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM edges WHERE id = ?`, id)
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "deleting edge %s", id)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "checking rows for edge %s", id)
	}
	if rows == 0 {
		return gerr.New(gerr.CodeGraphEdgeNotFound, "edge not found", gerr.FieldEdgeID(id))
	}

	if err := tx.Commit(); err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "committing edge delete %s", id)
	}
	return nil
}

// checkEndpoint fails with a reference error naming the endpoint when the
// node id does not exist.
func (s *Store) checkEndpoint(ctx context.Context, q querier, endpoint, nodeID string) error {
	exists, err := s.nodeExists(ctx, q, nodeID)
	if err != nil {
		return err
	}
	if !exists {
		return gerr.New(gerr.CodeGraphEndpointNotFound,
			endpoint+" node does not exist",
			gerr.Field("endpoint", endpoint), gerr.FieldNodeID(nodeID))
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
