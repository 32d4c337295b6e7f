// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/graphctl-dev/graphctl/internal/graph"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// CreateNode generates an id and timestamp, then inserts the node row and
// all property rows in one transaction. Any failure leaves no node behind.
func (s *Store) CreateNode(ctx context.Context, params graph.CreateNodeParams) (*graph.Node, error) {
	labels, err := normalizeLabels(params.Labels)
	if err != nil {
		return nil, err
	}
	props, err := normalizeProps(params.Props)
	if err != nil {
		return nil, err
	}

	id := graph.NewID(graph.NodeIDPrefix)
	now := time.Now().UTC()
	sqlNow := formatTime(now)

	labelsJSON, err := encodeLabels(labels)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "beginning tx for node %s", id)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertNode = `INSERT INTO nodes (id, labels, created_at, updated_at) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertNode, id, labelsJSON, sqlNow, sqlNow); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "inserting node %s", id)
	}

	if err := s.nodeProps.insert(ctx, tx, id, props, sqlNow); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "committing node %s", id)
	}

	return &graph.Node{
		ID:        id,
		Labels:    labels,
		Props:     propsToMap(props),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetNode fetches a node by id. Properties are populated only when
// withProps is set.
func (s *Store) GetNode(ctx context.Context, id string, withProps bool) (*graph.Node, error) {
	return s.getNode(ctx, s.db, id, withProps)
}

func (s *Store) getNode(ctx context.Context, q querier, id string, withProps bool) (*graph.Node, error) {
	const query = `SELECT id, labels, created_at, updated_at FROM nodes WHERE id = ?`

	var n graph.Node
	var labelsJSON, createdAt, updatedAt string
	err := q.QueryRowContext(ctx, query, id).Scan(&n.ID, &labelsJSON, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, gerr.New(gerr.CodeGraphNodeNotFound, "node not found", gerr.FieldNodeID(id))
	}
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "getting node %s", id)
	}

	if n.Labels, err = decodeLabels(labelsJSON); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "decoding labels for node %s", id)
	}
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	if withProps {
		if n.Props, err = s.nodeProps.load(ctx, q, id); err != nil {
			return nil, err
		}
	}

	return &n, nil
}

// ListNodes returns all nodes with properties populated. Properties are
// fetched per node, which is fine at this store's scale.
func (s *Store) ListNodes(ctx context.Context) ([]*graph.Node, error) {
	const query = `SELECT id, labels, created_at, updated_at FROM nodes ORDER BY created_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, gerr.Wrap(err, gerr.CodeDBQueryFailure, "listing nodes")
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	var nodes []*graph.Node
	for rows.Next() {
		var n graph.Node
		var labelsJSON, createdAt, updatedAt string
		if err := rows.Scan(&n.ID, &labelsJSON, &createdAt, &updatedAt); err != nil {
			return nil, gerr.Wrap(err, gerr.CodeDBQueryFailure, "scanning node row")
		}
		if n.Labels, err = decodeLabels(labelsJSON); err != nil {
			return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "decoding labels for node %s", n.ID)
		}
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		nodes = append(nodes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, gerr.Wrap(err, gerr.CodeDBQueryFailure, "iterating node rows")
	}

	for _, n := range nodes {
		if n.Props, err = s.nodeProps.load(ctx, s.db, n.ID); err != nil {
			return nil, err
		}
	}

	return nodes, nil
}

// NodeExists reports whether a node row with the given id exists. It has no
// side effects.
func (s *Store) NodeExists(ctx context.Context, id string) (bool, error) {
	return s.nodeExists(ctx, s.db, id)
}

func (s *Store) nodeExists(ctx context.Context, q querier, id string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM nodes WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "checking node %s", id)
	}
	return exists, nil
}

// UpdateNode applies label and property mutations in one transaction.
// Adding an existing label or removing an absent one is a no-op, not an
// error. updated_at is refreshed whenever a mutation is requested.
func (s *Store) UpdateNode(ctx context.Context, id string, params graph.UpdateNodeParams) (*graph.Node, error) {
	setProps, err := normalizeProps(params.SetProps)
	if err != nil {
		return nil, err
	}
	removeProps, err := normalizeKeys(params.RemoveProps)
	if err != nil {
		return nil, err
	}
	addLabels, err := normalizeLabels(params.AddLabels)
	if err != nil {
		return nil, err
	}

	if len(addLabels) == 0 && len(params.RemoveLabels) == 0 && len(setProps) == 0 && len(removeProps) == 0 {
		return s.GetNode(ctx, id, true)
	}

	now := formatTime(time.Now().UTC())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "beginning tx for node update %s", id)
	}
	defer tx.Rollback() //nolint:errcheck

	var labelsJSON string
	err = tx.QueryRowContext(ctx, `SELECT labels FROM nodes WHERE id = ?`, id).Scan(&labelsJSON)
	if err == sql.ErrNoRows {
		return nil, gerr.New(gerr.CodeGraphNodeNotFound, "node not found", gerr.FieldNodeID(id))
	}
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "getting node %s for update", id)
	}

	labels, err := decodeLabels(labelsJSON)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "decoding labels for node %s", id)
	}
	labels = applyLabelChanges(labels, addLabels, params.RemoveLabels)

	newLabelsJSON, err := encodeLabels(labels)
	if err != nil {
		return nil, err
	}

	const update = `UPDATE nodes SET labels = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, update, newLabelsJSON, now, id); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "updating node %s", id)
	}

	if err := s.nodeProps.upsert(ctx, tx, id, setProps, now); err != nil {
		return nil, err
	}
	if err := s.nodeProps.remove(ctx, tx, id, removeProps); err != nil {
		return nil, err
	}

	node, err := s.getNode(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "committing node update %s", id)
	}

	return node, nil
}

// DeleteNode removes the node row and cascades to its property rows and to
// all edges (and their property rows) that reference it, in one
// transaction. The cascade is explicit so it does not depend on the driver
// honouring the foreign-key pragma.
func (s *Store) DeleteNode(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "beginning tx for node delete %s", id)
	}
	defer tx.Rollback() //nolint:errcheck

	const deleteEdgeProps = `
DELETE FROM edge_props WHERE edge_id IN (
	SELECT id FROM edges WHERE from_node = ? OR to_node = ?
)`
	if _, err := tx.ExecContext(ctx, deleteEdgeProps, id, id); err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "deleting edge properties for node %s", id)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM edges WHERE from_node = ? OR to_node = ?`, id, id); err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "deleting edges for node %s", id)
	}

	if err := s.nodeProps.removeAll(ctx, tx, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "deleting node %s", id)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "checking rows for node %s", id)
	}
	if rows == 0 {
		return gerr.New(gerr.CodeGraphNodeNotFound, "node not found", gerr.FieldNodeID(id))
	}

	if err := tx.Commit(); err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "committing node delete %s", id)
	}
	return nil
}

// normalizeLabels trims labels, rejects empty ones, and drops duplicates
// while preserving first-occurrence order.
func normalizeLabels(labels []string) ([]string, error) {
	if len(labels) == 0 {
		return []string{}, nil
	}

	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		label := strings.TrimSpace(l)
		if label == "" {
			return nil, gerr.New(gerr.CodeGraphInputInvalid, "label must not be empty")
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out, nil
}

// applyLabelChanges appends absent labels in add order and filters removed
// ones, keeping insertion order for the rest.
func applyLabelChanges(labels, add, remove []string) []string {
	removed := make(map[string]struct{}, len(remove))
	for _, l := range remove {
		removed[strings.TrimSpace(l)] = struct{}{}
	}

	present := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels)+len(add))
	for _, l := range labels {
		if _, drop := removed[l]; drop {
			continue
		}
		present[l] = struct{}{}
		out = append(out, l)
	}
	for _, l := range add {
		if _, drop := removed[l]; drop {
			continue
		}
		if _, dup := present[l]; dup {
			continue
		}
		present[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// encodeLabels serialises labels to the JSON array stored in the labels
// column.
func encodeLabels(labels []string) (string, error) {
	b, err := json.Marshal(labels)
	if err != nil {
		return "", gerr.Wrap(err, gerr.CodeGraphInputInvalid, "encoding labels")
	}
	return string(b), nil
}

func decodeLabels(raw string) ([]string, error) {
	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}
