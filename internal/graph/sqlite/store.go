// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

// Package sqlite implements the graph repositories on a SQLite-compatible
// database handle. The handle may be backed by a local file, a remote libSQL
// database, or an embedded replica; this package is agnostic to which.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/graphctl-dev/graphctl/internal/graph"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// Compile-time interface check.
var _ graph.Store = (*Store)(nil)

// Store implements graph.Store on a single SQL connection pool. Every
// multi-row write runs inside one transaction; failures roll back with no
// persisted change.
type Store struct {
	db        *sql.DB
	nodeProps propStore
	edgeProps propStore
}

// New brings db to the expected schema and returns a ready Store. The
// caller keeps ownership of connection setup (driver, pragmas, auth);
// Close releases the handle.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &Store{
		db:        db,
		nodeProps: propStore{table: "node_props", ownerCol: "node_id"},
		edgeProps: propStore{table: "edge_props", ownerCol: "edge_id"},
	}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// execer abstracts *sql.DB and *sql.Tx for shared write helpers.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// querier abstracts *sql.DB and *sql.Tx for shared read helpers.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// formatTime serialises a timestamp to RFC3339 UTC text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime deserialises a timestamp stored in the database.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "parsing stored timestamp %q", s)
	}
	return t, nil
}
