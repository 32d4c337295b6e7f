// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package sqlite

import (
	"context"
	"database/sql"

	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// migrationKey is the _meta row holding the applied schema version.
const migrationKey = "migration_count"

// A migration is one versioned, idempotent schema step. Steps are applied
// strictly in ascending order, each inside its own transaction together
// with the version bump, so a failed step leaves the version at the last
// completed one.
type migration struct {
	version int64
	ddl     string
}

var migrations = []migration{
	{
		version: 1,
		ddl: `
CREATE TABLE IF NOT EXISTS nodes (
	id         TEXT PRIMARY KEY,
	labels     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS node_props (
	node_id    TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (node_id, key)
);

CREATE TABLE IF NOT EXISTS edges (
	id         TEXT PRIMARY KEY,
	edge_type  TEXT NOT NULL,
	from_node  TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	to_node    TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	directed   INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS edge_props (
	edge_id    TEXT NOT NULL REFERENCES edges(id) ON DELETE CASCADE,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (edge_id, key)
);
`,
	},
}

// EnsureSchema brings db to the expected table layout. Calling it again
// against the same storage file is a no-op after the first successful run;
// an already-applied step is never re-run.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	applied, err := migrationVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= applied {
			continue
		}

		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
		applied = m.version
	}

	return nil
}

// applyMigration runs one step's DDL and persists its version in a single
// transaction.
func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeDBMigrationFailure, "beginning tx for migration %d", m.version)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, m.ddl); err != nil {
		return gerr.Wrapf(err, gerr.CodeDBMigrationFailure, "applying migration %d", m.version)
	}

	const bump = `UPDATE _meta SET val_int = ? WHERE key = ?`
	if _, err := tx.ExecContext(ctx, bump, m.version, migrationKey); err != nil {
		return gerr.Wrapf(err, gerr.CodeDBMigrationFailure, "recording migration %d", m.version)
	}

	if err := tx.Commit(); err != nil {
		return gerr.Wrapf(err, gerr.CodeDBMigrationFailure, "committing migration %d", m.version)
	}

	return nil
}

// migrationVersion reads the stored version, creating the _meta table and
// the zero-valued row on first use.
func migrationVersion(ctx context.Context, db *sql.DB) (int64, error) {
	const metaDDL = `
CREATE TABLE IF NOT EXISTS _meta (
	key     TEXT PRIMARY KEY,
	val_txt TEXT,
	val_int INTEGER
);`
	if _, err := db.ExecContext(ctx, metaDDL); err != nil {
		return 0, gerr.Wrap(err, gerr.CodeDBMigrationFailure, "creating meta table")
	}

	var count int64
	err := db.QueryRowContext(ctx, `SELECT val_int FROM _meta WHERE key = ?`, migrationKey).Scan(&count)
	if err == nil {
		return count, nil
	}
	if err != sql.ErrNoRows {
		return 0, gerr.Wrap(err, gerr.CodeDBMigrationFailure, "reading migration count")
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO _meta (key, val_int) VALUES (?, 0)`, migrationKey); err != nil {
		return 0, gerr.Wrap(err, gerr.CodeDBMigrationFailure, "initialising migration count")
	}
	return 0, nil
}

// MigrationVersion reports the schema version applied to the store.
func (s *Store) MigrationVersion(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT val_int FROM _meta WHERE key = ?`, migrationKey).Scan(&count)
	if err != nil {
		return 0, gerr.Wrap(err, gerr.CodeDBQueryFailure, "reading migration count")
	}
	return count, nil
}
