// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package sqlite_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/graphctl-dev/graphctl/internal/graph"
	"github.com/graphctl-dev/graphctl/internal/graph/sqlite"
)

// testDir creates a temp directory for a test with cleanup registered.
func testDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "graphctl-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// testDBPath returns a temp SQLite database path.
func testDBPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(testDir(t), name+".db")
}

// openTestDB opens a plain database handle the way the connection provider
// does for local stores.
func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	require.NoError(t, err)
	return db
}

// openTestStore opens a migrated Store on a fresh temp database.
func openTestStore(t *testing.T, name string) *sqlite.Store {
	t.Helper()
	db := openTestDB(t, testDBPath(t, name))
	store, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// mustCreateNode creates a node and fails the test on error.
func mustCreateNode(t *testing.T, s *sqlite.Store, labels []string, props ...graph.Property) *graph.Node {
	t.Helper()
	node, err := s.CreateNode(context.Background(), graph.CreateNodeParams{
		Labels: labels,
		Props:  props,
	})
	require.NoError(t, err)
	return node
}
