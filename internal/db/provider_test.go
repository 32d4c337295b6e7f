// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphctl-dev/graphctl/internal/config"
	"github.com/graphctl-dev/graphctl/internal/db"
	"github.com/graphctl-dev/graphctl/internal/graph/sqlite"
	"github.com/graphctl-dev/graphctl/internal/secrets"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

func TestOpenLocal(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DataDir: t.TempDir(),
		DB:      config.StoreConfig{Type: config.StoreTypeLocal},
	}

	handle, err := db.Open(ctx, cfg, secrets.NewMemoryStore())
	require.NoError(t, err)
	defer handle.Close()

	// The handle is usable by the migration manager as-is.
	require.NoError(t, sqlite.EnsureSchema(ctx, handle))
}

func TestOpenRemoteMissingToken(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DataDir: t.TempDir(),
		DB: config.StoreConfig{
			Type:      config.StoreTypeRemoteOnly,
			RemoteURL: "libsql://example.turso.io",
		},
	}

	_, err := db.Open(ctx, cfg, secrets.NewMemoryStore())
	require.Error(t, err)
	assert.True(t, gerr.IsConnection(err))
}

func TestOpenUnknownType(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DataDir: t.TempDir(),
		DB:      config.StoreConfig{Type: "weird"},
	}

	_, err := db.Open(ctx, cfg, secrets.NewMemoryStore())
	require.Error(t, err)
	assert.True(t, gerr.IsValidation(err))
}
