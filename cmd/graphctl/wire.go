// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"context"

	"github.com/spf13/viper"

	"github.com/graphctl-dev/graphctl/internal/config"
	"github.com/graphctl-dev/graphctl/internal/db"
	"github.com/graphctl-dev/graphctl/internal/graph"
	"github.com/graphctl-dev/graphctl/internal/graph/sqlite"
	"github.com/graphctl-dev/graphctl/internal/secrets"
)

// secretStoreFactory creates a secrets.Store. It is a package-level
// variable so tests can substitute an in-memory implementation.
var secretStoreFactory = func() secrets.Store {
	return secrets.NewKeyringStore()
}

// loadConfig resolves the effective configuration from the global viper.
func loadConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper())
}

// openGraph opens the configured store, brings it to the expected schema,
// and returns the graph repository. The caller owns Close.
func openGraph(ctx context.Context) (graph.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	handle, err := db.Open(ctx, cfg, secretStoreFactory())
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(ctx, handle)
	if err != nil {
		_ = handle.Close()
		return nil, err
	}

	return store, nil
}
