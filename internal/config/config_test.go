// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphctl-dev/graphctl/internal/config"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.StoreTypeLocal, cfg.DB.Type)
	assert.False(t, cfg.DB.EncryptReplica)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graphctl.yaml")
	content := `
data_dir: /tmp/graphctl-test
db:
  type: remote-with-replica
  remote_url: libsql://example.turso.io
  encrypt_replica: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/graphctl-test", cfg.DataDir)
	assert.Equal(t, config.StoreTypeRemoteWithReplica, cfg.DB.Type)
	assert.Equal(t, "libsql://example.turso.io", cfg.DB.RemoteURL)
	assert.True(t, cfg.DB.EncryptReplica)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, gerr.HasCode(err, gerr.CodeConfigLoadReadFailure))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "local ok",
			cfg:  config.Config{DataDir: "/tmp/x", DB: config.StoreConfig{Type: config.StoreTypeLocal}},
		},
		{
			name: "remote requires url",
			cfg: config.Config{
				DataDir: "/tmp/x",
				DB:      config.StoreConfig{Type: config.StoreTypeRemoteOnly},
			},
			wantErr: true,
		},
		{
			name: "remote with url ok",
			cfg: config.Config{
				DataDir: "/tmp/x",
				DB:      config.StoreConfig{Type: config.StoreTypeRemoteOnly, RemoteURL: "libsql://db"},
			},
		},
		{
			name: "replica with url ok",
			cfg: config.Config{
				DataDir: "/tmp/x",
				DB: config.StoreConfig{
					Type:           config.StoreTypeRemoteWithReplica,
					RemoteURL:      "libsql://db",
					EncryptReplica: true,
				},
			},
		},
		{
			name: "encrypt without local file rejected",
			cfg: config.Config{
				DataDir: "/tmp/x",
				DB: config.StoreConfig{
					Type:           config.StoreTypeRemoteOnly,
					RemoteURL:      "libsql://db",
					EncryptReplica: true,
				},
			},
			wantErr: true,
		},
		{
			name:    "unknown type rejected",
			cfg:     config.Config{DataDir: "/tmp/x", DB: config.StoreConfig{Type: "weird"}},
			wantErr: true,
		},
		{
			name:    "empty data dir rejected",
			cfg:     config.Config{DB: config.StoreConfig{Type: config.StoreTypeLocal}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, gerr.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDBFilePaths(t *testing.T) {
	cfg := config.Config{DataDir: "/srv/graphctl"}
	assert.Equal(t, filepath.Join("/srv/graphctl", "data"), cfg.DBDir())
	assert.Equal(t, filepath.Join("/srv/graphctl", "data", "graph.db"), cfg.DBFile())
}
