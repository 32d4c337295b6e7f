// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

// Package db is the connection provider: it opens a ready-to-use database
// handle for the configured store topology. The graph core consumes the
// handle without knowing which topology backs it.
package db

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
	golibsql "github.com/tursodatabase/go-libsql"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/graphctl-dev/graphctl/internal/config"
	"github.com/graphctl-dev/graphctl/internal/secrets"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// localDSNParams enables WAL, a busy timeout, and foreign keys on local
// SQLite files.
const localDSNParams = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// Open returns an open, pinged database handle for cfg. Remote topologies
// read their auth token (and, for encrypted replicas, the encryption key)
// from sec. The caller owns Close.
func Open(ctx context.Context, cfg *config.Config, sec secrets.Store) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.DB.Type {
	case config.StoreTypeLocal:
		db, err = openLocal(cfg)
	case config.StoreTypeRemoteOnly:
		db, err = openRemote(cfg, sec)
	case config.StoreTypeRemoteWithReplica:
		db, err = openReplica(cfg, sec)
	default:
		return nil, gerr.New(gerr.CodeConfigValidateInvalidValue,
			"unknown store type", gerr.Field("db_type", cfg.DB.Type))
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, gerr.Wrap(err, gerr.CodeDBConnectionFailure, "pinging database")
	}

	slog.Debug("database opened", "type", cfg.DB.Type)
	return db, nil
}

func openLocal(cfg *config.Config) (*sql.DB, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", cfg.DBFile()+localDSNParams)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBConnectionFailure, "opening local database %s", cfg.DBFile())
	}
	return db, nil
}

func openRemote(cfg *config.Config, sec secrets.Store) (*sql.DB, error) {
	token, err := sec.Retrieve(secrets.ServiceName, secrets.KeyDBAuthToken)
	if err != nil {
		return nil, gerr.Wrap(err, gerr.CodeDBConnectionFailure, "reading database auth token")
	}

	dsn, err := remoteDSN(cfg.DB.RemoteURL, token)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBConnectionFailure, "opening remote database %s", cfg.DB.RemoteURL)
	}
	return db, nil
}

func openReplica(cfg *config.Config, sec secrets.Store) (*sql.DB, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	token, err := sec.Retrieve(secrets.ServiceName, secrets.KeyDBAuthToken)
	if err != nil {
		return nil, gerr.Wrap(err, gerr.CodeDBConnectionFailure, "reading database auth token")
	}

	opts := []golibsql.Option{golibsql.WithAuthToken(token)}
	if cfg.DB.EncryptReplica {
		key, err := sec.Retrieve(secrets.ServiceName, secrets.KeyDBEncryptionKey)
		if err != nil {
			return nil, gerr.Wrap(err, gerr.CodeDBConnectionFailure, "reading replica encryption key")
		}
		opts = append(opts, golibsql.WithEncryption(key))
	}

	connector, err := golibsql.NewEmbeddedReplicaConnector(cfg.DBFile(), cfg.DB.RemoteURL, opts...)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBConnectionFailure,
			"opening embedded replica of %s", cfg.DB.RemoteURL)
	}

	return sql.OpenDB(connector), nil
}

// remoteDSN appends the auth token to the remote URL as a query parameter.
func remoteDSN(remoteURL, token string) (string, error) {
	u, err := url.Parse(remoteURL)
	if err != nil {
		return "", gerr.Wrapf(err, gerr.CodeConfigValidateInvalidValue, "parsing remote URL %s", remoteURL)
	}

	q := u.Query()
	q.Set("authToken", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
