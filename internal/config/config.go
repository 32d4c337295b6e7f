// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package config

import (
	"os"
	"path/filepath"
	"strings"

	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
	"github.com/spf13/viper"
)

// Store topologies. The graph core is agnostic to which one the connection
// provider opens.
const (
	StoreTypeLocal             = "local"
	StoreTypeRemoteOnly        = "remote-only"
	StoreTypeRemoteWithReplica = "remote-with-replica"
)

// dbDirName and dbFileName locate the database file inside the data
// directory.
const (
	dbDirName  = "data"
	dbFileName = "graph.db"
)

// Config is the top-level graphctl configuration.
type Config struct {
	DataDir string      `mapstructure:"data_dir" yaml:"data_dir"`
	DB      StoreConfig `mapstructure:"db" yaml:"db"`
	Verbose bool        `mapstructure:"verbose" yaml:"verbose"`
}

// StoreConfig selects the backing store topology.
type StoreConfig struct {
	// Type is one of local, remote-only, remote-with-replica.
	Type string `mapstructure:"type" yaml:"type"`

	// RemoteURL is the remote database URL for the remote topologies.
	RemoteURL string `mapstructure:"remote_url" yaml:"remote_url,omitempty"`

	// EncryptReplica encrypts the local replica file with a key from the
	// secret store (remote-with-replica only).
	EncryptReplica bool `mapstructure:"encrypt_replica" yaml:"encrypt_replica"`
}

// SetDefaults registers configuration defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("db.type", StoreTypeLocal)
	v.SetDefault("db.remote_url", "")
	v.SetDefault("db.encrypt_replica", false)
	v.SetDefault("verbose", false)
}

// SetupEnv binds environment variables with the GRAPHCTL_ prefix, so e.g.
// GRAPHCTL_DB_TYPE overrides db.type.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("GRAPHCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// FromViper unmarshals and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, gerr.Wrap(err, gerr.CodeConfigValidateInvalidValue, "unmarshalling config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, gerr.Wrapf(err, gerr.CodeConfigLoadReadFailure, "reading config %s", path)
		}
	}

	return FromViper(v)
}

// Validate checks the configuration for logical errors.
func (c *Config) Validate() error {
	switch c.DB.Type {
	case StoreTypeLocal:
	case StoreTypeRemoteOnly, StoreTypeRemoteWithReplica:
		if c.DB.RemoteURL == "" {
			return gerr.New(gerr.CodeConfigValidateInvalidValue,
				"db.remote_url is required for remote store types",
				gerr.Field("db_type", c.DB.Type))
		}
	default:
		return gerr.New(gerr.CodeConfigValidateInvalidValue,
			"db.type must be local, remote-only, or remote-with-replica",
			gerr.Field("db_type", c.DB.Type))
	}

	if c.DB.EncryptReplica && c.DB.Type == StoreTypeRemoteOnly {
		return gerr.New(gerr.CodeConfigValidateInvalidValue,
			"db.encrypt_replica has no effect without a local file",
			gerr.Field("db_type", c.DB.Type))
	}

	if c.DataDir == "" {
		return gerr.New(gerr.CodeConfigValidateInvalidValue, "data_dir must not be empty")
	}

	return nil
}

// DBDir returns the directory holding the database files (main file, WAL,
// replica) inside the data directory.
func (c *Config) DBDir() string {
	return filepath.Join(c.DataDir, dbDirName)
}

// DBFile returns the path of the main database file.
func (c *Config) DBFile() string {
	return filepath.Join(c.DBDir(), dbFileName)
}

// EnsureDataDir creates the data and database directories if absent.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DBDir(), 0o700); err != nil {
		return gerr.Wrapf(err, gerr.CodeConfigWriteFailure, "creating data directory %s", c.DBDir())
	}
	return nil
}

// defaultDataDir is $HOME/.graphctl, falling back to the working directory
// when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".graphctl"
	}
	return filepath.Join(home, ".graphctl")
}
