// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package secrets

import (
	"crypto/rand"
	"encoding/hex"

	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// ServiceName is the keyring service under which graphctl stores secrets.
const ServiceName = "graphctl"

// Logical secret names used by the connection provider.
const (
	// KeyDBAuthToken is the remote database authentication token.
	KeyDBAuthToken = "db_auth_token"

	// KeyDBEncryptionKey is the local replica encryption key.
	KeyDBEncryptionKey = "db_encryption_key"
)

// Store provides secure secret storage operations. Production code uses the
// OS keyring; tests use the in-memory implementation. The graph core never
// reads or writes secrets itself; only the connection provider and the
// setup command do, through this capability.
type Store interface {
	// Store saves a secret value under the given service and key.
	Store(service, key, value string) error

	// Retrieve fetches the secret value for the given service and key.
	// Missing keys yield an error with CodeSecretNotFound.
	Retrieve(service, key string) (string, error)

	// Delete removes the secret for the given service and key.
	// Missing keys yield an error with CodeSecretNotFound.
	Delete(service, key string) error

	// List returns all key names stored under the given service.
	List(service string) ([]string, error)
}

// GenerateKeyHex returns n random bytes hex-encoded, for use as a replica
// encryption key.
func GenerateKeyHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", gerr.Wrap(err, gerr.CodeSecretStoreFailure, "generating random key")
	}
	return hex.EncodeToString(buf), nil
}
