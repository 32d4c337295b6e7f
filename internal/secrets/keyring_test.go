// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/graphctl-dev/graphctl/internal/secrets"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

func init() {
	// Use the mock keyring for all tests so they don't touch the real OS keyring.
	keyring.MockInit()
}

func TestKeyringStoreRoundTrip(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "graphctl-test-roundtrip"

	require.NoError(t, ks.Store(svc, secrets.KeyDBAuthToken, "tok-123"))

	val, err := ks.Retrieve(svc, secrets.KeyDBAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", val)
}

func TestKeyringStoreRetrieveMissing(t *testing.T) {
	ks := secrets.NewKeyringStore()

	_, err := ks.Retrieve("graphctl-test-missing", "no-key")
	require.Error(t, err)
	assert.True(t, gerr.HasCode(err, gerr.CodeSecretNotFound))
}

func TestKeyringStoreDelete(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "graphctl-test-delete"

	require.NoError(t, ks.Store(svc, "temp", "value"))
	require.NoError(t, ks.Delete(svc, "temp"))

	_, err := ks.Retrieve(svc, "temp")
	require.Error(t, err)
	assert.True(t, gerr.HasCode(err, gerr.CodeSecretNotFound))

	err = ks.Delete(svc, "temp")
	require.Error(t, err)
	assert.True(t, gerr.HasCode(err, gerr.CodeSecretNotFound))
}

func TestKeyringStoreListTracksIndex(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "graphctl-test-list"

	keys, err := ks.List(svc)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, ks.Store(svc, secrets.KeyDBAuthToken, "tok"))
	require.NoError(t, ks.Store(svc, secrets.KeyDBEncryptionKey, "key"))
	// Overwriting must not duplicate the index entry.
	require.NoError(t, ks.Store(svc, secrets.KeyDBAuthToken, "tok2"))

	keys, err = ks.List(svc)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{secrets.KeyDBAuthToken, secrets.KeyDBEncryptionKey}, keys)

	require.NoError(t, ks.Delete(svc, secrets.KeyDBAuthToken))
	require.NoError(t, ks.Delete(svc, secrets.KeyDBEncryptionKey))

	keys, err = ks.List(svc)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestKeyringStoreRejectsEmptyInputs(t *testing.T) {
	ks := secrets.NewKeyringStore()

	assert.True(t, gerr.HasCode(ks.Store("", "k", "v"), gerr.CodeSecretInvalidInput))
	assert.True(t, gerr.HasCode(ks.Store("svc", "", "v"), gerr.CodeSecretInvalidInput))

	_, err := ks.Retrieve("svc", "")
	assert.True(t, gerr.HasCode(err, gerr.CodeSecretInvalidInput))

	assert.True(t, gerr.HasCode(ks.Delete("", "k"), gerr.CodeSecretInvalidInput))
}
