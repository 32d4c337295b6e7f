// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package secrets

import (
	"encoding/json"
	"errors"
	"slices"

	"github.com/zalando/go-keyring"

	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// indexKey names the keyring entry holding the JSON list of stored key
// names for a service. go-keyring cannot enumerate entries, so List reads
// this sidecar entry instead.
const indexKey = "::keys-index"

// KeyringStore keeps secrets in the OS keyring: Keychain on macOS,
// secret-service over D-Bus on Linux, Credential Manager on Windows.
type KeyringStore struct{}

var _ Store = (*KeyringStore)(nil)

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Store(service, key, value string) error {
	if err := validateRef(service, key); err != nil {
		return err
	}

	if err := keyring.Set(service, key, value); err != nil {
		return gerr.Wrapf(err, gerr.CodeSecretStoreFailure, "storing secret %s/%s", service, key)
	}

	keys, err := s.readIndex(service)
	if err != nil {
		return err
	}
	if slices.Contains(keys, key) {
		return nil
	}
	return s.writeIndex(service, append(keys, key))
}

func (s *KeyringStore) Retrieve(service, key string) (string, error) {
	if err := validateRef(service, key); err != nil {
		return "", err
	}

	val, err := keyring.Get(service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", gerr.Errorf(gerr.CodeSecretNotFound, "secret %s/%s not found", service, key)
	}
	if err != nil {
		return "", gerr.Wrapf(err, gerr.CodeSecretStoreFailure, "retrieving secret %s/%s", service, key)
	}
	return val, nil
}

func (s *KeyringStore) Delete(service, key string) error {
	if err := validateRef(service, key); err != nil {
		return err
	}

	err := keyring.Delete(service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return gerr.Errorf(gerr.CodeSecretNotFound, "secret %s/%s not found", service, key)
	}
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeSecretDeleteFailure, "deleting secret %s/%s", service, key)
	}

	keys, err := s.readIndex(service)
	if err != nil {
		return err
	}
	return s.writeIndex(service, slices.DeleteFunc(keys, func(k string) bool { return k == key }))
}

func (s *KeyringStore) List(service string) ([]string, error) {
	return s.readIndex(service)
}

func (s *KeyringStore) readIndex(service string) ([]string, error) {
	raw, err := keyring.Get(service, service+indexKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeSecretListFailure, "loading key index for %s", service)
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeSecretListFailure, "decoding key index for %s", service)
	}
	return keys, nil
}

func (s *KeyringStore) writeIndex(service string, keys []string) error {
	if len(keys) == 0 {
		// A missing index and an empty one are equivalent.
		err := keyring.Delete(service, service+indexKey)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return gerr.Wrapf(err, gerr.CodeSecretListFailure, "clearing key index for %s", service)
		}
		return nil
	}

	data, err := json.Marshal(keys)
	if err != nil {
		return gerr.Wrapf(err, gerr.CodeSecretListFailure, "encoding key index for %s", service)
	}
	if err := keyring.Set(service, service+indexKey, string(data)); err != nil {
		return gerr.Wrapf(err, gerr.CodeSecretListFailure, "saving key index for %s", service)
	}
	return nil
}

func validateRef(service, key string) error {
	if service == "" {
		return gerr.New(gerr.CodeSecretInvalidInput, "secret service must not be empty")
	}
	if key == "" {
		return gerr.New(gerr.CodeSecretInvalidInput, "secret key must not be empty")
	}
	return nil
}
