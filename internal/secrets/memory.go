// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package secrets

import (
	"sort"
	"sync"

	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// MemoryStore implements Store in process memory. It exists for tests and
// for environments without an OS keyring.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]string // service -> key -> value
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string]string)}
}

func (s *MemoryStore) Store(service, key, value string) error {
	if service == "" || key == "" {
		return gerr.New(gerr.CodeSecretInvalidInput, "secret store: service and key must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[service] == nil {
		s.entries[service] = make(map[string]string)
	}
	s.entries[service][key] = value
	return nil
}

func (s *MemoryStore) Retrieve(service, key string) (string, error) {
	if service == "" || key == "" {
		return "", gerr.New(gerr.CodeSecretInvalidInput, "secret retrieve: service and key must not be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.entries[service][key]
	if !ok {
		return "", gerr.Errorf(gerr.CodeSecretNotFound, "secret %s/%s not found", service, key)
	}
	return val, nil
}

func (s *MemoryStore) Delete(service, key string) error {
	if service == "" || key == "" {
		return gerr.New(gerr.CodeSecretInvalidInput, "secret delete: service and key must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[service][key]; !ok {
		return gerr.Errorf(gerr.CodeSecretNotFound, "secret %s/%s not found", service, key)
	}
	delete(s.entries[service], key)
	return nil
}

func (s *MemoryStore) List(service string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries[service]))
	for k := range s.entries[service] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
