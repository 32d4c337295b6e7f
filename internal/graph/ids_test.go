// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package graph_test

import (
	"strings"
	"testing"

	"github.com/graphctl-dev/graphctl/internal/graph"
	"github.com/stretchr/testify/assert"
)

func TestNewIDFormat(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"node prefix", graph.NodeIDPrefix},
		{"edge prefix", graph.EdgeIDPrefix},
		{"long prefix", "node"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := graph.NewID(tt.prefix)
			assert.True(t, strings.HasPrefix(id, tt.prefix+"-"))
			assert.Len(t, id, len(tt.prefix)+1+36)
		})
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := graph.NewID("n")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
