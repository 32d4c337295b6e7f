// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package graph

import "time"

// Node is a graph vertex with ordered labels and a flat property map.
type Node struct {
	ID        string         `json:"id" yaml:"id"`
	Labels    []string       `json:"labels" yaml:"labels"`
	Props     map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"updated_at"`
}

// Edge connects two nodes by id. A directed edge distinguishes source
// (FromNode) from target (ToNode); an undirected edge is traversable
// symmetrically from either endpoint.
type Edge struct {
	ID        string         `json:"id" yaml:"id"`
	EdgeType  string         `json:"edge_type" yaml:"edge_type"`
	FromNode  string         `json:"from_node" yaml:"from_node"`
	ToNode    string         `json:"to_node" yaml:"to_node"`
	Directed  bool           `json:"directed" yaml:"directed"`
	Props     map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"updated_at"`
}

// Property is a single key/value pair supplied to a create or update call.
// Calls take ordered slices rather than maps so that a caller supplying the
// same key twice in one invocation is detectable as an error.
type Property struct {
	Key   string
	Value any
}

// CreateNodeParams holds the inputs for NodeStore.CreateNode.
type CreateNodeParams struct {
	Labels []string
	Props  []Property
}

// UpdateNodeParams holds the inputs for NodeStore.UpdateNode. Label adds
// and removes are idempotent; property sets upsert and removes are no-ops
// for absent keys.
type UpdateNodeParams struct {
	AddLabels    []string
	RemoveLabels []string
	SetProps     []Property
	RemoveProps  []string
}

// CreateEdgeParams holds the inputs for EdgeStore.CreateEdge. FromNode and
// ToNode must reference existing node ids.
type CreateEdgeParams struct {
	EdgeType string
	FromNode string
	ToNode   string
	Directed bool
	Props    []Property
}

// UpdateEdgeParams holds the inputs for EdgeStore.UpdateEdge. Nil pointer
// fields leave the corresponding column unchanged; endpoint changes are
// re-validated against existing nodes.
type UpdateEdgeParams struct {
	EdgeType    *string
	FromNode    *string
	ToNode      *string
	Directed    *bool
	SetProps    []Property
	RemoveProps []string
}
