// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package graph

import "context"

// NodeStore manages node rows and their property rows.
type NodeStore interface {
	// CreateNode inserts a node and its initial properties in one
	// transaction and returns the fully materialised node.
	CreateNode(ctx context.Context, params CreateNodeParams) (*Node, error)

	// GetNode fetches a node by id, populating properties only when
	// withProps is set. Absent ids yield a not-found error.
	GetNode(ctx context.Context, id string, withProps bool) (*Node, error)

	// ListNodes returns all nodes with properties populated.
	ListNodes(ctx context.Context) ([]*Node, error)

	// NodeExists reports whether a node row with the given id exists.
	NodeExists(ctx context.Context, id string) (bool, error)

	// UpdateNode applies label and property mutations atomically and
	// returns the materialised node with a refreshed updated_at.
	UpdateNode(ctx context.Context, id string, params UpdateNodeParams) (*Node, error)

	// DeleteNode removes the node, its properties, and every edge (and
	// edge property) referencing it.
	DeleteNode(ctx context.Context, id string) error
}

// EdgeStore manages edge rows and their property rows.
type EdgeStore interface {
	// CreateEdge verifies both endpoints exist, then inserts the edge and
	// its initial properties in one transaction.
	CreateEdge(ctx context.Context, params CreateEdgeParams) (*Edge, error)

	// GetEdge fetches an edge by id, populating properties only when
	// withProps is set. Absent ids yield a not-found error.
	GetEdge(ctx context.Context, id string, withProps bool) (*Edge, error)

	// ListEdges returns all edges with properties populated.
	ListEdges(ctx context.Context) ([]*Edge, error)

	// EdgeExists reports whether an edge row with the given id exists.
	EdgeExists(ctx context.Context, id string) (bool, error)

	// UpdateEdge applies type, endpoint, direction, and property mutations
	// atomically and returns the materialised edge.
	UpdateEdge(ctx context.Context, id string, params UpdateEdgeParams) (*Edge, error)

	// DeleteEdge removes the edge row and its property rows. Node rows are
	// untouched.
	DeleteEdge(ctx context.Context, id string) error
}

// Traverser computes adjacency for a node. Directed edges appear in exactly
// one of the two sets for each endpoint; undirected edges appear in both
// sets for both endpoints. An edge id never repeats within one result.
type Traverser interface {
	// EdgesOut returns ids of edges leaving nodeID: directed edges whose
	// source it is, plus undirected edges touching it.
	EdgesOut(ctx context.Context, nodeID string) ([]string, error)

	// EdgesIn returns ids of edges arriving at nodeID: directed edges whose
	// target it is, plus undirected edges touching it.
	EdgesIn(ctx context.Context, nodeID string) ([]string, error)
}

// Store is the full graph repository surface.
type Store interface {
	NodeStore
	EdgeStore
	Traverser

	// MigrationVersion reports the applied schema version.
	MigrationVersion(ctx context.Context) (int64, error)

	Close() error
}
