// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphctl-dev/graphctl/internal/graph"
)

func TestDirectedEdgeAsymmetry(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "traverse-directed")

	a := mustCreateNode(t, store, nil)
	b := mustCreateNode(t, store, nil)

	edge, err := store.CreateEdge(ctx, graph.CreateEdgeParams{
		EdgeType: "knows", FromNode: a.ID, ToNode: b.ID, Directed: true,
	})
	require.NoError(t, err)

	out, err := store.EdgesOut(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{edge.ID}, out)

	in, err := store.EdgesIn(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, in)

	in, err = store.EdgesIn(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{edge.ID}, in)

	out, err = store.EdgesOut(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUndirectedEdgeSymmetry(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "traverse-undirected")

	a := mustCreateNode(t, store, nil)
	b := mustCreateNode(t, store, nil)

	edge, err := store.CreateEdge(ctx, graph.CreateEdgeParams{
		EdgeType: "knows", FromNode: a.ID, ToNode: b.ID, Directed: false,
	})
	require.NoError(t, err)

	for _, nodeID := range []string{a.ID, b.ID} {
		out, err := store.EdgesOut(ctx, nodeID)
		require.NoError(t, err)
		assert.Equal(t, []string{edge.ID}, out, "edges_out(%s)", nodeID)

		in, err := store.EdgesIn(ctx, nodeID)
		require.NoError(t, err)
		assert.Equal(t, []string{edge.ID}, in, "edges_in(%s)", nodeID)
	}
}

func TestSelfLoopNeverDuplicated(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "traverse-selfloop")

	a := mustCreateNode(t, store, nil)

	tests := []struct {
		name     string
		directed bool
	}{
		{"directed self-loop", true},
		{"undirected self-loop", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, err := store.CreateEdge(ctx, graph.CreateEdgeParams{
				EdgeType: "loops", FromNode: a.ID, ToNode: a.ID, Directed: tt.directed,
			})
			require.NoError(t, err)

			out, err := store.EdgesOut(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, countOf(out, edge.ID))

			in, err := store.EdgesIn(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, countOf(in, edge.ID))

			require.NoError(t, store.DeleteEdge(ctx, edge.ID))
		})
	}
}

func TestTraversalMixedEdges(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "traverse-mixed")

	a := mustCreateNode(t, store, nil)
	b := mustCreateNode(t, store, nil)
	c := mustCreateNode(t, store, nil)

	directed, err := store.CreateEdge(ctx, graph.CreateEdgeParams{
		EdgeType: "points", FromNode: a.ID, ToNode: b.ID, Directed: true,
	})
	require.NoError(t, err)
	undirected, err := store.CreateEdge(ctx, graph.CreateEdgeParams{
		EdgeType: "links", FromNode: c.ID, ToNode: a.ID, Directed: false,
	})
	require.NoError(t, err)

	out, err := store.EdgesOut(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{directed.ID, undirected.ID}, out)

	in, err := store.EdgesIn(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{undirected.ID}, in)
}

func TestTraversalUnknownNodeIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, "traverse-unknown")

	out, err := store.EdgesOut(ctx, "n-missing")
	require.NoError(t, err)
	assert.Empty(t, out)

	in, err := store.EdgesIn(ctx, "n-missing")
	require.NoError(t, err)
	assert.Empty(t, in)
}

func countOf(ids []string, id string) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}
