// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newNeighborsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neighbors",
		Short: "Traverse a node's adjacent edges",
	}

	cmd.AddCommand(
		newNeighborsOutCmd(),
		newNeighborsInCmd(),
	)

	return cmd
}

func newNeighborsOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "out <node-id>",
		Short: "List edges leaving a node (directed out plus undirected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraversal(cmd, args[0], func(ctx context.Context, nodeID string) ([]string, error) {
				store, err := openGraph(ctx)
				if err != nil {
					return nil, err
				}
				defer store.Close() //nolint:errcheck
				return store.EdgesOut(ctx, nodeID)
			})
		},
	}
}

func newNeighborsInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "in <node-id>",
		Short: "List edges arriving at a node (directed in plus undirected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraversal(cmd, args[0], func(ctx context.Context, nodeID string) ([]string, error) {
				store, err := openGraph(ctx)
				if err != nil {
					return nil, err
				}
				defer store.Close() //nolint:errcheck
				return store.EdgesIn(ctx, nodeID)
			})
		},
	}
}

func runTraversal(cmd *cobra.Command, nodeID string, traverse func(context.Context, string) ([]string, error)) error {
	ids, err := traverse(cmd.Context(), nodeID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		_, err := fmt.Fprintln(out, "No edges.")
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return err
		}
	}
	return nil
}
