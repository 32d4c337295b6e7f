// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"fmt"

	"github.com/graphctl-dev/graphctl/internal/graph"
	"github.com/spf13/cobra"
)

func newNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage graph nodes",
	}

	cmd.AddCommand(
		newNodeAddCmd(),
		newNodeGetCmd(),
		newNodeListCmd(),
		newNodeSetCmd(),
		newNodeDelCmd(),
	)

	return cmd
}

func newNodeAddCmd() *cobra.Command {
	var labels []string

	cmd := &cobra.Command{
		Use:   "add [key=value ...]",
		Short: "Create a node with labels and properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := parseProps(args)
			if err != nil {
				return err
			}

			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			node, err := store.CreateNode(cmd.Context(), graph.CreateNodeParams{
				Labels: labels,
				Props:  props,
			})
			if err != nil {
				return err
			}
			return renderYAML(cmd.OutOrStdout(), node)
		},
	}

	cmd.Flags().StringArrayVarP(&labels, "label", "l", nil, "node label (repeatable)")
	return cmd
}

func newNodeGetCmd() *cobra.Command {
	var withProps bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a node by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			node, err := store.GetNode(cmd.Context(), args[0], withProps)
			if err != nil {
				return err
			}
			return renderYAML(cmd.OutOrStdout(), node)
		},
	}

	cmd.Flags().BoolVarP(&withProps, "props", "p", true, "include properties")
	return cmd
}

func newNodeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			nodes, err := store.ListNodes(cmd.Context())
			if err != nil {
				return err
			}
			if len(nodes) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No nodes.")
				return err
			}
			return renderYAML(cmd.OutOrStdout(), nodes)
		},
	}
}

func newNodeSetCmd() *cobra.Command {
	var addLabels, removeLabels, removeProps []string

	cmd := &cobra.Command{
		Use:   "set <id> [key=value ...]",
		Short: "Update a node's labels and properties",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setProps, err := parseProps(args[1:])
			if err != nil {
				return err
			}

			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			node, err := store.UpdateNode(cmd.Context(), args[0], graph.UpdateNodeParams{
				AddLabels:    addLabels,
				RemoveLabels: removeLabels,
				SetProps:     setProps,
				RemoveProps:  removeProps,
			})
			if err != nil {
				return err
			}
			return renderYAML(cmd.OutOrStdout(), node)
		},
	}

	cmd.Flags().StringArrayVarP(&addLabels, "label", "l", nil, "label to add (repeatable)")
	cmd.Flags().StringArrayVar(&removeLabels, "remove-label", nil, "label to remove (repeatable)")
	cmd.Flags().StringArrayVar(&removeProps, "remove-prop", nil, "property key to remove (repeatable)")
	return cmd
}

func newNodeDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <id>",
		Short: "Delete a node, its properties, and every edge touching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			if err := store.DeleteNode(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted node: %s\n", args[0])
			return err
		},
	}
}
