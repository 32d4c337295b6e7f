// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"fmt"

	"github.com/graphctl-dev/graphctl/internal/graph"
	"github.com/spf13/cobra"
)

func newEdgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Manage graph edges",
	}

	cmd.AddCommand(
		newEdgeAddCmd(),
		newEdgeGetCmd(),
		newEdgeListCmd(),
		newEdgeSetCmd(),
		newEdgeDelCmd(),
	)

	return cmd
}

func newEdgeAddCmd() *cobra.Command {
	var (
		edgeType string
		from, to string
		directed bool
	)

	cmd := &cobra.Command{
		Use:   "add [key=value ...]",
		Short: "Create an edge between two existing nodes",
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

			edge, err := store.CreateEdge(cmd.Context(), graph.CreateEdgeParams{
				EdgeType: edgeType,
				FromNode: from,
				ToNode:   to,
				Directed: directed,
				Props:    props,
			})
			if err != nil {
				return err
			}
			return renderYAML(cmd.OutOrStdout(), edge)
		},
	}

	cmd.Flags().StringVarP(&edgeType, "type", "t", "", "edge type")
	cmd.Flags().StringVar(&from, "from", "", "source node id")
	cmd.Flags().StringVar(&to, "to", "", "target node id")
	cmd.Flags().BoolVarP(&directed, "directed", "d", false, "create a directed edge")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newEdgeGetCmd() *cobra.Command {
	var withProps bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch an edge by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			edge, err := store.GetEdge(cmd.Context(), args[0], withProps)
			if err != nil {
				return err
			}
			return renderYAML(cmd.OutOrStdout(), edge)
		},
	}

	cmd.Flags().BoolVarP(&withProps, "props", "p", true, "include properties")
	return cmd
}

func newEdgeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			edges, err := store.ListEdges(cmd.Context())
			if err != nil {
				return err
			}
			if len(edges) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No edges.")
				return err
			}
			return renderYAML(cmd.OutOrStdout(), edges)
		},
	}
}

func newEdgeSetCmd() *cobra.Command {
	var removeProps []string

	cmd := &cobra.Command{
		Use:   "set <id> [key=value ...]",
		Short: "Update an edge's type, endpoints, direction, and properties",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setProps, err := parseProps(args[1:])
			if err != nil {
				return err
			}

			params := graph.UpdateEdgeParams{
				SetProps:    setProps,
				RemoveProps: removeProps,
			}
			// Only changed flags become mutations; unset flags leave the
			// edge untouched.
			if cmd.Flags().Changed("type") {
				v, _ := cmd.Flags().GetString("type")
				params.EdgeType = &v
			}
			if cmd.Flags().Changed("from") {
				v, _ := cmd.Flags().GetString("from")
				params.FromNode = &v
			}
			if cmd.Flags().Changed("to") {
				v, _ := cmd.Flags().GetString("to")
				params.ToNode = &v
			}
			if cmd.Flags().Changed("directed") {
				v, _ := cmd.Flags().GetBool("directed")
				params.Directed = &v
			}

			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			edge, err := store.UpdateEdge(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return renderYAML(cmd.OutOrStdout(), edge)
		},
	}

	cmd.Flags().StringP("type", "t", "", "new edge type")
	cmd.Flags().String("from", "", "new source node id")
	cmd.Flags().String("to", "", "new target node id")
	cmd.Flags().BoolP("directed", "d", false, "set the directed flag")
	cmd.Flags().StringArrayVar(&removeProps, "remove-prop", nil, "property key to remove (repeatable)")
	return cmd
}

func newEdgeDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <id>",
		Short: "Delete an edge and its properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			if err := store.DeleteEdge(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted edge: %s\n", args[0])
			return err
		},
	}
}
