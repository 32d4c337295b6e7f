// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMetaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta",
		Short: "Show store metadata (schema version)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openGraph(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			version, err := store.MigrationVersion(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migration_count: %d\n", version)
			return err
		},
	}
}
