// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"fmt"

	"github.com/graphctl-dev/graphctl/internal/secrets"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
	"github.com/spf13/cobra"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage secrets stored in the OS keyring",
		Long:  "List, set, and delete secrets stored under the graphctl service in the operating system keyring.",
	}

	cmd.AddCommand(
		newSecretListCmd(),
		newSecretSetCmd(),
		newSecretDeleteCmd(),
	)

	return cmd
}

func newSecretListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored secret names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := secretStoreFactory()
			keys, err := store.List(secrets.ServiceName)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				_, err := fmt.Fprintln(out, "No secrets stored.")
				return err
			}
			for _, k := range keys {
				if _, err := fmt.Fprintln(out, k); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSecretSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a secret by name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := secretStoreFactory()
			if err := store.Store(secrets.ServiceName, args[0], args[1]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Stored secret: %s\n", args[0])
			return err
		},
	}
}

func newSecretDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a secret by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			store := secretStoreFactory()

			if err := store.Delete(secrets.ServiceName, name); err != nil {
				if gerr.HasCode(err, gerr.CodeSecretNotFound) {
					return gerr.Errorf(gerr.CodeSecretNotFound, "secret %q not found", name)
				}
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted secret: %s\n", name)
			return err
		},
	}
}
