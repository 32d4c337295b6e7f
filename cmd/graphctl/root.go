// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/graphctl-dev/graphctl/internal/config"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root graphctl command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "graphctl",
		Short:         "graphctl is a property-graph database CLI",
		Long:          "graphctl stores a property graph (nodes, edges, key-value properties) in a local or remote SQLite-compatible database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initViper(cmd); err != nil {
				return err
			}
			setupLogging(viper.GetViper().GetBool("verbose"))
			return nil
		},
	}

	// Global flags, mapped to viper keys in initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("data-dir", "", "path to data directory")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newInitCmd(),
		newNodeCmd(),
		newEdgeCmd(),
		newNeighborsCmd(),
		newMetaCmd(),
		newSecretCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper sets up the global Viper with defaults, env bindings, flag
// bindings, and optional config file so the standard precedence
// (flag > env > file > defaults) is handled uniformly.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return gerr.Wrapf(err, gerr.CodeConfigLoadReadFailure, "reading config file %s", cfgFile)
		}
	} else {
		// Auto-discover graphctl.yaml from standard locations. No config
		// file is fine, defaults and env vars still apply; parse or
		// permission errors must surface.
		v.SetConfigName("graphctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.graphctl")
		v.AddConfigPath("$HOME/.config/graphctl")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return gerr.Wrap(err, gerr.CodeConfigLoadReadFailure, "reading config")
			}
		}
	}

	if err := v.BindPFlag("data_dir", cmd.Root().PersistentFlags().Lookup("data-dir")); err != nil {
		return gerr.Wrap(err, gerr.CodeCLISetupFailure, "binding data-dir flag")
	}
	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return gerr.Wrap(err, gerr.CodeCLISetupFailure, "binding verbose flag")
	}

	return nil
}

// setupLogging routes slog to stderr, at debug level when verbose.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
