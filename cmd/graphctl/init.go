// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/graphctl-dev/graphctl/internal/config"
	"github.com/graphctl-dev/graphctl/internal/db"
	"github.com/graphctl-dev/graphctl/internal/graph/sqlite"
	"github.com/graphctl-dev/graphctl/internal/secrets"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// initWizardStep tracks which step of the wizard is active.
type initWizardStep int

const (
	stepStoreType initWizardStep = iota // select store topology
	stepRemoteURL                       // enter remote database URL
	stepAuthToken                       // enter auth token
	stepEncrypt                         // encrypt the replica?
	stepDone                            // wizard complete
	stepAborted                         // user cancelled
)

// initResult holds the collected wizard configuration.
type initResult struct {
	StoreType      string
	RemoteURL      string
	AuthToken      string
	EncryptReplica bool
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var storeTypeChoices = []string{
	config.StoreTypeLocal,
	config.StoreTypeRemoteWithReplica,
	config.StoreTypeRemoteOnly,
}

// initModel is the bubbletea model for the setup wizard.
type initModel struct {
	step       initWizardStep
	typeIdx    int
	encryptIdx int
	urlInput   textinput.Model
	tokenInput textinput.Model
	result     initResult
}

func newInitModel() initModel {
	url := textinput.New()
	url.Placeholder = "libsql://your-db.turso.io"

	token := textinput.New()
	token.Placeholder = "paste auth token here"
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'

	return initModel{urlInput: url, tokenInput: token}
}

func (m initModel) Init() tea.Cmd { return nil }

func (m initModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.step = stepAborted
		return m, tea.Quit
	}

	switch m.step {
	case stepStoreType:
		switch key.String() {
		case "up", "k":
			if m.typeIdx > 0 {
				m.typeIdx--
			}
		case "down", "j":
			if m.typeIdx < len(storeTypeChoices)-1 {
				m.typeIdx++
			}
		case "enter":
			m.result.StoreType = storeTypeChoices[m.typeIdx]
			if m.result.StoreType == config.StoreTypeLocal {
				m.step = stepDone
				return m, tea.Quit
			}
			m.step = stepRemoteURL
			m.urlInput.Focus()
		}
		return m, nil

	case stepRemoteURL:
		if key.String() == "enter" && m.urlInput.Value() != "" {
			m.result.RemoteURL = m.urlInput.Value()
			m.step = stepAuthToken
			m.tokenInput.Focus()
			return m, nil
		}
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd

	case stepAuthToken:
		if key.String() == "enter" && m.tokenInput.Value() != "" {
			m.result.AuthToken = m.tokenInput.Value()
			if m.result.StoreType == config.StoreTypeRemoteOnly {
				m.step = stepDone
				return m, tea.Quit
			}
			m.step = stepEncrypt
			return m, nil
		}
		var cmd tea.Cmd
		m.tokenInput, cmd = m.tokenInput.Update(msg)
		return m, cmd

	case stepEncrypt:
		switch key.String() {
		case "up", "k", "down", "j":
			m.encryptIdx = 1 - m.encryptIdx
		case "enter":
			m.result.EncryptReplica = m.encryptIdx == 0
			m.step = stepDone
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m initModel) View() string {
	switch m.step {
	case stepStoreType:
		s := titleStyle.Render("Select the store type") + "\n\n"
		for i, choice := range storeTypeChoices {
			if i == m.typeIdx {
				s += selectedStyle.Render("> "+choice) + "\n"
			} else {
				s += "  " + choice + "\n"
			}
		}
		return s + "\n" + dimStyle.Render("up/down to move, enter to select, esc to cancel")
	case stepRemoteURL:
		return titleStyle.Render("Enter the remote database URL") + "\n\n" + m.urlInput.View()
	case stepAuthToken:
		return titleStyle.Render("Enter the database auth token") + "\n\n" + m.tokenInput.View()
	case stepEncrypt:
		s := titleStyle.Render("Encrypt the local replica?") + "\n\n"
		for i, choice := range []string{"yes", "no"} {
			if i == m.encryptIdx {
				s += selectedStyle.Render("> "+choice) + "\n"
			} else {
				s += "  " + choice + "\n"
			}
		}
		return s
	default:
		return ""
	}
}

// runInitWizard is a package-level variable so tests can substitute a
// non-interactive result.
var runInitWizard = func() (initResult, error) {
	final, err := tea.NewProgram(newInitModel()).Run()
	if err != nil {
		return initResult{}, gerr.Wrap(err, gerr.CodeCLISetupFailure, "running setup wizard")
	}

	m := final.(initModel)
	if m.step != stepDone {
		return initResult{}, gerr.New(gerr.CodeCLISetupFailure, "setup cancelled")
	}
	return m.result, nil
}

func newInitCmd() *cobra.Command {
	var (
		storeType string
		remoteURL string
		encrypt   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialise the graphctl configuration and store",
		Long:  "Walks through store setup, writes the config file, stores credentials in the OS keyring, and brings the store schema up to date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := initResult{
				StoreType:      storeType,
				RemoteURL:      remoteURL,
				EncryptReplica: encrypt,
			}
			if storeType == "" {
				var err error
				if result, err = runInitWizard(); err != nil {
					return err
				}
			}

			return finishInit(cmd, result)
		},
	}

	// Non-interactive setup; the auth token is supplied separately via
	// `graphctl secret set` to keep it out of shell history.
	cmd.Flags().StringVar(&storeType, "store-type", "", "skip the wizard: local, remote-only, or remote-with-replica")
	cmd.Flags().StringVar(&remoteURL, "remote-url", "", "remote database URL (non-interactive)")
	cmd.Flags().BoolVar(&encrypt, "encrypt-replica", false, "encrypt the local replica (non-interactive)")
	return cmd
}

// finishInit persists the wizard outcome: secrets to the keyring, the
// config file to the data directory, and the schema to the store.
func finishInit(cmd *cobra.Command, result initResult) error {
	cfg := &config.Config{
		DataDir: viper.GetViper().GetString("data_dir"),
		DB: config.StoreConfig{
			Type:           result.StoreType,
			RemoteURL:      result.RemoteURL,
			EncryptReplica: result.EncryptReplica,
		},
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return err
	}

	sec := secretStoreFactory()
	if result.AuthToken != "" {
		if err := sec.Store(secrets.ServiceName, secrets.KeyDBAuthToken, result.AuthToken); err != nil {
			return err
		}
	}
	if result.EncryptReplica {
		key, err := secrets.GenerateKeyHex(32)
		if err != nil {
			return err
		}
		if err := sec.Store(secrets.ServiceName, secrets.KeyDBEncryptionKey, key); err != nil {
			return err
		}
	}

	path := filepath.Join(cfg.DataDir, "graphctl.yaml")
	if err := writeConfigFile(path, cfg); err != nil {
		return err
	}

	// Bring the store to the expected schema so the first data command
	// does not pay the migration cost.
	handle, err := db.Open(cmd.Context(), cfg, sec)
	if err != nil {
		return err
	}
	defer handle.Close() //nolint:errcheck

	if err := sqlite.EnsureSchema(cmd.Context(), handle); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Initialised %s store. Config written to %s\n", cfg.DB.Type, path)
	return err
}

func writeConfigFile(path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return gerr.Wrap(err, gerr.CodeConfigWriteFailure, "encoding config")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return gerr.Wrapf(err, gerr.CodeConfigWriteFailure, "writing config %s", path)
	}
	return nil
}
