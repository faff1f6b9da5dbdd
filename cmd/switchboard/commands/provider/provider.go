// Package provider provides CLI commands for managing provider profiles.
package provider

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/core"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// Cmd is the root provider command.
var Cmd = &cobra.Command{
	Use:     "provider",
	Aliases: []string{"providers", "p"},
	Short:   "Manage provider profiles",
	Long: `Manage the provider profiles of one app.

A provider is a named set of credentials, endpoints and model settings.
Exactly one provider per app is current; its settings are written into the
app's live config files. Commands act on Claude Code unless --app is given.`,
	Example: `  # List Claude Code providers
  switchboard provider list

  # Switch Codex to the "relay" provider
  switchboard provider switch relay --app codex

  # Add a provider from a JSON settings file
  switchboard provider add relay --name "Relay" --settings-file relay.json

  See Also:
    switchboard provider list   - List providers
    switchboard provider switch - Make a provider current
    switchboard provider add    - Add a provider`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// open resolves the single target app and opens the store.
func open(ctx context.Context) (*core.Manager, paths.App, error) {
	app, err := cli.SingleApp(flags.GetAppFlag())
	if err != nil {
		return nil, "", err
	}
	m, err := cli.OpenManager(ctx, flags.Config())
	if err != nil {
		return nil, "", err
	}
	return m, app, nil
}
