// Package skill provides CLI commands for managing skills.
package skill

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/core"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// Cmd is the root skill command.
var Cmd = &cobra.Command{
	Use:     "skill",
	Aliases: []string{"skills"},
	Short:   "Manage skills",
	Long: `Manage skills: directories holding a SKILL.md and supporting files.

Installed skills live in switchboard's skill store and are linked (or
copied, per skills.sync_method) into each app's skills directory when
enabled for it.`,
	Example: `  # Install a skill and enable it for Claude Code and Codex
  switchboard skill install ./pdf-tools
  switchboard skill enable pdf-tools --app claude,codex

  # Find skills placed by hand
  switchboard skill scan`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func open(ctx context.Context) (*core.Manager, error) {
	return cli.OpenManager(ctx, flags.Config())
}

// targetApps returns the apps named by --app, or DefaultApp.
func targetApps() ([]paths.App, error) {
	apps, err := cli.ParseApps(flags.GetAppFlag())
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		apps = []paths.App{cli.DefaultApp}
	}
	return apps, nil
}
