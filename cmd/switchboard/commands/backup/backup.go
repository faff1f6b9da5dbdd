// Package backup provides CLI commands for managing store backups.
package backup

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/core"
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage store backups",
	Long: `Manage backups of the switchboard store.

A backup is a copy of the whole store: every provider, MCP server, prompt and
skill record for every app. One is taken automatically before a restore or a
snapshot import replaces the store. Old backups beyond backup.retention are
pruned as new ones are written.

Backups are stored in ~/.config/switchboard/backups/.`,
	Example: `  # List backups
  switchboard backup list

  # Take a backup before experimenting
  switchboard backup create before-relay

  # Restore the newest backup
  switchboard backup restore

  # Keep only the 3 most recent
  switchboard backup prune --keep 3

  See Also:
    switchboard backup list    - List available backups
    switchboard backup restore - Restore from a backup
    switchboard snapshot       - Export or import the store as a file`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func open(ctx context.Context, opts ...core.Option) (*core.Manager, error) {
	return cli.OpenManager(ctx, flags.Config(), opts...)
}
