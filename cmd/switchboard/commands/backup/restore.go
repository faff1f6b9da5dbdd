package backup

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/backup"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/core"
	"github.com/thoreinstein/switchboard/internal/errors"
)

func init() {
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-id|path]",
	Short: "Restore the store from a backup",
	Long: `Replace the store with a backup and rewrite every app's live files from
it. Without an argument the newest backup is used. A path may point at a
backup file copied elsewhere.

The current store is backed up first, so a restore can itself be undone.
Restore also works when the store file is unreadable.`,
	Example: `  # Restore the newest backup
  switchboard backup restore

  # Restore a specific backup
  switchboard backup restore backup_20260123_100712

  See Also:
    switchboard backup list - List available backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) > 0 {
			id = args[0]
		}
		return runRestoreWithWriter(cmd.Context(), cmd.OutOrStdout(), id)
	},
}

func runRestoreWithWriter(ctx context.Context, w io.Writer, idOrPath string) error {
	m, err := open(ctx, core.AllowCorruptStore())
	if err != nil {
		return err
	}
	if loadErr := m.StoreLoadError(); loadErr != nil {
		fmt.Fprintf(w, "%s store is unreadable, restoring over it: %v\n", color.YellowString("warning:"), loadErr)
	}

	if idOrPath == "" {
		latest, err := m.Backups().Latest()
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(err, "Create one with: switchboard backup create")
			}
			return err
		}
		idOrPath = latest.ID
	}

	res, err := m.Restore(idOrPath)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "Run: switchboard backup list")
		}
		return err
	}
	cli.PrintWarnings(w, &res.Result)
	cli.Success(w, "Restored %s", idOrPath)
	if res.Safety != nil {
		fmt.Fprintf(w, "  previous store saved as %s\n", res.Safety.ID)
	}
	return nil
}
