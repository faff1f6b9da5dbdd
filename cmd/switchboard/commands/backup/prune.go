package backup

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/errors"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1,
		"Number of backups to retain (default: backup.retention)")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove backups beyond the retention count, oldest first.

By default keeps backup.retention backups. Use --keep to choose another
count; --keep 0 removes every backup.`,
	Example: `  switchboard backup prune
  switchboard backup prune --keep 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPruneWithWriter(cmd.Context(), cmd.OutOrStdout(), cmd.Flags().Changed("keep"))
	},
}

func runPruneWithWriter(ctx context.Context, w io.Writer, keepSet bool) error {
	if keepSet && pruneKeep < 0 {
		return errors.NewUserError(errors.Invalidf("--keep must be non-negative"), "")
	}
	m, err := open(ctx)
	if err != nil {
		return err
	}
	keep := pruneKeep
	if !keepSet {
		keep = m.Backups().RetentionCount()
	}

	snaps, err := m.ListBackups()
	if err != nil {
		return err
	}
	toRemove := len(snaps) - keep
	if toRemove <= 0 {
		fmt.Fprintln(w, "No backups to prune")
		return nil
	}
	if err := m.Backups().Prune(keep); err != nil {
		return err
	}
	cli.Success(w, "Removed %d old backup(s)", toRemove)
	return nil
}
