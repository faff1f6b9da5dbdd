package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rewrite every app's live files from the store",
	Long: `Rewrite each app's live files from its current provider, its enabled
MCP servers and its active prompt. Apps whose config directory does not
exist are skipped with a warning.`,
	Example: `  # Re-apply the store after editing live files by hand
  switchboard sync`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSyncWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runSyncWithWriter(ctx context.Context, w io.Writer) error {
	m, err := cli.OpenManager(ctx, flags.Config())
	if err != nil {
		return err
	}
	res, err := m.SyncAll()
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Live files synced")
	return nil
}
