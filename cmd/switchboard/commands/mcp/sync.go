package mcp

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/paths"
)

func init() {
	Cmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rewrite MCP servers into app config",
	Long: `Write every enabled MCP server into each app's native MCP config.
Without --app, every app is synced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSyncWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runSyncWithWriter(ctx context.Context, w io.Writer) error {
	apps, err := cli.ParseApps(flags.GetAppFlag())
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		apps = []paths.App{""}
	}
	m, err := open(ctx)
	if err != nil {
		return err
	}
	for _, app := range apps {
		res, err := m.SyncMCP(app)
		if err != nil {
			return err
		}
		cli.PrintWarnings(w, res)
	}
	cli.Success(w, "MCP servers synced")
	return nil
}
