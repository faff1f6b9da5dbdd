package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	Cmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import MCP servers from app config",
	Long: `Read each app's native MCP config and add its servers to the store.
Servers already in the store are enabled for the app and otherwise kept as
they are. Without --app, every detected app is read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runImportWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runImportWithWriter(ctx context.Context, w io.Writer) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	apps, err := cli.ResolveApps(flags.GetAppFlag(), m.Registry())
	if err != nil {
		return err
	}
	for _, app := range apps {
		res, err := m.ImportMCPFromLive(app)
		if err != nil {
			return err
		}
		cli.PrintWarnings(w, &res.Result)
		fmt.Fprintf(w, "%s: %d server(s) imported\n", color.New(color.Bold).Sprint(app.DisplayName()), res.Servers)
		for _, ie := range res.Errors {
			fmt.Fprintf(w, "  %s %s\n", color.YellowString("skipped"), ie.Error())
		}
	}
	return nil
}
