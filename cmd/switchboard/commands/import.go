package commands

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
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Seed the store from existing live files",
	Long: `Read each app's live files and add what the store does not have yet:
a provider named "default" built from the live settings (only when the app
has no providers), every MCP server, and the prompt file (only when the app
has no prompts).

Running import again is safe; existing entries are left alone.`,
	Example: `  # Import from every detected app
  switchboard import

  # Import only Codex
  switchboard import --app codex`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runImportWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runImportWithWriter(ctx context.Context, w io.Writer) error {
	m, err := cli.OpenManager(ctx, flags.Config())
	if err != nil {
		return err
	}
	apps, err := cli.ResolveApps(flags.GetAppFlag(), m.Registry())
	if err != nil {
		return err
	}

	for _, app := range apps {
		res, err := m.ImportFromLive(app)
		if err != nil {
			return err
		}
		cli.PrintWarnings(w, &res.Result)
		if res.Skipped(app) {
			continue
		}
		fmt.Fprintf(w, "%s: %d provider(s), %d MCP server(s), %d prompt(s)\n",
			color.New(color.Bold).Sprint(app.DisplayName()), res.Providers, res.Servers, res.Prompts)
		for _, ie := range res.Errors {
			fmt.Fprintf(w, "  %s %s\n", color.YellowString("skipped"), ie.Error())
		}
	}
	return nil
}
