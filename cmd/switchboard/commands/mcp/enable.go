package mcp

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable an MCP server for apps",
	Long:  `Enable an MCP server for the apps named by --app (default: claude) and write it into their config.`,
	Example: `  switchboard mcp enable github --app codex,gemini`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggleWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable an MCP server for apps",
	Long: `Disable an MCP server for the apps named by --app (default: claude) and
remove it from their config. The definition stays in the store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggleWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], false)
	},
}

func runToggleWithWriter(ctx context.Context, w io.Writer, id string, enabled bool) error {
	apps, err := targetApps()
	if err != nil {
		return err
	}
	m, err := open(ctx)
	if err != nil {
		return err
	}

	verb := "Disabled"
	if enabled {
		verb = "Enabled"
	}
	for _, app := range apps {
		res, err := m.ToggleMCPApp(id, app, enabled)
		if err != nil {
			return err
		}
		cli.PrintWarnings(w, res)
		cli.Success(w, "%s %s for %s", verb, id, app.DisplayName())
	}
	return nil
}
