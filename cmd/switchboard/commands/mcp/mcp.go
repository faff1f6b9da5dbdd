// Package mcp provides CLI commands for managing MCP server definitions.
package mcp

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/core"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// Cmd is the root mcp command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP servers",
	Long: `Manage MCP server definitions shared by every app.

Each server is stored once and enabled per app. Enabled servers are written
into each app's native MCP config: ~/.claude.json for Claude Code, the
mcp_servers table of config.toml for Codex, and mcpServers in
settings.json for Gemini CLI. Entries switchboard never managed are left
alone.`,
	Example: `  # List all servers
  switchboard mcp list

  # Add a stdio server for Claude Code and Codex
  switchboard mcp add github --app claude,codex -- npx -y @modelcontextprotocol/server-github

  # Add a remote server
  switchboard mcp add docs --url https://mcp.example.com/mcp

  See Also:
    switchboard mcp enable  - Enable a server for an app
    switchboard mcp import  - Import servers from live config`,
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

// parsePairs turns KEY=VALUE entries into a map.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, errors.NewUserError(errors.Invalidf("invalid --%s entry %q", flag, p), "Use KEY=VALUE")
		}
		out[k] = v
	}
	return out, nil
}
