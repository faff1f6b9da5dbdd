package mcp

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	Cmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove an MCP server",
	Long:    `Remove an MCP server from the store and from every app it was enabled for.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemoveWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runRemoveWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	res, err := m.DeleteMCPServer(id)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Removed MCP server %s", id)
	return nil
}
