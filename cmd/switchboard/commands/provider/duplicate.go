package provider

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	Cmd.AddCommand(duplicateCmd)
}

var duplicateCmd = &cobra.Command{
	Use:     "duplicate <id>",
	Aliases: []string{"dup", "copy"},
	Short:   "Copy a provider under a new id",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDuplicateWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runDuplicateWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	newID, err := m.DuplicateProvider(app, id)
	if err != nil {
		return err
	}
	cli.Success(w, "Copied %s to %s", id, newID)
	return nil
}
