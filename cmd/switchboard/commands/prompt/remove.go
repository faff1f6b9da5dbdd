package prompt

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
	Short:   "Remove a prompt preset",
	Long:    `Remove a prompt preset. Removing the active preset also removes the instruction file.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemoveWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runRemoveWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	if err := m.DeletePrompt(app, id); err != nil {
		return err
	}
	cli.Success(w, "Removed %s prompt %s", app.DisplayName(), id)
	return nil
}
