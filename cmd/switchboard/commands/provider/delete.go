package provider

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	Cmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a provider",
	Long: `Delete a provider. Deleting the current provider makes the first
remaining provider current and rewrites the live files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeleteWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runDeleteWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	res, err := m.DeleteProvider(app, id)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Deleted %s provider %s", app.DisplayName(), id)
	return nil
}
