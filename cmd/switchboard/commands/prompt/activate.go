package prompt

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	Cmd.AddCommand(activateCmd)
	Cmd.AddCommand(deactivateCmd)
}

var activateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Write a preset to the instruction file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runActivateWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Remove the instruction file",
	Long: `Remove the app's instruction file and clear the active preset. Edits
made to the file are saved into the preset first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDeactivateWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runActivateWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	res, err := m.ActivatePrompt(app, id)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Activated %s for %s", id, app.DisplayName())
	return nil
}

func runDeactivateWithWriter(ctx context.Context, w io.Writer) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	if err := m.DeactivatePrompt(app); err != nil {
		return err
	}
	cli.Success(w, "Deactivated the %s prompt", app.DisplayName())
	return nil
}
