package skill

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	Cmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:     "uninstall <id>",
	Aliases: []string{"rm", "remove"},
	Short:   "Uninstall a skill",
	Long:    `Remove a skill from every app it is enabled for and from the skill store.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUninstallWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runUninstallWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	if err := m.UninstallSkill(id); err != nil {
		return err
	}
	cli.Success(w, "Uninstalled skill %s", id)
	return nil
}
