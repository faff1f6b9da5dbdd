package skill

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/core"
)

func init() {
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
}

var enableCmd = &cobra.Command{
	Use:     "enable <id>",
	Short:   "Enable a skill for apps",
	Long:    `Place a skill in the skills directory of each app named by --app (default: claude).`,
	Example: `  switchboard skill enable pdf-tools --app claude,gemini`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggleWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a skill for apps",
	Long:  `Remove a skill from the skills directory of each app named by --app (default: claude).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggleWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0], false)
	},
}

func runToggleWithWriter(ctx context.Context, w io.Writer, id string, enabled bool) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	return toggle(m, w, id, enabled)
}

func toggle(m *core.Manager, w io.Writer, id string, enabled bool) error {
	apps, err := targetApps()
	if err != nil {
		return err
	}
	verb := "Disabled"
	if enabled {
		verb = "Enabled"
	}
	for _, app := range apps {
		res, err := m.EnableSkill(id, app, enabled)
		if err != nil {
			return err
		}
		cli.PrintWarnings(w, res)
		if res.Skipped(app) {
			continue
		}
		cli.Success(w, "%s %s for %s", verb, id, app.DisplayName())
	}
	return nil
}
