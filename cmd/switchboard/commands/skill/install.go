package skill

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
)

var (
	installName   string
	installEnable bool
)

func init() {
	installCmd.Flags().StringVar(&installName, "name", "", "install under this name instead of the skill's own")
	installCmd.Flags().BoolVar(&installEnable, "enable", false, "enable the skill for the apps named by --app (default: claude)")
	Cmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <dir>",
	Short: "Install a skill from a directory",
	Long: `Copy a skill directory into the skill store. The directory must hold a
SKILL.md. Its id is a slug of --name, or of the name in SKILL.md.`,
	Example: `  switchboard skill install ./pdf-tools
  switchboard skill install ~/src/skills/review --name code-review --enable --app claude`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstallWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runInstallWithWriter(ctx context.Context, w io.Writer, src string) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	s, err := m.InstallSkill(src, installName)
	if err != nil {
		return err
	}
	cli.Success(w, "Installed skill %s (%s)", s.ID, s.Name)

	if !installEnable {
		return nil
	}
	return toggle(m, w, s.ID, true)
}
