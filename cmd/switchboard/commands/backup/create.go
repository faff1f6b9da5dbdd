package backup

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/backup"
	"github.com/thoreinstein/switchboard/internal/cli"
)

func init() {
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [label]",
	Short: "Create a manual backup",
	Long: `Create a backup of the store. The label becomes part of the backup id
and defaults to "backup".`,
	Example: `  switchboard backup create
  switchboard backup create "before relay"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := backup.DefaultLabel
		if len(args) > 0 {
			label = args[0]
		}
		return runCreateWithWriter(cmd.Context(), cmd.OutOrStdout(), label)
	},
}

func runCreateWithWriter(ctx context.Context, w io.Writer, label string) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	snap, err := m.Backup(label)
	if err != nil {
		return err
	}
	cli.Success(w, "Created backup %s", snap.ID)
	fmt.Fprintf(w, "  %s\n", snap.Path)
	return nil
}
