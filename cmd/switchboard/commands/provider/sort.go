package provider

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/core"
)

func init() {
	Cmd.AddCommand(sortCmd)
}

var sortCmd = &cobra.Command{
	Use:   "sort <id>...",
	Short: "Reorder providers",
	Long: `Give the named providers sort indexes 0, 1, 2, ... in the order given.
Providers not named keep their index.`,
	Example: `  switchboard provider sort official relay local`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSortWithWriter(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

func runSortWithWriter(ctx context.Context, w io.Writer, ids []string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	updates := make([]core.SortUpdate, len(ids))
	for i, id := range ids {
		updates[i] = core.SortUpdate{ID: id, SortIndex: i}
	}
	if err := m.UpdateSortOrder(app, updates); err != nil {
		return err
	}
	cli.Success(w, "Reordered %d provider(s)", len(ids))
	return nil
}
