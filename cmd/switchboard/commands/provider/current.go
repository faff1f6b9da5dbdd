package provider

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	Cmd.AddCommand(currentCmd)
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCurrentWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runCurrentWithWriter(ctx context.Context, w io.Writer) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	p, err := m.CurrentProvider(app)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Fprintf(w, "%s has no providers\n", app.DisplayName())
		return nil
	}
	fmt.Fprintf(w, "%s (%s)\n", p.ID, p.Name)
	return nil
}
