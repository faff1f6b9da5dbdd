package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List prompt presets",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	prompts, err := m.ListPrompts(app)
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(prompts), "encoding output")
	}

	if len(prompts) == 0 {
		fmt.Fprintf(w, "No prompts for %s.\n", app.DisplayName())
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", bold("ID"), bold("NAME"), bold("UPDATED"), bold("DESCRIPTION"))
	for _, p := range prompts {
		marker := " "
		if p.Enabled {
			marker = color.GreenString("*")
		}
		updated := "-"
		if !p.UpdatedAt.IsZero() {
			updated = p.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", marker, p.ID, p.Name, updated, p.Description)
	}
	return errors.Wrap(tw.Flush(), "writing output")
}
