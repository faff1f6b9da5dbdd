package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/store"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed skills",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	skills, err := m.ListSkills()
	if err != nil {
		return err
	}

	if listJSON {
		if skills == nil {
			skills = []*store.Skill{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(skills), "encoding output")
	}

	if len(skills) == 0 {
		fmt.Fprintln(w, "No skills installed.")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", bold("ID"), bold("NAME"), bold("APPS"), bold("DESCRIPTION"))
	for _, s := range skills {
		apps := "-"
		if list := s.Apps.List(); len(list) > 0 {
			names := make([]string, len(list))
			for i, a := range list {
				names[i] = a.String()
			}
			apps = strings.Join(names, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, apps, truncate(s.Description, 60))
	}
	return errors.Wrap(tw.Flush(), "writing output")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
