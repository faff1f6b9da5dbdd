package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
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
	Short:   "List providers",
	Long: `List the app's providers in display order. The current provider is
marked with an asterisk.`,
	Example: `  switchboard provider list
  switchboard provider list --app gemini --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

// listEntry is one provider in JSON output.
type listEntry struct {
	*store.Provider
	Current bool   `json:"current"`
	BaseURL string `json:"base_url,omitempty"`
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	providers, err := m.ListProviders(app)
	if err != nil {
		return err
	}
	current, err := m.CurrentProvider(app)
	if err != nil {
		return err
	}
	currentID := ""
	if current != nil {
		currentID = current.ID
	}

	entries := make([]listEntry, 0, len(providers))
	for _, p := range providers {
		_, baseURL, err := m.UsageCredentials(app, p.ID)
		if err != nil {
			return errors.Wrapf(err, "reading %s", p.ID)
		}
		entries = append(entries, listEntry{Provider: p, Current: p.ID == currentID, BaseURL: baseURL})
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding output")
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "No providers for %s.\n", app.DisplayName())
		fmt.Fprintln(w, "Add one with: switchboard provider add, or import the live settings with: switchboard import")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", bold("ID"), bold("NAME"), bold("CATEGORY"), bold("BASE URL"))
	for _, e := range entries {
		marker := " "
		id := e.ID
		if e.Current {
			marker = color.GreenString("*")
			id = color.GreenString(e.ID)
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", marker, id, e.Name, dash(e.Category), dash(e.BaseURL))
	}
	return errors.Wrap(tw.Flush(), "writing output")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
