package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/backup"
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
	Short:   "List available backups",
	Long:    `List store backups, most recent first.`,
	Example: `  switchboard backup list
  switchboard backup list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	snaps, err := m.ListBackups()
	if err != nil {
		return err
	}

	if listJSON {
		if snaps == nil {
			snaps = []backup.Snapshot{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(snaps), "encoding output")
	}

	if len(snaps) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are taken before a restore or snapshot import replaces the store.")
		fmt.Fprintln(w, "You can also create one manually with: switchboard backup create")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", bold("ID"), bold("LABEL"), bold("CREATED"), bold("SIZE"))
	for _, s := range snaps {
		created := "-"
		if !s.CreatedAt.IsZero() {
			created = s.CreatedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", color.GreenString(s.ID), s.Label, created, humanize.Bytes(uint64(s.Size)))
	}
	return errors.Wrap(tw.Flush(), "writing output")
}
