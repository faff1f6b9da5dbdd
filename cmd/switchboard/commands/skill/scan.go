package skill

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/errors"
)

func init() {
	Cmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find skills not managed by switchboard",
	Long: `List skill directories in each app's skills directory that switchboard
does not track. Install one with: switchboard skill install <path>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScanWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runScanWithWriter(ctx context.Context, w io.Writer) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	apps, err := cli.ResolveApps(flags.GetAppFlag(), m.Registry())
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	found := 0
	for _, app := range apps {
		unmanaged, err := m.ScanUnmanagedSkills(app)
		if err != nil {
			return err
		}
		for _, u := range unmanaged {
			if found == 0 {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", bold("APP"), bold("ID"), bold("NAME"), bold("PATH"))
			}
			found++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", app, u.ID, u.Name, u.Path)
		}
	}
	if found == 0 {
		fmt.Fprintln(w, "No unmanaged skills found.")
		return nil
	}
	return errors.Wrap(tw.Flush(), "writing output")
}
