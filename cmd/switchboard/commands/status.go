package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active provider of each app",
	Long: `Show, for every app, whether its config directory exists, which
provider is current, how many providers and MCP servers it has, and which
prompt is active.`,
	Example: `  # Overview of every app
  switchboard status

  # JSON output for scripting
  switchboard status --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStatusWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

// appStatus is one row of the status output.
type appStatus struct {
	App          string `json:"app"`
	DisplayName  string `json:"display_name"`
	ConfigDir    string `json:"config_dir"`
	Initialized  bool   `json:"initialized"`
	Current      string `json:"current,omitempty"`
	CurrentName  string `json:"current_name,omitempty"`
	Providers    int    `json:"providers"`
	MCPServers   int    `json:"mcp_servers"`
	ActivePrompt string `json:"active_prompt,omitempty"`
}

func runStatusWithWriter(ctx context.Context, w io.Writer) error {
	m, err := cli.OpenManager(ctx, flags.Config())
	if err != nil {
		return err
	}
	apps, err := cli.ParseApps(flags.GetAppFlag())
	if err != nil {
		return err
	}

	snap := m.Snapshot()
	var rows []appStatus
	for _, d := range m.Detect() {
		if len(apps) > 0 && !containsApp(apps, d) {
			continue
		}
		row := appStatus{
			App:         d.App.String(),
			DisplayName: d.App.DisplayName(),
			ConfigDir:   d.ConfigDir,
			Initialized: d.Status == platform.StatusInstalled,
			MCPServers:  len(snap.ServersFor(d.App)),
		}
		cur, err := m.CurrentProvider(d.App)
		if err != nil {
			return errors.Wrapf(err, "reading current provider for %s", d.App)
		}
		if cur != nil {
			row.Current = cur.ID
			row.CurrentName = cur.Name
		}
		ac := snap.App(d.App)
		row.Providers = ac.Providers.Len()
		if p := ac.ActivePrompt(); p != nil {
			row.ActivePrompt = p.Name
		}
		rows = append(rows, row)
	}

	if statusJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(rows), "encoding output")
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", bold("APP"), bold("CURRENT"), bold("PROVIDERS"), bold("MCP"), bold("PROMPT"))
	for _, r := range rows {
		name := r.DisplayName
		if !r.Initialized {
			name += color.HiBlackString(" (not initialized)")
		}
		current := r.CurrentName
		if current == "" {
			current = "-"
		} else {
			current = color.GreenString(current)
		}
		prompt := r.ActivePrompt
		if prompt == "" {
			prompt = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", name, current, r.Providers, r.MCPServers, prompt)
	}
	return errors.Wrap(tw.Flush(), "writing output")
}

func containsApp(apps []paths.App, d platform.DetectionResult) bool {
	return slices.Contains(apps, d.App)
}
