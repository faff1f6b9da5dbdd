package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/doctor"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/mcp"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List MCP servers",
	Long: `List MCP servers and the apps each is enabled for. With --app, only
servers enabled for at least one of the named apps are listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	apps, err := cli.ParseApps(flags.GetAppFlag())
	if err != nil {
		return err
	}

	m, err := open(ctx)
	if err != nil {
		return err
	}
	servers, err := m.ListMCPServers("")
	if err != nil {
		return err
	}
	if len(apps) > 0 {
		servers = slices.DeleteFunc(servers, func(s *mcp.Server) bool {
			return !slices.ContainsFunc(apps, s.Apps.Enabled)
		})
	}

	if listJSON {
		masked := make([]*mcp.Server, len(servers))
		for i, s := range servers {
			masked[i] = maskServer(s)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(masked), "encoding output")
	}

	if len(servers) == 0 {
		fmt.Fprintln(w, "No MCP servers configured.")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", bold("ID"), bold("TYPE"), bold("TARGET"), bold("APPS"))
	for _, s := range servers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			color.GreenString(s.ID), s.Transport.Kind, target(s), appList(s.Apps))
	}
	return errors.Wrap(tw.Flush(), "writing output")
}

func target(s *mcp.Server) string {
	if s.Transport.IsRemote() {
		return doctor.MaskURL(s.Transport.URL)
	}
	return strings.TrimSpace(s.Transport.Command + " " + strings.Join(s.Transport.Args, " "))
}

func appList(a mcp.Apps) string {
	apps := a.List()
	if len(apps) == 0 {
		return "-"
	}
	names := make([]string, len(apps))
	for i, app := range apps {
		names[i] = app.String()
	}
	return strings.Join(names, ",")
}

// maskServer returns a copy of s with secret env and header values masked.
func maskServer(s *mcp.Server) *mcp.Server {
	c := s.Clone()
	c.Transport.Env = doctor.MaskSecrets(c.Transport.Env)
	c.Transport.Headers = doctor.MaskSecrets(c.Transport.Headers)
	c.Transport.URL = doctor.MaskURL(c.Transport.URL)
	return c
}
