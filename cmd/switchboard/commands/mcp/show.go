package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/doctor"
	"github.com/thoreinstein/switchboard/internal/errors"
)

var (
	showJSON       bool
	showShowSecret bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	showCmd.Flags().BoolVar(&showShowSecret, "show-secrets", false, "print env and header values unmasked")
	Cmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an MCP server",
	Long: `Show one MCP server. Secret-looking env and header values are masked
unless --show-secrets is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runShowWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, err := open(ctx)
	if err != nil {
		return err
	}
	s, err := m.GetMCPServer(id)
	if err != nil {
		return err
	}
	if !showShowSecret {
		s = maskServer(s)
	}

	if showJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(s), "encoding output")
	}

	label := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", label("ID:"), s.ID)
	if s.Name != "" {
		fmt.Fprintf(w, "%s %s\n", label("Name:"), s.Name)
	}
	if s.Description != "" {
		fmt.Fprintf(w, "%s %s\n", label("Description:"), s.Description)
	}
	fmt.Fprintf(w, "%s %s\n", label("Type:"), s.Transport.Kind)
	if s.Transport.IsRemote() {
		fmt.Fprintf(w, "%s %s\n", label("URL:"), s.Transport.URL)
		printMap(w, label("Headers:"), s.Transport.Headers)
	} else {
		fmt.Fprintf(w, "%s %s\n", label("Command:"), strings.TrimSpace(s.Transport.Command+" "+strings.Join(s.Transport.Args, " ")))
		if s.Transport.Cwd != "" {
			fmt.Fprintf(w, "%s %s\n", label("Cwd:"), s.Transport.Cwd)
		}
		printMap(w, label("Env:"), s.Transport.Env)
	}
	fmt.Fprintf(w, "%s %s\n", label("Apps:"), appList(s.Apps))
	if len(s.Extra) > 0 {
		extra, err := json.Marshal(doctor.MaskDocument(s.Extra))
		if err != nil {
			return errors.Wrap(err, "encoding extra fields")
		}
		fmt.Fprintf(w, "%s %s\n", label("Extra:"), extra)
	}
	return nil
}

func printMap(w io.Writer, title string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(w, "  %s=%s\n", k, m[k])
	}
}
