package mcp

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/mcp"
)

// Sentinel errors for MCP add operations.
var (
	errMissingCommandOrURL = errors.Mark(errors.New("either command or --url is required"), errors.ErrValidationFailed)
	errBothCommandAndURL   = errors.Mark(errors.New("cannot specify both command and --url"), errors.ErrValidationFailed)
)

// Package-level flag variables for mcp add command.
var (
	addURL         string
	addTransport   string
	addEnv         []string
	addHeaders     []string
	addCwd         string
	addName        string
	addDescription string
	addForce       bool
)

func init() {
	addCmd.Flags().StringVar(&addURL, "url", "", "remote server endpoint")
	addCmd.Flags().StringVar(&addTransport, "transport", "",
		"transport type: stdio, http, sse (default: stdio, or http with --url)")
	addCmd.Flags().StringSliceVar(&addEnv, "env", nil,
		"environment variables in KEY=VALUE format (repeatable)")
	addCmd.Flags().StringSliceVar(&addHeaders, "headers", nil,
		"HTTP headers in KEY=VALUE format (repeatable)")
	addCmd.Flags().StringVar(&addCwd, "cwd", "", "working directory of a stdio server")
	addCmd.Flags().StringVar(&addName, "name", "", "display name")
	addCmd.Flags().StringVar(&addDescription, "description", "", "what the server provides")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "overwrite if server already exists")
	addCmd.Flags().SetInterspersed(false)
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <id> [command] [args...]",
	Short: "Add an MCP server",
	Long: `Add an MCP server and enable it for the apps named by --app
(default: claude).

For local stdio servers, provide a command and optional arguments. For
remote servers, use --url. Flags must come before the command.`,
	Example: `  switchboard mcp add github npx -y @modelcontextprotocol/server-github
  switchboard mcp add --env DB_HOST=localhost db ./db-mcp
  switchboard mcp add --url https://api.example.com/mcp --headers "Authorization=Bearer x" api

  See Also:
    switchboard mcp list   - List servers
    switchboard mcp remove - Remove a server`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddWithWriter(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

func runAddWithWriter(ctx context.Context, w io.Writer, args []string) error {
	id := args[0]
	var command string
	var cmdArgs []string
	if len(args) > 1 {
		command = args[1]
		cmdArgs = args[2:]
	}

	if command == "" && addURL == "" {
		return errors.NewUserError(errMissingCommandOrURL, "Run: switchboard mcp add --help")
	}
	if command != "" && addURL != "" {
		return errors.NewUserError(errBothCommandAndURL, "")
	}

	kind := mcp.KindStdio
	if addURL != "" {
		kind = mcp.KindHTTP
	}
	if addTransport != "" {
		k, err := mcp.ParseKind(addTransport)
		if err != nil {
			return errors.NewUserError(err, "Valid transports: stdio, http, sse")
		}
		kind = k
	}

	env, err := parsePairs("env", addEnv)
	if err != nil {
		return err
	}
	headers, err := parsePairs("headers", addHeaders)
	if err != nil {
		return err
	}
	apps, err := targetApps()
	if err != nil {
		return err
	}

	m, err := open(ctx)
	if err != nil {
		return err
	}
	if !addForce {
		if _, err := m.GetMCPServer(id); err == nil {
			return errors.NewUserError(errors.Invalidf("MCP server %q already exists", id), "Use --force to overwrite")
		}
	}

	s := &mcp.Server{
		ID:          id,
		Name:        addName,
		Description: addDescription,
		Transport: mcp.Transport{
			Kind:    kind,
			Command: command,
			Args:    cmdArgs,
			Env:     env,
			Cwd:     addCwd,
			URL:     addURL,
			Headers: headers,
		},
	}
	for _, app := range apps {
		s.Apps = s.Apps.With(app, true)
	}

	res, err := m.UpsertMCPServer(s)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Added MCP server %s", id)
	return nil
}
