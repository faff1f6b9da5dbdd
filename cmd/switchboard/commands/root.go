// Package commands implements the CLI commands for switchboard.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd"
	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/backup"
	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/mcp"
	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/prompt"
	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/provider"
	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/skill"
	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/snapshot"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/config"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/logging"
)

// debugEnv raises verbosity when no -v flag is given: 1 or true for debug,
// 2 for trace.
const debugEnv = config.EnvPrefix + "_DEBUG"

// appFlag holds the value of the --app flag.
var appFlag []string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&appFlag, "app", "a", nil,
		`target app(s): claude, codex, gemini (default: claude, or all detected for sync commands)`)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: $XDG_CONFIG_HOME/switchboard/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("switchboard version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(provider.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(prompt.Cmd)
	rootCmd.AddCommand(skill.Cmd)
	rootCmd.AddCommand(backup.Cmd)
	rootCmd.AddCommand(snapshot.Cmd)
}

func initConfig() {
	config.Init()
	var cfg *config.Config
	cfg, configLoadErr = config.Load(configPath)
	flags.SetConfig(cfg)
}

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Switch providers and sync settings across AI coding assistants",
	Long: `switchboard keeps one store of provider profiles, MCP servers,
prompts and skills for Claude Code, Codex and Gemini CLI, and writes the
selected settings into each app's own config files.

Switching a provider rewrites only the keys the provider owns; everything
else in the live files is preserved. Edits made by hand to the active
provider are copied back into the store before the next switch.

Use the --app flag to pick the app a command acts on.`,
	Example: `  # Show the active provider of every app
  switchboard status

  # Switch Claude Code to another provider
  switchboard provider switch relay

  # Pick a Codex provider interactively
  switchboard provider switch --app codex

  # Check the store and live files
  switchboard validate

  See Also: switchboard import, switchboard backup, switchboard config`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateAppFlag(cmd, args)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// validateAppFlag checks that all specified apps are valid and hands them
// to the noun subpackages.
func validateAppFlag(cmd *cobra.Command, _ []string) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	// Check for config load errors first
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	if _, err := cli.ParseApps(appFlag); err != nil {
		return errors.NewUserError(err, "Run 'switchboard --help' to see valid apps")
	}
	flags.SetAppFlag(appFlag)
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return errors.ExitSuccess
	}
	exitErr := errors.ForExit(err)
	printError(rootCmd.ErrOrStderr(), exitErr)
	return exitErr.Code
}

func printError(w io.Writer, e *errors.ExitError) {
	fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), e)
	if e.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", e.Suggestion)
	}
}
