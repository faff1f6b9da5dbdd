// Package prompt provides CLI commands for managing prompt presets.
package prompt

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/core"
	"github.com/thoreinstein/switchboard/internal/editor"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// editFunc opens content in an editor and returns the result.
var editFunc = editor.Edit

// Cmd is the root prompt command.
var Cmd = &cobra.Command{
	Use:     "prompt",
	Aliases: []string{"prompts"},
	Short:   "Manage prompt presets",
	Long: `Manage prompt presets: named bodies for an app's instruction file
(CLAUDE.md, AGENTS.md or GEMINI.md).

Activating a preset writes its body to the instruction file. Edits made to
the file while a preset is active are saved back into that preset before
another one is activated.`,
	Example: `  # Add a preset from a file and activate it
  switchboard prompt add "Code review" --file review.md --activate

  # List Codex presets
  switchboard prompt list --app codex

  See Also:
    switchboard prompt activate   - Write a preset to the instruction file
    switchboard prompt deactivate - Remove the instruction file`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func open(ctx context.Context) (*core.Manager, paths.App, error) {
	app, err := cli.SingleApp(flags.GetAppFlag())
	if err != nil {
		return nil, "", err
	}
	m, err := cli.OpenManager(ctx, flags.Config())
	if err != nil {
		return nil, "", err
	}
	return m, app, nil
}
