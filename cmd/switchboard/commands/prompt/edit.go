package prompt

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/editor"
	"github.com/thoreinstein/switchboard/internal/errors"
)

func init() {
	Cmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a preset's body in $EDITOR",
	Long: `Edit a preset's body in your editor. Editing the active preset
rewrites the instruction file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runEditWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	p, err := findPrompt(m, app, id)
	if err != nil {
		return err
	}

	edited, err := editFunc([]byte(p.Content), "prompt-*.md")
	if errors.Is(err, editor.ErrUnchanged) {
		fmt.Fprintln(w, "No changes")
		return nil
	}
	if err != nil {
		return err
	}

	p.Content = string(edited)
	_, res, err := m.UpsertPrompt(app, p)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Saved %s", id)
	return nil
}
