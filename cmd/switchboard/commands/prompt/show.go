package prompt

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/core"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

func init() {
	Cmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a preset's body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runShowWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}
	p, err := findPrompt(m, app, id)
	if err != nil {
		return err
	}
	fmt.Fprint(w, p.Content)
	return nil
}

func findPrompt(m *core.Manager, app paths.App, id string) (*store.PromptPreset, error) {
	prompts, err := m.ListPrompts(app)
	if err != nil {
		return nil, err
	}
	for _, p := range prompts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.NotFoundf("%s prompt %q not found", app, id)
}
