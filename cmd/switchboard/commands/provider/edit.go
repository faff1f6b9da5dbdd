package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/editor"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/store"
)

// editFunc opens content in an editor and returns the result.
var editFunc = editor.Edit

func init() {
	Cmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a provider in $EDITOR",
	Long: `Open the provider as JSON in your editor and save the result.
Editing the current provider rewrites the app's live files.`,
	Example: `  switchboard provider edit relay
  EDITOR=nano switchboard provider edit work --app codex`,
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
	p, err := m.GetProvider(app, id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding provider")
	}
	edited, err := editFunc(append(data, '\n'), "provider-*.json")
	if errors.Is(err, editor.ErrUnchanged) {
		fmt.Fprintln(w, "No changes")
		return nil
	}
	if err != nil {
		return err
	}

	var next store.Provider
	if err := json.Unmarshal(edited, &next); err != nil {
		return errors.NewUserError(errors.Format(err, "edited provider"), "Nothing was saved")
	}
	if next.ID != id {
		return errors.NewUserError(errors.Invalidf("provider id changed from %q to %q", id, next.ID),
			"Use: switchboard provider duplicate to copy a provider under a new id")
	}

	res, err := m.UpsertProvider(app, &next)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Saved %s", id)
	return nil
}
