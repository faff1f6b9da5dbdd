package prompt

import (
	"context"
	"io"
	"os"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/editor"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/store"
)

var (
	addID          string
	addFile        string
	addContent     string
	addDescription string
	addActivate    bool
)

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "preset id (default: derived from the name)")
	addCmd.Flags().StringVar(&addFile, "file", "", "read the body from a file")
	addCmd.Flags().StringVar(&addContent, "content", "", "the body text")
	addCmd.Flags().StringVar(&addDescription, "description", "", "short description")
	addCmd.Flags().BoolVar(&addActivate, "activate", false, "activate the preset after adding it")
	addCmd.MarkFlagsMutuallyExclusive("file", "content")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a prompt preset",
	Long: `Add a prompt preset. The body comes from --file, --content, or your
editor when neither is given.`,
	Example: `  switchboard prompt add "Code review" --file review.md
  switchboard prompt add Terse --content "Answer briefly." --activate`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runAddWithWriter(ctx context.Context, w io.Writer, name string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}

	id := addID
	if id == "" {
		id = slug.Make(name)
	}
	if id == "" {
		return errors.NewUserError(errors.Invalidf("cannot derive an id from %q", name), "Pass --id")
	}
	if existing, err := m.ListPrompts(app); err == nil {
		for _, p := range existing {
			if p.ID == id {
				return errors.NewUserError(errors.Invalidf("%s prompt %q already exists", app, id), "Use: switchboard prompt edit "+id)
			}
		}
	}

	content := addContent
	switch {
	case addFile != "":
		data, err := os.ReadFile(addFile)
		if err != nil {
			return errors.Wrapf(err, "reading %s", addFile)
		}
		content = string(data)
	case content == "":
		edited, err := editFunc(nil, "prompt-*.md")
		if err != nil && !errors.Is(err, editor.ErrUnchanged) {
			return err
		}
		content = string(edited)
	}

	id, res, err := m.UpsertPrompt(app, &store.PromptPreset{
		ID:          id,
		Name:        name,
		Content:     content,
		Description: addDescription,
	})
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Added %s prompt %s", app.DisplayName(), id)

	if !addActivate {
		return nil
	}
	res, err = m.ActivatePrompt(app, id)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Activated %s", id)
	return nil
}
