package provider

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/cli/prompt"
	"github.com/thoreinstein/switchboard/internal/core"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

func init() {
	Cmd.AddCommand(switchCmd)
}

var switchCmd = &cobra.Command{
	Use:     "switch [id]",
	Aliases: []string{"use"},
	Short:   "Make a provider current",
	Long: `Make a provider current and write its settings into the app's live
files.

Before switching, edits made by hand to the outgoing provider's live
settings are copied back into the store. Keys the provider does not own are
left untouched.

Without an id, pick the provider interactively.`,
	Example: `  switchboard provider switch relay
  switchboard provider switch --app gemini`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args)
	},
}

func runSwitch(ctx context.Context, in io.Reader, w io.Writer, args []string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		id, err = pickProvider(m, app, flags.Picker(in, w))
		if err != nil {
			return err
		}
	}

	res, err := m.SwitchProvider(app, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "Run: switchboard provider list --app "+app.String())
		}
		return err
	}

	cli.PrintWarnings(w, &res.Result)
	if res.Backfilled {
		fmt.Fprintf(w, "Saved live edits to %s\n", res.PreviousID)
	}
	if res.Skipped(app) {
		fmt.Fprintf(w, "%s is current for %s; live files were not written\n", id, app.DisplayName())
		return nil
	}
	cli.Success(w, "Switched %s to %s", app.DisplayName(), id)
	return nil
}

// pickProvider asks the user to choose one of app's providers.
func pickProvider(m *core.Manager, app paths.App, p prompt.Picker) (string, error) {
	providers, err := m.ListProviders(app)
	if err != nil {
		return "", err
	}
	current, err := m.CurrentProvider(app)
	if err != nil {
		return "", err
	}

	items := make([]prompt.Item, len(providers))
	for i, pr := range providers {
		label := pr.ID + "  " + pr.Name
		if current != nil && pr.ID == current.ID {
			label += "  (current)"
		}
		_, baseURL, _ := m.UsageCredentials(app, pr.ID)
		items[i] = prompt.Item{
			Label:  label,
			Detail: fmt.Sprintf("ID: %s\nName: %s\nBase URL: %s\nCategory: %s\n\n%s", pr.ID, pr.Name, baseURL, pr.Category, pr.Notes),
		}
	}

	idx, err := p.Pick("Select a "+app.DisplayName()+" provider", items)
	if err != nil {
		if errors.Is(err, prompt.ErrNoItems) {
			return "", errors.NewUserError(errors.NotFoundf("%s has no providers", app), "Add one with: switchboard provider add")
		}
		return "", err
	}
	return providers[idx].ID, nil
}
