package provider

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/errors"
)

var (
	commonFile  string
	commonClear bool
)

func init() {
	commonCmd.Flags().StringVar(&commonFile, "file", "", "read the snippet from a file")
	commonCmd.Flags().BoolVar(&commonClear, "clear", false, "remove the snippet")
	commonCmd.MarkFlagsMutuallyExclusive("file", "clear")
	Cmd.AddCommand(commonCmd)
}

var commonCmd = &cobra.Command{
	Use:   "common [snippet]",
	Short: "Show or set the common config snippet",
	Long: `Show or set the app's common config snippet: settings merged into every
provider's live files. The snippet uses the app's native format (JSON for
claude and gemini, TOML for codex). Where a key is set by both, the snippet
wins.

Setting the snippet rewrites the current provider's live files.`,
	Example: `  # Show the snippet
  switchboard provider common

  # Always include a model setting
  switchboard provider common '{"model": "opus"}'

  # Codex snippet from a file
  switchboard provider common --app codex --file common.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommonWithWriter(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

func runCommonWithWriter(ctx context.Context, w io.Writer, args []string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}

	var snippet string
	switch {
	case commonClear:
	case commonFile != "":
		data, err := os.ReadFile(commonFile)
		if err != nil {
			return errors.Wrapf(err, "reading %s", commonFile)
		}
		snippet = string(data)
	case len(args) == 1:
		snippet = args[0]
	default:
		current, err := m.CommonSnippet(app)
		if err != nil {
			return err
		}
		if current == "" {
			fmt.Fprintf(w, "%s has no common config snippet\n", app.DisplayName())
			return nil
		}
		fmt.Fprintln(w, current)
		return nil
	}

	res, err := m.SetCommonSnippet(app, snippet)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	if snippet == "" {
		cli.Success(w, "Cleared the %s common config snippet", app.DisplayName())
	} else {
		cli.Success(w, "Saved the %s common config snippet", app.DisplayName())
	}
	return nil
}
