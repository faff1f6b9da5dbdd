package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/doctor"
	"github.com/thoreinstein/switchboard/internal/errors"
)

var (
	validateJSON bool
	validateAll  bool
)

// errValidationProblems is returned when validate reports errors.
var errValidationProblems = errors.New("validation found errors")

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the report as JSON")
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "also list passing checks and informational findings")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the store and live files for problems",
	Long: `Check the store and every app's live files without changing anything.

Reports dangling current providers, provider settings that cannot be
rendered, MCP servers with an invalid transport, live files that cannot be
parsed or have drifted from the current provider, and prompt files edited
outside switchboard.

Exits non-zero when any finding is an error.`,
	Example: `  # Check everything
  switchboard validate

  # Machine-readable report
  switchboard validate --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runValidateWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runValidateWithWriter(ctx context.Context, w io.Writer) error {
	m, err := cli.OpenManager(ctx, flags.Config())
	if err != nil {
		return err
	}

	report := m.Validate(ctx)

	format := doctor.FormatText
	if validateJSON {
		format = doctor.FormatJSON
	}
	if err := doctor.NewReporter(w, format, validateAll).Report(report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errValidationProblems, errors.ExitUser)
	}
	return nil
}
