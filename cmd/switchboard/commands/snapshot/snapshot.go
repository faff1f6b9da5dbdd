// Package snapshot provides CLI commands for exporting and importing the
// whole store as a single file.
package snapshot

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/errors"
)

// Cmd is the root snapshot command.
var Cmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export or import the store",
	Long: `Export the store to a file, or replace it with one.

Snapshots are JSON, or YAML when the file name ends in .yaml or .yml. They
contain API keys and are written readable by the owner only.`,
	Example: `  # Move your setup to another machine
  switchboard snapshot export ~/switchboard.yaml
  switchboard snapshot import ~/switchboard.yaml

  See Also:
    switchboard backup - Manage automatic backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the store to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExportWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace the store with a file",
	Long: `Replace the store with a snapshot file and rewrite every app's live files
from it. The snapshot is validated first, and the current store is backed up
before it is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImportWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runExportWithWriter(ctx context.Context, w io.Writer, path string) error {
	m, err := cli.OpenManager(ctx, flags.Config())
	if err != nil {
		return err
	}
	if err := m.ExportSnapshot(path); err != nil {
		return err
	}
	cli.Success(w, "Exported store to %s", path)
	return nil
}

func runImportWithWriter(ctx context.Context, w io.Writer, path string) error {
	m, err := cli.OpenManager(ctx, flags.Config())
	if err != nil {
		return err
	}
	res, err := m.ImportSnapshot(path)
	if err != nil {
		if errors.Is(err, errors.ErrValidationFailed) || errors.Is(err, errors.ErrFormat) {
			return errors.NewUserError(err, "The store was not changed")
		}
		return err
	}
	cli.PrintWarnings(w, &res.Result)
	cli.Success(w, "Imported %s", path)
	if res.Safety != nil {
		fmt.Fprintf(w, "  previous store saved as %s\n", res.Safety.ID)
	}
	return nil
}
