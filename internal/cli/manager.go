package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/switchboard/internal/config"
	"github.com/thoreinstein/switchboard/internal/core"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/logging"
)

// OpenManager opens the store described by cfg, logging through the logger
// carried by ctx.
func OpenManager(ctx context.Context, cfg *config.Config, opts ...core.Option) (*core.Manager, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	opts = append([]core.Option{core.WithLogger(logging.FromContext(ctx))}, opts...)
	m, err := core.Open(cfg, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}
	return m, nil
}

// PrintWarnings writes one line per warning in res. Nothing is written when
// res is nil or has no warnings.
func PrintWarnings(w io.Writer, res *core.Result) {
	if res == nil {
		return
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "%s %s\n", yellow("warning:"), warn)
	}
}

// Success writes a green check mark followed by msg.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}
