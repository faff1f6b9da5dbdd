// Package logging provides structured logging for switchboard using slog.
//
// Text output is colourised on terminals and JSON output is available for
// machine consumption. Both formats mask attribute values whose keys look
// secret (API keys, tokens) or whose values carry a known token prefix, so
// provider credentials never reach a log file.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Tests use [ForTest] so output only appears for failing tests or with -v.
package logging
