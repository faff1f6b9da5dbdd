package commands

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	// Save/Restore original state
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"debug=1", "1", slog.LevelDebug},
		{"debug=true", "true", slog.LevelDebug},
		{"debug=2", "2", logging.LevelTrace},
		{"debug=0", "0", slog.LevelWarn},
		{"debug=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv(debugEnv, tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}

			if tt.wantLevel == slog.LevelDebug {
				if logger.Enabled(t.Context(), logging.LevelTrace) {
					t.Errorf("expected Trace level to be disabled when %s=%s", debugEnv, tt.envVal)
				}
			}
		})
	}
}

func TestSetupLogging_FlagPrecedence(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	t.Setenv(debugEnv, "2")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug level to be disabled (flag should override env var)")
	}
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	origVerbosity := verbosity
	origQuiet := quiet
	defer func() {
		verbosity = origVerbosity
		quiet = origQuiet
	}()

	verbosity = 1
	quiet = true

	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error when both quiet and verbose are set")
	}
}

func TestValidateAppFlag(t *testing.T) {
	origApp, origLoadErr := appFlag, configLoadErr
	defer func() {
		appFlag, configLoadErr = origApp, origLoadErr
		flags.SetAppFlag(nil)
	}()

	tests := []struct {
		name    string
		cmd     *cobra.Command
		apps    []string
		loadErr error
		wantErr bool
	}{
		{"no apps", statusCmd, nil, nil, false},
		{"valid apps", statusCmd, []string{"claude", "codex"}, nil, false},
		{"unknown app", statusCmd, []string{"cursor"}, nil, true},
		{"config load error", statusCmd, nil, errors.New("bad yaml"), true},
		{"version skips checks", versionCmd, []string{"cursor"}, errors.New("bad yaml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appFlag, configLoadErr = tt.apps, tt.loadErr
			flags.SetAppFlag(nil)

			err := validateAppFlag(tt.cmd, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateAppFlag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.cmd != versionCmd && len(flags.GetAppFlag()) != len(tt.apps) {
				t.Errorf("app flag = %v, want %v", flags.GetAppFlag(), tt.apps)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.NewUserError(errors.New("provider \"x\" not found"), "Run: switchboard provider list"))

	out := buf.String()
	if !strings.Contains(out, `provider "x" not found`) {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "  Run: switchboard provider list") {
		t.Errorf("output missing suggestion: %q", out)
	}
}
