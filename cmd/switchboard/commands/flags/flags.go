// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (provider, mcp, prompt, etc.).
package flags

import (
	"io"
	"os"

	"github.com/thoreinstein/switchboard/internal/cli/prompt"
	"github.com/thoreinstein/switchboard/internal/config"
)

// appFlag holds the value of the --app flag.
var appFlag []string

// loaded holds the configuration read at startup.
var loaded *config.Config

// picker overrides interactive selection, for tests.
var picker prompt.Picker

// GetAppFlag returns the current value of the --app flag.
func GetAppFlag() []string {
	return appFlag
}

// SetAppFlag sets the app flag value.
// This is used by the root command after parsing and by tests.
func SetAppFlag(apps []string) {
	appFlag = apps
}

// Config returns the configuration loaded at startup, or the defaults when
// none was loaded.
func Config() *config.Config {
	if loaded == nil {
		return config.Default()
	}
	return loaded
}

// SetConfig replaces the configuration returned by Config.
func SetConfig(cfg *config.Config) {
	loaded = cfg
}

// Picker returns the picker used for interactive selection.
func Picker(in io.Reader, out io.Writer) prompt.Picker {
	if picker != nil {
		return picker
	}
	if in == nil {
		in = os.Stdin
	}
	return prompt.NewPicker(in, out)
}

// SetPicker overrides the picker returned by Picker. Passing nil restores
// the default.
func SetPicker(p prompt.Picker) {
	picker = p
}
