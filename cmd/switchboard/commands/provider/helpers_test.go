package provider

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli/clitest"
	"github.com/thoreinstein/switchboard/internal/cli/prompt"
	"github.com/thoreinstein/switchboard/internal/config"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// mockPicker records interactive selections.
type mockPicker struct {
	mock.Mock
}

func (m *mockPicker) Pick(header string, items []prompt.Item) (int, error) {
	args := m.Called(header, items)
	return args.Int(0), args.Error(1)
}

// setup points the commands at an isolated config with claude initialized
// and resets every flag.
func setup(t *testing.T, app ...string) *config.Config {
	t.Helper()
	cfg := clitest.Config(t, paths.AppClaude, paths.AppCodex)
	flags.SetConfig(cfg)
	flags.SetAppFlag(app)
	resetFlags()
	t.Cleanup(func() {
		flags.SetConfig(nil)
		flags.SetAppFlag(nil)
		flags.SetPicker(nil)
		resetFlags()
	})
	return cfg
}

func resetFlags() {
	listJSON = false
	addName, addSettings, addSettingsFile = "", "", ""
	addEnv = nil
	addWebsite, addCategory, addNotes = "", "", ""
	commonFile, commonClear = "", false
	usageShowSecret, usageJSON = false, false
	editFunc = defaultEditFunc
}

var defaultEditFunc = editFunc

func claudeSettings(cfg *config.Config) string {
	return filepath.Join(clitest.AppDir(cfg, paths.AppClaude), "settings.json")
}
