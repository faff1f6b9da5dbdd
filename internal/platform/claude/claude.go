package claude

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

const (
	settingsFile = "settings.json"
	mcpFile      = ".claude.json"

	// mcpKey is the object in .claude.json holding server registrations.
	mcpKey = "mcpServers"
)

// Adapter implements platform.Adapter for Claude Code.
type Adapter struct {
	*platform.Base
}

var _ platform.Adapter = (*Adapter)(nil)

// New returns an adapter rooted at configDir. An empty configDir uses
// ~/.claude and ~/.claude.json.
func New(fsys afero.Fs, configDir string) *Adapter {
	mcpPath := filepath.Join(paths.Home(), mcpFile)
	if configDir == "" {
		configDir = paths.GlobalConfigDir(paths.AppClaude)
	} else {
		mcpPath = filepath.Join(configDir, mcpFile)
	}

	return &Adapter{
		Base: platform.NewBase(fsys, paths.AppClaude, configDir,
			platform.FileSpec{
				Role:   platform.RoleSettings,
				Path:   filepath.Join(configDir, settingsFile),
				Format: platform.FormatJSON,
				Perm:   platform.SecretPerm,
			},
			platform.FileSpec{
				Role:   platform.RoleMCP,
				Path:   mcpPath,
				Format: platform.FormatJSON,
				Perm:   platform.SecretPerm,
			},
		),
	}
}
