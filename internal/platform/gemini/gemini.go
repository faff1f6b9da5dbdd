package gemini

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

const (
	envFile      = ".env"
	settingsFile = "settings.json"

	mcpKey = "mcpServers"
)

// Adapter implements platform.Adapter for Gemini CLI.
type Adapter struct {
	*platform.Base
}

var _ platform.Adapter = (*Adapter)(nil)

// New returns an adapter rooted at configDir. An empty configDir uses
// ~/.gemini.
func New(fsys afero.Fs, configDir string) *Adapter {
	if configDir == "" {
		configDir = paths.GlobalConfigDir(paths.AppGemini)
	}
	return &Adapter{
		Base: platform.NewBase(fsys, paths.AppGemini, configDir,
			platform.FileSpec{
				Role:   platform.RoleEnv,
				Path:   filepath.Join(configDir, envFile),
				Format: platform.FormatEnv,
				Perm:   platform.SecretPerm,
			},
			platform.FileSpec{
				Role:   platform.RoleSettings,
				Path:   filepath.Join(configDir, settingsFile),
				Format: platform.FormatJSON,
				Perm:   platform.PublicPerm,
			},
		),
	}
}
