package codex

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

const (
	authFile   = "auth.json"
	configFile = "config.toml"

	// mcpKey is the config.toml table holding server registrations.
	mcpKey = "mcp_servers"
)

// Adapter implements platform.Adapter for Codex.
type Adapter struct {
	*platform.Base
}

var _ platform.Adapter = (*Adapter)(nil)

// New returns an adapter rooted at configDir. An empty configDir uses
// ~/.codex.
func New(fsys afero.Fs, configDir string) *Adapter {
	if configDir == "" {
		configDir = paths.GlobalConfigDir(paths.AppCodex)
	}
	return &Adapter{
		Base: platform.NewBase(fsys, paths.AppCodex, configDir,
			platform.FileSpec{
				Role:   platform.RoleAuth,
				Path:   filepath.Join(configDir, authFile),
				Format: platform.FormatJSON,
				Perm:   platform.SecretPerm,
			},
			platform.FileSpec{
				Role:   platform.RoleConfig,
				Path:   filepath.Join(configDir, configFile),
				Format: platform.FormatTOML,
				Perm:   platform.SecretPerm,
			},
		),
	}
}
