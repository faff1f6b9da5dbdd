// Package clitest builds isolated configurations for command tests.
package clitest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/switchboard/internal/config"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// Config returns a configuration whose store, backups, skills and app
// directories all live under a fresh temp directory. The directories of
// the apps in initialized are created.
func Config(t *testing.T, initialized ...paths.App) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.StorePath = filepath.Join(root, "switchboard", "config.json")
	cfg.Backup.Dir = filepath.Join(root, "switchboard", "backups")
	cfg.Skills.Dir = filepath.Join(root, "switchboard", "skills")
	cfg.Skills.SyncMethod = config.SyncMethodCopy
	cfg.Apps = make(map[string]config.AppOverride)
	for _, app := range paths.Apps() {
		cfg.Apps[app.String()] = config.AppOverride{ConfigDir: AppDir(cfg, app)}
	}
	for _, app := range initialized {
		if err := os.MkdirAll(AppDir(cfg, app), 0o755); err != nil {
			t.Fatalf("creating %s dir: %v", app, err)
		}
	}
	return cfg
}

// AppDir returns app's config directory under cfg's temp root.
func AppDir(cfg *config.Config, app paths.App) string {
	if o, ok := cfg.Apps[app.String()]; ok && o.ConfigDir != "" {
		return o.ConfigDir
	}
	root := filepath.Dir(filepath.Dir(cfg.StorePath))
	return filepath.Join(root, "home", "."+app.String())
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
