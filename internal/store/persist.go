package store

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

// FilePerm is the mode of the store file; it holds credentials.
const FilePerm = 0o600

// Load reads the store at path. A missing file yields an empty store. A file
// that cannot be parsed yields a Format error; it is never replaced with
// defaults.
func Load(fsys afero.Fs, path string) (*MultiAppConfig, error) {
	data, ok, err := fileutil.ReadOptional(fsys, path)
	if err != nil {
		return nil, err
	}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}
	return Parse(data, path)
}

// Parse decodes a store document. name labels errors.
func Parse(data []byte, name string) (*MultiAppConfig, error) {
	var cfg MultiAppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Format(err, name)
	}
	if cfg.Version > Version {
		return nil, errors.Format(
			errors.Newf("store version %d is newer than supported version %d", cfg.Version, Version), name)
	}
	if err := checkNullEntries(&cfg); err != nil {
		return nil, errors.Format(err, name)
	}
	cfg.Version = Version
	cfg.ensure()
	for app := range cfg.Apps {
		if !app.Valid() {
			delete(cfg.Apps, app)
		}
	}
	for id, s := range cfg.Servers {
		if s.ID == "" {
			s.ID = id
		}
	}
	return &cfg, nil
}

// checkNullEntries rejects entries written as null. Providers are checked
// while decoding.
func checkNullEntries(cfg *MultiAppConfig) error {
	for id, s := range cfg.Servers {
		if s == nil {
			return errors.Newf("mcp server %q is null", id)
		}
	}
	for id, s := range cfg.Skills {
		if s == nil {
			return errors.Newf("skill %q is null", id)
		}
	}
	for app, ac := range cfg.Apps {
		if ac == nil {
			continue
		}
		for id, p := range ac.Prompts {
			if p == nil {
				return errors.Newf("%s prompt %q is null", app, id)
			}
		}
	}
	return nil
}

// Marshal encodes cfg as indented JSON.
func Marshal(cfg *MultiAppConfig) ([]byte, error) {
	cfg.Version = Version
	return fileutil.MarshalJSON(cfg)
}

// Save atomically writes cfg to path with owner-only permissions.
func Save(fsys afero.Fs, path string, cfg *MultiAppConfig) error {
	data, err := Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encoding store")
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.IO(err, "creating store directory")
	}
	return fileutil.WriteAtomic(fsys, path, data, FilePerm)
}
