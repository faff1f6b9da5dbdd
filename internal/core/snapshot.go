package core

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/switchboard/internal/backup"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

// Backup labels used for automatic snapshots.
const (
	LabelPreImport  = "pre-import"
	LabelPreRestore = "pre-restore"
)

var prettyOptions = &pretty.Options{Width: 100, Prefix: "", Indent: "  ", SortKeys: false}

// RestoreResult describes a restore or snapshot import.
type RestoreResult struct {
	Result

	// Safety is the backup of the store taken before it was replaced.
	Safety *backup.Snapshot
}

// Backup snapshots the store under label and returns the snapshot.
func (m *Manager) Backup(label string) (*backup.Snapshot, error) {
	var data []byte
	err := m.guard.Read(func(cfg *store.MultiAppConfig) error {
		var err error
		data, err = store.Marshal(cfg.Clone())
		return err
	})
	if err != nil {
		return nil, err
	}
	snap, err := m.backups.Backup(label, data)
	if err != nil {
		return snap, err
	}
	m.logger.Debug("store backed up", "id", snap.ID, "path", snap.Path)
	return snap, nil
}

// ListBackups returns snapshots newest first. No backups is an empty list.
func (m *Manager) ListBackups() ([]backup.Snapshot, error) {
	snaps, err := m.backups.List()
	if errors.Is(err, backup.ErrNoBackupsFound) {
		return nil, nil
	}
	return snaps, err
}

// Restore replaces the store with a snapshot, given by id or path, and
// replays every application's live files. The current store is backed up
// first.
func (m *Manager) Restore(idOrPath string) (*RestoreResult, error) {
	snap, err := m.backups.Resolve(idOrPath)
	if err != nil {
		return nil, err
	}
	data, err := m.backups.Read(snap)
	if err != nil {
		return nil, err
	}
	restored, err := store.Parse(data, snap.Path)
	if err != nil {
		return nil, err
	}
	return m.replaceStore(restored, LabelPreRestore)
}

// ExportSnapshot writes the store to path: YAML for .yaml/.yml, otherwise
// indented JSON. The file contains credentials and is written owner-only.
func (m *Manager) ExportSnapshot(path string) error {
	cfg := m.guard.Snapshot()
	raw, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encoding store")
	}

	var out []byte
	if isYAML(path) {
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return errors.Wrap(err, "encoding store")
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return errors.Wrap(err, "encoding store as YAML")
		}
		out = buf.Bytes()
	} else {
		out = pretty.PrettyOptions(raw, prettyOptions)
	}

	path = paths.ExpandHome(path)
	if err := m.fs.MkdirAll(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.IO(err, "creating "+filepath.Dir(path))
	}
	return fileutil.WriteAtomic(m.fs, path, out, store.FilePerm)
}

// ImportSnapshot replaces the store with the snapshot at path (JSON or
// YAML), after validating it and backing up the current store, then replays
// every application's live files.
func (m *Manager) ImportSnapshot(path string) (*RestoreResult, error) {
	path = paths.ExpandHome(path)
	data, ok, err := fileutil.ReadOptional(m.fs, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFoundf("snapshot %s not found", path)
	}
	if isYAML(path) {
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, errors.Format(err, path)
		}
		if data, err = json.Marshal(generic); err != nil {
			return nil, errors.Format(err, path)
		}
	}
	imported, err := store.Parse(data, path)
	if err != nil {
		return nil, err
	}
	if err := validateStore(imported); err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", path)
	}
	return m.replaceStore(imported, LabelPreImport)
}

// SyncAll replays every application's current provider, enabled MCP servers
// and active prompt.
func (m *Manager) SyncAll() (*Result, error) {
	res := &Result{}
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		return m.syncAll(cfg, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *Manager) replaceStore(next *store.MultiAppConfig, label string) (*RestoreResult, error) {
	safety, err := m.Backup(label)
	if err != nil {
		return nil, errors.Wrap(err, "backing up current store")
	}
	res := &RestoreResult{Safety: safety}
	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		*cfg = *next.Clone()
		for _, app := range paths.Apps() {
			cfg.App(app).HealCurrent()
		}
		return m.syncAll(cfg, &res.Result)
	})
	if err != nil {
		return nil, err
	}
	m.storeLoadErr = nil
	return res, nil
}

// validateStore rejects stores whose servers or providers are unusable.
// Dangling current pointers are repairable and are not rejected.
func validateStore(cfg *store.MultiAppConfig) error {
	for id, s := range cfg.Servers {
		if s.ID != id {
			return errors.Invalidf("MCP server key %q holds id %q", id, s.ID)
		}
		if err := mcp.Validate(s); err != nil {
			return err
		}
	}
	for app, ac := range cfg.Apps {
		for _, p := range ac.Providers.All() {
			if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
				return errors.Invalidf("%s provider %q: id and name are required", app, p.ID)
			}
		}
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
