// Package fileutil provides the filesystem primitives the synchronization
// core is built on: atomic replacement of whole files and bounded reads where
// a missing file is a normal state.
//
// Functions accept an afero.Fs so callers and tests can substitute the
// filesystem. AtomicWriteYAML writes to the OS filesystem.
package fileutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/switchboard/internal/errors"
)

// tempPattern names in-flight temp files. Readers never see these because
// they are renamed over the destination or removed.
const tempPattern = ".switchboard-*.tmp"

// OS is the real filesystem.
var OS afero.Fs = afero.NewOsFs()

// WriteAtomic writes data to path on fsys so that path holds either its old
// content or data at every instant. The bytes are written to a temp file in
// the same directory, synced, chmod-ed, closed and renamed over path. The
// parent directory is synced afterwards when the filesystem supports it.
//
// The caller is responsible for ensuring the parent directory exists.
func WriteAtomic(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := afero.TempFile(fsys, dir, tempPattern)
	if err != nil {
		return errors.IO(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.IO(err, "writing temp file")
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.IO(err, "syncing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.IO(err, "closing temp file")
	}

	if err := fsys.Chmod(tmpName, perm); err != nil {
		return errors.IO(err, "setting file permissions")
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		return errors.IO(err, "renaming temp file")
	}
	renamed = true

	syncDir(fsys, dir)
	return nil
}

// syncDir flushes the directory entry for a completed rename. Failures are
// ignored: not every filesystem can open or sync a directory.
func syncDir(fsys afero.Fs, dir string) {
	d, err := fsys.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

// MarshalJSON encodes v with 2-space indentation and a trailing newline,
// without HTML escaping so URLs with query strings stay readable.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	return buf.Bytes(), nil
}

// AtomicWriteYAML writes v as YAML to path atomically with 0644 permissions.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.Marshal panics on unmarshalable types
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	return WriteAtomic(OS, path, data, 0o644)
}

// RemoveIfExists deletes path, treating absence as success.
func RemoveIfExists(fsys afero.Fs, path string) error {
	if err := fsys.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.IO(err, "removing "+path)
	}
	return nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(fsys afero.Fs, path string) bool {
	ok, err := afero.DirExists(fsys, path)
	return err == nil && ok
}
