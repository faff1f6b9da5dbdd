package skill

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/otiai10/copy"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// Sync methods. They mirror the skills.sync_method configuration values.
const (
	MethodAuto    = "auto"
	MethodSymlink = "symlink"
	MethodCopy    = "copy"
)

// Installed describes a skill directory placed in the managed store.
type Installed struct {
	ID          string
	Name        string
	Description string
	Directory   string
}

// Unmanaged describes a skill directory found in an app's skills directory
// that the store does not track.
type Unmanaged struct {
	ID          string
	Name        string
	Description string
	Path        string
}

// Installer copies skills into the managed store and links them into apps.
type Installer struct {
	storeDir string
	method   string
	logger   *slog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithMethod sets how skills reach an app's skills directory.
func WithMethod(method string) Option {
	return func(i *Installer) {
		if method != "" {
			i.method = method
		}
	}
}

// WithLogger sets the logger used for fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(i *Installer) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInstaller returns an Installer rooted at storeDir. An empty storeDir
// selects the default managed skills directory.
func NewInstaller(storeDir string, opts ...Option) *Installer {
	if storeDir == "" {
		storeDir = paths.SkillStoreDir()
	}
	i := &Installer{
		storeDir: storeDir,
		method:   MethodAuto,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// StoreDir returns the managed skills directory.
func (i *Installer) StoreDir() string { return i.storeDir }

// Path returns where skill id lives in the managed store.
func (i *Installer) Path(id string) string {
	return filepath.Join(i.storeDir, id)
}

// Install copies the skill directory src into the store. The id is derived
// from name, falling back to the manifest name and then the directory name.
// Installing over an existing id is rejected.
func (i *Installer) Install(src, name string) (*Installed, error) {
	src = paths.ExpandHome(src)
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("skill source %s not found", src)
		}
		return nil, errors.IO(err, "stat "+src)
	}
	if !info.IsDir() {
		return nil, errors.Invalidf("skill source %s is not a directory", src)
	}

	m, err := ReadManifest(src)
	if err != nil {
		return nil, err
	}

	display := firstNonEmpty(name, m.Name, filepath.Base(src))
	id := NormalizeID(display)
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	dst := i.Path(id)
	if _, err := os.Lstat(dst); err == nil {
		return nil, errors.Invalidf("skill %q is already installed", id)
	}

	if err := os.MkdirAll(i.storeDir, paths.DefaultDirPerm); err != nil {
		return nil, errors.IO(err, "creating skills directory")
	}
	if err := copy.Copy(src, dst, copyOptions()); err != nil {
		_ = os.RemoveAll(dst)
		return nil, errors.IO(err, "copying skill "+id)
	}

	return &Installed{
		ID:          id,
		Name:        firstNonEmpty(m.Name, display),
		Description: m.Description,
		Directory:   dst,
	}, nil
}

// Remove deletes skill id from the managed store.
func (i *Installer) Remove(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := os.RemoveAll(i.Path(id)); err != nil {
		return errors.IO(err, "removing skill "+id)
	}
	return nil
}

// Link exposes skill id inside appSkillsDir and returns the method used.
// With MethodAuto a failed symlink falls back to a copy. An existing entry
// with the same name is replaced.
func (i *Installer) Link(id, appSkillsDir string) (string, error) {
	src := i.Path(id)
	if _, err := os.Stat(src); err != nil {
		return "", errors.NotFoundf("skill %q is not installed", id)
	}
	if err := os.MkdirAll(appSkillsDir, paths.DefaultDirPerm); err != nil {
		return "", errors.IO(err, "creating "+appSkillsDir)
	}
	dst := filepath.Join(appSkillsDir, id)
	if err := os.RemoveAll(dst); err != nil {
		return "", errors.IO(err, "replacing "+dst)
	}

	switch i.method {
	case MethodCopy:
		return MethodCopy, copyInto(src, dst)
	case MethodSymlink:
		if err := os.Symlink(src, dst); err != nil {
			return "", errors.IO(err, "linking skill "+id)
		}
		return MethodSymlink, nil
	default:
		if err := os.Symlink(src, dst); err != nil {
			i.logger.Warn("symlink failed, copying skill instead", "skill", id, "error", err)
			return MethodCopy, copyInto(src, dst)
		}
		return MethodSymlink, nil
	}
}

// Unlink removes skill id from appSkillsDir. A missing entry is not an error.
func (i *Installer) Unlink(id, appSkillsDir string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	dst := filepath.Join(appSkillsDir, id)
	if err := os.RemoveAll(dst); err != nil {
		return errors.IO(err, "removing "+dst)
	}
	return nil
}

// Scan lists skill directories in appSkillsDir whose ids are not in known.
// Hidden entries and directories without a SKILL.md are ignored. A missing
// appSkillsDir yields no results.
func (i *Installer) Scan(appSkillsDir string, known []string) ([]Unmanaged, error) {
	entries, err := os.ReadDir(appSkillsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.IO(err, "reading "+appSkillsDir)
	}

	var found []Unmanaged
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || slices.Contains(known, name) {
			continue
		}
		dir := filepath.Join(appSkillsDir, name)
		// Follows symlinks so linked skills from other tools are reported too
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		m, err := ReadManifest(dir)
		if err != nil {
			continue
		}
		found = append(found, Unmanaged{
			ID:          name,
			Name:        firstNonEmpty(m.Name, name),
			Description: m.Description,
			Path:        dir,
		})
	}
	return found, nil
}

func copyInto(src, dst string) error {
	if err := copy.Copy(src, dst, copyOptions()); err != nil {
		_ = os.RemoveAll(dst)
		return errors.IO(err, "copying "+src)
	}
	return nil
}

func copyOptions() copy.Options {
	return copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Deep },
		Skip: func(info os.FileInfo, _, _ string) (bool, error) {
			return info.IsDir() && info.Name() == ".git", nil
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
