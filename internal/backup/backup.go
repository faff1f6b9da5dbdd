package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

// FilePerm is the mode snapshot files are written with. They contain API keys.
const FilePerm = 0o600

// maxCollisions bounds the -N suffix search within a single second.
const maxCollisions = 1000

// Manager creates, lists and prunes whole-store snapshots.
type Manager struct {
	fs             afero.Fs
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the directory snapshots are written to.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.rootDir = dir
		}
	}
}

// WithRetentionCount sets the number of snapshots to retain.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithClock overrides the time source used to stamp snapshot names.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithFs sets the filesystem snapshots are stored on.
func WithFs(fsys afero.Fs) Option {
	return func(m *Manager) {
		if fsys != nil {
			m.fs = fsys
		}
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		fs:             fileutil.OS,
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the directory snapshots are written to.
func (m *Manager) Dir() string { return m.rootDir }

// RetentionCount returns the number of snapshots Backup keeps.
func (m *Manager) RetentionCount() int { return m.retentionCount }

// Backup writes data verbatim to {label}_{YYYYMMDD_HHMMSS}.json (UTC) and prunes
// snapshots beyond the retention count. An empty label becomes "backup".
// A second snapshot within the same second gets a -N suffix.
func (m *Manager) Backup(label string, data []byte) (*Snapshot, error) {
	if m.rootDir == "" {
		return nil, errors.Invalidf("backup directory is not configured")
	}
	label = normalizeLabel(label)
	at := m.now().UTC().Truncate(time.Second)

	if err := m.fs.MkdirAll(m.rootDir, paths.DefaultDirPerm); err != nil {
		return nil, errors.IO(err, "creating backup directory")
	}

	var id, path string
	for n := 0; ; n++ {
		if n >= maxCollisions {
			return nil, errors.IO(os.ErrExist, "allocating backup name")
		}
		id = snapshotID(label, at, n)
		path = m.pathFor(id)
		exists, err := afero.Exists(m.fs, path)
		if err != nil {
			return nil, errors.IO(err, "checking backup name")
		}
		if !exists {
			break
		}
	}

	if err := fileutil.WriteAtomic(m.fs, path, data, FilePerm); err != nil {
		return nil, err
	}

	_, _, seq, _ := parseSnapshotID(id)
	snap := &Snapshot{
		ID:        id,
		Label:     label,
		Path:      path,
		CreatedAt: at,
		Size:      int64(len(data)),
		SHA256:    digest(data),
		seq:       seq,
	}

	if err := m.Prune(m.retentionCount); err != nil {
		return snap, errors.Wrap(err, "pruning old backups")
	}
	return snap, nil
}

// List returns all snapshots, newest first. Files in the backup directory
// whose names were not produced by Backup are ignored.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := afero.ReadDir(m.fs, m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.IO(err, "reading backup directory")
	}

	snaps := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		snap, err := m.describe(strings.TrimSuffix(entry.Name(), snapshotExt))
		if err != nil {
			// Skip unreadable or foreign files
			continue
		}
		snaps = append(snaps, *snap)
	}

	if len(snaps) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(snaps, compareNewestFirst)
	return snaps, nil
}

// Latest returns the newest snapshot.
func (m *Manager) Latest() (*Snapshot, error) {
	snaps, err := m.List()
	if err != nil {
		return nil, err
	}
	return &snaps[0], nil
}

// Get returns the snapshot with the given id.
func (m *Manager) Get(id string) (*Snapshot, error) {
	id = strings.TrimSuffix(id, snapshotExt)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, errors.Invalidf("invalid backup id %q", id)
	}
	exists, err := afero.Exists(m.fs, m.pathFor(id))
	if err != nil {
		return nil, errors.IO(err, "checking backup "+id)
	}
	if !exists {
		return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", id)
	}
	return m.describe(id)
}

// Resolve accepts either a snapshot id or a path to a snapshot file. Paths may
// point outside the backup directory, which lets a user restore a file they
// copied elsewhere.
func (m *Manager) Resolve(idOrPath string) (*Snapshot, error) {
	if idOrPath == "" {
		return nil, errors.Invalidf("backup id or path is required")
	}
	if !strings.ContainsAny(idOrPath, `/\`) && !strings.HasPrefix(idOrPath, "~") {
		return m.Get(idOrPath)
	}

	path, err := filepath.Abs(paths.ExpandHome(idOrPath))
	if err != nil {
		return nil, errors.Invalidf("invalid backup path %q", idOrPath)
	}
	data, ok, err := fileutil.ReadOptional(m.fs, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFoundf("backup file %s not found", path)
	}

	id := strings.TrimSuffix(filepath.Base(path), snapshotExt)
	snap := &Snapshot{
		ID:     id,
		Label:  id,
		Path:   path,
		Size:   int64(len(data)),
		SHA256: digest(data),
	}
	if label, at, seq, ok := parseSnapshotID(id); ok {
		snap.Label, snap.CreatedAt, snap.seq = label, at, seq
	}
	return snap, nil
}

// Read returns the contents of snap, verifying them against the recorded
// digest when one is present.
func (m *Manager) Read(snap *Snapshot) ([]byte, error) {
	data, ok, err := fileutil.ReadOptional(m.fs, snap.Path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFoundf("backup file %s not found", snap.Path)
	}
	if snap.SHA256 != "" && digest(data) != snap.SHA256 {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s changed while reading", snap.ID)
	}
	return data, nil
}

// Prune removes all but the keep newest snapshots.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		return errors.Invalidf("keep must be non-negative")
	}

	snaps, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil // Nothing to prune
		}
		return err
	}

	// Already sorted newest first, delete everything beyond 'keep'
	for i := keep; i < len(snaps); i++ {
		if err := fileutil.RemoveIfExists(m.fs, snaps[i].Path); err != nil {
			return errors.Wrapf(err, "removing backup %s", snaps[i].ID)
		}
	}
	return nil
}

func (m *Manager) pathFor(id string) string {
	return filepath.Join(m.rootDir, id+snapshotExt)
}

// describe stats and hashes the snapshot with the given id.
func (m *Manager) describe(id string) (*Snapshot, error) {
	label, at, seq, ok := parseSnapshotID(id)
	if !ok {
		return nil, errors.Invalidf("not a backup name: %s", id)
	}
	path := m.pathFor(id)
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, errors.IO(err, "reading backup "+id)
	}
	return &Snapshot{
		ID:        id,
		Label:     label,
		Path:      path,
		CreatedAt: at,
		Size:      int64(len(data)),
		SHA256:    digest(data),
		seq:       seq,
	}, nil
}

func compareNewestFirst(a, b Snapshot) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	if a.seq != b.seq {
		return b.seq - a.seq
	}
	return strings.Compare(b.ID, a.ID)
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
