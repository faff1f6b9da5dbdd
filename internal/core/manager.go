package core

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/backup"
	"github.com/thoreinstein/switchboard/internal/config"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/platform/claude"
	"github.com/thoreinstein/switchboard/internal/platform/codex"
	"github.com/thoreinstein/switchboard/internal/platform/gemini"
	"github.com/thoreinstein/switchboard/internal/skill"
	"github.com/thoreinstein/switchboard/internal/store"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

// Manager implements switchboard's operations over the canonical store.
type Manager struct {
	fs         afero.Fs
	storePath  string
	livePolicy string
	guard      *store.Guard
	registry   *platform.Registry
	backups    *backup.Manager
	skills     *skill.Installer
	logger     *slog.Logger
	now        func() time.Time

	processLock   bool
	allowCorrupt  bool
	storeLoadErr  error
	registryGiven bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithFs sets the filesystem for the store, live files and backups.
func WithFs(fsys afero.Fs) Option {
	return func(m *Manager) {
		if fsys != nil {
			m.fs = fsys
		}
	}
}

// WithRegistry replaces the adapters built from the configuration.
func WithRegistry(r *platform.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
			m.registryGiven = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time source for created_at stamps and backups.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// AllowCorruptStore makes Open start from an empty store when the store file
// cannot be parsed, so that a restore can still run. The parse error is
// available from StoreLoadError.
func AllowCorruptStore() Option {
	return func(m *Manager) {
		m.allowCorrupt = true
	}
}

// Open loads the store described by cfg and returns a ready Manager. A store
// that cannot be parsed is an error carrying a hint that names the newest
// backup; it is never replaced with an empty one.
func Open(cfg *config.Config, opts ...Option) (*Manager, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Manager{
		fs:          fileutil.OS,
		storePath:   cfg.StorePath,
		livePolicy:  cfg.Sync.LivePolicy,
		processLock: cfg.Sync.ProcessLock,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.storePath == "" {
		m.storePath = paths.StorePath()
	}
	if m.livePolicy == "" {
		m.livePolicy = config.LivePolicySkipIfAbsent
	}

	m.backups = backup.NewManager(
		backup.WithFs(m.fs),
		backup.WithBackupDir(cfg.Backup.Dir),
		backup.WithRetentionCount(cfg.Backup.Retention),
		backup.WithClock(m.now),
	)
	m.skills = skill.NewInstaller(cfg.Skills.Dir,
		skill.WithMethod(cfg.Skills.SyncMethod),
		skill.WithLogger(m.logger),
	)

	if !m.registryGiven {
		r, err := NewRegistry(m.fs, cfg)
		if err != nil {
			return nil, err
		}
		m.registry = r
	}

	initial, err := store.Load(m.fs, m.storePath)
	if err != nil {
		if !errors.Is(err, errors.ErrFormat) {
			return nil, err
		}
		if !m.allowCorrupt {
			return nil, m.corruptStoreError(err)
		}
		m.logger.Warn("store is unreadable, starting empty", "path", m.storePath, "error", err)
		m.storeLoadErr = err
		initial = store.New()
	}

	persist := func(c *store.MultiAppConfig) error {
		return store.Save(m.fs, m.storePath, c)
	}
	var guardOpts []store.GuardOption
	if m.processLock {
		reload := func() (*store.MultiAppConfig, error) {
			return store.Load(m.fs, m.storePath)
		}
		guardOpts = append(guardOpts, store.WithProcessLock(m.storePath+".lock", reload))
	}
	m.guard = store.NewGuard(initial, persist, guardOpts...)

	m.logger.Debug("store opened", "path", m.storePath, "live_policy", m.livePolicy)
	return m, nil
}

// NewRegistry builds the adapters for every application, honoring the
// per-app config_dir overrides in cfg.
func NewRegistry(fsys afero.Fs, cfg *config.Config) (*platform.Registry, error) {
	r := platform.NewRegistry()
	adapters := []platform.Adapter{
		claude.New(fsys, cfg.AppConfigDir(paths.AppClaude)),
		codex.New(fsys, cfg.AppConfigDir(paths.AppCodex)),
		gemini.New(fsys, cfg.AppConfigDir(paths.AppGemini)),
	}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (m *Manager) corruptStoreError(err error) error {
	latest, lerr := m.backups.Latest()
	if lerr != nil {
		return errors.WithHint(err, "The store file is unreadable and no backup exists. Fix "+m.storePath+" by hand.")
	}
	return errors.WithHintf(err, "Run: switchboard backup restore %s", latest.ID)
}

// StorePath returns the location of the canonical store.
func (m *Manager) StorePath() string { return m.storePath }

// StoreLoadError returns the parse error that AllowCorruptStore suppressed,
// or nil.
func (m *Manager) StoreLoadError() error { return m.storeLoadErr }

// Backups returns the backup manager.
func (m *Manager) Backups() *backup.Manager { return m.backups }

// Registry returns the adapter registry.
func (m *Manager) Registry() *platform.Registry { return m.registry }

// Snapshot returns a deep copy of the store.
func (m *Manager) Snapshot() *store.MultiAppConfig { return m.guard.Snapshot() }

// Detect reports each application's live file locations and install status.
func (m *Manager) Detect() []platform.DetectionResult {
	return platform.DetectAll(m.registry)
}

func (m *Manager) adapter(app paths.App) (platform.Adapter, error) {
	if !app.Valid() {
		return nil, errors.Invalidf("unknown app %q", app)
	}
	return m.registry.Get(app)
}

// ensureDir creates dir when the live policy allows it.
func (m *Manager) ensureDir(a platform.Adapter) error {
	if a.Initialized() {
		return nil
	}
	if m.livePolicy != config.LivePolicyAlways {
		return errors.Unavailablef("%s is not initialized (%s does not exist)", a.App().DisplayName(), a.ConfigDir())
	}
	if err := m.fs.MkdirAll(filepath.Clean(a.ConfigDir()), paths.DefaultDirPerm); err != nil {
		return errors.IO(err, "creating "+a.ConfigDir())
	}
	return nil
}
