package store

import (
	"sync"

	"github.com/gofrs/flock"

	"github.com/thoreinstein/switchboard/internal/errors"
)

// PersistFunc durably writes a candidate store. The Guard only commits the
// candidate in memory after PersistFunc returns nil.
type PersistFunc func(*MultiAppConfig) error

// ReloadFunc reads the store from disk.
type ReloadFunc func() (*MultiAppConfig, error)

// Guard serializes access to the in-memory store. Readers share the lock;
// writers are exclusive. A failed write leaves the in-memory store as it
// was before the write began.
type Guard struct {
	mu      sync.RWMutex
	cfg     *MultiAppConfig
	persist PersistFunc

	// Optional cross-process lock. When set, Write takes the file lock and
	// reloads from disk before applying the mutation.
	flock  *flock.Flock
	reload ReloadFunc
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithProcessLock serializes writers across processes with an advisory lock
// on lockPath. reload is called under the lock so the mutation applies to
// the latest persisted state.
func WithProcessLock(lockPath string, reload ReloadFunc) GuardOption {
	return func(g *Guard) {
		g.flock = flock.New(lockPath)
		g.reload = reload
	}
}

// NewGuard wraps cfg. persist is called with the mutated candidate on every
// successful Write.
func NewGuard(cfg *MultiAppConfig, persist PersistFunc, opts ...GuardOption) *Guard {
	if cfg == nil {
		cfg = New()
	}
	g := &Guard{cfg: cfg, persist: persist}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Read calls fn with the store under the shared lock. fn must not mutate or
// retain cfg.
func (g *Guard) Read(fn func(cfg *MultiAppConfig) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn(g.cfg)
}

// Snapshot returns a deep copy of the store.
func (g *Guard) Snapshot() *MultiAppConfig {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfg.Clone()
}

// Write applies fn to a copy of the store under the exclusive lock, persists
// the copy, and only then makes it current. If fn or persistence fails the
// store is unchanged and the error is returned.
func (g *Guard) Write(fn func(cfg *MultiAppConfig) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.flock != nil {
		if err := g.flock.Lock(); err != nil {
			return errors.IO(err, "acquiring store lock")
		}
		defer func() { _ = g.flock.Unlock() }()

		if g.reload != nil {
			fresh, err := g.reload()
			if err != nil {
				return err
			}
			g.cfg = fresh
		}
	}

	candidate := g.cfg.Clone()
	if err := fn(candidate); err != nil {
		return err
	}
	if g.persist != nil {
		if err := g.persist(candidate); err != nil {
			return err
		}
	}
	g.cfg = candidate
	return nil
}

// Replace persists cfg and makes it the current store.
func (g *Guard) Replace(cfg *MultiAppConfig) error {
	return g.Write(func(c *MultiAppConfig) error {
		*c = *cfg.Clone()
		return nil
	})
}
