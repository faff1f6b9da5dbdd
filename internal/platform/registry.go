package platform

import (
	"sync"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// Sentinel errors for registry operations.
var (
	// ErrPlatformAlreadyRegistered is returned when attempting to register
	// an adapter for an application that already has one.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned when attempting to register an
	// adapter whose application is not one of paths.Apps().
	ErrInvalidPlatformName = errors.Mark(errors.New("invalid platform name"), errors.ErrValidationFailed)
)

// Registry maps applications to their adapters.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	adapters map[paths.App]Adapter
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[paths.App]Adapter),
	}
}

// Register adds an adapter.
// Returns an error if:
//   - The adapter's application is not valid (per paths.App.Valid)
//   - An adapter for the same application is already registered
func (r *Registry) Register(a Adapter) error {
	if a == nil || !a.App().Valid() {
		return ErrInvalidPlatformName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[a.App()]; exists {
		return ErrPlatformAlreadyRegistered
	}

	r.adapters[a.App()] = a
	return nil
}

// Get returns the adapter for app, or a NotFound error.
func (r *Registry) Get(app paths.App) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[app]
	if !ok {
		return nil, errors.NotFoundf("platform %q", app)
	}
	return a, nil
}

// All returns the registered adapters in the order of paths.Apps().
func (r *Registry) All() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []Adapter
	for _, app := range paths.Apps() {
		if a, ok := r.adapters[app]; ok {
			results = append(results, a)
		}
	}
	return results
}

// Available returns only registered adapters whose application is
// initialized, in the order of paths.Apps().
func (r *Registry) Available() []Adapter {
	var results []Adapter
	for _, a := range r.All() {
		if Detect(a).Status == StatusInstalled {
			results = append(results, a)
		}
	}
	return results
}
