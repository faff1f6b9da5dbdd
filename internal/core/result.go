package core

import (
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

// Result carries the non-fatal conditions an operation ran into. An
// operation that returns a Result with warnings still committed.
type Result struct {
	Warnings []error
}

func (r *Result) warn(err error) {
	if err != nil {
		r.Warnings = append(r.Warnings, err)
	}
}

// Skipped reports whether live sync was skipped for app because the app is
// not initialized.
func (r *Result) Skipped(app paths.App) bool {
	for _, w := range r.Warnings {
		var aw *AppWarning
		if errors.As(w, &aw) && aw.App == app && errors.Is(aw.Err, errors.ErrLiveFileUnavailable) {
			return true
		}
	}
	return false
}

// AppWarning attributes a warning to one application.
type AppWarning struct {
	App paths.App
	Err error
}

func (w *AppWarning) Error() string {
	return string(w.App) + ": " + w.Err.Error()
}

func (w *AppWarning) Unwrap() error { return w.Err }

// SwitchState is a step of the provider switch state machine.
type SwitchState string

const (
	StateIdle       SwitchState = "idle"
	StateValidating SwitchState = "validating"
	StateSyncing    SwitchState = "syncing"
	StateCommitted  SwitchState = "committed"
	StateRejected   SwitchState = "rejected"
)

// SwitchResult describes a provider switch.
type SwitchResult struct {
	Result

	App        paths.App
	ProviderID string
	PreviousID string

	// State is the last state the switch reached.
	State SwitchState

	// Backfilled is true when the outgoing provider's settings were
	// refreshed from the live files before switching.
	Backfilled bool
}

// ImportResult describes a reverse import from live files.
type ImportResult struct {
	Result

	App       paths.App
	Providers int
	Servers   int
	Prompts   int

	// Errors lists native entries that could not be imported. They do not
	// affect the entries that could.
	Errors []platform.ImportError
}

// SortUpdate assigns a provider a new sort index.
type SortUpdate struct {
	ID        string `json:"id"`
	SortIndex int    `json:"sort_index"`
}
