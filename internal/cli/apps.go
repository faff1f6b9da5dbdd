// Package cli provides helpers shared by switchboard's commands: app
// resolution, opening the core manager, and result printing.
package cli

import (
	"strings"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

// Sentinel errors for app resolution.
var (
	// ErrUnknownApp is returned when an unknown app name is provided.
	ErrUnknownApp = errors.Mark(errors.New("unknown app"), errors.ErrValidationFailed)

	// ErrNoAppsAvailable is returned when no app is initialized.
	ErrNoAppsAvailable = errors.Mark(errors.New("no apps available"), errors.ErrLiveFileUnavailable)

	// ErrSingleApp is returned when a command that acts on one app is given
	// several.
	ErrSingleApp = errors.Mark(errors.New("exactly one app is required"), errors.ErrValidationFailed)
)

// DefaultApp is the app single-app commands act on when --app is not given.
const DefaultApp = paths.AppClaude

// ParseApps validates names and returns them as apps, without duplicates.
// Names may be comma separated.
func ParseApps(names []string) ([]paths.App, error) {
	var (
		out     []paths.App
		invalid []string
	)
	seen := make(map[paths.App]bool)
	for _, raw := range names {
		for name := range strings.SplitSeq(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			app, err := paths.ParseApp(name)
			if err != nil {
				invalid = append(invalid, name)
				continue
			}
			if !seen[app] {
				seen[app] = true
				out = append(out, app)
			}
		}
	}
	if len(invalid) > 0 {
		return nil, errors.Wrapf(ErrUnknownApp, "%s (valid: %s)",
			strings.Join(invalid, ", "), strings.Join(appNames(), ", "))
	}
	return out, nil
}

// ResolveApps returns the apps named by names. With no names it returns
// every app whose config directory exists.
func ResolveApps(names []string, reg *platform.Registry) ([]paths.App, error) {
	apps, err := ParseApps(names)
	if err != nil || len(apps) > 0 {
		return apps, err
	}
	for _, d := range platform.DetectAll(reg) {
		if d.Status == platform.StatusInstalled {
			apps = append(apps, d.App)
		}
	}
	if len(apps) == 0 {
		return nil, ErrNoAppsAvailable
	}
	return apps, nil
}

// SingleApp returns the one app named by names, or DefaultApp when names is
// empty.
func SingleApp(names []string) (paths.App, error) {
	apps, err := ParseApps(names)
	if err != nil {
		return "", err
	}
	switch len(apps) {
	case 0:
		return DefaultApp, nil
	case 1:
		return apps[0], nil
	default:
		return "", errors.Wrapf(ErrSingleApp, "got %d", len(apps))
	}
}

func appNames() []string {
	apps := paths.Apps()
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.String()
	}
	return out
}
