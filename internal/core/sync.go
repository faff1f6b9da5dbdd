package core

import (
	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/store"
)

// syncPlan says which parts of an application's live state to render.
type syncPlan struct {
	provider bool
	mcp      bool
	removed  []string
}

// syncLive renders cfg's state for app into its live files and writes them
// in one batch. A nil error with a non-nil warning means the app was skipped
// because it is not initialized.
func (m *Manager) syncLive(cfg *store.MultiAppConfig, app paths.App, plan syncPlan) (warning, err error) {
	a, err := m.adapter(app)
	if err != nil {
		return nil, err
	}
	if err := m.ensureDir(a); err != nil {
		if errors.Is(err, errors.ErrLiveFileUnavailable) {
			m.logger.Warn("skipping live sync", "app", app, "reason", err)
			return &AppWarning{App: app, Err: err}, nil
		}
		return nil, err
	}

	live, err := a.ReadLive()
	if err != nil {
		return nil, err
	}

	files := platform.Files{}
	ac := cfg.App(app)

	if plan.provider {
		if p := ac.CurrentProvider(); p != nil {
			common, err := a.ParseCommon(ac.CommonConfigSnippet)
			if err != nil {
				return nil, errors.Wrapf(err, "%s common config snippet", app)
			}
			rendered, err := a.RenderProvider(p, common, live)
			if err != nil {
				return nil, errors.Wrapf(err, "rendering provider %q", p.ID)
			}
			files = files.Overlay(rendered)
		}
	}

	if plan.mcp {
		servers := cfg.ServersFor(app)
		if len(servers) > 0 || len(plan.removed) > 0 {
			rendered, err := a.RenderMCP(servers, plan.removed, live.Overlay(files))
			if err != nil {
				return nil, err
			}
			files = files.Overlay(rendered)
		}
	}

	if len(files) == 0 {
		return nil, nil
	}
	m.logger.Debug("writing live files", "app", app, "files", len(files))
	return nil, a.WriteLive(files)
}

// backfill refreshes the current provider's settings from the live files so
// edits made directly in the application are not lost on the next switch.
// It reports whether the provider changed.
func (m *Manager) backfill(a platform.Adapter, ac *store.AppConfig) (bool, error) {
	cur := ac.CurrentProvider()
	if cur == nil || !a.Initialized() {
		return false, nil
	}
	live, err := a.ReadLive()
	if err != nil {
		return false, err
	}
	common, err := a.ParseCommon(ac.CommonConfigSnippet)
	if err != nil {
		return false, err
	}
	captured, err := a.CaptureProvider(live, common)
	if err != nil {
		if errors.Is(err, errors.ErrLiveFileUnavailable) {
			return false, nil
		}
		return false, err
	}
	if document.Equal(cur.SettingsConfig, captured) {
		return false, nil
	}
	updated := cur.Clone()
	updated.SettingsConfig = captured
	ac.Providers.Set(updated)
	return true, nil
}

// syncAll replays every application's current provider and enabled MCP
// servers.
func (m *Manager) syncAll(cfg *store.MultiAppConfig, res *Result) error {
	for _, app := range paths.Apps() {
		warning, err := m.syncLive(cfg, app, syncPlan{provider: true, mcp: true})
		if err != nil {
			return errors.Wrapf(err, "syncing %s", app)
		}
		if warning != nil {
			res.warn(warning)
			continue
		}
		if err := m.syncPromptFile(cfg, app); err != nil {
			res.warn(&AppWarning{App: app, Err: err})
		}
	}
	return nil
}
