package core

import (
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

// defaultID names the provider and prompt created by ImportFromLive.
const defaultID = "default"

// ImportFromLive seeds app's section of the store from its live files: a
// "default" provider built from the live settings when app has no providers
// (common snippet values omitted), every importable MCP server, and the
// prompt file when app has no prompts.
func (m *Manager) ImportFromLive(app paths.App) (*ImportResult, error) {
	a, err := m.adapter(app)
	if err != nil {
		return nil, err
	}
	res := &ImportResult{App: app}
	if !a.Initialized() {
		res.warn(&AppWarning{App: app, Err: errors.Unavailablef("%s is not initialized", app.DisplayName())})
		return res, nil
	}

	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		if ac.Providers.Len() == 0 {
			live, err := a.ReadLive()
			if err != nil {
				return err
			}
			common, err := a.ParseCommon(ac.CommonConfigSnippet)
			if err != nil {
				return err
			}
			captured, err := a.CaptureProvider(live, common)
			switch {
			case errors.Is(err, errors.ErrLiveFileUnavailable):
				res.warn(&AppWarning{App: app, Err: err})
			case err != nil:
				return err
			default:
				idx := 0
				ac.Providers.Set(&store.Provider{
					ID:             defaultID,
					Name:           defaultID,
					SettingsConfig: captured,
					CreatedAt:      m.now().UTC(),
					SortIndex:      &idx,
				})
				ac.Current = defaultID
				res.Providers++
			}
		}

		if err := m.importMCP(cfg, app, res); err != nil {
			return err
		}
		return m.importPrompt(cfg, app, res)
	})
	if err != nil {
		return nil, err
	}
	m.logger.Debug("imported from live files", "app", app,
		"providers", res.Providers, "servers", res.Servers, "prompts", res.Prompts, "failed", len(res.Errors))
	return res, nil
}
