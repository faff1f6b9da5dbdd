package core

import (
	"strings"

	"github.com/google/uuid"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

// ListProviders returns app's providers in display order.
func (m *Manager) ListProviders(app paths.App) ([]*store.Provider, error) {
	if _, err := m.adapter(app); err != nil {
		return nil, err
	}
	var out []*store.Provider
	err := m.guard.Read(func(cfg *store.MultiAppConfig) error {
		ac, ok := cfg.Apps[app]
		if !ok {
			return nil
		}
		for _, p := range ac.Providers.Sorted() {
			out = append(out, p.Clone())
		}
		return nil
	})
	return out, err
}

// GetProvider returns one provider.
func (m *Manager) GetProvider(app paths.App, id string) (*store.Provider, error) {
	if _, err := m.adapter(app); err != nil {
		return nil, err
	}
	var out *store.Provider
	err := m.guard.Read(func(cfg *store.MultiAppConfig) error {
		ac, ok := cfg.Apps[app]
		if !ok || !ac.Providers.Has(id) {
			return errors.NotFoundf("%s provider %q not found", app, id)
		}
		out = ac.Providers.Get(id).Clone()
		return nil
	})
	return out, err
}

// CurrentProvider returns app's current provider, or nil when app has none.
// A dangling pointer is repaired and persisted first.
func (m *Manager) CurrentProvider(app paths.App) (*store.Provider, error) {
	if _, err := m.adapter(app); err != nil {
		return nil, err
	}
	var (
		out     *store.Provider
		healthy bool
	)
	_ = m.guard.Read(func(cfg *store.MultiAppConfig) error {
		ac, ok := cfg.Apps[app]
		if !ok {
			healthy = true
			return nil
		}
		if p := ac.CurrentProvider(); p != nil || (ac.Providers.Len() == 0 && ac.Current == "") {
			healthy = true
			if p != nil {
				out = p.Clone()
			}
		}
		return nil
	})
	if healthy {
		return out, nil
	}

	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		if ac.HealCurrent() {
			m.logger.Info("repaired current provider", "app", app, "current", ac.Current)
		}
		if p := ac.CurrentProvider(); p != nil {
			out = p.Clone()
		}
		return nil
	})
	if err != nil {
		// The repaired pointer could not be persisted; report it anyway.
		m.logger.Warn("persisting repaired current provider", "app", app, "error", err)
		snap := m.guard.Snapshot().App(app)
		snap.HealCurrent()
		if p := snap.CurrentProvider(); p != nil {
			out = p.Clone()
		}
	}
	return out, nil
}

// SwitchProvider makes id app's current provider. The outgoing provider is
// first refreshed from the live files, then the target's settings are
// rendered and written, and only then is the store updated. A failed write
// leaves the store unchanged.
func (m *Manager) SwitchProvider(app paths.App, id string) (*SwitchResult, error) {
	res := &SwitchResult{App: app, ProviderID: id, State: StateIdle}
	a, err := m.adapter(app)
	if err != nil {
		res.State = StateRejected
		return res, err
	}

	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		res.State = StateValidating
		ac := cfg.App(app)
		if !ac.Providers.Has(id) {
			res.State = StateRejected
			return errors.NotFoundf("%s provider %q not found", app, id)
		}
		res.PreviousID = ac.Current

		res.State = StateSyncing
		if ac.Current != id && ac.CurrentProvider() != nil {
			changed, err := m.backfill(a, ac)
			if err != nil {
				m.logger.Warn("backfill skipped", "app", app, "provider", ac.Current, "error", err)
				res.warn(&AppWarning{App: app, Err: errors.Wrap(err, "backfilling "+ac.Current)})
			}
			res.Backfilled = changed
		}

		ac.Current = id
		warning, err := m.syncLive(cfg, app, syncPlan{provider: true, mcp: true})
		if err != nil {
			return err
		}
		res.warn(warning)
		return nil
	})
	if err != nil {
		return res, err
	}

	res.State = StateCommitted
	m.logger.Debug("switched provider", "app", app, "from", res.PreviousID, "to", id)
	return res, nil
}

// UpsertProvider creates or replaces a provider. New providers get a
// created_at stamp and the next sort index; the first provider of an app
// becomes current. Upserting the current provider re-syncs its live files.
func (m *Manager) UpsertProvider(app paths.App, p *store.Provider) (*Result, error) {
	return m.upsertProvider(app, p, false)
}

// AddProvider is UpsertProvider that rejects an existing id.
func (m *Manager) AddProvider(app paths.App, p *store.Provider) (*Result, error) {
	return m.upsertProvider(app, p, true)
}

func (m *Manager) upsertProvider(app paths.App, p *store.Provider, mustBeNew bool) (*Result, error) {
	a, err := m.adapter(app)
	if err != nil {
		return nil, err
	}
	if err := m.validateProvider(app, p); err != nil {
		return nil, err
	}
	p = p.Clone()
	p.SettingsConfig = a.NormalizeSettings(p.SettingsConfig)

	res := &Result{}
	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		prev := ac.Providers.Get(p.ID)
		switch {
		case prev != nil && mustBeNew:
			return errors.Invalidf("%s provider %q already exists", app, p.ID)
		case prev == nil:
			if p.CreatedAt.IsZero() {
				p.CreatedAt = m.now().UTC()
			}
			if p.SortIndex == nil {
				next := ac.NextSortIndex()
				p.SortIndex = &next
			}
		default:
			if p.CreatedAt.IsZero() {
				p.CreatedAt = prev.CreatedAt
			}
			if p.SortIndex == nil {
				p.SortIndex = prev.SortIndex
			}
			if p.Meta == nil {
				p.Meta = prev.Meta
			}
		}
		ac.Providers.Set(p)
		ac.HealCurrent()

		if ac.Current != p.ID {
			return nil
		}
		warning, err := m.syncLive(cfg, app, syncPlan{provider: true})
		if err != nil {
			return err
		}
		res.warn(warning)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *Manager) validateProvider(app paths.App, p *store.Provider) error {
	if p == nil {
		return errors.Invalidf("provider is required")
	}
	if strings.TrimSpace(p.ID) == "" {
		return errors.Invalidf("provider id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.Mark(errors.Newf("provider %q: name is required", p.ID), errors.ErrMissingName)
	}
	a, err := m.adapter(app)
	if err != nil {
		return err
	}
	if err := a.ValidateSettings(p.SettingsConfig); err != nil {
		return errors.Wrapf(err, "provider %q", p.ID)
	}
	if us := p.UsageScript; us != nil && us.AutoQueryInterval > store.MaxAutoQueryInterval {
		return errors.Invalidf("provider %q: usage script auto query interval %d exceeds %d minutes",
			p.ID, us.AutoQueryInterval, store.MaxAutoQueryInterval)
	}
	if us := p.UsageScript; us != nil && us.AutoQueryInterval < 0 {
		return errors.Invalidf("provider %q: usage script auto query interval must not be negative", p.ID)
	}
	return nil
}

// DeleteProvider removes a provider. Deleting the current provider moves
// current to the first remaining provider and syncs its live files.
func (m *Manager) DeleteProvider(app paths.App, id string) (*Result, error) {
	if _, err := m.adapter(app); err != nil {
		return nil, err
	}
	res := &Result{}
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		if !ac.Providers.Delete(id) {
			return errors.NotFoundf("%s provider %q not found", app, id)
		}
		if !ac.HealCurrent() || ac.Current == "" {
			return nil
		}
		m.logger.Info("current provider deleted", "app", app, "deleted", id, "current", ac.Current)
		warning, err := m.syncLive(cfg, app, syncPlan{provider: true})
		if err != nil {
			return err
		}
		res.warn(warning)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DuplicateProvider copies a provider under a fresh id and returns the id.
func (m *Manager) DuplicateProvider(app paths.App, id string) (string, error) {
	if _, err := m.adapter(app); err != nil {
		return "", err
	}
	newID := uuid.NewString()
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		src := ac.Providers.Get(id)
		if src == nil {
			return errors.NotFoundf("%s provider %q not found", app, id)
		}
		dup := src.Clone()
		dup.ID = newID
		dup.Name = src.Name + " copy"
		dup.CreatedAt = m.now().UTC()
		next := ac.NextSortIndex()
		dup.SortIndex = &next
		dup.InFailoverQueue = false
		ac.Providers.Set(dup)
		return nil
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}

// UpdateSortOrder assigns sort indexes. Unknown ids abort the update.
func (m *Manager) UpdateSortOrder(app paths.App, updates []SortUpdate) error {
	if _, err := m.adapter(app); err != nil {
		return err
	}
	return m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		for _, u := range updates {
			p := ac.Providers.Get(u.ID)
			if p == nil {
				return errors.NotFoundf("%s provider %q not found", app, u.ID)
			}
			idx := u.SortIndex
			p.SortIndex = &idx
		}
		return nil
	})
}

// SetCommonSnippet replaces app's common config snippet and re-syncs the
// current provider. An empty snippet clears it.
func (m *Manager) SetCommonSnippet(app paths.App, snippet string) (*Result, error) {
	a, err := m.adapter(app)
	if err != nil {
		return nil, err
	}
	if _, err := a.ParseCommon(snippet); err != nil {
		return nil, err
	}
	res := &Result{}
	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		ac.CommonConfigSnippet = snippet
		if ac.CurrentProvider() == nil {
			return nil
		}
		warning, err := m.syncLive(cfg, app, syncPlan{provider: true})
		if err != nil {
			return err
		}
		res.warn(warning)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CommonSnippet returns app's common config snippet.
func (m *Manager) CommonSnippet(app paths.App) (string, error) {
	if _, err := m.adapter(app); err != nil {
		return "", err
	}
	var out string
	err := m.guard.Read(func(cfg *store.MultiAppConfig) error {
		if ac, ok := cfg.Apps[app]; ok {
			out = ac.CommonConfigSnippet
		}
		return nil
	})
	return out, err
}

// UsageCredentials resolves the API key and base URL a usage query for
// provider id should use: the usage script's own values, falling back to
// the provider's settings.
func (m *Manager) UsageCredentials(app paths.App, id string) (apiKey, baseURL string, err error) {
	a, err := m.adapter(app)
	if err != nil {
		return "", "", err
	}
	p, err := m.GetProvider(app, id)
	if err != nil {
		return "", "", err
	}
	if us := p.UsageScript; us != nil {
		apiKey, baseURL = us.APIKey, us.BaseURL
	}
	fallbackKey, fallbackURL := a.UsageCredentials(p.SettingsConfig)
	if apiKey == "" {
		apiKey = fallbackKey
	}
	if baseURL == "" {
		baseURL = fallbackURL
	}
	return apiKey, baseURL, nil
}
