package core

import (
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

// ListMCPServers returns MCP servers sorted by id. A non-empty app limits the
// result to servers enabled for it.
func (m *Manager) ListMCPServers(app paths.App) ([]*mcp.Server, error) {
	if app != "" {
		if _, err := m.adapter(app); err != nil {
			return nil, err
		}
	}
	var out []*mcp.Server
	err := m.guard.Read(func(cfg *store.MultiAppConfig) error {
		for _, id := range cfg.ServerIDs() {
			s := cfg.Servers[id]
			if app == "" || s.Apps.Enabled(app) {
				out = append(out, s.Clone())
			}
		}
		return nil
	})
	return out, err
}

// GetMCPServer returns one server.
func (m *Manager) GetMCPServer(id string) (*mcp.Server, error) {
	var out *mcp.Server
	err := m.guard.Read(func(cfg *store.MultiAppConfig) error {
		s, ok := cfg.Servers[id]
		if !ok {
			return errors.NotFoundf("MCP server %q not found", id)
		}
		out = s.Clone()
		return nil
	})
	return out, err
}

// UpsertMCPServer creates or replaces a server and renders it into every
// application it is enabled for. Applications it was enabled for before and
// no longer is get its native entry removed. Native entries of servers the
// store has never enabled for an application are left alone.
func (m *Manager) UpsertMCPServer(s *mcp.Server) (*Result, error) {
	if err := mcp.Validate(s); err != nil {
		return nil, err
	}
	s = s.Clone()
	res := &Result{}
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		prev := cfg.Servers[s.ID]
		cfg.Servers[s.ID] = s
		for _, app := range paths.Apps() {
			was := prev != nil && prev.Apps.Enabled(app)
			now := s.Apps.Enabled(app)
			if !was && !now {
				continue
			}
			var removed []string
			if was && !now {
				removed = []string{s.ID}
			}
			if err := m.syncMCPInto(cfg, app, removed, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteMCPServer removes a server from the store and from every
// application it was enabled for.
func (m *Manager) DeleteMCPServer(id string) (*Result, error) {
	res := &Result{}
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		prev, ok := cfg.Servers[id]
		if !ok {
			return errors.NotFoundf("MCP server %q not found", id)
		}
		delete(cfg.Servers, id)
		for _, app := range prev.Apps.List() {
			if err := m.syncMCPInto(cfg, app, []string{id}, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ToggleMCPApp enables or disables a server for one application and syncs
// that application.
func (m *Manager) ToggleMCPApp(id string, app paths.App, enabled bool) (*Result, error) {
	if _, err := m.adapter(app); err != nil {
		return nil, err
	}
	res := &Result{}
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		s, ok := cfg.Servers[id]
		if !ok {
			return errors.NotFoundf("MCP server %q not found", id)
		}
		was := s.Apps.Enabled(app)
		if was == enabled {
			return nil
		}
		s.Apps = s.Apps.With(app, enabled)
		var removed []string
		if !enabled {
			removed = []string{id}
		}
		return m.syncMCPInto(cfg, app, removed, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SyncMCP renders every enabled server into app's native MCP map, or into
// every application's when app is empty.
func (m *Manager) SyncMCP(app paths.App) (*Result, error) {
	apps := paths.Apps()
	if app != "" {
		if _, err := m.adapter(app); err != nil {
			return nil, err
		}
		apps = []paths.App{app}
	}
	res := &Result{}
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		for _, a := range apps {
			if err := m.syncMCPInto(cfg, a, nil, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ImportMCPFromLive imports app's native MCP map. New servers are added
// enabled for app; servers already in the store get app's flag turned on and
// otherwise keep their stored definition. Entries that cannot be imported
// are reported in the result.
func (m *Manager) ImportMCPFromLive(app paths.App) (*ImportResult, error) {
	res := &ImportResult{App: app}
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		return m.importMCP(cfg, app, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *Manager) importMCP(cfg *store.MultiAppConfig, app paths.App, res *ImportResult) error {
	a, err := m.adapter(app)
	if err != nil {
		return err
	}
	if !a.Initialized() {
		res.warn(&AppWarning{App: app, Err: errors.Unavailablef("%s is not initialized", app.DisplayName())})
		return nil
	}
	live, err := a.ReadLive()
	if err != nil {
		return err
	}
	servers, importErrs := a.ParseMCP(live)
	res.Errors = append(res.Errors, importErrs...)
	for _, ie := range importErrs {
		m.logger.Warn("skipping MCP server", "app", app, "id", ie.ID, "error", ie.Err)
	}
	for _, s := range servers {
		if existing, ok := cfg.Servers[s.ID]; ok {
			if !existing.Apps.Enabled(app) {
				existing.Apps = existing.Apps.With(app, true)
				res.Servers++
			}
			continue
		}
		s.Apps = mcp.Apps{}.With(app, true)
		cfg.Servers[s.ID] = s
		res.Servers++
	}
	return nil
}

func (m *Manager) syncMCPInto(cfg *store.MultiAppConfig, app paths.App, removed []string, res *Result) error {
	warning, err := m.syncLive(cfg, app, syncPlan{mcp: true, removed: removed})
	if err != nil {
		return errors.Wrapf(err, "syncing MCP servers to %s", app)
	}
	res.warn(warning)
	return nil
}
