package core

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/thoreinstein/switchboard/internal/doctor"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/store"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

// Validate checks the store and every application's live files and returns
// the findings. It never modifies anything.
func (m *Manager) Validate(ctx context.Context) *doctor.Report {
	cfg := m.guard.Snapshot()

	r := doctor.NewRunner()
	r.AddCheck(doctor.CheckFunc{
		CheckName:     "current-pointer",
		CheckCategory: "store",
		Fn:            func(context.Context) []doctor.Finding { return checkCurrentPointers(cfg) },
	})
	r.AddCheck(doctor.CheckFunc{
		CheckName:     "provider-settings",
		CheckCategory: "provider",
		Fn:            func(context.Context) []doctor.Finding { return m.checkProviders(cfg) },
	})
	r.AddCheck(doctor.CheckFunc{
		CheckName:     "mcp-servers",
		CheckCategory: "mcp",
		Fn:            func(context.Context) []doctor.Finding { return checkServers(cfg) },
	})
	r.AddCheck(doctor.CheckFunc{
		CheckName:     "live-files",
		CheckCategory: "live",
		Fn:            func(context.Context) []doctor.Finding { return m.checkLiveFiles(cfg) },
	})
	r.AddCheck(doctor.CheckFunc{
		CheckName:     "prompt-files",
		CheckCategory: "prompt",
		Fn:            func(context.Context) []doctor.Finding { return m.checkPromptFiles(cfg) },
	})
	return r.Run(ctx)
}

func checkCurrentPointers(cfg *store.MultiAppConfig) []doctor.Finding {
	var out []doctor.Finding
	for _, app := range paths.Apps() {
		ac := cfg.App(app)
		if ac.Providers.Len() == 0 {
			continue
		}
		if ac.CurrentProvider() == nil {
			out = append(out, doctor.Finding{
				Severity: doctor.SeverityError,
				App:      string(app),
				Subject:  ac.Current,
				Message:  "current provider does not exist",
				FixHint:  "Run: switchboard provider current -a " + string(app),
			})
		}
	}
	return out
}

func (m *Manager) checkProviders(cfg *store.MultiAppConfig) []doctor.Finding {
	var out []doctor.Finding
	for _, a := range m.registry.All() {
		app := a.App()
		ac := cfg.App(app)
		if _, err := a.ParseCommon(ac.CommonConfigSnippet); err != nil {
			out = append(out, doctor.Finding{
				Severity: doctor.SeverityError,
				App:      string(app),
				Subject:  "common config snippet",
				Message:  err.Error(),
			})
		}
		for _, p := range ac.Providers.Sorted() {
			if err := m.validateProvider(app, p); err != nil {
				out = append(out, doctor.Finding{
					Severity: doctor.SeverityError,
					App:      string(app),
					Subject:  p.ID,
					Message:  err.Error(),
				})
				continue
			}
			if key, _ := a.UsageCredentials(p.SettingsConfig); key == "" {
				out = append(out, doctor.Finding{
					Severity: doctor.SeverityInfo,
					App:      string(app),
					Subject:  p.ID,
					Message:  "no API key in settings",
				})
			}
		}
	}
	return out
}

func checkServers(cfg *store.MultiAppConfig) []doctor.Finding {
	var out []doctor.Finding
	for _, id := range cfg.ServerIDs() {
		s := cfg.Servers[id]
		if err := mcp.Validate(s); err != nil {
			out = append(out, doctor.Finding{
				Severity: doctor.SeverityError,
				Subject:  id,
				Message:  err.Error(),
				FixHint:  "Run: switchboard mcp remove " + id,
			})
		}
	}
	return out
}

func (m *Manager) checkLiveFiles(cfg *store.MultiAppConfig) []doctor.Finding {
	var out []doctor.Finding
	for _, a := range m.registry.All() {
		app := a.App()
		det := platform.Detect(a)
		if det.Status != platform.StatusInstalled {
			out = append(out, doctor.Finding{
				Severity: doctor.SeverityInfo,
				App:      string(app),
				Subject:  det.ConfigDir,
				Message:  app.DisplayName() + " is not initialized; live sync is skipped",
			})
			continue
		}

		for _, role := range slices.Sorted(maps.Keys(det.LiveFiles)) {
			path := det.LiveFiles[role]
			if filepath.Ext(path) != ".json" {
				continue
			}
			data, ok, err := fileutil.ReadOptional(m.fs, path)
			if err != nil || !ok {
				continue
			}
			if !gjson.ValidBytes(data) {
				out = append(out, doctor.Finding{
					Severity: doctor.SeverityError,
					App:      string(app),
					Subject:  path,
					Message:  "file is not valid JSON",
					FixHint:  "Fix the file by hand, then run: switchboard sync",
				})
			}
		}

		live, err := a.ReadLive()
		if err != nil {
			if errors.Is(err, errors.ErrFormat) {
				out = append(out, doctor.Finding{
					Severity: doctor.SeverityError,
					App:      string(app),
					Message:  err.Error(),
				})
			}
			continue
		}

		native, _ := a.ParseMCP(live)
		present := make(map[string]bool, len(native))
		for _, s := range native {
			present[s.ID] = true
		}
		for _, id := range slices.Sorted(maps.Keys(cfg.ServersFor(app))) {
			if !present[id] {
				out = append(out, doctor.Finding{
					Severity: doctor.SeverityWarning,
					App:      string(app),
					Subject:  id,
					Message:  "enabled MCP server is missing from the live config",
					FixHint:  "Run: switchboard mcp sync -a " + string(app),
				})
			}
		}
	}
	return out
}

func (m *Manager) checkPromptFiles(cfg *store.MultiAppConfig) []doctor.Finding {
	var out []doctor.Finding
	for _, a := range m.registry.All() {
		app := a.App()
		active := cfg.App(app).ActivePrompt()
		if active == nil || !a.Initialized() {
			continue
		}
		data, ok, err := fileutil.ReadOptional(m.fs, a.PromptPath())
		switch {
		case err != nil:
			out = append(out, doctor.Finding{
				Severity: doctor.SeverityError,
				App:      string(app),
				Subject:  a.PromptPath(),
				Message:  err.Error(),
			})
		case !ok:
			out = append(out, doctor.Finding{
				Severity: doctor.SeverityWarning,
				App:      string(app),
				Subject:  active.ID,
				Message:  fmt.Sprintf("active prompt file %s is missing", a.PromptPath()),
				FixHint:  "Run: switchboard prompt activate -a " + string(app) + " " + active.ID,
			})
		case string(data) != active.Content:
			out = append(out, doctor.Finding{
				Severity: doctor.SeverityWarning,
				App:      string(app),
				Subject:  active.ID,
				Message:  "prompt file was edited outside switchboard; the edit is saved into the preset on the next switch",
			})
		}
	}
	return out
}
