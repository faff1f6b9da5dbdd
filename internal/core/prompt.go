package core

import (
	"strings"

	"github.com/google/uuid"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/store"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

// PromptFilePerm is the mode prompt files are written with.
const PromptFilePerm = platform.PublicPerm

// ListPrompts returns app's prompt presets ordered by creation time.
func (m *Manager) ListPrompts(app paths.App) ([]*store.PromptPreset, error) {
	if _, err := m.adapter(app); err != nil {
		return nil, err
	}
	var out []*store.PromptPreset
	err := m.guard.Read(func(cfg *store.MultiAppConfig) error {
		ac, ok := cfg.Apps[app]
		if !ok {
			return nil
		}
		for _, p := range ac.SortedPrompts() {
			c := *p
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// UpsertPrompt creates or replaces a preset and returns its id. A preset
// without an id gets a fresh one. Updating the active preset rewrites the
// prompt file.
func (m *Manager) UpsertPrompt(app paths.App, preset *store.PromptPreset) (string, *Result, error) {
	if _, err := m.adapter(app); err != nil {
		return "", nil, err
	}
	if preset == nil || strings.TrimSpace(preset.Name) == "" {
		return "", nil, errors.Mark(errors.New("prompt name is required"), errors.ErrMissingName)
	}
	p := *preset
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	res := &Result{}
	err := m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		now := m.now().UTC()
		if prev, ok := ac.Prompts[p.ID]; ok && p.CreatedAt.IsZero() {
			p.CreatedAt = prev.CreatedAt
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		p.Enabled = ac.ActivePromptID == p.ID
		ac.Prompts[p.ID] = &p

		if !p.Enabled {
			return nil
		}
		if err := m.syncPromptFile(cfg, app); err != nil {
			if !errors.Is(err, errors.ErrLiveFileUnavailable) {
				return err
			}
			res.warn(&AppWarning{App: app, Err: err})
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return p.ID, res, nil
}

// DeletePrompt removes a preset. Deleting the active preset deactivates it;
// the prompt file is removed once the store is saved.
func (m *Manager) DeletePrompt(app paths.App, id string) error {
	a, err := m.adapter(app)
	if err != nil {
		return err
	}
	wasActive := false
	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		if _, ok := ac.Prompts[id]; !ok {
			return errors.NotFoundf("%s prompt %q not found", app, id)
		}
		delete(ac.Prompts, id)
		if ac.ActivePromptID == id {
			ac.ActivePromptID = ""
			wasActive = true
		}
		return nil
	})
	if err != nil || !wasActive {
		return err
	}
	return fileutil.RemoveIfExists(m.fs, a.PromptPath())
}

// ActivatePrompt writes preset id's body to app's prompt file and records it
// as active. If another preset was active and the prompt file was edited
// since, the edit is saved into that preset first.
func (m *Manager) ActivatePrompt(app paths.App, id string) (*Result, error) {
	a, err := m.adapter(app)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		target, ok := ac.Prompts[id]
		if !ok {
			return errors.NotFoundf("%s prompt %q not found", app, id)
		}
		if ac.ActivePromptID != id {
			if err := m.backfillPrompt(a, ac); err != nil {
				return err
			}
		}

		for _, p := range ac.Prompts {
			p.Enabled = false
		}
		target.Enabled = true
		ac.ActivePromptID = id

		if err := m.syncPromptFile(cfg, app); err != nil {
			if !errors.Is(err, errors.ErrLiveFileUnavailable) {
				return err
			}
			res.warn(&AppWarning{App: app, Err: err})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeactivatePrompt clears the active preset and removes app's prompt file
// once the store is saved. Edits made to the file are saved into the preset
// first.
func (m *Manager) DeactivatePrompt(app paths.App) error {
	a, err := m.adapter(app)
	if err != nil {
		return err
	}
	cleared := false
	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		ac := cfg.App(app)
		if ac.ActivePromptID == "" {
			return nil
		}
		if err := m.backfillPrompt(a, ac); err != nil {
			return err
		}
		if p := ac.ActivePrompt(); p != nil {
			p.Enabled = false
		}
		ac.ActivePromptID = ""
		cleared = true
		return nil
	})
	if err != nil || !cleared {
		return err
	}
	return fileutil.RemoveIfExists(m.fs, a.PromptPath())
}

// backfillPrompt copies the live prompt file into the active preset when the
// two differ.
func (m *Manager) backfillPrompt(a platform.Adapter, ac *store.AppConfig) error {
	active := ac.ActivePrompt()
	if active == nil {
		return nil
	}
	data, ok, err := fileutil.ReadOptional(m.fs, a.PromptPath())
	if err != nil || !ok {
		return err
	}
	if string(data) == active.Content {
		return nil
	}
	m.logger.Info("saving edited prompt file", "app", a.App(), "prompt", active.ID)
	active.Content = string(data)
	active.UpdatedAt = m.now().UTC()
	return nil
}

// syncPromptFile writes the active preset to app's prompt file. With no
// active preset it does nothing.
func (m *Manager) syncPromptFile(cfg *store.MultiAppConfig, app paths.App) error {
	a, err := m.adapter(app)
	if err != nil {
		return err
	}
	active := cfg.App(app).ActivePrompt()
	if active == nil {
		return nil
	}
	if err := m.ensureDir(a); err != nil {
		return err
	}
	return fileutil.WriteAtomic(m.fs, a.PromptPath(), []byte(active.Content), PromptFilePerm)
}

// importPrompt creates an active "default" preset from the live prompt file
// when app has no presets.
func (m *Manager) importPrompt(cfg *store.MultiAppConfig, app paths.App, res *ImportResult) error {
	a, err := m.adapter(app)
	if err != nil {
		return err
	}
	ac := cfg.App(app)
	if len(ac.Prompts) > 0 {
		return nil
	}
	data, ok, err := fileutil.ReadOptional(m.fs, a.PromptPath())
	if err != nil || !ok || strings.TrimSpace(string(data)) == "" {
		return err
	}
	now := m.now().UTC()
	ac.Prompts[defaultID] = &store.PromptPreset{
		ID:        defaultID,
		Name:      app.InstructionFilename(),
		Content:   string(data),
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ac.ActivePromptID = defaultID
	res.Prompts++
	return nil
}
