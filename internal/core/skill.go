package core

import (
	"maps"
	"slices"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/skill"
	"github.com/thoreinstein/switchboard/internal/store"
)

// ListSkills returns installed skills sorted by id.
func (m *Manager) ListSkills() ([]*store.Skill, error) {
	var out []*store.Skill
	err := m.guard.Read(func(cfg *store.MultiAppConfig) error {
		for _, id := range slices.Sorted(maps.Keys(cfg.Skills)) {
			s := *cfg.Skills[id]
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

// InstallSkill copies the skill directory src into the managed store under
// a slug of name (or of the skill's own name) and records it, enabled for
// no application.
func (m *Manager) InstallSkill(src, name string) (*store.Skill, error) {
	inst, err := m.skills.Install(src, name)
	if err != nil {
		return nil, err
	}
	rec := &store.Skill{
		ID:          inst.ID,
		Name:        inst.Name,
		Description: inst.Description,
		Directory:   inst.Directory,
		Source:      paths.ExpandHome(src),
		InstalledAt: m.now().UTC(),
	}
	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		if _, ok := cfg.Skills[rec.ID]; ok {
			return errors.Invalidf("skill %q is already installed", rec.ID)
		}
		cfg.Skills[rec.ID] = rec
		return nil
	})
	if err != nil {
		if rmErr := m.skills.Remove(inst.ID); rmErr != nil {
			m.logger.Warn("removing copied skill after failed install", "skill", inst.ID, "error", rmErr)
		}
		return nil, err
	}
	out := *rec
	return &out, nil
}

// EnableSkill links (or copies) skill id into app's skills directory, or
// removes it from there when on is false.
func (m *Manager) EnableSkill(id string, app paths.App, on bool) (*Result, error) {
	a, err := m.adapter(app)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	err = m.guard.Write(func(cfg *store.MultiAppConfig) error {
		s, ok := cfg.Skills[id]
		if !ok {
			return errors.NotFoundf("skill %q not found", id)
		}
		s.Apps = s.Apps.With(app, on)

		if !on {
			return m.skills.Unlink(id, a.SkillsDir())
		}
		if err := m.ensureDir(a); err != nil {
			if !errors.Is(err, errors.ErrLiveFileUnavailable) {
				return err
			}
			res.warn(&AppWarning{App: app, Err: err})
			return nil
		}
		method, err := m.skills.Link(id, a.SkillsDir())
		if err != nil {
			return err
		}
		m.logger.Debug("skill enabled", "skill", id, "app", app, "method", method)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UninstallSkill removes skill id from every application and from the
// managed store.
func (m *Manager) UninstallSkill(id string) error {
	return m.guard.Write(func(cfg *store.MultiAppConfig) error {
		s, ok := cfg.Skills[id]
		if !ok {
			return errors.NotFoundf("skill %q not found", id)
		}
		for _, app := range s.Apps.List() {
			a, err := m.adapter(app)
			if err != nil {
				return err
			}
			if err := m.skills.Unlink(id, a.SkillsDir()); err != nil {
				return err
			}
		}
		delete(cfg.Skills, id)
		return m.skills.Remove(id)
	})
}

// ScanUnmanagedSkills lists skill directories in app's skills directory that
// the store does not track.
func (m *Manager) ScanUnmanagedSkills(app paths.App) ([]skill.Unmanaged, error) {
	a, err := m.adapter(app)
	if err != nil {
		return nil, err
	}
	var known []string
	_ = m.guard.Read(func(cfg *store.MultiAppConfig) error {
		known = slices.Collect(maps.Keys(cfg.Skills))
		return nil
	})
	return m.skills.Scan(a.SkillsDir(), known)
}
