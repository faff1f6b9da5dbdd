package store

import (
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// Version is the canonical store schema version written by Save.
const Version = 2

// MultiAppConfig is the canonical store: the persisted source of truth for
// every managed application.
type MultiAppConfig struct {
	Version int                      `json:"version"`
	Apps    map[paths.App]*AppConfig `json:"apps"`
	Servers map[string]*mcp.Server   `json:"mcp_servers,omitempty"`
	Skills  map[string]*Skill        `json:"skills,omitempty"`
}

// AppConfig is the per-application section of the store.
type AppConfig struct {
	Providers *ProviderSet `json:"providers"`

	// Current is the id of the provider whose settings are live. It is empty
	// only when Providers is empty.
	Current string `json:"current"`

	Prompts        map[string]*PromptPreset `json:"prompts,omitempty"`
	ActivePromptID string                   `json:"active_prompt_id,omitempty"`

	// CommonConfigSnippet is a raw fragment in the application's native
	// format (JSON for claude and gemini, TOML for codex) merged into every
	// provider's live settings.
	CommonConfigSnippet string `json:"common_config_snippet,omitempty"`
}

// PromptPreset is a named instruction file body.
type PromptPreset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Skill is a skill directory held in the tool's skill store.
type Skill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Directory   string    `json:"directory"`
	Source      string    `json:"source,omitempty"`
	Apps        mcp.Apps  `json:"apps"`
	InstalledAt time.Time `json:"installed_at,omitzero"`
}

// New returns an empty store with a section for every application.
func New() *MultiAppConfig {
	c := &MultiAppConfig{Version: Version}
	c.ensure()
	return c
}

func newAppConfig() *AppConfig {
	return &AppConfig{
		Providers: NewProviderSet(),
		Prompts:   make(map[string]*PromptPreset),
	}
}

// ensure fills in nil collections so callers never need nil checks.
func (c *MultiAppConfig) ensure() {
	if c.Apps == nil {
		c.Apps = make(map[paths.App]*AppConfig)
	}
	for _, app := range paths.Apps() {
		ac := c.Apps[app]
		if ac == nil {
			c.Apps[app] = newAppConfig()
			continue
		}
		if ac.Providers == nil {
			ac.Providers = NewProviderSet()
		}
		if ac.Prompts == nil {
			ac.Prompts = make(map[string]*PromptPreset)
		}
	}
	if c.Servers == nil {
		c.Servers = make(map[string]*mcp.Server)
	}
	if c.Skills == nil {
		c.Skills = make(map[string]*Skill)
	}
}

// App returns the section for app. It panics on an unknown application,
// which indicates a caller that skipped paths.ParseApp.
func (c *MultiAppConfig) App(app paths.App) *AppConfig {
	ac, ok := c.Apps[app]
	if !ok {
		if !app.Valid() {
			panic("store: unknown application " + string(app))
		}
		ac = newAppConfig()
		c.Apps[app] = ac
	}
	return ac
}

// Clone returns a deep copy of c.
func (c *MultiAppConfig) Clone() *MultiAppConfig {
	data, err := json.Marshal(c)
	if err != nil {
		// Every field is JSON-representable; a failure here is a bug.
		panic(errors.Wrap(err, "store: cloning"))
	}
	var out MultiAppConfig
	if err := json.Unmarshal(data, &out); err != nil {
		panic(errors.Wrap(err, "store: cloning"))
	}
	out.ensure()
	return &out
}

// ServerIDs returns the MCP server ids in sorted order.
func (c *MultiAppConfig) ServerIDs() []string {
	return slices.Sorted(maps.Keys(c.Servers))
}

// ServersFor returns the servers enabled for app, keyed by id.
func (c *MultiAppConfig) ServersFor(app paths.App) map[string]*mcp.Server {
	out := make(map[string]*mcp.Server)
	for id, s := range c.Servers {
		if s.Apps.Enabled(app) {
			out[id] = s
		}
	}
	return out
}

// CurrentProvider returns the current provider, or nil when none is set or
// the id is dangling.
func (a *AppConfig) CurrentProvider() *Provider {
	if a.Current == "" {
		return nil
	}
	return a.Providers.Get(a.Current)
}

// HealCurrent repairs a dangling or missing current pointer by choosing the
// first provider in display order, or clearing it when there are none. It
// reports whether Current changed.
func (a *AppConfig) HealCurrent() bool {
	if a.Current != "" && a.Providers.Has(a.Current) {
		return false
	}
	next := ""
	if sorted := a.Providers.Sorted(); len(sorted) > 0 {
		next = sorted[0].ID
	}
	if next == a.Current {
		return false
	}
	a.Current = next
	return true
}

// NextSortIndex returns one past the largest sort index in use, or 0.
func (a *AppConfig) NextSortIndex() int {
	next := 0
	for _, p := range a.Providers.All() {
		if p.SortIndex != nil && *p.SortIndex >= next {
			next = *p.SortIndex + 1
		}
	}
	return next
}

// ActivePrompt returns the active prompt, or nil.
func (a *AppConfig) ActivePrompt() *PromptPreset {
	if a.ActivePromptID == "" {
		return nil
	}
	return a.Prompts[a.ActivePromptID]
}

// SortedPrompts returns the prompts ordered by creation time, then id.
func (a *AppConfig) SortedPrompts() []*PromptPreset {
	out := slices.Collect(maps.Values(a.Prompts))
	slices.SortFunc(out, func(x, y *PromptPreset) int {
		if c := x.CreatedAt.Compare(y.CreatedAt); c != 0 {
			return c
		}
		if x.ID < y.ID {
			return -1
		}
		if x.ID > y.ID {
			return 1
		}
		return 0
	})
	return out
}
