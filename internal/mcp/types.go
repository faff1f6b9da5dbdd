package mcp

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// Kind is the active variant of a server's transport.
type Kind string

// Transport kinds.
const (
	KindStdio Kind = "stdio"
	KindHTTP  Kind = "http"
	KindSSE   Kind = "sse"
)

// TagMode records whether the native record a server was imported from
// carried an explicit transport "type" field, so re-rendering reproduces it.
type TagMode string

const (
	// TagDefault lets each application format decide.
	TagDefault TagMode = ""
	// TagAlways writes the type field.
	TagAlways TagMode = "always"
	// TagNever omits the type field.
	TagNever TagMode = "never"
)

// Timeouts are stored in milliseconds. Zero means unset.
type Timeouts struct {
	StartupMS int64 `json:"startup_timeout_ms,omitempty"`
	ToolMS    int64 `json:"tool_timeout_ms,omitempty"`
}

// Transport is a tagged variant. Kind selects which fields are meaningful:
// Command, Args, Env and Cwd for stdio; URL and Headers for http and sse.
type Transport struct {
	Kind    Kind              `json:"type"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Cwd     string            `json:"cwd,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Tag     TagMode           `json:"tag,omitempty"`
	Timeouts
}

// IsRemote reports whether the transport connects to a URL.
func (t Transport) IsRemote() bool {
	return t.Kind == KindHTTP || t.Kind == KindSSE
}

// Apps holds the per-application enablement flags of a server.
type Apps struct {
	Claude bool `json:"claude"`
	Codex  bool `json:"codex"`
	Gemini bool `json:"gemini"`
}

// Enabled reports whether the server is enabled for app.
func (a Apps) Enabled(app paths.App) bool {
	switch app {
	case paths.AppClaude:
		return a.Claude
	case paths.AppCodex:
		return a.Codex
	case paths.AppGemini:
		return a.Gemini
	}
	return false
}

// With returns a copy of a with app set to enabled.
func (a Apps) With(app paths.App, enabled bool) Apps {
	switch app {
	case paths.AppClaude:
		a.Claude = enabled
	case paths.AppCodex:
		a.Codex = enabled
	case paths.AppGemini:
		a.Gemini = enabled
	}
	return a
}

// List returns the enabled apps in fixed order.
func (a Apps) List() []paths.App {
	var out []paths.App
	for _, app := range paths.Apps() {
		if a.Enabled(app) {
			out = append(out, app)
		}
	}
	return out
}

// Server is one tool-integration server definition. ID is global; Apps
// toggles it per application.
type Server struct {
	ID          string
	Name        string
	Transport   Transport
	Apps        Apps
	Description string
	Homepage    string
	Docs        string
	Tags        []string

	// Extra holds native fields this package does not model (for example
	// Gemini's "trust" or Codex's "enabled_tools"). They are written back
	// verbatim on render.
	Extra document.Document
}

// Clone returns a deep copy of s.
func (s *Server) Clone() *Server {
	if s == nil {
		return nil
	}
	c := *s
	c.Transport.Args = slices.Clone(s.Transport.Args)
	c.Transport.Env = maps.Clone(s.Transport.Env)
	c.Transport.Headers = maps.Clone(s.Transport.Headers)
	c.Tags = slices.Clone(s.Tags)
	c.Extra = document.Clone(s.Extra)
	return &c
}

// DisplayName returns Name, falling back to ID.
func (s *Server) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// serverJSON is the stored shape. The transport and Extra fields are
// flattened into the "server" object.
type serverJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Server      json.RawMessage `json:"server"`
	Apps        Apps            `json:"apps"`
	Description string          `json:"description,omitempty"`
	Homepage    string          `json:"homepage,omitempty"`
	Docs        string          `json:"docs,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

// transportKeys are the keys of the stored "server" object owned by Transport.
var transportKeys = []string{
	"type", "command", "args", "env", "cwd", "url", "headers", "tag",
	"startup_timeout_ms", "tool_timeout_ms",
}

// MarshalJSON implements json.Marshaler, flattening Extra into the stored
// "server" object alongside the transport fields.
func (s *Server) MarshalJSON() ([]byte, error) {
	spec := make(map[string]any, len(s.Extra)+len(transportKeys))
	for k, v := range s.Extra {
		spec[k] = v
	}

	tb, err := json.Marshal(s.Transport)
	if err != nil {
		return nil, err
	}
	var tm map[string]any
	if err := json.Unmarshal(tb, &tm); err != nil {
		return nil, err
	}
	// Known fields take precedence over extras.
	for k, v := range tm {
		spec[k] = v
	}

	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	return json.Marshal(serverJSON{
		ID:          s.ID,
		Name:        s.Name,
		Server:      raw,
		Apps:        s.Apps,
		Description: s.Description,
		Homepage:    s.Homepage,
		Docs:        s.Docs,
		Tags:        s.Tags,
	})
}

// UnmarshalJSON implements json.Unmarshaler, capturing unknown "server"
// fields into Extra.
func (s *Server) UnmarshalJSON(data []byte) error {
	var sj serverJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}
	*s = Server{
		ID:          sj.ID,
		Name:        sj.Name,
		Apps:        sj.Apps,
		Description: sj.Description,
		Homepage:    sj.Homepage,
		Docs:        sj.Docs,
		Tags:        sj.Tags,
	}
	if len(sj.Server) == 0 {
		return nil
	}
	if err := json.Unmarshal(sj.Server, &s.Transport); err != nil {
		return err
	}
	extra, err := document.DecodeJSON(sj.Server, "server "+sj.ID)
	if err != nil {
		return err
	}
	for _, k := range transportKeys {
		delete(extra, k)
	}
	if len(extra) > 0 {
		s.Extra = extra
	}
	return nil
}
