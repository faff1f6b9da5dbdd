package platform

import (
	"os"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

// Adapter translates between the canonical store and one application's
// native live files. Render methods are pure: they compute new file contents
// from their arguments and never touch the filesystem.
type Adapter interface {
	// App returns the application this adapter serves.
	App() paths.App

	// ConfigDir returns the application's configuration directory.
	ConfigDir() string

	// Initialized reports whether ConfigDir exists.
	Initialized() bool

	// PromptPath returns the path of the application's prompt file.
	PromptPath() string

	// SkillsDir returns the directory the application loads skills from.
	SkillsDir() string

	// ReadLive reads every live file. Absent files are omitted from the
	// result; a present but unparseable file yields a Format error.
	ReadLive() (Files, error)

	// WriteLive atomically replaces each file in files. Roles absent from
	// files are left untouched.
	WriteLive(files Files) error

	// ParseCommon decodes the application's common config snippet. A blank
	// snippet yields a nil document.
	ParseCommon(snippet string) (document.Document, error)

	// NormalizeSettings rewrites legacy keys in a provider's settings. It
	// returns the input when nothing changes.
	NormalizeSettings(settings document.Document) document.Document

	// ValidateSettings checks a provider's settings for this application.
	ValidateSettings(settings document.Document) error

	// RenderProvider computes the live files that make p current, merging
	// p's settings and then common over the existing live files.
	RenderProvider(p *store.Provider, common document.Document, existing Files) (Files, error)

	// CaptureProvider derives provider settings from live files, omitting
	// values equal to the common snippet's.
	CaptureProvider(live Files, common document.Document) (document.Document, error)

	// RenderMCP upserts servers into the native MCP map and removes the ids
	// in removed. Native entries for any other id are left alone.
	RenderMCP(servers map[string]*mcp.Server, removed []string, existing Files) (Files, error)

	// ParseMCP imports the native MCP map. Entries that cannot be imported
	// are reported individually and do not affect the others.
	ParseMCP(live Files) ([]*mcp.Server, []ImportError)

	// UsageCredentials returns the API key and base URL a usage query should
	// fall back to when the usage script leaves them empty.
	UsageCredentials(settings document.Document) (apiKey, baseURL string)
}

// Role names a live file by what it holds.
type Role string

const (
	// RoleSettings is the main settings file (Claude and Gemini settings.json).
	RoleSettings Role = "settings"

	// RoleAuth is Codex's auth.json.
	RoleAuth Role = "auth"

	// RoleConfig is Codex's config.toml.
	RoleConfig Role = "config"

	// RoleEnv is Gemini's .env.
	RoleEnv Role = "env"

	// RoleMCP is Claude's ~/.claude.json.
	RoleMCP Role = "mcp"
)

// Format is the concrete syntax of a live file.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
	FormatEnv
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatEnv:
		return "env"
	default:
		return "unknown"
	}
}

// Decode parses data in this format. name labels Format errors.
func (f Format) Decode(data []byte, name string) (document.Document, error) {
	switch f {
	case FormatJSON:
		return document.DecodeJSON(data, name)
	case FormatTOML:
		return document.DecodeTOML(data, name)
	case FormatEnv:
		return document.DecodeEnv(data, name)
	default:
		return nil, errors.Newf("unknown format %d", int(f))
	}
}

// Encode renders doc in this format.
func (f Format) Encode(doc document.Document) ([]byte, error) {
	switch f {
	case FormatJSON:
		return document.EncodeJSON(doc)
	case FormatTOML:
		return document.EncodeTOML(doc)
	case FormatEnv:
		return document.EncodeEnv(doc)
	default:
		return nil, errors.Newf("unknown format %d", int(f))
	}
}

// File is a live file decoded into a document.
type File struct {
	Role   Role
	Path   string
	Format Format
	Perm   os.FileMode
	Doc    document.Document
}

// Clone returns a copy of f with its own document.
func (f *File) Clone() *File {
	if f == nil {
		return nil
	}
	c := *f
	c.Doc = document.Clone(f.Doc)
	return &c
}

// Files maps roles to live files.
type Files map[Role]*File

// Doc returns the document for role, or nil when the file is absent.
func (fs Files) Doc(role Role) document.Document {
	if f := fs[role]; f != nil {
		return f.Doc
	}
	return nil
}

// Has reports whether role is present.
func (fs Files) Has(role Role) bool {
	return fs[role] != nil
}

// Overlay returns a copy of fs with every entry of other replacing the entry
// for the same role.
func (fs Files) Overlay(other Files) Files {
	out := make(Files, len(fs)+len(other))
	for role, f := range fs {
		out[role] = f
	}
	for role, f := range other {
		out[role] = f
	}
	return out
}

// ImportError reports one native entry that could not be imported.
type ImportError struct {
	ID  string
	Err error
}

// Error implements error.
func (e ImportError) Error() string {
	return e.ID + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e ImportError) Unwrap() error {
	return e.Err
}
