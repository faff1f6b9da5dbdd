package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	swerrors "github.com/thoreinstein/switchboard/internal/errors"
)

// App identifies one of the managed command-line assistants.
type App string

// Managed applications.
const (
	AppClaude App = "claude"
	AppCodex  App = "codex"
	AppGemini App = "gemini"
)

// appGlobalConfigs maps apps to their default config directories, relative
// to the user's home directory.
var appGlobalConfigs = map[App]string{
	AppClaude: ".claude",
	AppCodex:  ".codex",
	AppGemini: ".gemini",
}

// appInstructionFiles maps apps to their system prompt file names.
var appInstructionFiles = map[App]string{
	AppClaude: "CLAUDE.md",
	AppCodex:  "AGENTS.md",
	AppGemini: "GEMINI.md",
}

var appDisplayNames = map[App]string{
	AppClaude: "Claude Code",
	AppCodex:  "Codex",
	AppGemini: "Gemini CLI",
}

// ToolName is the directory name used under the XDG config home.
const ToolName = "switchboard"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Apps returns every managed app in a fixed order.
func Apps() []App {
	return []App{AppClaude, AppCodex, AppGemini}
}

// ParseApp resolves an app name case-insensitively.
func ParseApp(s string) (App, error) {
	app := App(strings.ToLower(strings.TrimSpace(s)))
	if !app.Valid() {
		return "", swerrors.Invalidf("unknown app %q (want claude, codex or gemini)", s)
	}
	return app, nil
}

// Valid reports whether a names a managed app.
func (a App) Valid() bool {
	_, ok := appGlobalConfigs[a]
	return ok
}

func (a App) String() string { return string(a) }

// DisplayName returns the product name of the app.
func (a App) DisplayName() string {
	if name, ok := appDisplayNames[a]; ok {
		return name
	}
	return string(a)
}

// InstructionFilename returns the prompt file name for an app, or "" for
// unknown apps.
func (a App) InstructionFilename() string {
	return appInstructionFiles[a]
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be determined.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" {
		return Home()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(Home(), p[2:])
	}
	return p
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// ToolDir returns the directory holding switchboard's own files:
// <ConfigHome>/switchboard.
func ToolDir() string {
	return filepath.Join(ConfigHome(), ToolName)
}

// StorePath returns the default canonical store location.
func StorePath() string {
	return filepath.Join(ToolDir(), "config.json")
}

// BackupDir returns the default snapshot rotation directory.
func BackupDir() string {
	return filepath.Join(ToolDir(), "backups")
}

// SkillStoreDir returns the directory managed skills are installed into.
func SkillStoreDir() string {
	return filepath.Join(ToolDir(), "skills")
}

// GlobalConfigDir returns the default config directory for an app
// (~/.claude, ~/.codex, ~/.gemini). Returns "" for unknown apps.
func GlobalConfigDir(app App) string {
	relPath, ok := appGlobalConfigs[app]
	if !ok {
		return ""
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, relPath)
}
