package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/config"
	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/logging"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

const (
	testStorePath = "/sb/config.json"
	testBackupDir = "/sb/backups"
	claudeDir     = "/home/user/.claude"
	codexDir      = "/home/user/.codex"
	geminiDir     = "/home/user/.gemini"
)

var testEpoch = time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	cur := testEpoch
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.StorePath = testStorePath
	cfg.Backup.Dir = testBackupDir
	cfg.Skills.Dir = filepath.Join(t.TempDir(), "skills")
	cfg.Apps = map[string]config.AppOverride{
		"claude": {ConfigDir: claudeDir},
		"codex":  {ConfigDir: codexDir},
		"gemini": {ConfigDir: geminiDir},
	}
	return cfg
}

type testEnv struct {
	t   *testing.T
	fs  afero.Fs
	cfg *config.Config
	m   *Manager
}

// newTestEnv opens a Manager over an in-memory filesystem in which the
// config directories of the given apps exist.
func newTestEnv(t *testing.T, initialized ...paths.App) *testEnv {
	t.Helper()
	env := &testEnv{t: t, fs: afero.NewMemMapFs(), cfg: testConfig(t)}
	for _, app := range initialized {
		env.mkdir(env.cfg.AppConfigDir(app))
	}
	env.open()
	return env
}

func (e *testEnv) open(opts ...Option) {
	e.t.Helper()
	base := []Option{
		WithFs(e.fs),
		WithLogger(logging.ForTest(e.t)),
		WithClock(tickingClock()),
	}
	m, err := Open(e.cfg, append(base, opts...)...)
	if err != nil {
		e.t.Fatalf("Open() error = %v", err)
	}
	e.m = m
}

func (e *testEnv) mkdir(dir string) {
	e.t.Helper()
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		e.t.Fatal(err)
	}
}

func (e *testEnv) write(path, content string) {
	e.t.Helper()
	if err := afero.WriteFile(e.fs, path, []byte(content), 0o600); err != nil {
		e.t.Fatal(err)
	}
}

func (e *testEnv) read(path string) string {
	e.t.Helper()
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		e.t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func (e *testEnv) exists(path string) bool {
	e.t.Helper()
	ok, err := afero.Exists(e.fs, path)
	if err != nil {
		e.t.Fatal(err)
	}
	return ok
}

func (e *testEnv) readJSON(path string) document.Document {
	e.t.Helper()
	doc, err := document.DecodeJSON([]byte(e.read(path)), path)
	if err != nil {
		e.t.Fatalf("decoding %s: %v", path, err)
	}
	return doc
}

// diskStore loads the persisted store.
func (e *testEnv) diskStore() *store.MultiAppConfig {
	e.t.Helper()
	cfg, err := store.Load(e.fs, testStorePath)
	if err != nil {
		e.t.Fatalf("loading store: %v", err)
	}
	return cfg
}

func (e *testEnv) addProvider(app paths.App, p *store.Provider) {
	e.t.Helper()
	if _, err := e.m.AddProvider(app, p); err != nil {
		e.t.Fatalf("AddProvider(%s, %s) error = %v", app, p.ID, err)
	}
}

func claudeProvider(id, baseURL string) *store.Provider {
	return &store.Provider{
		ID:   id,
		Name: "Provider " + id,
		SettingsConfig: document.Document{
			"env": document.Document{
				"ANTHROPIC_AUTH_TOKEN": "token-" + id,
				"ANTHROPIC_BASE_URL":   baseURL,
			},
		},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// failRenameFs fails every rename whose target is under dir.
type failRenameFs struct {
	afero.Fs
	dir string
}

func (f failRenameFs) Rename(oldname, newname string) error {
	if rel, err := filepath.Rel(f.dir, newname); err == nil && !filepath.IsAbs(rel) && rel[0] != '.' {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
	}
	return f.Fs.Rename(oldname, newname)
}
