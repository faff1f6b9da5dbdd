package gemini

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/store"
)

const testDir = "/home/user/.gemini"

func newTestAdapter(t *testing.T) (*Adapter, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(testDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return New(fs, testDir), fs
}

func readLive(t *testing.T, a *Adapter, fs afero.Fs, files map[string]string) platform.Files {
	t.Helper()
	for name, content := range files {
		if err := afero.WriteFile(fs, testDir+"/"+name, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	live, err := a.ReadLive()
	if err != nil {
		t.Fatalf("ReadLive() error = %v", err)
	}
	return live
}

func TestRenderProvider_PreservesUnmanagedKeys(t *testing.T) {
	a, fs := newTestAdapter(t)
	live := readLive(t, a, fs, map[string]string{
		settingsFile: `{"mcpServers": {"keep": {"command": "echo"}}, "other": 1}`,
	})

	p := &store.Provider{
		ID:   "p",
		Name: "Packy",
		SettingsConfig: document.Document{
			"env":    document.Document{"GEMINI_API_KEY": "key-1"},
			"config": document.Document{"security": document.Document{"folderTrust": document.Document{"enabled": true}}},
		},
	}
	files, err := a.RenderProvider(p, nil, live)
	if err != nil {
		t.Fatalf("RenderProvider() error = %v", err)
	}

	doc := files.Doc(platform.RoleSettings)
	if got := document.LookupString(doc, "mcpServers.keep.command"); got != "echo" {
		t.Errorf("mcpServers.keep lost: %v", doc)
	}
	if doc["other"] != int64(1) {
		t.Errorf("other = %v, want 1", doc["other"])
	}
	if v, _ := document.Lookup(doc, "security.folderTrust.enabled"); v != true {
		t.Errorf("security from config missing: %v", doc["security"])
	}
	if got := document.LookupString(doc, "security.auth.selectedType"); got != string(AuthAPIKey) {
		t.Errorf("selectedType = %q, want %q", got, AuthAPIKey)
	}
	if got := document.LookupString(files.Doc(platform.RoleEnv), "GEMINI_API_KEY"); got != "key-1" {
		t.Errorf("GEMINI_API_KEY = %q", got)
	}
}

func TestRenderProvider_NoConfigLeavesSettingsKeys(t *testing.T) {
	a, fs := newTestAdapter(t)
	live := readLive(t, a, fs, map[string]string{
		settingsFile: `{"theme": "dark", "mcpServers": {"x": {"command": "y"}}}`,
		envFile:      "EXISTING=1\n",
	})

	p := &store.Provider{ID: "p", Name: "P", SettingsConfig: document.Document{
		"env": document.Document{"GEMINI_API_KEY": "k"},
	}}
	files, err := a.RenderProvider(p, nil, live)
	if err != nil {
		t.Fatal(err)
	}
	doc := files.Doc(platform.RoleSettings)
	if doc["theme"] != "dark" || document.LookupMap(doc, "mcpServers")["x"] == nil {
		t.Errorf("settings.json keys changed: %v", doc)
	}
	env := files.Doc(platform.RoleEnv)
	if len(env) != 1 || env["GEMINI_API_KEY"] != "k" {
		t.Errorf(".env = %v, want only the provider's env", env)
	}
}

func TestRenderProvider_GoogleOfficial(t *testing.T) {
	a, fs := newTestAdapter(t)
	live := readLive(t, a, fs, map[string]string{
		envFile: "GEMINI_API_KEY=old\nGOOGLE_API_KEY=older\nGEMINI_MODEL=gemini-2.5-pro\n",
	})

	p := &store.Provider{
		ID:             "google",
		Name:           "Google Official",
		SettingsConfig: document.Document{"env": document.Document{"GEMINI_MODEL": "gemini-2.5-pro"}},
		Meta:           &store.ProviderMeta{PartnerPromotionKey: "google-official"},
	}
	files, err := a.RenderProvider(p, nil, live)
	if err != nil {
		t.Fatal(err)
	}
	env := files.Doc(platform.RoleEnv)
	if _, ok := env["GEMINI_API_KEY"]; ok {
		t.Error("GEMINI_API_KEY kept in oauth mode")
	}
	if _, ok := env["GOOGLE_API_KEY"]; ok {
		t.Error("GOOGLE_API_KEY kept in oauth mode")
	}
	if env["GEMINI_MODEL"] != "gemini-2.5-pro" {
		t.Errorf("provider env var lost: %v", env)
	}
	if got := document.LookupString(files.Doc(platform.RoleSettings), "security.auth.selectedType"); got != string(AuthOAuth) {
		t.Errorf("selectedType = %q, want %q", got, AuthOAuth)
	}
}

func TestRenderProvider_NoEnvFileFabricated(t *testing.T) {
	a, _ := newTestAdapter(t)
	p := &store.Provider{ID: "g", Name: "Google", SettingsConfig: document.Document{}}

	files, err := a.RenderProvider(p, nil, platform.Files{})
	if err != nil {
		t.Fatal(err)
	}
	if files.Has(platform.RoleEnv) {
		t.Errorf(".env rendered with no env: %v", files.Doc(platform.RoleEnv))
	}
}

func TestDetectAuthMode(t *testing.T) {
	tests := []struct {
		name string
		p    *store.Provider
		want AuthMode
	}{
		{"partner key", &store.Provider{Name: "Whatever", Meta: &store.ProviderMeta{PartnerPromotionKey: "Google-Official"}}, AuthOAuth},
		{"exact name", &store.Provider{Name: "google"}, AuthOAuth},
		{"name prefix", &store.Provider{Name: "Google (OAuth)"}, AuthOAuth},
		{"lookalike", &store.Provider{Name: "Googlery"}, AuthAPIKey},
		{"third party", &store.Provider{Name: "PackyCode"}, AuthAPIKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectAuthMode(tt.p); got != tt.want {
				t.Errorf("DetectAuthMode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCaptureProvider(t *testing.T) {
	a, fs := newTestAdapter(t)
	live := readLive(t, a, fs, map[string]string{
		envFile:      "GEMINI_API_KEY=k\nGEMINI_MODEL=shared\n",
		settingsFile: `{"mcpServers": {"x": {"command": "y"}}, "theme": "dark"}`,
	})
	common := document.Document{"env": document.Document{"GEMINI_MODEL": "shared"}}

	got, err := a.CaptureProvider(live, common)
	if err != nil {
		t.Fatalf("CaptureProvider() error = %v", err)
	}
	want := document.Document{
		"env":    document.Document{"GEMINI_API_KEY": "k"},
		"config": document.Document{"theme": "dark"},
	}
	if !document.Equal(got, want) {
		t.Errorf("CaptureProvider() = %v, want %v", got, want)
	}
}

func TestCaptureProvider_Absent(t *testing.T) {
	a, _ := newTestAdapter(t)
	if _, err := a.CaptureProvider(platform.Files{}, nil); !errors.Is(err, errors.ErrLiveFileUnavailable) {
		t.Errorf("CaptureProvider() error = %v, want ErrLiveFileUnavailable", err)
	}
}

func TestValidateSettings(t *testing.T) {
	a, _ := newTestAdapter(t)
	tests := []struct {
		name     string
		settings document.Document
		wantErr  bool
	}{
		{"empty", document.Document{}, false},
		{"env and config", document.Document{"env": document.Document{"A": "1"}, "config": document.Document{}}, false},
		{"null config", document.Document{"config": nil}, false},
		{"env list", document.Document{"env": []any{"A"}}, true},
		{"config string", document.Document{"config": "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := a.ValidateSettings(tt.settings); (err != nil) != tt.wantErr {
				t.Errorf("ValidateSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
