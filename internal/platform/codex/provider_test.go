package codex

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/store"
)

const testDir = "/home/user/.codex"

const existingConfig = `model = "o3"
model_provider = "old"
approval_policy = "never"

[model_providers.old]
name = "old"
base_url = "https://old.example/v1"

[mcp_servers.fs]
command = "npx"
args = ["-y", "fs"]
startup_timeout_sec = 20
`

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

func TestProviderKey(t *testing.T) {
	tests := []struct {
		name, id, want string
	}{
		{"Duck Coding", "x", "duckcoding"},
		{"OpenAI", "x", "openai"},
		{"", "my-provider", "myprovider"},
	}
	for _, tt := range tests {
		if got := ProviderKey(&store.Provider{ID: tt.id, Name: tt.name}); got != tt.want {
			t.Errorf("ProviderKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRenderProvider_FlatSnippet(t *testing.T) {
	a, fs := newTestAdapter(t)
	live := readLive(t, a, fs, map[string]string{configFile: existingConfig})

	p := &store.Provider{
		ID:   "duck",
		Name: "Duck Coding",
		SettingsConfig: document.Document{
			"config": "base_url = \"https://duck.example/v1\"\nmodel = \"gpt-5\"\nwire_api = \"responses\"\n",
		},
	}

	files, err := a.RenderProvider(p, nil, live)
	if err != nil {
		t.Fatalf("RenderProvider() error = %v", err)
	}
	if files.Has(platform.RoleAuth) {
		t.Error("auth.json rendered for a provider without auth")
	}

	doc := files.Doc(platform.RoleConfig)
	checks := map[string]string{
		"model_provider":                      "duckcoding",
		"model":                               "gpt-5",
		"approval_policy":                     "never",
		"model_providers.duckcoding.name":     "duckcoding",
		"model_providers.duckcoding.base_url": "https://duck.example/v1",
		"model_providers.duckcoding.wire_api": "responses",
		"model_providers.old.base_url":        "https://old.example/v1",
		"mcp_servers.fs.command":              "npx",
	}
	for path, want := range checks {
		if got := document.LookupString(doc, path); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
	if _, ok := document.Lookup(doc, "model_providers.duckcoding.env_key"); ok {
		t.Error("env_key fabricated")
	}
	if _, ok := document.Lookup(doc, "model_providers.duckcoding.requires_openai_auth"); ok {
		t.Error("requires_openai_auth written without auth")
	}
	if _, ok := doc["base_url"]; ok {
		t.Error("base_url left at the root")
	}
}

func TestRenderProvider_AuthModes(t *testing.T) {
	tests := []struct {
		name         string
		settings     document.Document
		wantAuthFile bool
		wantRequires bool
		wantEnvKey   string
	}{
		{
			name: "api key with OPENAI_API_KEY env_key implies openai auth",
			settings: document.Document{
				"auth":   document.Document{"OPENAI_API_KEY": "sk-1"},
				"config": "base_url = \"https://api.example/v1\"\nenv_key = \"OPENAI_API_KEY\"\n",
			},
			wantAuthFile: true,
			wantRequires: true,
		},
		{
			name: "env-only credential keeps env_key",
			settings: document.Document{
				"config": "base_url = \"https://api.example/v1\"\nenv_key = \"MY_KEY\"\n",
			},
			wantEnvKey: "MY_KEY",
		},
		{
			name: "explicit requires false with empty auth",
			settings: document.Document{
				"auth":   document.Document{},
				"config": "base_url = \"https://api.example/v1\"\nrequires_openai_auth = false\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAdapter(t)
			p := &store.Provider{ID: "p", Name: "Prov", SettingsConfig: tt.settings}

			files, err := a.RenderProvider(p, nil, platform.Files{})
			if err != nil {
				t.Fatalf("RenderProvider() error = %v", err)
			}
			if files.Has(platform.RoleAuth) != tt.wantAuthFile {
				t.Errorf("auth file rendered = %v, want %v", files.Has(platform.RoleAuth), tt.wantAuthFile)
			}
			doc := files.Doc(platform.RoleConfig)
			requires, _ := document.Lookup(doc, "model_providers.prov.requires_openai_auth")
			if (requires == true) != tt.wantRequires {
				t.Errorf("requires_openai_auth = %v, want %v", requires, tt.wantRequires)
			}
			if got := document.LookupString(doc, "model_providers.prov.env_key"); got != tt.wantEnvKey {
				t.Errorf("env_key = %q, want %q", got, tt.wantEnvKey)
			}
		})
	}
}

func TestRenderProvider_StructuredSnippetClearsModelProvider(t *testing.T) {
	a, fs := newTestAdapter(t)
	live := readLive(t, a, fs, map[string]string{configFile: existingConfig})

	p := &store.Provider{
		ID:             "official",
		Name:           "OpenAI Official",
		SettingsConfig: document.Document{"auth": document.Document{"OPENAI_API_KEY": "sk-x"}, "config": "model = \"gpt-5\"\n"},
	}
	files, err := a.RenderProvider(p, nil, live)
	if err != nil {
		t.Fatal(err)
	}
	doc := files.Doc(platform.RoleConfig)
	if _, ok := doc["model_provider"]; ok {
		t.Error("model_provider from the previous provider kept")
	}
	if doc["model"] != "gpt-5" {
		t.Errorf("model = %v", doc["model"])
	}
	if got := document.LookupString(files.Doc(platform.RoleAuth), "OPENAI_API_KEY"); got != "sk-x" {
		t.Errorf("auth OPENAI_API_KEY = %q", got)
	}
}

func TestRenderProvider_CommonWins(t *testing.T) {
	a, _ := newTestAdapter(t)
	common, err := a.ParseCommon("model_reasoning_effort = \"high\"\nmodel = \"pinned\"\n")
	if err != nil {
		t.Fatal(err)
	}
	p := &store.Provider{ID: "p", Name: "P", SettingsConfig: document.Document{
		"config": "base_url = \"https://x.example\"\nmodel = \"gpt-5\"\n",
	}}
	files, err := a.RenderProvider(p, common, nil)
	if err != nil {
		t.Fatal(err)
	}
	doc := files.Doc(platform.RoleConfig)
	if doc["model"] != "pinned" || doc["model_reasoning_effort"] != "high" {
		t.Errorf("common not applied last: %v", doc)
	}
}

func TestRenderProvider_DefaultModel(t *testing.T) {
	a, _ := newTestAdapter(t)
	p := &store.Provider{ID: "p", Name: "P", SettingsConfig: document.Document{
		"config": "base_url = \"https://x.example\"\n",
	}}
	files, err := a.RenderProvider(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := files.Doc(platform.RoleConfig)["model"]; got != "gpt-5.2-codex" {
		t.Errorf("model = %v, want gpt-5.2-codex", got)
	}
}

func TestCaptureProvider_RoundTrip(t *testing.T) {
	a, fs := newTestAdapter(t)
	live := readLive(t, a, fs, map[string]string{
		authFile: `{"OPENAI_API_KEY": "sk-live"}`,
		configFile: `model = "gpt-5"
model_provider = "duckcoding"
model_reasoning_effort = "high"

[model_providers.duckcoding]
name = "duckcoding"
base_url = "https://duck.example/v1"
wire_api = "responses"
requires_openai_auth = true
`,
	})
	common := document.Document{"model_reasoning_effort": "high"}

	got, err := a.CaptureProvider(live, common)
	if err != nil {
		t.Fatalf("CaptureProvider() error = %v", err)
	}
	if document.LookupString(got, "auth.OPENAI_API_KEY") != "sk-live" {
		t.Errorf("auth not captured: %v", got["auth"])
	}

	text, _ := got["config"].(string)
	cfg, err := document.DecodeTOML([]byte(text), "captured")
	if err != nil {
		t.Fatalf("captured config is not TOML: %v\n%s", err, text)
	}
	want := document.Document{
		"base_url":             "https://duck.example/v1",
		"model":                "gpt-5",
		"wire_api":             "responses",
		"requires_openai_auth": true,
	}
	if !document.Equal(cfg, want) {
		t.Errorf("captured config = %v, want %v", cfg, want)
	}
	if strings.Contains(text, "model_reasoning_effort") {
		t.Error("common value leaked into the captured snippet")
	}
}

func TestCaptureProvider_EnvKeyPinsMode(t *testing.T) {
	a, fs := newTestAdapter(t)
	live := readLive(t, a, fs, map[string]string{
		configFile: "model = \"m\"\nbase_url = \"https://legacy.example\"\nenv_key = \"OPENAI_API_KEY\"\n",
	})

	got, err := a.CaptureProvider(live, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got["auth"] != nil {
		t.Error("auth captured without auth.json")
	}
	cfg, err := document.DecodeTOML([]byte(got["config"].(string)), "captured")
	if err != nil {
		t.Fatal(err)
	}
	if cfg["env_key"] != "OPENAI_API_KEY" || cfg["requires_openai_auth"] != false {
		t.Errorf("captured config = %v", cfg)
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
		{"auth and config", document.Document{"auth": document.Document{"OPENAI_API_KEY": "x"}, "config": "model = \"m\""}, false},
		{"auth string", document.Document{"auth": "sk"}, true},
		{"config object", document.Document{"config": document.Document{}}, true},
		{"config bad toml", document.Document{"config": "model = "}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.ValidateSettings(tt.settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrValidationFailed) {
				t.Errorf("error %v is not ErrValidationFailed", err)
			}
		})
	}
}

func TestUsageCredentials(t *testing.T) {
	a, _ := newTestAdapter(t)
	key, base := a.UsageCredentials(document.Document{
		"auth":   document.Document{"OPENAI_API_KEY": "sk-1"},
		"config": "base_url = \"https://api.example/v1\"\n",
	})
	if key != "sk-1" || base != "https://api.example/v1" {
		t.Errorf("UsageCredentials() = %q, %q", key, base)
	}
}
