package core

import (
	"testing"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

func TestImportFromLive(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)
	env.write(claudeDir+"/settings.json", `{"env": {"ANTHROPIC_AUTH_TOKEN": "live-token"}, "includeCoAuthoredBy": false}`)
	env.write(claudeMCPPath, `{"mcpServers": {"fs": {"command": "npx"}, "bad": {}}}`)
	env.write(claudePrompt, "# Rules\n")

	res, err := env.m.ImportFromLive(paths.AppClaude)
	if err != nil {
		t.Fatalf("ImportFromLive() error = %v", err)
	}
	if res.Providers != 1 || res.Servers != 1 || res.Prompts != 1 || len(res.Errors) != 1 {
		t.Errorf("result = %+v", res)
	}

	cur, _ := env.m.CurrentProvider(paths.AppClaude)
	if cur == nil || cur.ID != defaultID {
		t.Fatalf("current = %v, want default", cur)
	}
	if got := document.LookupString(cur.SettingsConfig, "env.ANTHROPIC_AUTH_TOKEN"); got != "live-token" {
		t.Errorf("captured token = %q", got)
	}

	ac := env.diskStore().App(paths.AppClaude)
	if p := ac.ActivePrompt(); p == nil || p.Content != "# Rules\n" || p.Name != "CLAUDE.md" {
		t.Errorf("active prompt = %+v", p)
	}

	// A second import leaves the existing provider and prompt alone.
	env.write(claudeDir+"/settings.json", `{"env": {"ANTHROPIC_AUTH_TOKEN": "other"}}`)
	res, err = env.m.ImportFromLive(paths.AppClaude)
	if err != nil {
		t.Fatal(err)
	}
	if res.Providers != 0 || res.Prompts != 0 {
		t.Errorf("second import = %+v", res)
	}
	cur, _ = env.m.CurrentProvider(paths.AppClaude)
	if got := document.LookupString(cur.SettingsConfig, "env.ANTHROPIC_AUTH_TOKEN"); got != "live-token" {
		t.Errorf("provider overwritten: %q", got)
	}
}

func TestImportFromLive_OmitsCommonSnippet(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)
	if _, err := env.m.SetCommonSnippet(paths.AppClaude, `{"includeCoAuthoredBy": false}`); err != nil {
		t.Fatal(err)
	}
	env.write(claudeDir+"/settings.json", `{"model": "opus", "includeCoAuthoredBy": false}`)

	if _, err := env.m.ImportFromLive(paths.AppClaude); err != nil {
		t.Fatal(err)
	}
	p, err := env.m.GetProvider(paths.AppClaude, defaultID)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.SettingsConfig["includeCoAuthoredBy"]; ok {
		t.Errorf("common value captured: %v", p.SettingsConfig)
	}
	if p.SettingsConfig["model"] != "opus" {
		t.Errorf("model = %v", p.SettingsConfig["model"])
	}
}

func TestImportFromLive_Uninitialized(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.m.ImportFromLive(paths.AppCodex)
	if err != nil {
		t.Fatalf("ImportFromLive() error = %v", err)
	}
	if !res.Skipped(paths.AppCodex) {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if list, _ := env.m.ListProviders(paths.AppCodex); len(list) != 0 {
		t.Errorf("providers = %v", list)
	}
}

func TestImportFromLive_UnparseableFile(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)
	env.write(claudeDir+"/settings.json", `{"env": `)

	if _, err := env.m.ImportFromLive(paths.AppClaude); !errors.Is(err, errors.ErrFormat) {
		t.Fatalf("ImportFromLive() error = %v, want ErrFormat", err)
	}
	if got := env.read(claudeDir + "/settings.json"); got != `{"env": ` {
		t.Error("unparseable file was rewritten")
	}
}
