package core

import (
	"context"
	"testing"

	"github.com/thoreinstein/switchboard/internal/doctor"
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

func findingsFor(r *doctor.Report, check string, sev doctor.Severity) []doctor.Finding {
	var out []doctor.Finding
	for _, f := range r.Findings {
		if f.Check == check && f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func TestValidate_Clean(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)
	env.addProvider(paths.AppClaude, claudeProvider("a", "https://a.example"))

	r := env.m.Validate(context.Background())
	if r.HasErrors() || r.HasWarnings() {
		t.Errorf("problems = %+v", r.Problems())
	}
	if got := findingsFor(r, "live-files", doctor.SeverityInfo); len(got) != 2 {
		t.Errorf("uninitialized app findings = %d, want 2 (codex, gemini)", len(got))
	}
}

func TestValidate_Problems(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude, paths.AppGemini)
	env.addProvider(paths.AppClaude, claudeProvider("a", "https://a.example"))
	if _, err := env.m.UpsertMCPServer(stdioServer("fs", mcp.Apps{Claude: true})); err != nil {
		t.Fatal(err)
	}
	id, _, _ := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{Name: "A", Content: "v1"})
	if _, err := env.m.ActivatePrompt(paths.AppClaude, id); err != nil {
		t.Fatal(err)
	}

	env.write(claudeMCPPath, `{}`)
	env.write(claudePrompt, "edited")
	env.write(geminiSettings, `{"broken": `)

	r := env.m.Validate(context.Background())

	drift := findingsFor(r, "live-files", doctor.SeverityWarning)
	if len(drift) != 1 || drift[0].Subject != "fs" || drift[0].App != "claude" {
		t.Errorf("drift findings = %+v", drift)
	}
	if got := findingsFor(r, "live-files", doctor.SeverityError); len(got) == 0 {
		t.Error("invalid gemini settings.json not reported")
	}
	if got := findingsFor(r, "prompt-files", doctor.SeverityWarning); len(got) != 1 {
		t.Errorf("prompt findings = %+v", got)
	}
	if !r.HasErrors() {
		t.Error("HasErrors() = false")
	}
}

func TestValidate_DanglingCurrent(t *testing.T) {
	env := newTestEnv(t)
	cfg := store.New()
	zero := 0
	cfg.App(paths.AppClaude).Providers.Set(claudeProviderAt("a", &zero))
	cfg.App(paths.AppClaude).Current = "gone"
	if err := store.Save(env.fs, testStorePath, cfg); err != nil {
		t.Fatal(err)
	}
	env.open()

	r := env.m.Validate(context.Background())
	got := findingsFor(r, "current-pointer", doctor.SeverityError)
	if len(got) != 1 || got[0].Subject != "gone" {
		t.Errorf("current-pointer findings = %+v", got)
	}
	if env.diskStore().App(paths.AppClaude).Current != "gone" {
		t.Error("Validate modified the store")
	}
}

func claudeProviderAt(id string, sortIndex *int) *store.Provider {
	p := claudeProvider(id, "https://"+id+".example")
	p.SortIndex = sortIndex
	return p
}
