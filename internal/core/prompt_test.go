package core

import (
	"testing"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

const claudePrompt = claudeDir + "/CLAUDE.md"

func TestActivatePrompt(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)

	idA, _, err := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{Name: "A", Content: "# A\n"})
	if err != nil {
		t.Fatalf("UpsertPrompt() error = %v", err)
	}
	idB, _, err := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{ID: "b", Name: "B", Content: "# B\n"})
	if err != nil {
		t.Fatal(err)
	}
	if idA == "" || idB != "b" {
		t.Fatalf("ids = %q, %q", idA, idB)
	}
	if env.exists(claudePrompt) {
		t.Fatal("prompt file written before activation")
	}

	if _, err := env.m.ActivatePrompt(paths.AppClaude, idA); err != nil {
		t.Fatalf("ActivatePrompt() error = %v", err)
	}
	if got := env.read(claudePrompt); got != "# A\n" {
		t.Errorf("prompt file = %q", got)
	}

	// An edit to the live file is saved into A before B is written.
	env.write(claudePrompt, "# A edited\n")
	if _, err := env.m.ActivatePrompt(paths.AppClaude, "b"); err != nil {
		t.Fatal(err)
	}
	if got := env.read(claudePrompt); got != "# B\n" {
		t.Errorf("prompt file = %q, want B", got)
	}

	prompts, _ := env.m.ListPrompts(paths.AppClaude)
	if len(prompts) != 2 {
		t.Fatalf("ListPrompts() = %d, want 2", len(prompts))
	}
	for _, p := range prompts {
		switch p.ID {
		case idA:
			if p.Content != "# A edited\n" || p.Enabled {
				t.Errorf("A = %+v", p)
			}
		case "b":
			if !p.Enabled {
				t.Error("B not enabled")
			}
		}
	}
	if got := env.diskStore().App(paths.AppClaude).ActivePromptID; got != "b" {
		t.Errorf("active prompt = %q, want b", got)
	}

	if _, err := env.m.ActivatePrompt(paths.AppClaude, "ghost"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("ActivatePrompt(missing) error = %v", err)
	}
}

func TestUpsertPrompt_ActiveRewritesFile(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)
	id, _, _ := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{Name: "A", Content: "v1"})
	if _, err := env.m.ActivatePrompt(paths.AppClaude, id); err != nil {
		t.Fatal(err)
	}

	if _, _, err := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{ID: id, Name: "A", Content: "v2"}); err != nil {
		t.Fatal(err)
	}
	if got := env.read(claudePrompt); got != "v2" {
		t.Errorf("prompt file = %q, want v2", got)
	}

	if _, _, err := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{Content: "x"}); !errors.Is(err, errors.ErrMissingName) {
		t.Errorf("UpsertPrompt(no name) error = %v", err)
	}
}

func TestDeactivatePrompt(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)
	id, _, _ := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{Name: "A", Content: "v1"})
	if _, err := env.m.ActivatePrompt(paths.AppClaude, id); err != nil {
		t.Fatal(err)
	}
	env.write(claudePrompt, "v1 edited")

	if err := env.m.DeactivatePrompt(paths.AppClaude); err != nil {
		t.Fatalf("DeactivatePrompt() error = %v", err)
	}
	if env.exists(claudePrompt) {
		t.Error("prompt file still present")
	}
	ac := env.diskStore().App(paths.AppClaude)
	if ac.ActivePromptID != "" || ac.Prompts[id].Content != "v1 edited" {
		t.Errorf("active = %q, content = %q", ac.ActivePromptID, ac.Prompts[id].Content)
	}
}

func TestDeletePrompt(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)
	id, _, _ := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{Name: "A", Content: "v1"})
	if _, err := env.m.ActivatePrompt(paths.AppClaude, id); err != nil {
		t.Fatal(err)
	}

	if err := env.m.DeletePrompt(paths.AppClaude, id); err != nil {
		t.Fatalf("DeletePrompt() error = %v", err)
	}
	if env.exists(claudePrompt) {
		t.Error("deleting the active prompt should remove the file")
	}
	if err := env.m.DeletePrompt(paths.AppClaude, id); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("DeletePrompt(missing) error = %v", err)
	}
}

func TestDeletePrompt_SaveFailureKeepsFile(t *testing.T) {
	env := newTestEnv(t, paths.AppClaude)
	id, _, _ := env.m.UpsertPrompt(paths.AppClaude, &store.PromptPreset{Name: "A", Content: "v1"})
	if _, err := env.m.ActivatePrompt(paths.AppClaude, id); err != nil {
		t.Fatal(err)
	}

	env.fs = failRenameFs{Fs: env.fs, dir: "/sb"}
	env.open()

	if err := env.m.DeletePrompt(paths.AppClaude, id); !errors.Is(err, errors.ErrIOFailure) {
		t.Fatalf("DeletePrompt() error = %v, want ErrIOFailure", err)
	}
	if got := env.read(claudePrompt); got != "v1" {
		t.Errorf("prompt file = %q, want v1", got)
	}
	if got := env.diskStore().App(paths.AppClaude).ActivePromptID; got != id {
		t.Errorf("persisted active prompt = %q, want %q", got, id)
	}

	if err := env.m.DeactivatePrompt(paths.AppClaude); !errors.Is(err, errors.ErrIOFailure) {
		t.Fatalf("DeactivatePrompt() error = %v, want ErrIOFailure", err)
	}
	if !env.exists(claudePrompt) {
		t.Error("prompt file removed although the store was not saved")
	}
}

func TestActivatePrompt_UninitializedAppWarns(t *testing.T) {
	env := newTestEnv(t)
	id, _, _ := env.m.UpsertPrompt(paths.AppGemini, &store.PromptPreset{Name: "A", Content: "v1"})

	res, err := env.m.ActivatePrompt(paths.AppGemini, id)
	if err != nil {
		t.Fatalf("ActivatePrompt() error = %v", err)
	}
	if !res.Skipped(paths.AppGemini) {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if got := env.diskStore().App(paths.AppGemini).ActivePromptID; got != id {
		t.Errorf("active prompt = %q, want %q", got, id)
	}
}
