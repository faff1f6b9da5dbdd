package paths

import (
	"path/filepath"
	"testing"

	"github.com/thoreinstein/switchboard/internal/errors"
)

func TestParseApp(t *testing.T) {
	tests := []struct {
		in      string
		want    App
		wantErr bool
	}{
		{"claude", AppClaude, false},
		{"Codex", AppCodex, false},
		{" GEMINI ", AppGemini, false},
		{"opencode", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseApp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseApp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrValidationFailed) {
				t.Errorf("error should be a validation failure: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseApp(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApps_Order(t *testing.T) {
	got := Apps()
	want := []App{AppClaude, AppCodex, AppGemini}
	if len(got) != len(want) {
		t.Fatalf("Apps() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Apps()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGlobalConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		app  App
		want string
	}{
		{AppClaude, filepath.Join(home, ".claude")},
		{AppCodex, filepath.Join(home, ".codex")},
		{AppGemini, filepath.Join(home, ".gemini")},
		{App("unknown"), ""},
	}
	for _, tt := range tests {
		if got := GlobalConfigDir(tt.app); got != tt.want {
			t.Errorf("GlobalConfigDir(%q) = %q, want %q", tt.app, got, tt.want)
		}
	}
}

func TestInstructionFilename(t *testing.T) {
	tests := map[App]string{
		AppClaude:      "CLAUDE.md",
		AppCodex:       "AGENTS.md",
		AppGemini:      "GEMINI.md",
		App("unknown"): "",
	}
	for app, want := range tests {
		if got := app.InstructionFilename(); got != want {
			t.Errorf("%q.InstructionFilename() = %q, want %q", app, got, want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/.codex"); got != filepath.Join(home, ".codex") {
		t.Errorf("ExpandHome(~/.codex) = %q", got)
	}
	if got := ExpandHome("~"); got != home {
		t.Errorf("ExpandHome(~) = %q", got)
	}
	if got := ExpandHome("/etc/x"); got != "/etc/x" {
		t.Errorf("ExpandHome(/etc/x) = %q", got)
	}
}

func TestToolPaths(t *testing.T) {
	if got := filepath.Base(StorePath()); got != "config.json" {
		t.Errorf("StorePath() base = %q", got)
	}
	if filepath.Dir(BackupDir()) != ToolDir() {
		t.Errorf("BackupDir() = %q not under %q", BackupDir(), ToolDir())
	}
	if filepath.Base(ToolDir()) != ToolName {
		t.Errorf("ToolDir() = %q", ToolDir())
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("EnsureDir should be idempotent: %v", err)
	}
}
