package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/errors"
)

func TestWriteAtomic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"settings file", []byte(`{"env":{}}` + "\n"), 0o644},
		{"credentials", []byte(`{"OPENAI_API_KEY":"sk-x"}`), 0o600},
		{"empty", []byte{}, 0o644},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")
			if err := WriteAtomic(OS, path, tt.data, tt.perm); err != nil {
				t.Fatalf("WriteAtomic() error = %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != tt.perm {
				t.Errorf("perm = %o, want %o", info.Mode().Perm(), tt.perm)
			}
		})
	}
}

func TestWriteAtomic_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("model = \"old\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteAtomic(OS, path, []byte("model = \"new\"\n"), 0o644); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "model = \"new\"\n" {
		t.Errorf("content = %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "settings.json")
	err := WriteAtomic(OS, path, []byte("{}"), 0o644)
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
	if !errors.Is(err, errors.ErrIOFailure) {
		t.Errorf("error should be marked ErrIOFailure, got %v", err)
	}
}

type failRenameFs struct {
	afero.Fs
}

func (failRenameFs) Rename(string, string) error {
	return os.ErrPermission
}

func TestWriteAtomic_RenameFailureKeepsOldContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"keep":true}`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteAtomic(failRenameFs{Fs: afero.NewOsFs()}, path, []byte(`{"keep":false}`), 0o644)
	if err == nil {
		t.Fatal("expected rename failure")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("cause lost: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != `{"keep":true}` {
		t.Errorf("destination changed after failed write: %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestMarshalJSON_NoHTMLEscape(t *testing.T) {
	data, err := MarshalJSON(map[string]any{"url": "https://x.test/v1?a=1&b=2"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "a=1&b=2") {
		t.Errorf("ampersand was escaped: %s", data)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Errorf("missing trailing newline: %q", data)
	}
	var back map[string]any
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CLAUDE.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveIfExists(OS, path); err != nil {
		t.Fatal(err)
	}
	if err := RemoveIfExists(OS, path); err != nil {
		t.Errorf("second remove should succeed, got %v", err)
	}
	if DirExists(OS, path) {
		t.Error("file still present")
	}
	if !DirExists(OS, dir) {
		t.Error("DirExists(dir) = false")
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".switchboard-*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}
