package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("live file written", "path", "/tmp/settings.json")

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "live file written") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "path=/tmp/settings.json") {
		t.Errorf("expected attribute in output, got: %q", out)
	}
	if !strings.Contains(out, now.Format(time.Kitchen)) {
		t.Errorf("expected kitchen time in output, got: %q", out)
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with level, got: %q", buf.String())
	}
}

func TestHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).WithGroup("sync").With("app", "codex")

	logger.Info("rendered", slog.Group("file", "name", "config.toml"))

	out := buf.String()
	if !strings.Contains(out, "sync.app=codex") {
		t.Errorf("expected grouped WithAttrs key, got: %q", out)
	}
	if !strings.Contains(out, "sync.file.name=config.toml") {
		t.Errorf("expected nested group key, got: %q", out)
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("provider env", "OPENAI_API_KEY", "secret12345", "note", "sk-live-value9876")

	out := buf.String()
	if strings.Contains(out, "secret12345") || strings.Contains(out, "sk-live-value9876") {
		t.Fatalf("secrets leaked: %q", out)
	}
	if !strings.Contains(out, "OPENAI_API_KEY=****2345") {
		t.Errorf("expected masked key-based secret, got: %q", out)
	}
	if !strings.Contains(out, "note=****9876") {
		t.Errorf("expected masked prefix-based secret, got: %q", out)
	}
}

func TestSupportsColor_RespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if supportsColor(&bytes.Buffer{}, true) {
		t.Error("NO_COLOR should disable color even on a TTY")
	}
}

func TestSupportsColor_DumbTerm(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if supportsColor(&bytes.Buffer{}, true) {
		t.Error("TERM=dumb should disable color")
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is never a TTY")
	}
}
