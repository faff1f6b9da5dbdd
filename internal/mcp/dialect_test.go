package mcp

import (
	"testing"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

func TestFromNative_GeminiWithoutTypeTags(t *testing.T) {
	native := document.Document{
		"remote": document.Document{"httpUrl": "http://x:1"},
		"local":  document.Document{"command": "echo"},
	}

	remote, err := FromNative(paths.AppGemini, "remote", native["remote"].(document.Document))
	if err != nil {
		t.Fatalf("remote: %v", err)
	}
	if remote.Transport.Kind != KindHTTP || remote.Transport.URL != "http://x:1" {
		t.Errorf("remote = %+v, want http with url http://x:1", remote.Transport)
	}

	local, err := FromNative(paths.AppGemini, "local", native["local"].(document.Document))
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	if local.Transport.Kind != KindStdio || local.Transport.Command != "echo" {
		t.Errorf("local = %+v, want stdio with command echo", local.Transport)
	}
	if !local.Apps.Gemini || local.Apps.Claude || local.Apps.Codex {
		t.Errorf("imported server should be enabled for gemini only: %+v", local.Apps)
	}
}

func TestRoundTrip_PerApp(t *testing.T) {
	tests := []struct {
		name string
		app  paths.App
		rec  document.Document
	}{
		{"claude stdio tagged", paths.AppClaude, document.Document{
			"type": "stdio", "command": "npx", "args": []any{"-y", "srv"}, "env": document.Document{"TOKEN": "x"},
		}},
		{"claude stdio untagged", paths.AppClaude, document.Document{"command": "uvx", "args": []any{"mcp-server-git"}}},
		{"claude http", paths.AppClaude, document.Document{
			"type": "http", "url": "https://mcp.example.com/mcp", "headers": document.Document{"Authorization": "Bearer x"},
		}},
		{"claude sse", paths.AppClaude, document.Document{"type": "sse", "url": "https://mcp.example.com/sse"}},
		{"codex stdio with timeouts", paths.AppCodex, document.Document{
			"command": "npx", "args": []any{"srv"}, "startup_timeout_sec": int64(20), "tool_timeout_sec": int64(60),
		}},
		{"codex fractional timeout", paths.AppCodex, document.Document{"command": "npx", "startup_timeout_sec": 1.5}},
		{"codex http", paths.AppCodex, document.Document{
			"url": "https://mcp.example.com/mcp", "http_headers": document.Document{"X-Key": "v"},
		}},
		{"codex unknown field kept", paths.AppCodex, document.Document{"command": "x", "enabled_tools": []any{"read"}}},
		{"gemini http", paths.AppGemini, document.Document{"httpUrl": "http://x:1"}},
		{"gemini sse with timeout", paths.AppGemini, document.Document{"url": "http://x:1/sse", "timeout": int64(30000)}},
		{"gemini stdio trust", paths.AppGemini, document.Document{"command": "echo", "cwd": "/tmp", "trust": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromNative(tt.app, "srv", tt.rec)
			if err != nil {
				t.Fatalf("FromNative() error = %v", err)
			}
			got, err := ToNative(tt.app, s)
			if err != nil {
				t.Fatalf("ToNative() error = %v", err)
			}
			if !document.Equal(got, tt.rec) {
				t.Errorf("round trip changed record:\n got  %#v\n want %#v", got, tt.rec)
			}
		})
	}
}

func TestToNative_CrossApp(t *testing.T) {
	s := &Server{
		ID: "docs",
		Transport: Transport{
			Kind:     KindHTTP,
			URL:      "https://docs.example.com/mcp",
			Headers:  map[string]string{"Authorization": "Bearer t"},
			Timeouts: Timeouts{StartupMS: 10000, ToolMS: 45000},
		},
	}

	claude, _ := ToNative(paths.AppClaude, s)
	if claude["type"] != "http" || claude["url"] != "https://docs.example.com/mcp" {
		t.Errorf("claude = %#v", claude)
	}
	if _, ok := claude["timeout"]; ok {
		t.Errorf("claude has no timeout field: %#v", claude)
	}

	codex, _ := ToNative(paths.AppCodex, s)
	if codex["url"] != "https://docs.example.com/mcp" || codex["http_headers"] == nil {
		t.Errorf("codex = %#v", codex)
	}
	if codex["startup_timeout_sec"] != int64(10) || codex["tool_timeout_sec"] != int64(45) {
		t.Errorf("codex timeouts = %v / %v", codex["startup_timeout_sec"], codex["tool_timeout_sec"])
	}
	if _, ok := codex["type"]; ok {
		t.Errorf("codex should not get a type tag by default: %#v", codex)
	}

	gemini, _ := ToNative(paths.AppGemini, s)
	if gemini["httpUrl"] != "https://docs.example.com/mcp" {
		t.Errorf("gemini http should use httpUrl: %#v", gemini)
	}
	if gemini["timeout"] != int64(45000) {
		t.Errorf("gemini timeout = %v, want 45000", gemini["timeout"])
	}

	s.Transport.Kind = KindSSE
	gemini, _ = ToNative(paths.AppGemini, s)
	if gemini["url"] != "https://docs.example.com/mcp" {
		t.Errorf("gemini sse should use url: %#v", gemini)
	}
}

func TestFromNative_Malformed(t *testing.T) {
	tests := []struct {
		name string
		rec  document.Document
	}{
		{"args not a list", document.Document{"command": "x", "args": "a b"}},
		{"env value not string", document.Document{"command": "x", "env": document.Document{"A": int64(1)}}},
		{"no command or url", document.Document{"args": []any{"x"}}},
		{"http without url", document.Document{"type": "http"}},
		{"bad timeout", document.Document{"command": "x", "startup_timeout_sec": "ten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromNative(paths.AppCodex, "bad", tt.rec)
			if !errors.Is(err, errors.ErrFormat) {
				t.Errorf("FromNative() error = %v, want a format error", err)
			}
		})
	}
}
