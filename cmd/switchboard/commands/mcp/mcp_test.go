package mcp

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/cli/clitest"
	"github.com/thoreinstein/switchboard/internal/config"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

func setup(t *testing.T, app ...string) *config.Config {
	t.Helper()
	cfg := clitest.Config(t, paths.AppClaude, paths.AppCodex)
	flags.SetConfig(cfg)
	flags.SetAppFlag(app)
	resetFlags()
	t.Cleanup(func() {
		flags.SetConfig(nil)
		flags.SetAppFlag(nil)
		resetFlags()
	})
	return cfg
}

func resetFlags() {
	addURL, addTransport, addCwd, addName, addDescription = "", "", "", "", ""
	addEnv, addHeaders = nil, nil
	addForce = false
	listJSON = false
	showJSON, showShowSecret = false, false
}

func claudeJSON(cfg *config.Config) string {
	return filepath.Join(clitest.AppDir(cfg, paths.AppClaude), ".claude.json")
}

func codexTOML(cfg *config.Config) string {
	return filepath.Join(clitest.AppDir(cfg, paths.AppCodex), "config.toml")
}

func addGitHub(t *testing.T) {
	t.Helper()
	addEnv = []string{"GITHUB_TOKEN=ghp_secret1234"}
	require.NoError(t, runAddWithWriter(t.Context(), &bytes.Buffer{},
		[]string{"github", "npx", "-y", "@modelcontextprotocol/server-github"}))
	addEnv = nil
}

func TestAddRendersIntoApps(t *testing.T) {
	cfg := setup(t, "claude", "codex")
	addGitHub(t)

	assert.Contains(t, clitest.ReadFile(t, claudeJSON(cfg)), `"github"`)
	assert.Contains(t, clitest.ReadFile(t, codexTOML(cfg)), "[mcp_servers.github]")
}

func TestAdd_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		url   string
		trans string
	}{
		{name: "no command or url", args: []string{"x"}},
		{name: "both command and url", args: []string{"x", "npx"}, url: "https://mcp.example.com"},
		{name: "unknown transport", args: []string{"x", "npx"}, trans: "carrier-pigeon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			addURL, addTransport = tt.url, tt.trans
			err := runAddWithWriter(t.Context(), &bytes.Buffer{}, tt.args)
			require.Error(t, err)
			var exitErr *errors.ExitError
			assert.True(t, errors.As(err, &exitErr))
		})
	}
}

func TestAdd_ExistingNeedsForce(t *testing.T) {
	setup(t)
	addGitHub(t)

	err := runAddWithWriter(t.Context(), &bytes.Buffer{}, []string{"github", "npx", "other"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	addForce = true
	require.NoError(t, runAddWithWriter(t.Context(), &bytes.Buffer{}, []string{"github", "npx", "other"}))
}

func TestAdd_Remote(t *testing.T) {
	cfg := setup(t)
	addURL = "https://mcp.example.com/mcp"
	addHeaders = []string{"Authorization=Bearer abc"}
	require.NoError(t, runAddWithWriter(t.Context(), &bytes.Buffer{}, []string{"docs"}))

	assert.Contains(t, clitest.ReadFile(t, claudeJSON(cfg)), "https://mcp.example.com/mcp")

	var buf bytes.Buffer
	require.NoError(t, runShowWithWriter(t.Context(), &buf, "docs"))
	assert.Contains(t, buf.String(), "http")
	assert.Contains(t, buf.String(), "Authorization=****")
	assert.NotContains(t, buf.String(), "Bearer abc")
}

func TestListAndShow(t *testing.T) {
	setup(t, "claude", "codex")
	addGitHub(t)

	var buf bytes.Buffer
	require.NoError(t, runListWithWriter(t.Context(), &buf))
	assert.Contains(t, buf.String(), "npx -y @modelcontextprotocol/server-github")
	assert.Contains(t, buf.String(), "claude,codex")

	listJSON = true
	buf.Reset()
	require.NoError(t, runListWithWriter(t.Context(), &buf))
	assert.NotContains(t, buf.String(), "ghp_secret1234")
	var servers []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &servers))
	require.Len(t, servers, 1)
	assert.Equal(t, "github", servers[0]["id"])

	buf.Reset()
	require.NoError(t, runShowWithWriter(t.Context(), &buf, "github"))
	assert.Contains(t, buf.String(), "GITHUB_TOKEN=****1234")

	showShowSecret = true
	buf.Reset()
	require.NoError(t, runShowWithWriter(t.Context(), &buf, "github"))
	assert.Contains(t, buf.String(), "GITHUB_TOKEN=ghp_secret1234")

	err := runShowWithWriter(t.Context(), &buf, "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestList_FilterByApp(t *testing.T) {
	setup(t)
	addGitHub(t)

	flags.SetAppFlag([]string{"gemini"})
	var buf bytes.Buffer
	require.NoError(t, runListWithWriter(t.Context(), &buf))
	assert.Contains(t, buf.String(), "No MCP servers configured")

	flags.SetAppFlag([]string{"gemini", "claude"})
	buf.Reset()
	require.NoError(t, runListWithWriter(t.Context(), &buf))
	assert.Contains(t, buf.String(), "github")
}

func TestEnableDisableRemove(t *testing.T) {
	cfg := setup(t)
	addGitHub(t)

	flags.SetAppFlag([]string{"codex"})
	var buf bytes.Buffer
	require.NoError(t, runToggleWithWriter(t.Context(), &buf, "github", true))
	assert.Contains(t, buf.String(), "Enabled github for Codex")
	assert.Contains(t, clitest.ReadFile(t, codexTOML(cfg)), "[mcp_servers.github]")

	require.NoError(t, runToggleWithWriter(t.Context(), &buf, "github", false))
	assert.NotContains(t, clitest.ReadFile(t, codexTOML(cfg)), "mcp_servers.github")

	require.NoError(t, runRemoveWithWriter(t.Context(), &buf, "github"))
	assert.NotContains(t, clitest.ReadFile(t, claudeJSON(cfg)), `"github"`)

	err := runRemoveWithWriter(t.Context(), &buf, "github")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestImportAndSync(t *testing.T) {
	cfg := setup(t, "claude")
	live := `{"mcpServers": {"fs": {"command": "npx", "args": ["-y", "fs-server"]}, "bad": {}}}`
	require.NoError(t, os.WriteFile(claudeJSON(cfg), []byte(live), 0o600))

	var buf bytes.Buffer
	require.NoError(t, runImportWithWriter(t.Context(), &buf))
	assert.Contains(t, buf.String(), "1 server(s) imported")
	assert.Contains(t, buf.String(), "skipped")

	require.NoError(t, os.WriteFile(claudeJSON(cfg), []byte(`{}`), 0o600))
	buf.Reset()
	require.NoError(t, runSyncWithWriter(t.Context(), &buf))
	assert.Contains(t, buf.String(), "MCP servers synced")
	assert.Contains(t, clitest.ReadFile(t, claudeJSON(cfg)), "fs-server")
}
