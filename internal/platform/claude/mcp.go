package claude

import (
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

// RenderMCP updates the mcpServers object of .claude.json.
func (a *Adapter) RenderMCP(servers map[string]*mcp.Server, removed []string, existing platform.Files) (platform.Files, error) {
	f := a.Existing(existing, platform.RoleMCP)
	if err := platform.RenderServers(paths.AppClaude, f.Doc, mcpKey, servers, removed); err != nil {
		return nil, err
	}
	return platform.Files{platform.RoleMCP: f}, nil
}

// ParseMCP imports the mcpServers object of .claude.json.
func (a *Adapter) ParseMCP(live platform.Files) ([]*mcp.Server, []platform.ImportError) {
	doc := live.Doc(platform.RoleMCP)
	if doc == nil {
		return nil, nil
	}
	return platform.ParseServers(paths.AppClaude, doc, mcpKey)
}
