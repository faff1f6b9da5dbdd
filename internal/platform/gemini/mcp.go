package gemini

import (
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

// RenderMCP updates the mcpServers object of settings.json.
func (a *Adapter) RenderMCP(servers map[string]*mcp.Server, removed []string, existing platform.Files) (platform.Files, error) {
	f := a.Existing(existing, platform.RoleSettings)
	if err := platform.RenderServers(paths.AppGemini, f.Doc, mcpKey, servers, removed); err != nil {
		return nil, err
	}
	return platform.Files{platform.RoleSettings: f}, nil
}

// ParseMCP imports the mcpServers object of settings.json.
func (a *Adapter) ParseMCP(live platform.Files) ([]*mcp.Server, []platform.ImportError) {
	doc := live.Doc(platform.RoleSettings)
	if doc == nil {
		return nil, nil
	}
	return platform.ParseServers(paths.AppGemini, doc, mcpKey)
}
