package codex

import (
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/platform"
)

// RenderMCP updates the [mcp_servers] table of config.toml.
func (a *Adapter) RenderMCP(servers map[string]*mcp.Server, removed []string, existing platform.Files) (platform.Files, error) {
	f := a.Existing(existing, platform.RoleConfig)
	if err := platform.RenderServers(paths.AppCodex, f.Doc, mcpKey, servers, removed); err != nil {
		return nil, err
	}
	return platform.Files{platform.RoleConfig: f}, nil
}

// ParseMCP imports the [mcp_servers] table of config.toml.
func (a *Adapter) ParseMCP(live platform.Files) ([]*mcp.Server, []platform.ImportError) {
	doc := live.Doc(platform.RoleConfig)
	if doc == nil {
		return nil, nil
	}
	return platform.ParseServers(paths.AppCodex, doc, mcpKey)
}
