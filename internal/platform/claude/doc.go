// Package claude is the format adapter for Claude Code.
//
// Claude Code reads provider settings from ~/.claude/settings.json and MCP
// server registrations from the mcpServers object of ~/.claude.json. When
// the configuration directory is overridden, .claude.json is looked up
// inside that directory instead of the home directory.
//
// Provider settings are the settings.json object itself. Rendering merges
// the provider's object and then the common snippet over the existing file,
// so keys the provider does not name, such as permissions or hooks the user
// added by hand, survive a switch.
package claude
