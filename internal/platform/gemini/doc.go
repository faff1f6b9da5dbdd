// Package gemini is the format adapter for the Gemini CLI.
//
// Gemini CLI reads credentials from ~/.gemini/.env and everything else,
// including MCP servers under mcpServers, from ~/.gemini/settings.json.
//
// A Gemini provider's settings are {"env": {...}, "config": {...}}. env is
// merged into .env and config into settings.json. The adapter also records
// the auth mode in security.auth.selectedType: "oauth-personal" for the
// Google official provider, whose API keys are removed from .env, and
// "gemini-api-key" for everything else.
package gemini
