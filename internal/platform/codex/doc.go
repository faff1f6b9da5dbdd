// Package codex is the format adapter for the Codex CLI.
//
// Codex keeps credentials in ~/.codex/auth.json and everything else,
// including MCP servers under [mcp_servers], in ~/.codex/config.toml.
//
// A Codex provider's settings are {"auth": {...}, "config": "<toml>"}. The
// config text is usually a flat snippet (base_url, model, wire_api, env_key,
// requires_openai_auth) that the adapter expands into a
// [model_providers.<name>] table on render and collapses back on capture.
// auth.json is only written when auth is non-empty; an empty auth means the
// credential comes from the environment or Codex's own store.
package codex
