// Package mcp models MCP (Model Context Protocol) tool-server definitions
// and translates them to and from each application's native record shape.
//
// A [Server] has a global id, a per-application enablement set ([Apps]) and
// a [Transport] that is exactly one of stdio, http or sse. Native records
// frequently omit the transport type; [Classify] infers it with a fixed
// priority: explicit type, then command, then httpUrl, then url.
//
// Native spellings differ per application:
//
//	claude  {"type": "stdio", "command": ...}   {"type": "http", "url": ...}
//	codex   command = "..."  startup_timeout_sec = 20   url = "..."  http_headers = {...}
//	gemini  {"command": ...}  {"httpUrl": ...} (http)  {"url": ...} (sse)  "timeout": ms
//
// Timeouts are stored in milliseconds and converted explicitly; whole
// seconds round-trip exactly.
package mcp
