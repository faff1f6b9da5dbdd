// Package store holds the canonical multi-application configuration: the
// providers, MCP servers, prompts and skills switchboard manages, together
// with the guard that serializes access to it.
//
// The store is the source of truth. Live application files are projections
// of it and are rewritten from it on switch and sync.
package store
