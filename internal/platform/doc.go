// Package platform defines the format adapter contract shared by the Claude,
// Codex and Gemini adapters, and the live-file plumbing they have in common.
//
// A live file is a native configuration file read directly by one of the
// managed applications. Adapters decode live files into [document.Document]
// values, render provider and MCP changes against them, and write them back
// with [Base.WriteLive], which replaces each file atomically and restores
// earlier files when a later one fails.
//
// # Detection
//
// Use [Detect] to check whether an application has been initialized:
//
//	result := platform.Detect(adapter)
//	if result.Status == platform.StatusInstalled {
//	    fmt.Printf("%s is installed at %s\n", result.App, result.ConfigDir)
//	}
//
// # Installation Status
//
//   - [StatusInstalled]: the application's config directory exists
//   - [StatusNotInstalled]: the config directory does not exist
//
// # Thread Safety
//
// Adapters hold no mutable state and are safe for concurrent use. Callers
// serialize writes to the same live files through the store guard.
package platform
