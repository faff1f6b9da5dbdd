// Package paths names the managed applications and resolves where
// switchboard and each application keep their files.
//
// Application config directories default to ~/.claude, ~/.codex and
// ~/.gemini; per-file layout inside them belongs to the platform adapters.
// switchboard's own files live under the XDG config home:
//
//	<ConfigHome>/switchboard/
//	├── config.json   canonical store
//	├── config.yaml   tool settings
//	├── backups/      rotated store snapshots
//	└── skills/       installed skills
package paths
