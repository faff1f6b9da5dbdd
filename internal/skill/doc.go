// Package skill manages skill directories: installing them into the managed
// skills store, exposing them to each app's skills directory, and finding
// skill directories an app has that switchboard does not know about.
//
// A skill is a directory containing a SKILL.md file whose YAML frontmatter
// carries at least a name and a description:
//
//	---
//	name: pdf-tools
//	description: Extract text and tables from PDF files
//	---
//
// Installed skills live under the managed store directory and reach an app
// either as a symlink or as a copy, depending on the configured sync method.
package skill
