// Package cmd holds build metadata for the switchboard binary.
package cmd

// Set with -ldflags "-X github.com/thoreinstein/switchboard/cmd.Version=...".
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
