// Package main is the entry point for the switchboard CLI.
package main

import (
	"os"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands"
)

func main() {
	os.Exit(commands.Execute())
}
