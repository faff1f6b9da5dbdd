// Package editor provides utilities for launching the user's preferred text editor.
package editor

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/thoreinstein/switchboard/internal/errors"
)

// ErrUnchanged is returned by Edit when the editor exits without changing
// the content.
var ErrUnchanged = errors.New("content unchanged")

// Open launches the user's preferred editor for the given path.
// Uses $EDITOR environment variable, falling back to $VISUAL, then nano, then vi.
func Open(path string) error {
	cmd := exec.Command(detectEditor(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}

	return nil
}

// Edit writes content to a temporary file named after pattern (as in
// os.CreateTemp), opens it in the editor and returns what was saved.
func Edit(content []byte, pattern string) ([]byte, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, errors.Wrap(err, "creating temp file")
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(content); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "writing temp file")
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrap(err, "closing temp file")
	}

	if err := Open(path); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading edited file")
	}
	if bytes.Equal(edited, content) {
		return nil, ErrUnchanged
	}
	return edited, nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
