package fileutil

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/errors"
)

// MaxFileSize is the maximum file size we'll read (16MB).
// ~/.claude.json keeps per-project history next to its MCP servers and can
// grow well past a megabyte.
const MaxFileSize = 16 * 1024 * 1024 // 16MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadLimited reads path from fsys up to MaxFileSize.
func ReadLimited(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, errors.IO(errors.Newf("%s is a directory", path), "reading file")
		}
		if info.Size() > MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.IO(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// ReadOptional reads path, reporting absence as (nil, false, nil). Absence of
// a live file is a valid state; the caller decides what it means.
func ReadOptional(fsys afero.Fs, path string) ([]byte, bool, error) {
	data, err := ReadLimited(fsys, path)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		if errors.Is(err, ErrFileTooLarge) || errors.Is(err, errors.ErrIOFailure) {
			return nil, false, err
		}
		return nil, false, errors.IO(err, "opening "+path)
	}
	return data, true, nil
}
