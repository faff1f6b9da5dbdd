package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fdWriter is implemented by *os.File and wrappers that expose a descriptor.
type fdWriter interface {
	Fd() uintptr
}

// IsTTY reports whether w writes to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether log lines written to w may carry ANSI
// colors. NO_COLOR (https://no-color.org) and TERM=dumb switch them off.
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(_ io.Writer, isTTY bool) bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	switch {
	case noColor:
		return false
	case os.Getenv("TERM") == "dumb":
		return false
	default:
		return isTTY
	}
}
