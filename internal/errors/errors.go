package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, unknown id, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, unparseable files, etc.).
	ExitSystem = 2
)

// Error taxonomy. Every error returned by the synchronization core is marked
// with exactly one of these so callers can branch with [Is].
var (
	// ErrNotFound indicates a referenced provider, server, prompt, skill or
	// backup id is absent.
	ErrNotFound = crdb.New("not found")

	// ErrValidationFailed indicates malformed input: missing required fields,
	// duplicate ids, or settings an application would reject.
	ErrValidationFailed = crdb.New("validation failed")

	// ErrLiveFileUnavailable indicates the target application has not been
	// initialized on this machine. It is a warning condition, not a failure.
	ErrLiveFileUnavailable = crdb.New("live file unavailable")

	// ErrIOFailure indicates a write, rename or permission failure.
	ErrIOFailure = crdb.New("i/o failure")

	// ErrFormat indicates a file exists but cannot be parsed.
	ErrFormat = crdb.New("format error")

	// ErrMissingName indicates a required name field is missing.
	ErrMissingName = crdb.Mark(crdb.New("name is required"), ErrValidationFailed)

	// ErrInvalidConfig indicates tool configuration validation failed.
	ErrInvalidConfig = crdb.Mark(crdb.New("invalid configuration"), ErrValidationFailed)
)

// Thin re-exports so callers need a single errors import.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Join   = crdb.Join
	Unwrap = crdb.UnwrapOnce

	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	GetAllHints = crdb.GetAllHints
)

// NotFoundf returns an error marked [ErrNotFound].
func NotFoundf(format string, args ...any) error {
	return crdb.Mark(crdb.Newf(format+": not found", args...), ErrNotFound)
}

// Invalidf returns an error marked [ErrValidationFailed].
func Invalidf(format string, args ...any) error {
	return crdb.Mark(crdb.Newf(format, args...), ErrValidationFailed)
}

// Unavailablef returns an error marked [ErrLiveFileUnavailable].
func Unavailablef(format string, args ...any) error {
	return crdb.Mark(crdb.Newf(format, args...), ErrLiveFileUnavailable)
}

// IO wraps err as an [ErrIOFailure]. The original error stays reachable for
// checks like errors.Is(err, fs.ErrPermission). A nil err yields nil.
func IO(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crdb.Mark(crdb.Wrap(err, msg), ErrIOFailure)
}

// Format wraps err as an [ErrFormat] for the file at path. A nil err yields nil.
func Format(err error, path string) error {
	if err == nil {
		return nil
	}
	return crdb.Mark(crdb.Wrapf(err, "parsing %s", path), ErrFormat)
}

// Kind names one class of the error taxonomy.
type Kind string

const (
	KindNone                Kind = ""
	KindNotFound            Kind = "not_found"
	KindValidationFailed    Kind = "validation_failed"
	KindLiveFileUnavailable Kind = "live_file_unavailable"
	KindIOFailure           Kind = "io_failure"
	KindFormat              Kind = "format_error"
	KindUnknown             Kind = "unknown"
)

// KindOf classifies err. Unmarked errors report KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case crdb.Is(err, ErrNotFound):
		return KindNotFound
	case crdb.Is(err, ErrValidationFailed):
		return KindValidationFailed
	case crdb.Is(err, ErrLiveFileUnavailable):
		return KindLiveFileUnavailable
	case crdb.Is(err, ErrFormat):
		return KindFormat
	case crdb.Is(err, ErrIOFailure):
		return KindIOFailure
	default:
		return KindUnknown
	}
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError creates an ExitError for tool configuration problems.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: switchboard validate",
	}
}

// ForExit converts err into an ExitError, choosing the exit code and a
// suggestion from its taxonomy kind. Existing ExitErrors pass through.
func ForExit(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr
	}
	if hints := crdb.GetAllHints(err); len(hints) > 0 {
		if KindOf(err) == KindNotFound || KindOf(err) == KindValidationFailed {
			return NewUserError(err, hints[0])
		}
		return NewSystemError(err, hints[0])
	}
	switch KindOf(err) {
	case KindNotFound:
		return NewUserError(err, "Run: switchboard provider list")
	case KindValidationFailed:
		return NewUserError(err, "")
	case KindFormat:
		return NewSystemError(err, "Fix the file by hand or run: switchboard backup restore <id>")
	default:
		return NewSystemError(err, "")
	}
}

// Error returns the error message from the underlying error.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}
