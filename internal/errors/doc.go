// Package errors provides error handling conventions for switchboard.
//
// Errors are built with github.com/cockroachdb/errors and marked with one of
// the taxonomy sentinels so callers can branch on the failure class:
//
//   - [ErrNotFound]: a referenced id is absent
//   - [ErrValidationFailed]: malformed input or duplicate ids
//   - [ErrLiveFileUnavailable]: the application is not initialized (warning)
//   - [ErrIOFailure]: write, rename or permission failure
//   - [ErrFormat]: a file is present but unparseable
//
// [ExitError] carries an exit code and suggestion for the CLI layer, and
// [ForExit] derives one from any taxonomy error:
//
//	if err := mgr.SwitchProvider(ctx, app, id); err != nil {
//	    return errors.ForExit(err)
//	}
package errors
