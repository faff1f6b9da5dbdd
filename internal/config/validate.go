package config

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// Languages lists the accepted values of the language key.
var Languages = []string{"en", "zh", "ja"}

// Validation errors for configuration fields.
var (
	// ErrInvalidApp indicates an unrecognized app name under apps.
	ErrInvalidApp = errors.New("invalid app override key")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidValue indicates an enumerated field holds an unknown value.
	ErrInvalidValue = errors.New("invalid value")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	for name := range cfg.Apps {
		if !paths.App(name).Valid() {
			errs = append(errs, &FieldError{Field: "apps", Value: name, Err: ErrInvalidApp})
		}
	}

	pathFields := []pathField{
		{"store_path", cfg.StorePath},
		{"backup.dir", cfg.Backup.Dir},
		{"skills.dir", cfg.Skills.Dir},
	}
	for _, app := range paths.Apps() {
		pathFields = append(pathFields, pathField{"apps." + app.String() + ".config_dir", cfg.AppConfigDir(app)})
	}
	for _, pf := range pathFields {
		if err := validatePath(pf.value); err != nil {
			errs = append(errs, &FieldError{Field: pf.field, Value: pf.value, Err: err})
		}
	}

	if cfg.Backup.Retention < 1 {
		errs = append(errs, &FieldError{
			Field: "backup.retention",
			Value: strconv.Itoa(cfg.Backup.Retention),
			Err:   errors.New("must be >= 1"),
		})
	}

	if !slices.Contains([]string{LivePolicySkipIfAbsent, LivePolicyAlways}, cfg.Sync.LivePolicy) {
		errs = append(errs, &FieldError{Field: "sync.live_policy", Value: cfg.Sync.LivePolicy, Err: ErrInvalidValue})
	}

	if !slices.Contains([]string{SyncMethodAuto, SyncMethodSymlink, SyncMethodCopy}, cfg.Skills.SyncMethod) {
		errs = append(errs, &FieldError{Field: "skills.sync_method", Value: cfg.Skills.SyncMethod, Err: ErrInvalidValue})
	}

	if cfg.Language != "" && !slices.Contains(Languages, cfg.Language) {
		errs = append(errs, &FieldError{Field: "language", Value: cfg.Language, Err: ErrInvalidValue})
	}

	return errs
}

type pathField struct {
	field string
	value string
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
