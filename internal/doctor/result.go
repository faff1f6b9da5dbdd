// Package doctor provides diagnostic findings, the check runner behind
// `switchboard validate`, and secret masking helpers.
package doctor

import (
	"github.com/cockroachdb/errors"
)

// Severity indicates the importance level of a finding.
type Severity int

const (
	// SeverityPass indicates the check passed without issues.
	SeverityPass Severity = iota

	// SeverityInfo indicates informational output, not a problem.
	SeverityInfo

	// SeverityWarning indicates a potential issue that doesn't prevent operation.
	SeverityWarning

	// SeverityError indicates a problem that prevents proper operation.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pass":
		*s = SeverityPass
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return errors.Newf("unknown severity %q", string(b))
	}
	return nil
}

// Finding is a single diagnostic result. A check may report many.
type Finding struct {
	// Check is the name of the check that produced this finding.
	Check string `json:"check"`

	// Category groups related checks (e.g., "store", "provider", "mcp", "live").
	Category string `json:"category"`

	// Severity of the finding.
	Severity Severity `json:"severity"`

	// App is the application the finding concerns, if any.
	App string `json:"app,omitempty"`

	// Subject identifies the entity (provider id, server id, file path).
	Subject string `json:"subject,omitempty"`

	// Message describes the finding.
	Message string `json:"message"`

	// FixHint provides guidance on how to resolve the issue.
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary aggregates counts of findings by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}
