package doctor

import (
	"context"
	"time"
)

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check.
	Category() string

	// Run executes the check. An empty result means the check passed.
	Run(ctx context.Context) []Finding
}

// CheckFunc adapts a function into a Check.
type CheckFunc struct {
	CheckName     string
	CheckCategory string
	Fn            func(ctx context.Context) []Finding
}

func (c CheckFunc) Name() string     { return c.CheckName }
func (c CheckFunc) Category() string { return c.CheckCategory }

func (c CheckFunc) Run(ctx context.Context) []Finding {
	return c.Fn(ctx)
}

// Runner executes diagnostic checks and aggregates their findings.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner creates a new diagnostic runner.
func NewRunner() *Runner {
	return &Runner{now: time.Now}
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes all registered checks in registration order. A check with no
// findings contributes a single pass finding so the report lists every check.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		Timestamp: r.now().UTC(),
		Findings:  make([]Finding, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		if ctx.Err() != nil {
			break
		}
		findings := check.Run(ctx)
		if len(findings) == 0 {
			findings = []Finding{{Severity: SeverityPass, Message: "ok"}}
		}
		for _, f := range findings {
			if f.Check == "" {
				f.Check = check.Name()
			}
			if f.Category == "" {
				f.Category = check.Category()
			}
			report.add(f)
		}
	}

	return report
}

// Report aggregates all findings with timing and summary.
type Report struct {
	Timestamp time.Time `json:"timestamp"`
	Findings  []Finding `json:"findings"`
	Summary   Summary   `json:"summary"`
}

func (r *Report) add(f Finding) {
	r.Findings = append(r.Findings, f)
	switch f.Severity {
	case SeverityPass:
		r.Summary.Passed++
	case SeverityInfo:
		r.Summary.Info++
	case SeverityWarning:
		r.Summary.Warnings++
	case SeverityError:
		r.Summary.Errors++
	}
}

// Problems returns the findings at warning severity or above.
func (r *Report) Problems() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity >= SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// HasErrors returns true if any finding has SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any finding has SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
