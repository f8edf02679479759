// Package doctor provides environment diagnosis for gitship.
package doctor

import "context"

// Severity represents the severity level of a check result.
type Severity string

const (
	// SeverityError indicates a blocking error that must be fixed.
	SeverityError Severity = "error"
	// SeverityWarning indicates a non-blocking warning that should be fixed.
	SeverityWarning Severity = "warning"
	// SeverityInfo indicates informational output.
	SeverityInfo Severity = "info"
)

// Status represents the status of a health check.
type Status string

const (
	// StatusPass indicates the check passed.
	StatusPass Status = "pass"
	// StatusFail indicates the check failed.
	StatusFail Status = "fail"
	// StatusSkipped indicates the check was skipped.
	StatusSkipped Status = "skipped"
)

// CheckResult represents the result of a health check.
type CheckResult struct {
	// Name is the human-readable name of the check.
	Name string

	// Severity indicates the severity level.
	Severity Severity

	// Status indicates whether the check passed, failed, or was skipped.
	Status Status

	// Message is the primary message describing the result.
	Message string

	// Details contains additional context about the result.
	Details []string
}

// HealthChecker performs a health check and returns a result.
type HealthChecker interface {
	// Name returns the human-readable name of the check.
	Name() string

	// Check performs the health check and returns a result.
	Check(ctx context.Context) CheckResult
}

// WithDetails adds details to a CheckResult.
func (r CheckResult) WithDetails(details ...string) CheckResult {
	r.Details = append(r.Details, details...)
	return r
}

// IsError returns true if the result is an error.
func (r CheckResult) IsError() bool {
	return r.Status == StatusFail && r.Severity == SeverityError
}

// IsWarning returns true if the result is a warning.
func (r CheckResult) IsWarning() bool {
	return r.Status == StatusFail && r.Severity == SeverityWarning
}

// Pass creates a passing check result.
func Pass(name, message string) CheckResult {
	return CheckResult{Name: name, Severity: SeverityInfo, Status: StatusPass, Message: message}
}

// FailError creates a failing check result with error severity.
func FailError(name, message string) CheckResult {
	return CheckResult{Name: name, Severity: SeverityError, Status: StatusFail, Message: message}
}

// FailWarning creates a failing check result with warning severity.
func FailWarning(name, message string) CheckResult {
	return CheckResult{Name: name, Severity: SeverityWarning, Status: StatusFail, Message: message}
}

// Skip creates a skipped check result.
func Skip(name, message string) CheckResult {
	return CheckResult{Name: name, Severity: SeverityInfo, Status: StatusSkipped, Message: message}
}

// Run executes all checkers in order and collects their results.
func Run(ctx context.Context, checkers []HealthChecker) []CheckResult {
	results := make([]CheckResult, 0, len(checkers))

	for _, checker := range checkers {
		results = append(results, checker.Check(ctx))
	}

	return results
}

// HasErrors reports whether any result is a blocking error.
func HasErrors(results []CheckResult) bool {
	for _, result := range results {
		if result.IsError() {
			return true
		}
	}

	return false
}
