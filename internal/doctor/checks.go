package doctor

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/gitship/gitship/internal/exec"
)

// MinGitVersion is the oldest git that supports `branch -M` on a fresh
// repository the way the publish workflow relies on.
const MinGitVersion = "2.28.0"

// GitBinaryCheck verifies the git binary is on PATH.
type GitBinaryCheck struct {
	tools exec.ToolChecker
}

// NewGitBinaryCheck creates a GitBinaryCheck.
func NewGitBinaryCheck(tools exec.ToolChecker) *GitBinaryCheck {
	return &GitBinaryCheck{tools: tools}
}

// Name returns the name of the check.
func (*GitBinaryCheck) Name() string {
	return "git available"
}

// Check performs the availability check.
func (c *GitBinaryCheck) Check(context.Context) CheckResult {
	if !c.tools.IsAvailable("git") {
		return FailError(c.Name(), "git not found in PATH").WithDetails(
			"Install from https://git-scm.com/downloads",
			"e.g. `apt install git` or `brew install git`",
		)
	}

	return Pass(c.Name(), "Found git")
}

// GitVersionCheck verifies the installed git is recent enough for the
// publish workflow.
type GitVersionCheck struct {
	tools  exec.ToolChecker
	runner exec.CommandRunner
}

// NewGitVersionCheck creates a GitVersionCheck.
func NewGitVersionCheck(tools exec.ToolChecker, runner exec.CommandRunner) *GitVersionCheck {
	return &GitVersionCheck{tools: tools, runner: runner}
}

// Name returns the name of the check.
func (*GitVersionCheck) Name() string {
	return "git version"
}

// Check performs the version check.
func (c *GitVersionCheck) Check(ctx context.Context) CheckResult {
	if !c.tools.IsAvailable("git") {
		return Skip(c.Name(), "git not installed")
	}

	result := c.runner.Run(ctx, "git", "version")
	if result.Failed() {
		return FailWarning(c.Name(), "could not determine git version")
	}

	raw := parseVersionOutput(result.Stdout)

	version, err := semver.NewVersion(raw)
	if err != nil {
		return FailWarning(c.Name(), "unrecognized version output: "+strings.TrimSpace(result.Stdout))
	}

	minimum := semver.MustParse(MinGitVersion)
	if version.LessThan(minimum) {
		return FailWarning(c.Name(), "git "+raw+" is older than "+MinGitVersion).WithDetails(
			"Branch renaming with `git branch -M` may not work on fresh repositories",
		)
	}

	return Pass(c.Name(), "git "+raw)
}

// parseVersionOutput extracts "2.43.0" from "git version 2.43.0" or
// "git version 2.39.3 (Apple Git-146)", trimming vendor suffixes like
// "2.43.0.windows.1" down to the semver triple.
func parseVersionOutput(out string) string {
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return ""
	}

	parts := strings.Split(fields[2], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}

	return strings.Join(parts, ".")
}

// GitIdentityCheck verifies user.name and user.email are configured, since
// commits fail without them.
type GitIdentityCheck struct {
	tools  exec.ToolChecker
	runner exec.CommandRunner
}

// NewGitIdentityCheck creates a GitIdentityCheck.
func NewGitIdentityCheck(tools exec.ToolChecker, runner exec.CommandRunner) *GitIdentityCheck {
	return &GitIdentityCheck{tools: tools, runner: runner}
}

// Name returns the name of the check.
func (*GitIdentityCheck) Name() string {
	return "git identity"
}

// Check performs the identity check.
func (c *GitIdentityCheck) Check(ctx context.Context) CheckResult {
	if !c.tools.IsAvailable("git") {
		return Skip(c.Name(), "git not installed")
	}

	var missing []string

	for _, key := range []string{"user.name", "user.email"} {
		result := c.runner.Run(ctx, "git", "config", "--get", key)
		if result.Failed() || strings.TrimSpace(result.Stdout) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return FailError(c.Name(), strings.Join(missing, " and ")+" not configured").WithDetails(
			`Set with: git config --global user.name "Your Name"`,
			`and: git config --global user.email "you@example.com"`,
		)
	}

	return Pass(c.Name(), "user.name and user.email configured")
}

// DefaultCheckers returns the standard set of environment checks.
func DefaultCheckers(tools exec.ToolChecker, runner exec.CommandRunner) []HealthChecker {
	return []HealthChecker{
		NewGitBinaryCheck(tools),
		NewGitVersionCheck(tools, runner),
		NewGitIdentityCheck(tools, runner),
	}
}
