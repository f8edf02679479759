package exec

//go:generate mockgen -source=tool.go -destination=tool_mock.go -package=exec

import "os/exec"

// installHints maps known external binaries to remediation guidance carried
// on ToolNotFoundError.
var installHints = map[string]string{
	"git": "install it from https://git-scm.com/downloads " +
		"(e.g. `apt install git` or `brew install git`) and re-run",
}

// ToolChecker locates the external binaries gitship shells out to.
type ToolChecker interface {
	// IsAvailable reports whether the tool resolves on PATH.
	IsAvailable(tool string) bool

	// RequireTool returns a ToolNotFoundError when the tool does not
	// resolve on PATH.
	RequireTool(tool string) error
}

// PathToolChecker resolves tools through PATH lookup.
type PathToolChecker struct{}

// NewToolChecker creates a PATH-backed ToolChecker.
func NewToolChecker() *PathToolChecker {
	return &PathToolChecker{}
}

// IsAvailable reports whether the tool resolves on PATH.
func (*PathToolChecker) IsAvailable(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

// RequireTool returns a ToolNotFoundError, with remediation guidance for
// known tools, when the tool does not resolve on PATH.
func (c *PathToolChecker) RequireTool(tool string) error {
	if c.IsAvailable(tool) {
		return nil
	}

	return &ToolNotFoundError{Tool: tool, Hint: installHints[tool]}
}

// ToolNotFoundError reports a missing external binary. Hint, when set,
// carries installation guidance suitable for user-facing output.
type ToolNotFoundError struct {
	Tool string
	Hint string
}

// Error returns the error message, including the hint when one is known.
func (e *ToolNotFoundError) Error() string {
	msg := e.Tool + " not found in PATH"
	if e.Hint != "" {
		msg += "; " + e.Hint
	}

	return msg
}

// Ensure PathToolChecker implements ToolChecker.
var _ ToolChecker = (*PathToolChecker)(nil)
