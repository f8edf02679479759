package git

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrDetachedHead is returned when HEAD does not point at a branch.
var ErrDetachedHead = errors.New("HEAD is detached")

// CommandError is returned when a git subprocess exits non-zero. Stderr holds
// the tool's own message so callers can surface it verbatim.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

// Error returns the error message.
func (e *CommandError) Error() string {
	return "git " + strings.Join(e.Args, " ") + ": " + e.Message()
}

// Message returns the tool's stderr output, trimmed, falling back to the
// exit code when git printed nothing.
func (e *CommandError) Message() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return "git exited with code " + strconv.Itoa(e.ExitCode)
	}

	return msg
}
