package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitship/gitship/internal/exec"
)

// CLIRunner implements Runner by shelling out to the git binary. All
// invocations run against a fixed working directory via `git -C`, so the
// runner never depends on the ambient process directory.
type CLIRunner struct {
	runner  exec.CommandRunner
	dir     string
	timeout time.Duration
}

// NewCLIRunner creates a CLIRunner for the given working directory. A zero
// timeout disables the per-call deadline.
func NewCLIRunner(runner exec.CommandRunner, dir string, timeout time.Duration) *CLIRunner {
	return &CLIRunner{
		runner:  runner,
		dir:     dir,
		timeout: timeout,
	}
}

// IsInitialized reports whether the directory holds version-control metadata.
func (r *CLIRunner) IsInitialized() bool {
	info, err := os.Stat(filepath.Join(r.dir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a new repository.
func (r *CLIRunner) Init(ctx context.Context) error {
	_, err := r.git(ctx, "init")
	return err
}

// StageAll stages every change in the working tree.
func (r *CLIRunner) StageAll(ctx context.Context) error {
	_, err := r.git(ctx, "add", "-A")
	return err
}

// HasChanges reports whether anything differs from the last commit. Uses the
// porcelain status format, which is stable across git versions.
func (r *CLIRunner) HasChanges(ctx context.Context) (bool, error) {
	out, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}

	return strings.TrimSpace(out) != "", nil
}

// Commit creates a commit with the given message.
func (r *CLIRunner) Commit(ctx context.Context, message string) error {
	_, err := r.git(ctx, "commit", "-m", message)
	return err
}

// CurrentBranch returns the active branch name. symbolic-ref resolves the
// branch even on an unborn HEAD, where rev-parse would print "HEAD".
func (r *CLIRunner) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// RemoteURL returns the URL configured for the named remote. `git config
// --get` exits 1 with no output when the key is unset, which distinguishes
// "no remote" from actual failures.
func (r *CLIRunner) RemoteURL(ctx context.Context, remote string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args := []string{"-C", r.dir, "config", "--get", "remote." + remote + ".url"}
	result := r.runner.Run(ctx, "git", args...)

	if result.ExitCode == 1 && strings.TrimSpace(result.Stdout) == "" {
		return "", nil
	}

	if result.Failed() {
		return "", &CommandError{
			Args:     args[1:],
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	return strings.TrimSpace(result.Stdout), nil
}

// SetRemote configures the named remote with the given URL.
func (r *CLIRunner) SetRemote(ctx context.Context, remote, url string) error {
	_, err := r.git(ctx, "remote", "add", remote, url)
	return err
}

// RenameBranch renames the current branch, replacing any existing branch of
// that name.
func (r *CLIRunner) RenameBranch(ctx context.Context, branch string) error {
	_, err := r.git(ctx, "branch", "-M", branch)
	return err
}

// PushUpstream pushes the branch with upstream tracking set. No deadline is
// applied here: the push is network-bound and inherits git's own timeout
// behavior.
func (r *CLIRunner) PushUpstream(ctx context.Context, remote, branch string) error {
	args := []string{"-C", r.dir, "push", "-u", remote, branch}

	result := r.runner.Run(ctx, "git", args...)
	if result.Failed() {
		return &CommandError{
			Args:     args[1:],
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	return nil
}

// git runs a git subcommand against the working directory with the default
// deadline, returning stdout.
func (r *CLIRunner) git(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	full := append([]string{"-C", r.dir}, args...)

	result := r.runner.Run(ctx, "git", full...)
	if result.Failed() {
		return "", &CommandError{
			Args:     args,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	return result.Stdout, nil
}

func (r *CLIRunner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, r.timeout)
}

// Ensure CLIRunner implements Runner.
var _ Runner = (*CLIRunner)(nil)
