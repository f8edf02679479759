// Package git provides the capability interface gitship uses to drive the
// git binary, plus a read-only go-git inspector for status reporting.
package git

//go:generate mockgen -source=runner.go -destination=runner_mock.go -package=git

import "context"

// Runner is the narrow capability surface the publisher needs from a
// version-control tool. Every mutation is delegated to the external tool;
// nothing here reimplements version-control internals.
type Runner interface {
	// IsInitialized reports whether the working directory has version-control
	// metadata (a .git directory).
	IsInitialized() bool

	// Init initializes a new repository in the working directory.
	Init(ctx context.Context) error

	// StageAll stages every change in the working tree.
	StageAll(ctx context.Context) error

	// HasChanges reports whether anything differs from the last commit.
	HasChanges(ctx context.Context) (bool, error)

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// CurrentBranch returns the active branch name.
	CurrentBranch(ctx context.Context) (string, error)

	// RemoteURL returns the URL configured for the named remote, or empty
	// string (and nil error) when the remote is not configured.
	RemoteURL(ctx context.Context, remote string) (string, error)

	// SetRemote configures the named remote with the given URL.
	SetRemote(ctx context.Context, remote, url string) error

	// RenameBranch renames the current branch, replacing any existing branch
	// of that name.
	RenameBranch(ctx context.Context, branch string) error

	// PushUpstream pushes the branch to the remote with upstream tracking set.
	PushUpstream(ctx context.Context, remote, branch string) error
}
