package git

import "context"

// FakeRunner implements Runner for testing without executing git commands.
// This is a struct-based fake (not a mock) that mimics the lifecycle of a
// real repository: Init flips Initialized, Commit consumes pending changes,
// RenameBranch updates Branch, and every call is recorded in Calls for
// ordering assertions. For expectation-based testing, use the generated
// MockRunner from runner_mock.go.
type FakeRunner struct {
	Initialized bool
	Changes     bool
	Branch      string
	Remotes     map[string]string

	// CommitMessages accumulates messages passed to Commit.
	CommitMessages []string

	// Pushes accumulates "remote/branch" pairs passed to PushUpstream.
	Pushes []string

	// Calls records every operation in invocation order.
	Calls []string

	InitErr   error
	StageErr  error
	StatusErr error
	CommitErr error
	BranchErr error
	RemoteErr error
	RenameErr error
	PushErr   error
}

// NewFakeRunner creates a FakeRunner resembling a fresh, uninitialized
// directory.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Branch:  "master",
		Remotes: map[string]string{},
	}
}

// IsInitialized reports whether the fake repository has been initialized.
func (f *FakeRunner) IsInitialized() bool {
	f.Calls = append(f.Calls, "IsInitialized")
	return f.Initialized
}

// Init initializes the fake repository.
func (f *FakeRunner) Init(context.Context) error {
	f.Calls = append(f.Calls, "Init")

	if f.InitErr != nil {
		return f.InitErr
	}

	f.Initialized = true

	return nil
}

// StageAll stages every change.
func (f *FakeRunner) StageAll(context.Context) error {
	f.Calls = append(f.Calls, "StageAll")
	return f.StageErr
}

// HasChanges reports whether uncommitted changes remain.
func (f *FakeRunner) HasChanges(context.Context) (bool, error) {
	f.Calls = append(f.Calls, "HasChanges")

	if f.StatusErr != nil {
		return false, f.StatusErr
	}

	return f.Changes, nil
}

// Commit records the commit and consumes pending changes.
func (f *FakeRunner) Commit(_ context.Context, message string) error {
	f.Calls = append(f.Calls, "Commit")

	if f.CommitErr != nil {
		return f.CommitErr
	}

	f.CommitMessages = append(f.CommitMessages, message)
	f.Changes = false

	return nil
}

// CurrentBranch returns the fake branch name.
func (f *FakeRunner) CurrentBranch(context.Context) (string, error) {
	f.Calls = append(f.Calls, "CurrentBranch")

	if f.BranchErr != nil {
		return "", f.BranchErr
	}

	return f.Branch, nil
}

// RemoteURL returns the configured URL or empty string when absent.
func (f *FakeRunner) RemoteURL(_ context.Context, remote string) (string, error) {
	f.Calls = append(f.Calls, "RemoteURL")

	if f.RemoteErr != nil {
		return "", f.RemoteErr
	}

	return f.Remotes[remote], nil
}

// SetRemote configures a remote.
func (f *FakeRunner) SetRemote(_ context.Context, remote, url string) error {
	f.Calls = append(f.Calls, "SetRemote")

	if f.RemoteErr != nil {
		return f.RemoteErr
	}

	f.Remotes[remote] = url

	return nil
}

// RenameBranch renames the current branch.
func (f *FakeRunner) RenameBranch(_ context.Context, branch string) error {
	f.Calls = append(f.Calls, "RenameBranch")

	if f.RenameErr != nil {
		return f.RenameErr
	}

	f.Branch = branch

	return nil
}

// PushUpstream records the push.
func (f *FakeRunner) PushUpstream(_ context.Context, remote, branch string) error {
	f.Calls = append(f.Calls, "PushUpstream")

	if f.PushErr != nil {
		return f.PushErr
	}

	f.Pushes = append(f.Pushes, remote+"/"+branch)

	return nil
}

// Called reports whether the named operation was invoked.
func (f *FakeRunner) Called(op string) bool {
	for _, call := range f.Calls {
		if call == op {
			return true
		}
	}

	return false
}

// Ensure FakeRunner implements Runner.
var _ Runner = (*FakeRunner)(nil)
