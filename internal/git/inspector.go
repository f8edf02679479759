package git

import (
	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
)

// State is a snapshot of a working directory's relationship to version
// control. It is derived fresh on every call and never cached.
type State struct {
	Initialized bool
	Branch      string
	RemoteURL   string
	Staged      []string
	Modified    []string
	Untracked   []string
}

// HasUncommittedChanges reports whether anything differs from the last commit.
func (s *State) HasUncommittedChanges() bool {
	return len(s.Staged) > 0 || len(s.Modified) > 0 || len(s.Untracked) > 0
}

// Inspector reads repository state through the go-git SDK. It is strictly
// read-only; the publish path mutates repositories through the git binary
// only.
type Inspector struct {
	remote string
}

// NewInspector creates an Inspector that resolves the named remote.
func NewInspector(remote string) *Inspector {
	return &Inspector{remote: remote}
}

// Inspect snapshots the repository state at the given path. A directory
// without version-control metadata yields a zero-value State with
// Initialized false, not an error.
func (i *Inspector) Inspect(path string) (*State, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return &State{}, nil
		}

		return nil, errors.Wrap(err, "failed to open repository")
	}

	state := &State{Initialized: true}

	state.Branch, err = currentBranch(repo)
	if err != nil && !errors.Is(err, ErrDetachedHead) {
		return nil, err
	}

	state.RemoteURL, err = remoteURL(repo, i.remote)
	if err != nil {
		return nil, err
	}

	if err := fillWorktreeStatus(repo, state); err != nil {
		return nil, err
	}

	return state, nil
}

// currentBranch resolves the active branch, following the symbolic HEAD so
// an unborn branch (no commits yet) still reports its name.
func currentBranch(repo *gogit.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return unbornBranch(repo)
		}

		return "", errors.Wrap(err, "failed to get HEAD")
	}

	if !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}

	return head.Name().Short(), nil
}

func unbornBranch(repo *gogit.Repository) (string, error) {
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve HEAD reference")
	}

	target := ref.Target()
	if !target.IsBranch() {
		return "", ErrDetachedHead
	}

	return target.Short(), nil
}

func remoteURL(repo *gogit.Repository, name string) (string, error) {
	rem, err := repo.Remote(name)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return "", nil
		}

		return "", errors.Wrap(err, "failed to get remote")
	}

	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}

	return urls[0], nil
}

func fillWorktreeStatus(repo *gogit.Repository, state *State) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "failed to get worktree")
	}

	status, err := worktree.Status()
	if err != nil {
		return errors.Wrap(err, "failed to get status")
	}

	for file, fileStatus := range status {
		switch {
		case fileStatus.Staging == gogit.Untracked:
			state.Untracked = append(state.Untracked, file)
		case fileStatus.Staging != gogit.Unmodified:
			state.Staged = append(state.Staged, file)
		}

		if fileStatus.Worktree != gogit.Unmodified && fileStatus.Worktree != gogit.Untracked {
			state.Modified = append(state.Modified, file)
		}
	}

	return nil
}
