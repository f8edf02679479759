package publisher

import (
	"strings"
	"time"
)

// Outcome tags the terminal state of a publish run.
type Outcome string

const (
	// OutcomePushed means the repository was pushed to its configured remote.
	OutcomePushed Outcome = "pushed"

	// OutcomeManualActionRequired means no remote is configured and the
	// caller must run the suggested commands. This is a successful run, not
	// an error.
	OutcomeManualActionRequired Outcome = "manual-action-required"

	// OutcomeToolNotFound means the version-control tool is missing.
	OutcomeToolNotFound Outcome = "tool-not-found"

	// OutcomeActionFailed means a git invocation exited non-zero.
	OutcomeActionFailed Outcome = "action-failed"
)

// Stage identifies which mutation failed for OutcomeActionFailed.
type Stage string

const (
	// StageInit is repository initialization.
	StageInit Stage = "init"

	// StageStage is staging the working tree.
	StageStage Stage = "stage"

	// StageCommit is commit creation.
	StageCommit Stage = "commit"

	// StageSetRemote is remote query or configuration.
	StageSetRemote Stage = "set-remote"

	// StagePush is branch rename plus push with upstream tracking.
	StagePush Stage = "push"
)

// Report is the single result of a publish run. Exactly one outcome is set;
// the other fields are populated according to it.
type Report struct {
	Outcome Outcome

	// RemoteURL is set for OutcomePushed.
	RemoteURL string

	// SuggestedCommands is set for OutcomeManualActionRequired: ordered,
	// copy-pasteable commands completing the publish by hand.
	SuggestedCommands []string

	// FailedStage and Message are set for OutcomeActionFailed. Message is
	// also set for OutcomeToolNotFound, carrying the installation hint.
	FailedStage Stage
	Message     string

	// Steps records the human-readable line for every step taken or skipped,
	// in order.
	Steps []string

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Succeeded reports whether the run counts as successful for exit-code
// purposes. Both Pushed and ManualActionRequired share exit code zero; they
// are distinguished by report content, not exit code.
func (r *Report) Succeeded() bool {
	return r.Outcome == OutcomePushed || r.Outcome == OutcomeManualActionRequired
}

// AccountPlaceholder fills the remote URL template when no account hint was
// supplied.
const AccountPlaceholder = "YOUR-USERNAME"

// SuggestedCommands builds the ordered manual commands shown when no remote
// is configured: remote add, branch rename, push.
func SuggestedCommands(account, repoName, remote, branch, urlTemplate string) []string {
	if account == "" {
		account = AccountPlaceholder
	}

	url := strings.NewReplacer(
		"{account}", account,
		"{repo}", repoName,
	).Replace(urlTemplate)

	return []string{
		"git remote add " + remote + " " + url,
		"git branch -M " + branch,
		"git push -u " + remote + " " + branch,
	}
}
