// Package publisher drives a working directory to a committed and pushed
// state, performing only the steps still needed on each run.
package publisher

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	execpkg "github.com/gitship/gitship/internal/exec"
	"github.com/gitship/gitship/internal/git"
	"github.com/gitship/gitship/pkg/logger"
)

// Options configures a publish run. Every field has a working default via
// the config package; the CLI fills RepoName from the working directory
// basename and AccountHint from the optional positional argument.
type Options struct {
	// Remote is the remote name used for query, rename guidance, and push.
	Remote string

	// Branch is the canonical branch name the current branch is renamed to
	// before pushing.
	Branch string

	// CommitMessage is the fixed message used when a commit is needed.
	CommitMessage string

	// URLTemplate builds the suggested remote URL; {account} and {repo} are
	// replaced.
	URLTemplate string

	// RepoName fills {repo} in URLTemplate.
	RepoName string

	// AccountHint fills {account} in URLTemplate; a placeholder is used when
	// empty.
	AccountHint string
}

// Publisher performs the idempotent publish workflow. Each run derives
// repository state fresh through the Runner and walks the steps in order:
// tool check, init, stage, commit, then push or manual guidance.
type Publisher struct {
	git   git.Runner
	tools execpkg.ToolChecker
	log   logger.Logger
	opts  Options
}

// New creates a Publisher. A nil logger is replaced with a no-op logger.
func New(gitRunner git.Runner, tools execpkg.ToolChecker, log logger.Logger, opts Options) *Publisher {
	if log == nil {
		log = logger.NewNop()
	}

	return &Publisher{
		git:   gitRunner,
		tools: tools,
		log:   log.With("component", "publisher"),
		opts:  opts,
	}
}

// Publish runs the workflow once. All failures are converted into the
// returned Report; nothing escapes as an error.
func (p *Publisher) Publish(ctx context.Context) *Report {
	start := time.Now()

	report := p.publish(ctx)
	report.Elapsed = time.Since(start)

	p.log.Info("publish finished",
		"outcome", string(report.Outcome),
		"elapsed", report.Elapsed.String(),
	)

	return report
}

func (p *Publisher) publish(ctx context.Context) *Report {
	report := &Report{}

	// Tool check first: nothing else runs without the external tool.
	if err := p.tools.RequireTool("git"); err != nil {
		p.log.Error("git not found on PATH")

		report.Outcome = OutcomeToolNotFound
		report.Message = err.Error()

		return report
	}

	if failed := p.ensureInitialized(ctx, report); failed {
		return report
	}

	if failed := p.stageAndCommit(ctx, report); failed {
		return report
	}

	return p.pushOrGuide(ctx, report)
}

// ensureInitialized runs git init when no metadata directory exists. Returns
// true when the report is terminal.
func (p *Publisher) ensureInitialized(ctx context.Context, report *Report) bool {
	if p.git.IsInitialized() {
		p.step(report, "init: already initialized, skipping")
		return false
	}

	if err := p.git.Init(ctx); err != nil {
		p.fail(report, StageInit, err)
		return true
	}

	p.step(report, "init: initialized empty repository")

	return false
}

// stageAndCommit stages the whole tree unconditionally (a no-op stage is a
// no-op in git itself), then commits only when changes remain. Returns true
// when the report is terminal.
func (p *Publisher) stageAndCommit(ctx context.Context, report *Report) bool {
	if err := p.git.StageAll(ctx); err != nil {
		p.fail(report, StageStage, err)
		return true
	}

	p.step(report, "stage: staged all files")

	changes, err := p.git.HasChanges(ctx)
	if err != nil {
		p.fail(report, StageCommit, err)
		return true
	}

	if !changes {
		p.step(report, "commit: nothing to commit, skipping")
		return false
	}

	if err := p.git.Commit(ctx, p.opts.CommitMessage); err != nil {
		p.fail(report, StageCommit, err)
		return true
	}

	p.step(report, "commit: created commit "+quoted(p.opts.CommitMessage))

	return false
}

// pushOrGuide pushes when a remote is configured, otherwise degrades to the
// ordered manual commands without touching the remote.
func (p *Publisher) pushOrGuide(ctx context.Context, report *Report) *Report {
	url, err := p.git.RemoteURL(ctx, p.opts.Remote)
	if err != nil {
		p.fail(report, StageSetRemote, err)
		return report
	}

	if url == "" {
		p.step(report, "remote: no remote configured, manual action required")

		report.Outcome = OutcomeManualActionRequired
		report.SuggestedCommands = SuggestedCommands(
			p.opts.AccountHint,
			p.opts.RepoName,
			p.opts.Remote,
			p.opts.Branch,
			p.opts.URLTemplate,
		)

		return report
	}

	if err := p.git.RenameBranch(ctx, p.opts.Branch); err != nil {
		// Rename is part of the push stage; Report.Message carries git's own
		// rename error so the two remain distinguishable.
		p.log.Error("branch rename failed", "branch", p.opts.Branch)
		p.fail(report, StagePush, err)

		return report
	}

	p.step(report, "branch: renamed current branch to "+p.opts.Branch)

	if err := p.git.PushUpstream(ctx, p.opts.Remote, p.opts.Branch); err != nil {
		p.fail(report, StagePush, err)
		return report
	}

	p.step(report, "push: pushed "+p.opts.Branch+" to "+url)

	report.Outcome = OutcomePushed
	report.RemoteURL = url

	return report
}

func (p *Publisher) step(report *Report, line string) {
	report.Steps = append(report.Steps, line)
	p.log.Info(line)
}

// fail marks the report as ActionFailed at the given stage with the tool's
// own message. Failed mutations are never retried; the caller must inspect
// and decide.
func (p *Publisher) fail(report *Report, stage Stage, err error) {
	report.Outcome = OutcomeActionFailed
	report.FailedStage = stage
	report.Message = underlyingMessage(err)

	p.log.Error("stage failed", "stage", string(stage), "error", err.Error())
}

// underlyingMessage extracts git's own stderr when available, falling back
// to the error text.
func underlyingMessage(err error) string {
	var cmdErr *git.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Message()
	}

	return err.Error()
}

func quoted(s string) string {
	return `"` + s + `"`
}
