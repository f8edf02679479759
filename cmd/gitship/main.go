// Package main provides the CLI entry point for gitship.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"github.com/gitship/gitship/internal/color"
	"github.com/gitship/gitship/internal/config"
	execpkg "github.com/gitship/gitship/internal/exec"
	"github.com/gitship/gitship/internal/git"
	"github.com/gitship/gitship/internal/publisher"
	"github.com/gitship/gitship/pkg/logger"
)

var (
	debugMode   bool
	traceMode   bool
	noColorFlag bool
	workDir     string
	remoteFlag  string
	branchFlag  string
	messageFlag string
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

var rootCmd = &cobra.Command{
	Use:   "gitship [account]",
	Short: "Publish the current directory to a GitHub remote",
	Long: `gitship drives the working directory to a committed and pushed state,
performing only the steps still needed: init, stage, commit, and push.

When no remote is configured, gitship prints the exact commands to finish
the publish by hand. The optional account argument fills the account slot
of the suggested remote URL.`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runPublish,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&traceMode, "trace", false, "Enable trace logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "Run against this directory instead of the current one")

	rootCmd.Flags().StringVar(&remoteFlag, "remote", "", "Remote name to query and push to (default: origin)")
	rootCmd.Flags().StringVar(&branchFlag, "branch", "", "Canonical branch name to push (default: main)")
	rootCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Commit message when a commit is needed")
}

func runPublish(cmd *cobra.Command, args []string) error {
	if versionRequested {
		fmt.Print(versionString())
		return nil
	}

	dir, err := resolveWorkDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	theme := newTheme()

	opts := publisher.Options{
		Remote:        cfg.Git.Remote,
		Branch:        cfg.Git.Branch,
		CommitMessage: cfg.Git.CommitMessage,
		URLTemplate:   cfg.Git.URLTemplate,
		RepoName:      filepath.Base(dir),
	}
	if len(args) > 0 {
		opts.AccountHint = args[0]
	}

	runner := git.NewCLIRunner(execpkg.NewCommandRunner(), dir, cfg.Git.Timeout)
	pub := publisher.New(runner, execpkg.NewToolChecker(), log, opts)

	report := pub.Publish(cmd.Context())

	printReport(report, theme)

	if !report.Succeeded() {
		return errors.Newf("publish failed: %s", report.Outcome)
	}

	return nil
}

func printReport(report *publisher.Report, theme color.Theme) {
	for _, step := range report.Steps {
		fmt.Println(theme.Muted.Render("  " + step))
	}

	elapsed := durafmt.Parse(report.Elapsed).LimitFirstN(2).String()

	switch report.Outcome {
	case publisher.OutcomePushed:
		fmt.Println(theme.Ok.Render("✓ Pushed to " + report.RemoteURL))
		fmt.Println(theme.Muted.Render("  done in " + elapsed))

	case publisher.OutcomeManualActionRequired:
		fmt.Println(theme.Header.Render("No remote configured. Create a GitHub repository, then run:"))

		for i, command := range report.SuggestedCommands {
			fmt.Printf("  %d. %s\n", i+1, theme.Command.Render(command))
		}

	case publisher.OutcomeToolNotFound:
		fmt.Println(theme.Err.Render("✗ " + report.Message))

	case publisher.OutcomeActionFailed:
		fmt.Println(theme.Err.Render(fmt.Sprintf("✗ %s failed: %s", report.FailedStage, report.Message)))
	}
}

// resolveWorkDir returns the absolute directory the run operates on,
// honoring the -C flag over the process working directory.
func resolveWorkDir() (string, error) {
	dir := workDir
	if dir == "" {
		var err error

		dir, err = os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to get working directory")
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, "cannot access %s", abs)
	}

	if !info.IsDir() {
		return "", errors.Newf("%s is not a directory", abs)
	}

	return abs, nil
}

// loadConfig loads the layered configuration, feeding in only the flags the
// user actually set.
func loadConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	loader, err := config.NewLoader(dir)
	if err != nil {
		return nil, err
	}

	flags := map[string]any{}

	if cmd.Flags().Changed("remote") {
		flags["git.remote"] = remoteFlag
	}

	if cmd.Flags().Changed("branch") {
		flags["git.branch"] = branchFlag
	}

	if cmd.Flags().Changed("message") {
		flags["git.commit_message"] = messageFlag
	}

	if debugMode {
		flags["log.debug"] = true
	}

	if traceMode {
		flags["log.trace"] = true
	}

	return loader.Load(flags)
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(os.Stderr, cfg.Log.Debug, cfg.Log.Trace)
}

func newTheme() color.Theme {
	enabled := color.Profile(noColorFlag) && color.IsTerminal(os.Stdout)
	return color.NewTheme(enabled)
}
