package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitship/gitship/internal/git"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the repository state gitship would act on",
	Long: `Show a read-only snapshot of the working directory's relationship to
version control: whether it is initialized, the current branch, the
configured remote, and pending changes. Nothing is mutated.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	dir, err := resolveWorkDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	theme := newTheme()

	state, err := git.NewInspector(cfg.Git.Remote).Inspect(dir)
	if err != nil {
		return err
	}

	fmt.Println(theme.Header.Render("Repository: " + dir))

	if !state.Initialized {
		fmt.Println(theme.Warn.Render("  not initialized (gitship will run `git init`)"))
		return nil
	}

	fmt.Println("  branch:    " + valueOr(state.Branch, "(detached)"))
	fmt.Println("  remote:    " + valueOr(state.RemoteURL, "not configured ("+cfg.Git.Remote+")"))
	fmt.Printf("  changes:   %d staged, %d modified, %d untracked\n",
		len(state.Staged), len(state.Modified), len(state.Untracked))

	if state.HasUncommittedChanges() {
		fmt.Println(theme.Warn.Render("  gitship would create a commit"))
	} else {
		fmt.Println(theme.Ok.Render("  working tree clean"))
	}

	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
