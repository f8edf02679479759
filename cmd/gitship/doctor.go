package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gitship/gitship/internal/doctor"
	execpkg "github.com/gitship/gitship/internal/exec"
)

var verboseFlag bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the environment gitship depends on",
	Long: `Diagnose the environment gitship depends on.

Checks:
- git binary availability
- git version compatibility
- commit identity (user.name and user.email)

Examples:
  gitship doctor            # Run all checks
  gitship doctor --verbose  # Include remediation details`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed output")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	theme := newTheme()

	checkers := doctor.DefaultCheckers(execpkg.NewToolChecker(), execpkg.NewCommandRunner())
	results := doctor.Run(cmd.Context(), checkers)

	fmt.Println(doctor.RenderTable(results, verboseFlag, theme))
	fmt.Println(doctor.Summary(results))

	if doctor.HasErrors(results) {
		return errors.New("environment checks failed")
	}

	return nil
}
