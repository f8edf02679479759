// Package exec provides abstractions for executing external commands.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

//go:generate mockgen -source=command.go -destination=command_mock.go -package=exec

// CommandResult contains the result of a command execution.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success reports whether the command ran and exited zero.
func (r CommandResult) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Failed reports whether the command failed to run or exited non-zero.
func (r CommandResult) Failed() bool {
	return !r.Success()
}

// CommandRunner executes external commands with output capture.
type CommandRunner interface {
	// Run executes a command in the process working directory.
	Run(ctx context.Context, name string, args ...string) CommandResult

	// RunInDir executes a command with the given working directory.
	RunInDir(ctx context.Context, dir, name string, args ...string) CommandResult

	// RunWithTimeout executes a command with a specific timeout.
	RunWithTimeout(timeout time.Duration, name string, args ...string) CommandResult
}

// commandRunner implements CommandRunner.
type commandRunner struct{}

// NewCommandRunner creates a new CommandRunner.
//
//nolint:ireturn,nolintlint // Factory function intentionally returns interface
func NewCommandRunner() CommandRunner {
	return &commandRunner{}
}

// Run executes a command in the process working directory.
func (r *commandRunner) Run(ctx context.Context, name string, args ...string) CommandResult {
	return r.RunInDir(ctx, "", name, args...)
}

// RunInDir executes a command with the given working directory.
func (r *commandRunner) RunInDir(ctx context.Context, dir, name string, args ...string) CommandResult {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError

	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
	case err != nil:
		result.ExitCode = -1
		result.Err = fmt.Errorf("executing %s: %w", name, err)
	}

	return result
}

// RunWithTimeout executes a command with a specific timeout.
func (r *commandRunner) RunWithTimeout(timeout time.Duration, name string, args ...string) CommandResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return r.Run(ctx, name, args...)
}
