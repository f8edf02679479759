// Package config provides configuration loading for gitship.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Config is the full gitship configuration.
type Config struct {
	Git GitConfig `koanf:"git"`
	Log LogConfig `koanf:"log"`
}

// GitConfig configures the publish workflow.
type GitConfig struct {
	// Remote is the remote name queried and pushed to.
	Remote string `koanf:"remote"`

	// Branch is the canonical branch name pushed to the remote.
	Branch string `koanf:"branch"`

	// CommitMessage is the fixed message for commits created by gitship.
	CommitMessage string `koanf:"commit_message"`

	// Timeout bounds local git invocations. The push itself is exempt: it is
	// network-bound and inherits git's own timeout behavior.
	Timeout time.Duration `koanf:"timeout"`

	// URLTemplate builds the suggested remote URL; {account} and {repo} are
	// replaced.
	URLTemplate string `koanf:"url_template"`
}

// LogConfig configures logging verbosity.
type LogConfig struct {
	Debug bool `koanf:"debug"`
	Trace bool `koanf:"trace"`
}

// Defaults returns the built-in configuration values as a koanf confmap.
func Defaults() map[string]any {
	return map[string]any{
		"git.remote":         "origin",
		"git.branch":         "main",
		"git.commit_message": "Initial commit",
		"git.timeout":        "10s",
		"git.url_template":   "https://github.com/{account}/{repo}.git",
		"log.debug":          false,
		"log.trace":          false,
	}
}

// Validate rejects configurations the workflow cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Git.Remote) == "" {
		return errors.New("git.remote must not be empty")
	}

	if strings.ContainsAny(c.Git.Remote, " \t") {
		return errors.Newf("git.remote %q must not contain whitespace", c.Git.Remote)
	}

	if strings.TrimSpace(c.Git.Branch) == "" {
		return errors.New("git.branch must not be empty")
	}

	if strings.ContainsAny(c.Git.Branch, " \t") {
		return errors.Newf("git.branch %q must not contain whitespace", c.Git.Branch)
	}

	if c.Git.CommitMessage == "" {
		return errors.New("git.commit_message must not be empty")
	}

	if c.Git.Timeout < 0 {
		return errors.New("git.timeout must not be negative")
	}

	return nil
}
