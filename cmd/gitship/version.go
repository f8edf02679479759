package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const shortCommitLength = 12

// Set by ldflags at build time; resolveBuildInfo fills the gaps from the
// embedded build info when available.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// versionRequested is set by --version/-V on the root command; runPublish
// short-circuits to the version output when it is true.
var versionRequested bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Print(versionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Flags().BoolVarP(&versionRequested, "version", "V", false, "Print version information")
}

type buildDetails struct {
	Version string
	Commit  string
	Date    string
}

// resolveBuildInfo prefers the ldflags values and falls back to the VCS
// stamp Go embeds in the binary. A dirty working tree is marked with a
// -dirty suffix on the commit.
func resolveBuildInfo() buildDetails {
	details := buildDetails{Version: version, Commit: commit, Date: date}

	info, ok := debug.ReadBuildInfo()
	if !ok || details.Commit != "unknown" {
		return details
	}

	var revision string

	var dirty bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		details.Commit = revision[:min(shortCommitLength, len(revision))]
		if dirty {
			details.Commit += "-dirty"
		}
	}

	return details
}

func versionString() string {
	details := resolveBuildInfo()

	var b strings.Builder

	fmt.Fprintf(&b, "gitship version %s\n", details.Version)
	fmt.Fprintf(&b, "commit %s, built %s\n", details.Commit, details.Date)
	fmt.Fprintf(&b, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	return b.String()
}
