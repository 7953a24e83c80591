package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the vlisp CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Banner returns the one-line version banner the CLI prints.
func Banner() string {
	var b strings.Builder
	b.WriteString("vlisp ")
	b.WriteString(Version)
	if GitCommit != "" || BuildDate != "" {
		details := make([]string, 0, 2)
		if GitCommit != "" {
			details = append(details, GitCommit)
		}
		if BuildDate != "" {
			details = append(details, BuildDate)
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(details, ", "))
		b.WriteString(")")
	}
	return b.String()
}
