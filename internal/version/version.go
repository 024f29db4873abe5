package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Build information for the regionorm CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version without the leading v.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Semver returns Version in the vMAJOR.MINOR.PATCH form used by x/mod/semver.
func Semver() string {
	if strings.HasPrefix(Version, "v") {
		return Version
	}
	return "v" + Version
}

// Colored renders Version with each numeric component in its own colour.
// A version that is not MAJOR.MINOR.PATCH[-suffix] is returned as is.
func Colored() string {
	core, suffix, _ := strings.Cut(strings.TrimPrefix(Version, "v"), "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Banner is the one-line summary printed by `regionorm version`.
func Banner() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "regionorm %s", Colored())
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&sb, " (%s)", commit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", BuildDate)
	}
	return sb.String()
}
