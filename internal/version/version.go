package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the cdecl CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with major, minor and patch in their own colours;
// a pre-release suffix stays plain.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(strings.TrimSpace(Version), "-")
	parts := strings.Split(core, ".")
	for i, p := range parts {
		if i < len(partColors) {
			parts[i] = partColors[i].Sprint(p)
		}
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}
