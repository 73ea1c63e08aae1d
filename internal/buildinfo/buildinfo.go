// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/garyellow/groundwater-bot-go/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/garyellow/groundwater-bot-go/internal/buildinfo.Commit=...
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
// Inject via: -X github.com/garyellow/groundwater-bot-go/internal/buildinfo.BuildDate=...
var BuildDate = ""

// Release returns the identifier reported to Sentry and the build-info metric:
// "groundwater-bot@<version>", falling back to the short commit, then "dev".
func Release() string {
	switch {
	case Version != "":
		return "groundwater-bot@" + Version
	case Commit != "":
		commit := Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		return "groundwater-bot@" + commit
	default:
		return "groundwater-bot@dev"
	}
}
