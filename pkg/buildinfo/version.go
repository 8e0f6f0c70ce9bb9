// Package buildinfo carries version information injected at link time:
//
//	go build -ldflags "-X github.com/goliatone/go-trendminer/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/goliatone/go-trendminer/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/goliatone/go-trendminer/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// The commit is what the page footer links to.
package buildinfo

import (
	"fmt"
	"strings"
)

// unsetCommit is the Commit value of builds without ldflags.
const unsetCommit = "none"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = unsetCommit

	// Date is the build timestamp.
	Date = "unknown"
)

// CommitTag returns the commit to show in page footers, or "" when the binary
// was built without one.
func CommitTag() string {
	commit := strings.TrimSpace(Commit)
	if commit == unsetCommit {
		return ""
	}
	return commit
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
