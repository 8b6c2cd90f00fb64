// Package buildinfo carries the version stamped into release binaries.
//
// The release build overrides these with ldflags:
//
//	go build -ldflags "\
//	    -X github.com/dhananjayyy09/Deadlock-Prevention/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/dhananjayyy09/Deadlock-Prevention/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/dhananjayyy09/Deadlock-Prevention/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A plain go build reports "dev"/"none"/"unknown".
package buildinfo

import "fmt"

var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// Template returns cobra's --version output template, so "deadlock
// --version" prints the full stamp rather than just the version string.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
