package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/tinta/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/tinta/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/tinta/internal/version.Date={{.Date}}
)

// String is the one-line form shown by `tinta version`
func String() string {
	return fmt.Sprintf("tinta %s (commit %s, built %s)", Version, Commit, Date)
}
