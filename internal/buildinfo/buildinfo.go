// Package buildinfo carries version identifiers injected at build time via
// -ldflags.
package buildinfo

var (
	// Version is the release tag, or "dev" for untagged builds.
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)

// Short returns the most specific identifier available, for logs and UIs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}
