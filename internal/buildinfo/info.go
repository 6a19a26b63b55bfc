// Package buildinfo carries release metadata for `transakt --version`.
//
//	go build -ldflags "-X github.com/transakt-dev/transakt/internal/buildinfo.Version=v1.2.0"
package buildinfo

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
