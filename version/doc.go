// Package version provides build version information for the voxd binary.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/voxd/version.Version=1.0.0"
//
// When ldflags are absent the package falls back to module build info, so
// plain `go install` builds still report a commit. The daemon exposes this
// through the /info endpoint and logs it in the startup summary.
package version
