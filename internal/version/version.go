// Package version carries the build version, set with
// -ldflags "-X clonesim/internal/version.Version=...".
package version

var Version = "dev"
