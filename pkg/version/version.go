// Package version provides build-time version information.
package version

import "fmt"

// AppName is the product name shown in window titles and the tray.
const AppName = "BowlRMS"

var (
	// Version is the semantic version, set at build time via ldflags.
	Version = "dev"

	// Commit is the git commit hash, set at build time via ldflags.
	Commit = "unknown"

	// BuildDate is the build timestamp, set at build time via ldflags.
	BuildDate = "unknown"
)

// Full returns a formatted string with all version information.
func Full() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// UserAgent is the User-Agent the shell sends when probing the server.
func UserAgent() string {
	return fmt.Sprintf("%s-Desktop/%s", AppName, Version)
}

// Info represents version information for frontend consumption.
type Info struct {
	App       string `json:"app"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		App:       AppName,
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	}
}
