// Package version holds the build version of the server.
package version

import "fmt"

var (
	// Version is the current release.
	Version = "0.3.1"
	// DevVersion is the developing version.
	DevVersion = "0.4.0"
)

func GetCurrentVersion(mode string) string {
	if mode == "dev" || mode == "demo" {
		return DevVersion
	}
	return Version
}

func GetSemverVersion(mode string) string {
	return fmt.Sprintf("v%s", GetCurrentVersion(mode))
}
