// Package build provides domain entities for build information.
package build

import (
	"fmt"
	"runtime"
)

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// String renders the one-line version banner.
func (i Info) String() string {
	version := i.Version
	if version == "" {
		version = "dev"
	}
	goVersion := i.GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}
	s := fmt.Sprintf("retouch %s (%s)", version, goVersion)
	if i.Commit != "" {
		s += " commit " + i.Commit
	}
	if i.BuildDate != "" {
		s += " built " + i.BuildDate
	}
	return s
}

// RepoURL returns the GitHub repository URL.
func RepoURL() string {
	return "https://github.com/bnema/retouch"
}
