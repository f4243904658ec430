// Package main is the entry point of the retouch CLI.
package main

import (
	"runtime"

	"github.com/bnema/retouch/internal/cli/cmd"
	"github.com/bnema/retouch/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

func main() {
	enableCrashForensics()

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
