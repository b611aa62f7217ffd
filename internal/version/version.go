// Package version reports build metadata for pyinit -V.
package version

import (
	"fmt"
	"runtime"
)

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// String returns the -V output for the given verbosity. One -V prints the
// version; two or more add the commit, build date and toolchain.
func String(prog string, verbosity int) string {
	if verbosity < 2 {
		return fmt.Sprintf("%s %s", prog, Version)
	}
	return fmt.Sprintf("%s %s (%s, %s) [%s %s/%s]",
		prog, Version, CommitHash, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
