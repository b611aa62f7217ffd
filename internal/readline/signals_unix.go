//go:build unix

package readline

import (
	"os"
	"syscall"
)

// interruptSignals returns the signals treated as a user interrupt on Unix.
// SIGTERM is left to its default action so the process stays killable.
func interruptSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT}
}
