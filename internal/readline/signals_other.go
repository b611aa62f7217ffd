//go:build !unix

package readline

import "os"

// interruptSignals returns the signals treated as a user interrupt.
func interruptSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
