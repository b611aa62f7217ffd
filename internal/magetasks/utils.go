package magetasks

import (
	"errors"
	"os/exec"
	"strings"
)

// IsCommandNotFound reports whether err means a tool is not installed.
func IsCommandNotFound(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, exec.ErrNotFound):
		return true
	default:
		return strings.Contains(err.Error(), "executable file not found")
	}
}
