package magetasks

import (
	"fmt"
	"io"
	"os"
)

// Output is where task progress is written.
var Output io.Writer = os.Stdout

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintf(Output, "\n=== %s ===\n\n", title)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintf(Output, "✅ %s\n", msg)
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Fprintf(Output, "⚠️  %s\n", msg)
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintf(Output, "❌ %s\n", msg)
}
