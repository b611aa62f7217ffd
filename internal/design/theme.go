// Package design holds the terminal styling and help text of the pyinit
// command.
package design

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme defines the styles used for prompts, banners, help and errors.
type Theme struct {
	Name    string
	Prompt  lipgloss.Style
	Banner  lipgloss.Style
	Heading lipgloss.Style
	Flag    lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultTheme returns the color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true), // blue
		Banner:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),           // gray
		Heading: lipgloss.NewStyle().Bold(true),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonoTheme returns a theme without colors or attributes.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:    "mono",
		Prompt:  plain,
		Banner:  plain,
		Heading: plain,
		Flag:    plain,
		Error:   plain,
		Muted:   plain,
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonoTheme()
	}
	return DefaultTheme()
}

// SelectTheme picks the mono theme when NO_COLOR is set or w is not a
// terminal, and the default theme otherwise.
func SelectTheme(lookup func(string) (string, bool), w io.Writer) Theme {
	if lookup != nil {
		if v, ok := lookup("NO_COLOR"); ok && v != "" {
			return MonoTheme()
		}
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return MonoTheme()
	}
	return DefaultTheme()
}
