// Package lineedit provides a terminal line editor with history for use as
// a readline backend.
package lineedit

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dkoosis/pyinit/internal/readline"
)

// Editor reads lines from a terminal with cursor movement and history.
// It satisfies readline.Backend.
type Editor struct {
	history     *History
	tty         *os.File
	promptStyle lipgloss.Style
	logger      *log.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithTTY reads keys from f rather than from the Input's source, so that
// the terminal can be switched to raw mode.
func WithTTY(f *os.File) Option {
	return func(e *Editor) { e.tty = f }
}

// WithPromptStyle styles the prompt.
func WithPromptStyle(s lipgloss.Style) Option {
	return func(e *Editor) { e.promptStyle = s }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Editor with its own history.
func New(opts ...Option) *Editor {
	e := &Editor{
		history:     NewHistory(0),
		promptStyle: lipgloss.NewStyle(),
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// History returns the editor's history.
func (e *Editor) History() *History { return e.history }

// ReadLine runs the editor until Enter, Ctrl+C or Ctrl+D on an empty line.
// Enter returns the line with a trailing newline and records it in the
// history; Ctrl+C returns readline.ErrInterrupted; Ctrl+D returns "".
func (e *Editor) ReadLine(ctx context.Context, in *readline.Input, out io.Writer, prompt string) (string, error) {
	var src io.Reader = in.Source()
	if e.tty != nil {
		src = e.tty
	}

	p := tea.NewProgram(newModel(prompt, e.history, e.promptStyle),
		tea.WithContext(ctx),
		tea.WithInput(src),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %w", readline.ErrInterrupted, ctx.Err())
		}
		return "", &readline.ReadError{Err: err}
	}

	m, ok := final.(model)
	if !ok {
		return "", &readline.ReadError{Err: fmt.Errorf("unexpected editor model %T", final)}
	}
	switch m.outcome {
	case outcomeSubmit:
		line := m.input.Value()
		_, _ = fmt.Fprintf(out, "%s%s\n", prompt, line)
		e.history.Add(line)
		e.logger.Debug("line submitted", "length", len(line), "history", e.history.Len())
		return line + "\n", nil
	case outcomeEOF:
		_, _ = fmt.Fprintln(out)
		return "", nil
	default:
		_, _ = fmt.Fprintf(out, "%s%s^C\n", prompt, m.input.Value())
		return "", readline.ErrInterrupted
	}
}
