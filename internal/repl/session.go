// Package repl runs an interactive read-eval loop on top of readline.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dkoosis/pyinit/internal/readline"
)

// Default prompts.
const (
	PS1 = ">>> "
	PS2 = "... "
)

// LineReader is the subset of *readline.Reader a Session needs.
type LineReader interface {
	ReadLine(ctx context.Context, id readline.ThreadID, in *readline.Input, out io.Writer, prompt string) (string, error)
}

// Evaluator consumes source text. It reports incomplete when the text so
// far needs continuation lines; the Session then calls it again with the
// accumulated text.
type Evaluator interface {
	Eval(ctx context.Context, source string) (incomplete bool, err error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, source string) (bool, error)

// Eval calls f.
func (f EvaluatorFunc) Eval(ctx context.Context, source string) (bool, error) {
	return f(ctx, source)
}

// Session is one interactive loop.
type Session struct {
	Reader LineReader
	Eval   Evaluator
	Thread readline.ThreadID

	In     *readline.Input
	Out    io.Writer // passed to the reader; flushed before each prompt
	Errors io.Writer // banner, interrupts and evaluation errors

	PS1, PS2 string
	Banner   string
	Quiet    bool

	// StylePrompt, when set, decorates prompts before they are shown.
	StylePrompt func(string) string

	Logger *log.Logger
}

// Run reads and evaluates input until end of input. An interrupt discards
// the pending input and prints KeyboardInterrupt; evaluation errors are
// printed and the loop continues. Run returns nil at end of input, the
// context error when ctx is done, and any other read error.
func (s *Session) Run(ctx context.Context) error {
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if s.Errors == nil {
		s.Errors = io.Discard
	}
	if s.Thread == 0 {
		s.Thread = readline.NewThreadID()
	}
	if !s.Quiet && s.Banner != "" {
		fmt.Fprintln(s.Errors, s.Banner)
	}

	var pending strings.Builder
	for {
		prompt := s.prompt(pending.Len() > 0)
		line, err := s.Reader.ReadLine(ctx, s.Thread, s.In, s.Out, prompt)
		switch {
		case errors.Is(err, readline.ErrInterrupted):
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(s.Errors, "\nKeyboardInterrupt")
			pending.Reset()
			continue
		case err != nil:
			logger.Debug("session read failed", "err", err)
			return err
		case line == "":
			logger.Debug("session reached end of input", "discarded", pending.Len())
			return nil
		}

		pending.WriteString(line)
		incomplete, err := s.Eval.Eval(ctx, pending.String())
		if err != nil {
			fmt.Fprintf(s.Errors, "Error: %v\n", err)
			pending.Reset()
			continue
		}
		if !incomplete {
			pending.Reset()
		}
	}
}

func (s *Session) prompt(continuation bool) string {
	p := s.PS1
	if p == "" {
		p = PS1
	}
	if continuation {
		p = s.PS2
		if p == "" {
			p = PS2
		}
	}
	if s.StylePrompt != nil {
		p = s.StylePrompt(p)
	}
	return p
}
