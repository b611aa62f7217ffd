// Package readline reads interactive input one line at a time.
//
// A Reader serialises reads through a Guard: at most one ReadLine call is
// in flight per guard, and a second caller (including a callback running
// inside the first read) fails with ErrReentrant instead of blocking.
//
// Reads go to a pluggable Backend. When either stream is not a terminal the
// built-in StdioBackend is used regardless, since line editors assume
// terminal semantics.
package readline

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

var discardLogger = log.New(io.Discard)

// TerminalCheck reports whether in and out are both interactive terminals.
type TerminalCheck func(in *Input, out io.Writer) bool

// Reader reads lines through the installed Backend.
type Reader struct {
	guard      *Guard
	stdio      *StdioBackend
	logger     *log.Logger
	isTerminal TerminalCheck

	mu      sync.Mutex
	backend Backend
}

// Option configures a Reader.
type Option func(*Reader)

// WithGuard sets the re-entrancy guard. The default is DefaultGuard.
func WithGuard(g *Guard) Option {
	return func(r *Reader) {
		if g != nil {
			r.guard = g
		}
	}
}

// WithBackend installs a custom backend for terminal streams.
func WithBackend(b Backend) Option {
	return func(r *Reader) { r.backend = b }
}

// WithInputHook sets a callback run before every low-level read attempt.
func WithInputHook(hook func()) Option {
	return func(r *Reader) { r.stdio.InputHook = hook }
}

// WithInterruptChecker decides whether an interrupted read is abandoned.
func WithInterruptChecker(c InterruptChecker) Option {
	return func(r *Reader) { r.stdio.Interrupts = c }
}

// WithPromptWriter sets where prompts are written. The default is os.Stderr.
func WithPromptWriter(w io.Writer) Option {
	return func(r *Reader) { r.stdio.PromptWriter = w }
}

// WithInitialSize sets the initial line buffer capacity.
func WithInitialSize(n int) Option {
	return func(r *Reader) { r.stdio.InitialSize = n }
}

// WithMaxLineLength sets the largest allowed growth step.
func WithMaxLineLength(n int) Option {
	return func(r *Reader) { r.stdio.MaxLineLength = n }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
			r.stdio.Logger = l
		}
	}
}

// WithTerminalCheck replaces the terminal detection used to pick a backend.
func WithTerminalCheck(check TerminalCheck) Option {
	return func(r *Reader) {
		if check != nil {
			r.isTerminal = check
		}
	}
}

// New returns a Reader. Without WithBackend the stdio backend is installed
// on first use.
func New(opts ...Option) *Reader {
	r := &Reader{
		guard:      DefaultGuard,
		stdio:      &StdioBackend{},
		logger:     discardLogger,
		isTerminal: IsTerminal,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Install replaces the backend used for terminal streams. A nil backend
// restores the stdio backend.
func (r *Reader) Install(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend = b
}

// Backend returns the installed backend, installing the stdio backend if
// none has been set.
func (r *Reader) Backend() Backend {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		r.backend = r.stdio
		r.logger.Debug("installed default stdio backend")
	}
	return r.backend
}

// Stdio returns the built-in backend used for non-terminal streams.
func (r *Reader) Stdio() *StdioBackend { return r.stdio }

// ReadLine reads one line from in on behalf of thread id, showing prompt.
// The result includes the trailing newline; "" means end of input.
//
// It fails with ErrReentrant when another read holds the guard, and with
// ErrInterrupted, ErrLineTooLong, ErrNoMemory or a *ReadError when the
// read itself fails. The guard is released before ReadLine returns.
func (r *Reader) ReadLine(ctx context.Context, id ThreadID, in *Input, out io.Writer, prompt string) (string, error) {
	if err := r.guard.Acquire(id); err != nil {
		r.logger.Debug("readline rejected", "thread", id, "err", err)
		return "", err
	}
	defer r.guard.Release(id)

	b := r.Backend()
	if b != r.stdio && !r.isTerminal(in, out) {
		r.logger.Debug("streams are not terminals, using stdio backend")
		b = r.stdio
	}
	return b.ReadLine(ctx, in, out, prompt)
}

// IsTerminal reports whether in and out are both attached to terminals.
func IsTerminal(in *Input, out io.Writer) bool {
	inFd, ok := in.Fd()
	if !ok || !term.IsTerminal(int(inFd)) {
		return false
	}
	outFd, ok := fdOf(out)
	return ok && term.IsTerminal(int(outFd))
}
