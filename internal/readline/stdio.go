package readline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"syscall"

	"github.com/charmbracelet/log"
)

const (
	// DefaultInitialSize is the capacity of the line buffer before growth.
	DefaultInitialSize = 100

	// DefaultMaxLineLength bounds a single growth step.
	DefaultMaxLineLength = math.MaxInt32

	minInitialSize = 2
)

// InterruptChecker reports whether an interrupted system call was caused
// by a real user interrupt. Occurred consumes the pending interrupt.
type InterruptChecker interface {
	Occurred() bool
}

// Backend performs one blocking line read. The returned string includes
// the trailing newline when one was read; "" means end of input.
type Backend interface {
	ReadLine(ctx context.Context, in *Input, out io.Writer, prompt string) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, in *Input, out io.Writer, prompt string) (string, error)

// ReadLine calls f.
func (f BackendFunc) ReadLine(ctx context.Context, in *Input, out io.Writer, prompt string) (string, error) {
	return f(ctx, in, out, prompt)
}

// StdioBackend reads lines with plain buffered reads. It works on any
// stream and is the fallback whenever the streams are not terminals.
//
// The zero value is usable: a 100 byte initial buffer, the prompt on
// os.Stderr, no input hook and no interrupt checker (EINTR is retried).
type StdioBackend struct {
	InitialSize   int
	MaxLineLength int

	// InputHook runs before every low-level read attempt.
	InputHook func()

	Interrupts   InterruptChecker
	PromptWriter io.Writer
	Logger       *log.Logger
}

// ReadLine flushes out, shows prompt and reads up to and including the
// next newline. The buffer starts at InitialSize bytes and, while no
// newline has been seen, grows by n+2 bytes where n is the length read so
// far.
//
// End of input before any byte returns "". End of input after a partial
// line returns the partial line; the next call returns "".
func (s *StdioBackend) ReadLine(ctx context.Context, in *Input, out io.Writer, prompt string) (string, error) {
	size := s.InitialSize
	switch {
	case size == 0:
		size = DefaultInitialSize
	case size < minInitialSize:
		size = minInitialSize
	}
	maxLen := s.MaxLineLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}

	line, err := growLine(nil, size)
	if err != nil {
		return "", err
	}

	flushWriter(out)
	s.showPrompt(prompt)

	line, eof, err := s.readChunk(ctx, in, line, size)
	if err != nil {
		return "", err
	}

	for n := len(line); !eof && n > 0 && line[n-1] != '\n'; n = len(line) {
		incr := n + 2
		if incr > maxLen || n > math.MaxInt-incr {
			return "", fmt.Errorf("%w: more than %d bytes without a newline", ErrLineTooLong, n)
		}
		if line, err = growLine(line, n+incr); err != nil {
			return "", err
		}
		s.logger().Debug("line buffer grown", "length", n, "capacity", n+incr)

		if line, eof, err = s.readChunk(ctx, in, line, incr); err != nil {
			return "", err
		}
	}
	return string(line), nil
}

// readChunk appends at most limit-1 bytes to dst, stopping after a
// newline. eof is true only when the stream ended before any byte of this
// chunk was read.
func (s *StdioBackend) readChunk(ctx context.Context, in *Input, dst []byte, limit int) ([]byte, bool, error) {
	want := limit - 1
	got := 0
	for {
		if err := ctx.Err(); err != nil {
			return dst, false, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		if s.InputHook != nil {
			s.InputHook()
		}

		for got < want {
			c, err := in.ReadByte()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return dst, got == 0, nil
				}
				if errors.Is(err, syscall.EINTR) {
					break
				}
				return dst, false, &ReadError{Err: err}
			}
			dst = append(dst, c)
			got++
			if c == '\n' {
				return dst, false, nil
			}
		}
		if got >= want {
			return dst, false, nil
		}

		if s.Interrupts != nil && s.Interrupts.Occurred() {
			return dst, false, ErrInterrupted
		}
		s.logger().Debug("read interrupted by signal, retrying")
	}
}

func (s *StdioBackend) showPrompt(prompt string) {
	w := s.PromptWriter
	if w == nil {
		w = os.Stderr
	}
	if prompt != "" {
		_, _ = io.WriteString(w, prompt)
	}
	flushWriter(w)
}

func (s *StdioBackend) logger() *log.Logger {
	if s.Logger == nil {
		return discardLogger
	}
	return s.Logger
}

// growLine returns line with capacity for at least capacity bytes. A
// failed allocation is reported as ErrNoMemory.
func growLine(line []byte, capacity int) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrNoMemory, r)
		}
	}()
	return slices.Grow(line, capacity-len(line)), nil
}

// flushWriter flushes w if it buffers output.
func flushWriter(w io.Writer) {
	if f, ok := w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}
