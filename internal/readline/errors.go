package readline

import (
	"errors"
	"fmt"
)

var (
	// ErrReentrant is returned when a read starts while another is in flight.
	ErrReentrant = errors.New("can't re-enter readline")

	// ErrNoThread is returned for the zero ThreadID.
	ErrNoThread = errors.New("readline: no thread identity")

	// ErrLineTooLong is returned when growing the line buffer would pass
	// the configured maximum length.
	ErrLineTooLong = errors.New("input line too long")

	// ErrInterrupted is returned when a read is stopped by an interrupt or
	// by context cancellation.
	ErrInterrupted = errors.New("readline: interrupted")

	// ErrNoMemory is returned when the line buffer cannot be allocated.
	ErrNoMemory = errors.New("readline: out of memory")

	// ErrReadIO is matched by every *ReadError.
	ErrReadIO = errors.New("readline: read error")
)

// ReadError wraps an I/O failure of the underlying stream.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%v: %v", ErrReadIO, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is reports ErrReadIO as a match so callers need not know the cause.
func (e *ReadError) Is(target error) bool { return target == ErrReadIO }
