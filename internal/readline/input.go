package readline

import (
	"bufio"
	"io"
)

// fder is implemented by *os.File and anything else backed by a descriptor.
type fder interface {
	Fd() uintptr
}

// Input is a buffered input stream shared by successive reads. Bytes
// buffered by one ReadLine call are seen by the next, so callers must
// reuse one Input per stream.
type Input struct {
	src io.Reader
	r   *bufio.Reader
}

// NewInput wraps r for use with a Reader.
func NewInput(r io.Reader) *Input {
	return &Input{src: r, r: bufio.NewReader(r)}
}

// Source returns the wrapped stream.
func (in *Input) Source() io.Reader { return in.src }

// Fd returns the file descriptor of the wrapped stream, if it has one.
func (in *Input) Fd() (uintptr, bool) {
	return fdOf(in.src)
}

// Buffered returns the number of bytes read ahead but not yet consumed.
func (in *Input) Buffered() int { return in.r.Buffered() }

// ReadByte reads from the buffer, filling it from the source as needed.
func (in *Input) ReadByte() (byte, error) { return in.r.ReadByte() }

func fdOf(v any) (uintptr, bool) {
	f, ok := v.(fder)
	if !ok {
		return 0, false
	}
	return f.Fd(), true
}
