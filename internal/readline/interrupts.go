package readline

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Interrupts tracks pending user interrupts. It implements InterruptChecker
// and can wrap a stream so that a blocked read returns EINTR when an
// interrupt arrives.
type Interrupts struct {
	pending atomic.Bool
	wake    chan struct{}
}

// NewInterrupts returns an Interrupts with nothing pending.
func NewInterrupts() *Interrupts {
	return &Interrupts{wake: make(chan struct{}, 1)}
}

// Trip records an interrupt and wakes a blocked read.
func (i *Interrupts) Trip() {
	i.pending.Store(true)
	select {
	case i.wake <- struct{}{}:
	default:
	}
}

// Occurred reports and clears a pending interrupt.
func (i *Interrupts) Occurred() bool {
	return i.pending.Swap(false)
}

// Notify trips i for every interrupt signal the process receives until
// the returned stop function is called.
func (i *Interrupts) Notify() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, interruptSignals()...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				i.Trip()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}

// Wrap returns a reader over r whose Read fails with syscall.EINTR when i
// is tripped while the read is blocked. Data read from r is never lost: a
// read interrupted this way is completed by the next call.
func (i *Interrupts) Wrap(r io.Reader) io.Reader {
	return &interruptibleReader{
		r:    r,
		wake: i.wake,
		req:  make(chan struct{}),
		res:  make(chan readResult, 1),
	}
}

type readResult struct {
	b   []byte
	err error
}

type interruptibleReader struct {
	r    io.Reader
	wake <-chan struct{}

	once    sync.Once
	req     chan struct{}
	res     chan readResult
	waiting bool
	buf     []byte
	err     error
}

// Fd exposes the descriptor of the wrapped stream for terminal detection.
func (ir *interruptibleReader) Fd() uintptr {
	fd, ok := fdOf(ir.r)
	if !ok {
		return ^uintptr(0)
	}
	return fd
}

func (ir *interruptibleReader) Read(p []byte) (int, error) {
	if len(ir.buf) > 0 {
		n := copy(p, ir.buf)
		ir.buf = ir.buf[n:]
		return n, nil
	}
	if ir.err != nil {
		return 0, ir.err
	}

	ir.once.Do(func() { go ir.pump() })
	if !ir.waiting {
		ir.req <- struct{}{}
		ir.waiting = true
	}

	select {
	case res := <-ir.res:
		ir.waiting = false
		n := copy(p, res.b)
		ir.buf = res.b[n:]
		ir.err = res.err
		if n == 0 {
			return 0, ir.err
		}
		return n, nil
	case <-ir.wake:
		return 0, syscall.EINTR
	}
}

// pump performs the blocking reads so Read can wait on the wake channel.
func (ir *interruptibleReader) pump() {
	for range ir.req {
		b := make([]byte, 4096)
		n, err := ir.r.Read(b)
		ir.res <- readResult{b: b[:n], err: err}
		if err != nil {
			return
		}
	}
}
