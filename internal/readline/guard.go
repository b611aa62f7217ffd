package readline

import (
	"fmt"
	"sync/atomic"
)

// ThreadID identifies a caller of Reader.ReadLine. Embedders allocate one
// per interpreter thread with NewThreadID; the zero value is invalid.
type ThreadID uint64

var lastThreadID atomic.Uint64

// NewThreadID returns a process-unique, non-zero ThreadID.
func NewThreadID() ThreadID {
	return ThreadID(lastThreadID.Add(1))
}

// Guard records which thread, if any, is currently inside a read. The zero
// value is an idle guard.
type Guard struct {
	owner atomic.Uint64
}

// DefaultGuard is shared by Readers that are not given their own.
var DefaultGuard = &Guard{}

// Acquire claims the guard for id. It fails with ErrReentrant, leaving
// the guard untouched, if any thread already holds it.
func (g *Guard) Acquire(id ThreadID) error {
	if id == 0 {
		return ErrNoThread
	}
	for {
		if g.owner.CompareAndSwap(0, uint64(id)) {
			return nil
		}
		// The holder may have released between the swap and the load.
		owner := ThreadID(g.owner.Load())
		switch owner {
		case 0:
			continue
		case id:
			return ErrReentrant
		default:
			return fmt.Errorf("%w: read in progress on thread %d", ErrReentrant, owner)
		}
	}
}

// Release clears the guard if id holds it and reports whether it did.
func (g *Guard) Release(id ThreadID) bool {
	return g.owner.CompareAndSwap(uint64(id), 0)
}

// Owner returns the thread holding the guard, or 0 when idle.
func (g *Guard) Owner() ThreadID {
	return ThreadID(g.owner.Load())
}

// Reset forces the guard idle.
func (g *Guard) Reset() {
	g.owner.Store(0)
}
