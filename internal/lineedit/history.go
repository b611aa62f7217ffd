package lineedit

import (
	"strings"
	"sync"
)

// DefaultHistorySize is the number of entries kept by NewHistory(0).
const DefaultHistorySize = 500

// History is a bounded list of submitted lines, oldest first. It is safe
// for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []string
	limit   int
}

// NewHistory returns an empty history holding at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &History{limit: limit}
}

// Add records line without its trailing newline. Blank lines and repeats
// of the most recent entry are skipped.
func (h *History) Add(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// At returns entry i, oldest first.
func (h *History) At(i int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[i]
}

// Entries returns a copy of all entries.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}
