package command

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded invocation
type Entry struct {
	ID      string
	Args    []string
	Success bool
	Time    time.Time
}

// CommandString renders the invocation the way a user would type it
func (e Entry) CommandString() string {
	if len(e.Args) == 0 {
		return "jj"
	}
	return "jj " + strings.Join(e.Args, " ")
}

// History is an append-only log of every attempted invocation.
// It is safe for concurrent use; readers get copies, never the backing slice.
type History struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{now: time.Now}
}

// Record appends an entry for args. A nil err marks the invocation successful.
func (h *History) Record(args []string, err error) Entry {
	entry := Entry{
		ID:      uuid.NewString(),
		Args:    append([]string(nil), args...),
		Success: err == nil,
		Time:    h.now(),
	}

	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()

	return entry
}

// Last returns the most recently recorded entry
func (h *History) Last() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Snapshot returns all entries in the order they were recorded
func (h *History) Snapshot() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]Entry(nil), h.entries...)
}

// Len returns the number of recorded entries
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}
