package audit

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Log is the process-local append-only event log. All methods are safe for
// concurrent use; appends are serialized by an internal lock so no two
// writes interleave.
type Log struct {
	mu     sync.RWMutex
	events []*Event
}

// NewLog creates an empty log. capacity pre-sizes the backing slice; the log
// itself grows without bound.
func NewLog(capacity int) *Log {
	if capacity < 0 {
		capacity = 0
	}
	return &Log{
		events: make([]*Event, 0, capacity),
	}
}

// Append adds an event to the log, assigning it an ID if it has none. There
// is no deduplication and no size cap.
func (l *Log) Append(event *Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// Events returns a copy of the log in append order. The returned slice is
// the caller's to keep; later appends do not show up in it.
func (l *Log) Events() []*Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of logged events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Clear empties the log. This is the only way events are ever removed.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = l.events[:0]
}

// ExportJSON writes the full log to w as a JSON array.
func (l *Log) ExportJSON(w io.Writer) error {
	events := l.Events()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}
