// Package batch — FIFO queue of report sources with deduplication.
// A source given twice on the command line is rendered once.
package batch

import "strings"

// Queue is a FIFO queue of report sources.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewQueue creates a Queue holding sources in order, minus duplicates.
func NewQueue(sources ...string) *Queue {
	q := &Queue{seen: make(map[string]bool)}
	for _, s := range sources {
		q.Add(s)
	}
	return q
}

// Add enqueues a source unless an equivalent one was already added.
// Empty sources are ignored. "-" (stdin) can only be read once, so it
// dedups like any other source.
func (q *Queue) Add(source string) bool {
	key := Key(source)
	if key == "" || q.seen[key] {
		return false
	}
	q.seen[key] = true
	q.items = append(q.items, source)
	return true
}

// HasNext returns true if there are unprocessed sources.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed source and advances the pointer.
func (q *Queue) Next() string {
	s := q.items[q.idx]
	q.idx++
	return s
}

// Len returns the number of unique sources queued.
func (q *Queue) Len() int {
	return len(q.items)
}

// Key is the dedup key for a source: URLs lose a trailing slash and
// fragment, file paths are compared as given.
func Key(source string) string {
	s := strings.TrimSpace(source)
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimRight(s, "/")
	}
	return s
}
