// Package store provides the bounded in-process entry list used when the
// durable store is unreachable.
//
// The fallback store is a process-lifetime safety net, not a consistency
// bearing store: entries kept here survive only until restart and are never
// reconciled back into the database. It is an explicitly owned object,
// injected where needed, rather than package-level mutable state.
package store

import (
	"sync"

	"github.com/linkboard/go-linkboard-backend/internal/domain"
	"github.com/linkboard/go-linkboard-backend/internal/search"
)

// DefaultCapacity is the number of entries the fallback list retains.
const DefaultCapacity = 100

// Memory is a bounded, most-recent-first list of entries. New entries are
// prepended; the oldest entry is evicted when capacity is exceeded.
// All methods are safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	cap     int
	entries []domain.Entry
}

// NewMemory returns a fallback store holding at most capacity entries.
// A capacity <= 0 falls back to DefaultCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{cap: capacity}
}

// Insert prepends e, evicting the oldest entry when the list is full.
func (m *Memory) Insert(e domain.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append([]domain.Entry{e}, m.entries...)
	if len(m.entries) > m.cap {
		m.entries = m.entries[:m.cap]
	}
}

// Query scans the list with the shared search predicate, newest first,
// returning at most limit entries. The term must already be normalized via
// search.NormalizeTerm; an empty term matches everything.
func (m *Memory) Query(term string, limit int) []domain.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Entry, 0, limit)
	for _, e := range m.entries {
		if len(out) == limit {
			break
		}
		if search.Match(term, e) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of entries currently held, independent of any
// search filter.
func (m *Memory) Count() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.entries))
}
