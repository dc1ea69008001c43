// Package events provides a listener list that can be broadcast to safely
// while listeners are added or removed from inside a callback.
package events

import "sync"

// Multicaster broadcasts to an ordered set of listeners.
//
// A listener added while a dispatch is running is queued and joins only
// after the outermost dispatch has finished, so one broadcast always walks
// a stable snapshot. Removal only affects dispatches that start later.
type Multicaster[L comparable] struct {
	mu        sync.Mutex
	listeners []L
	pending   []L
	depth     int
}

func NewMulticaster[L comparable]() *Multicaster[L] {
	return &Multicaster[L]{}
}

// Add registers l. Adding a listener twice is a no-op.
func (m *Multicaster[L]) Add(l L) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.depth > 0 {
		if indexOf(m.pending, l) < 0 && indexOf(m.listeners, l) < 0 {
			m.pending = append(m.pending, l)
		}
		return
	}
	if indexOf(m.listeners, l) < 0 {
		m.listeners = append(m.listeners, l)
	}
}

// Remove unregisters l, including a queued addition of it.
func (m *Multicaster[L]) Remove(l L) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.listeners, l); i >= 0 {
		// copy so that a snapshot taken by a running dispatch stays intact
		next := make([]L, 0, len(m.listeners)-1)
		next = append(next, m.listeners[:i]...)
		m.listeners = append(next, m.listeners[i+1:]...)
	}
	if i := indexOf(m.pending, l); i >= 0 {
		m.pending = append(m.pending[:i], m.pending[i+1:]...)
	}
}

// Len returns the number of active listeners, not counting queued ones.
func (m *Multicaster[L]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// Dispatch calls fn once for every listener registered when it started.
func (m *Multicaster[L]) Dispatch(fn func(L)) {
	m.mu.Lock()
	snapshot := m.listeners
	m.depth++
	m.mu.Unlock()

	defer m.finish()
	for _, l := range snapshot {
		fn(l)
	}
}

func (m *Multicaster[L]) finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depth--
	if m.depth > 0 || len(m.pending) == 0 {
		return
	}
	next := make([]L, len(m.listeners), len(m.listeners)+len(m.pending))
	copy(next, m.listeners)
	for _, l := range m.pending {
		if indexOf(next, l) < 0 {
			next = append(next, l)
		}
	}
	m.listeners = next
	m.pending = nil
}

func indexOf[L comparable](list []L, l L) int {
	for i, x := range list {
		if x == l {
			return i
		}
	}
	return -1
}
