// Package history implements a bounded undo/redo log of graph snapshots.
//
// The log is a linear sequence of [mindmap.Snapshot] values with a cursor.
// Recording after an undo discards the redo branch; once the log exceeds its
// bound the oldest entries are evicted and the cursor shifts with them.
//
//	h := history.New(50)
//	h.Record(s0)          // [s0]        index 0
//	h.Record(s1)          // [s0 s1]     index 1
//	s, _ := h.Undo()      // s == s0     index 0
//	h.Record(s2)          // [s0 s2]     index 1, s1 is gone
//
// Every snapshot is deep-copied on the way in and on the way out, so callers
// can keep mutating their own values without corrupting history.
//
// A Manager is not safe for concurrent use.
package history

import "github.com/sgazz/acai-mindmap/pkg/mindmap"

// DefaultMaxSize is the history bound used when none is configured.
const DefaultMaxSize = 50

// Manager is a bounded snapshot log with an undo/redo cursor.
type Manager struct {
	entries []mindmap.Snapshot
	index   int
	max     int
}

// New creates an empty Manager holding at most max entries.
// A non-positive max selects [DefaultMaxSize].
func New(max int) *Manager {
	if max <= 0 {
		max = DefaultMaxSize
	}
	return &Manager{index: -1, max: max}
}

// Record appends s after the cursor, dropping any redo entries, and returns
// how many of the oldest entries were evicted to respect the bound.
func (m *Manager) Record(s mindmap.Snapshot) (evicted int) {
	m.entries = append(m.entries[:m.index+1], s.Clone())
	if over := len(m.entries) - m.max; over > 0 {
		// Copy down rather than reslice so evicted snapshots become garbage.
		m.entries = append(m.entries[:0], m.entries[over:]...)
		evicted = over
	}
	m.index = len(m.entries) - 1
	return evicted
}

// Undo moves the cursor back one entry and returns that snapshot.
// At the oldest entry it does nothing and returns false.
func (m *Manager) Undo() (mindmap.Snapshot, bool) {
	if !m.CanUndo() {
		return mindmap.Snapshot{}, false
	}
	m.index--
	return m.entries[m.index].Clone(), true
}

// Redo moves the cursor forward one entry and returns that snapshot.
// At the newest entry it does nothing and returns false.
func (m *Manager) Redo() (mindmap.Snapshot, bool) {
	if !m.CanRedo() {
		return mindmap.Snapshot{}, false
	}
	m.index++
	return m.entries[m.index].Clone(), true
}

// CanUndo reports whether an older entry exists.
func (m *Manager) CanUndo() bool { return m.index > 0 }

// CanRedo reports whether a newer entry exists.
func (m *Manager) CanRedo() bool { return m.index < len(m.entries)-1 }

// Current returns the snapshot at the cursor.
func (m *Manager) Current() (mindmap.Snapshot, bool) {
	if m.index < 0 {
		return mindmap.Snapshot{}, false
	}
	return m.entries[m.index].Clone(), true
}

// Len returns the number of entries.
func (m *Manager) Len() int { return len(m.entries) }

// Index returns the cursor position, or -1 when the log is empty.
func (m *Manager) Index() int { return m.index }

// Max returns the configured bound.
func (m *Manager) Max() int { return m.max }

// Reset discards every entry.
func (m *Manager) Reset() {
	m.entries = nil
	m.index = -1
}
