package history

import (
	"sync"

	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
)

// DefaultMaxEntries bounds the history when no limit is configured.
const DefaultMaxEntries = 1000

// DefaultMaxFindHistory bounds the stored search-pattern history.
const DefaultMaxFindHistory = 50

// Manager holds the undo/redo state as a single slice plus an index:
// edits[:current] are undoable, edits[current:] are redoable. Pushing
// while not at the head truncates the redo tail.
type Manager struct {
	mu sync.Mutex

	edits   []Edit
	current int

	// savedAt is the value of current at the last save. The document is
	// unmodified exactly when current == savedAt; -1 means the save point
	// was evicted or undone past.
	savedAt int

	maxEntries int

	findHistory    []string
	maxFindHistory int
}

// NewManager creates a history manager with the given capacity.
// Non-positive maxEntries falls back to DefaultMaxEntries.
func NewManager(maxEntries int) *Manager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Manager{
		maxEntries:     maxEntries,
		maxFindHistory: DefaultMaxFindHistory,
	}
}

// Push records a committed edit. Any redoable tail is discarded; when the
// capacity is exceeded the oldest entry is evicted.
func (m *Manager) Push(e Edit) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current < len(m.edits) {
		m.edits = m.edits[:m.current]
		if m.savedAt > m.current {
			m.savedAt = -1
		}
	}

	m.edits = append(m.edits, e)
	m.current = len(m.edits)

	if len(m.edits) > m.maxEntries {
		over := len(m.edits) - m.maxEntries
		m.edits = append([]Edit(nil), m.edits[over:]...)
		m.current -= over
		if m.savedAt >= 0 {
			m.savedAt -= over
			if m.savedAt < 0 {
				m.savedAt = -1
			}
		}
		logger.Debugf("history: evicted %d oldest entries (capacity %d)", over, m.maxEntries)
	}
}

// Undo steps the index back and returns the edit to invert.
func (m *Manager) Undo() (Edit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == 0 {
		return Edit{}, false
	}
	m.current--
	return m.edits[m.current], true
}

// Redo steps the index forward and returns the edit to reapply.
func (m *Manager) Redo() (Edit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current >= len(m.edits) {
		return Edit{}, false
	}
	e := m.edits[m.current]
	m.current++
	return e, true
}

// CanUndo reports whether an undoable entry exists.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current > 0
}

// CanRedo reports whether a redoable entry exists.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current < len(m.edits)
}

// Len returns the number of recorded entries, redoable tail included.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.edits)
}

// Clear drops all history.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = nil
	m.current = 0
	m.savedAt = 0
}

// MarkSaved moves the save watermark to the current index.
func (m *Manager) MarkSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedAt = m.current
}

// IsModified reports whether the document diverges from its last saved
// state, surviving undo back to (and past) the save point.
func (m *Manager) IsModified() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != m.savedAt
}

// AddFindHistory records a search pattern, deduplicating and keeping the
// most recent patterns up to the bound.
func (m *Manager) AddFindHistory(pattern string) {
	if pattern == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.findHistory[:0]
	for _, p := range m.findHistory {
		if p != pattern {
			out = append(out, p)
		}
	}
	m.findHistory = append(out, pattern)
	if len(m.findHistory) > m.maxFindHistory {
		m.findHistory = append([]string(nil), m.findHistory[len(m.findHistory)-m.maxFindHistory:]...)
	}
}

// FindHistory returns a copy of the stored search patterns, oldest first.
func (m *Manager) FindHistory() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.findHistory))
	copy(out, m.findHistory)
	return out
}

// Snapshot captures the full history state plus session state for
// persistence. Redoable entries are included so redo survives a restart.
func (m *Manager) Snapshot(cursor types.Position, scrollTop int) *Log {
	m.mu.Lock()
	defer m.mu.Unlock()
	edits := make([]Edit, len(m.edits))
	copy(edits, m.edits)
	find := make([]string, len(m.findHistory))
	copy(find, m.findHistory)
	return &Log{
		Edits:       edits,
		Current:     m.current,
		SavedAt:     m.savedAt,
		Cursor:      cursor,
		ScrollTop:   scrollTop,
		FindHistory: find,
	}
}

// Restore replaces the manager state from a loaded log. Out-of-range
// indices are clamped so a damaged-but-parseable log cannot corrupt the
// stacks.
func (m *Manager) Restore(log *Log) {
	if log == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append([]Edit(nil), log.Edits...)
	m.current = log.Current
	if m.current < 0 {
		m.current = 0
	}
	if m.current > len(m.edits) {
		m.current = len(m.edits)
	}
	m.savedAt = log.SavedAt
	if m.savedAt > len(m.edits) {
		m.savedAt = -1
	}
	m.findHistory = append([]string(nil), log.FindHistory...)
	if len(m.findHistory) > m.maxFindHistory {
		m.findHistory = m.findHistory[len(m.findHistory)-m.maxFindHistory:]
	}
	logger.Debugf("history: restored %d entries (current %d)", len(m.edits), m.current)
}
