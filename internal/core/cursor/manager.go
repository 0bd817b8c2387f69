// Package cursor manages the primary cursor, the additional multi-cursor
// set and the viewport. All positions handed out are already clamped into
// the buffer.
package cursor

import (
	"sort"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
)

// EditorInterface is the slice of the editor the manager needs.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	ScrollOff() int
}

// Manager owns cursor and viewport state. The extra set holds additional
// cursors for multi-cursor editing; it never contains the primary position
// and is kept sorted and deduplicated.
type Manager struct {
	editor EditorInterface

	position   types.Position
	desiredCol int // sticky column for vertical movement

	extra []types.Position

	viewportTop int
	viewWidth   int
	viewHeight  int
}

// NewManager creates a cursor manager at the origin.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor, desiredCol: -1}
}

// GetPosition returns the primary cursor position.
func (m *Manager) GetPosition() types.Position {
	return m.position
}

// SetPosition moves the primary cursor, clamping into the buffer.
func (m *Manager) SetPosition(pos types.Position) {
	m.position = m.clamp(pos)
	m.desiredCol = -1
	m.ScrollToCursor()
}

// clamp forces pos into the buffer: line into [0, lineCount), col into
// [0, line length].
func (m *Manager) clamp(pos types.Position) types.Position {
	buf := m.editor.GetBuffer()
	lineCount := buf.LineCount()
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	lineLen := buf.LineLen(pos.Line)
	if pos.Col < 0 {
		pos.Col = 0
	}
	if pos.Col > lineLen {
		pos.Col = lineLen
	}
	return pos
}

// Move applies a relative movement. Horizontal movement wraps across line
// boundaries; vertical movement keeps the sticky column.
func (m *Manager) Move(deltaLine, deltaCol int) {
	buf := m.editor.GetBuffer()
	pos := m.position

	if deltaCol != 0 {
		pos.Col += deltaCol
		if pos.Col < 0 && pos.Line > 0 {
			pos.Line--
			pos.Col = buf.LineLen(pos.Line)
		} else if pos.Col > buf.LineLen(pos.Line) && pos.Line < buf.LineCount()-1 {
			pos.Line++
			pos.Col = 0
		}
		m.position = m.clamp(pos)
		m.desiredCol = -1
		m.ScrollToCursor()
		return
	}

	if deltaLine != 0 {
		if m.desiredCol < 0 {
			m.desiredCol = pos.Col
		}
		pos.Line += deltaLine
		pos.Col = m.desiredCol
		m.position = m.clamp(pos)
		m.ScrollToCursor()
	}
}

// PageMove scrolls by whole view heights.
func (m *Manager) PageMove(deltaPages int) {
	if m.viewHeight <= 0 {
		return
	}
	m.Move(deltaPages*m.viewHeight, 0)
}

// MoveToLineStart places the cursor at column 0.
func (m *Manager) MoveToLineStart() {
	m.position.Col = 0
	m.desiredCol = -1
	m.ScrollToCursor()
}

// MoveToLineEnd places the cursor after the last rune of the line.
func (m *Manager) MoveToLineEnd() {
	m.position.Col = m.editor.GetBuffer().LineLen(m.position.Line)
	m.desiredCol = -1
	m.ScrollToCursor()
}

// --- Multi-cursor set ---

// HasExtra reports whether additional cursors exist.
func (m *Manager) HasExtra() bool {
	return len(m.extra) > 0
}

// Extra returns a copy of the additional cursor positions.
func (m *Manager) Extra() []types.Position {
	out := make([]types.Position, len(m.extra))
	copy(out, m.extra)
	return out
}

// SetExtra replaces the additional cursor set, clamping and normalizing.
// Used by undo/redo to restore a recorded multi-cursor snapshot.
func (m *Manager) SetExtra(positions []types.Position) {
	m.extra = m.extra[:0]
	for _, pos := range positions {
		m.extra = append(m.extra, m.clamp(pos))
	}
	m.normalizeExtra()
}

// ClearExtra collapses back to the single primary cursor.
func (m *Manager) ClearExtra() {
	if len(m.extra) > 0 {
		logger.Debugf("cursor: collapsing %d extra cursors", len(m.extra))
	}
	m.extra = nil
}

// All returns every cursor position, primary included, in document order.
func (m *Manager) All() []types.Position {
	all := make([]types.Position, 0, len(m.extra)+1)
	all = append(all, m.position)
	all = append(all, m.extra...)
	sort.Slice(all, func(i, j int) bool { return all[i].Before(all[j]) })
	return all
}

// AddAbove adds a cursor on the line above the topmost cursor, at the
// primary cursor's column clamped to that line. Returns false when there
// is no line above or the position is already taken.
func (m *Manager) AddAbove() bool {
	top := m.position
	for _, pos := range m.extra {
		if pos.Before(top) {
			top = pos
		}
	}
	if top.Line == 0 {
		return false
	}
	return m.addCursor(types.Position{Line: top.Line - 1, Col: m.position.Col})
}

// AddBelow adds a cursor on the line below the bottommost cursor, at the
// primary cursor's column clamped to that line. Returns false when there
// is no line below or the position is already taken.
func (m *Manager) AddBelow() bool {
	bottom := m.position
	for _, pos := range m.extra {
		if bottom.Before(pos) {
			bottom = pos
		}
	}
	if bottom.Line >= m.editor.GetBuffer().LineCount()-1 {
		return false
	}
	return m.addCursor(types.Position{Line: bottom.Line + 1, Col: m.position.Col})
}

func (m *Manager) addCursor(pos types.Position) bool {
	pos = m.clamp(pos)
	if pos == m.position {
		return false
	}
	for _, existing := range m.extra {
		if existing == pos {
			return false
		}
	}
	m.extra = append(m.extra, pos)
	m.normalizeExtra()
	logger.Debugf("cursor: added cursor at %v (%d total)", pos, len(m.extra)+1)
	return true
}

// normalizeExtra sorts the extra set and removes duplicates, including
// any entry that collides with the primary cursor.
func (m *Manager) normalizeExtra() {
	if len(m.extra) == 0 {
		return
	}
	sort.Slice(m.extra, func(i, j int) bool { return m.extra[i].Before(m.extra[j]) })
	out := m.extra[:0]
	var prev *types.Position
	for i := range m.extra {
		pos := m.extra[i]
		if pos == m.position {
			continue
		}
		if prev != nil && pos == *prev {
			continue
		}
		out = append(out, pos)
		prev = &out[len(out)-1]
	}
	m.extra = out
}

// --- Viewport ---

// SetViewSize records the drawable area.
func (m *Manager) SetViewSize(width, height int) {
	m.viewWidth = width
	m.viewHeight = height
	m.ScrollToCursor()
}

// ViewportTop returns the first visible logical line.
func (m *Manager) ViewportTop() int {
	return m.viewportTop
}

// SetViewportTop restores a saved scroll position.
func (m *Manager) SetViewportTop(top int) {
	lineCount := m.editor.GetBuffer().LineCount()
	if top < 0 {
		top = 0
	}
	if top >= lineCount {
		top = lineCount - 1
	}
	m.viewportTop = top
}

// ScrollToCursor adjusts the viewport so the primary cursor stays inside
// the scroll-off margin.
func (m *Manager) ScrollToCursor() {
	if m.viewHeight <= 0 {
		return
	}
	scrollOff := m.editor.ScrollOff()
	if scrollOff*2 >= m.viewHeight {
		scrollOff = (m.viewHeight - 1) / 2
	}

	if m.position.Line < m.viewportTop+scrollOff {
		m.viewportTop = m.position.Line - scrollOff
		if m.viewportTop < 0 {
			m.viewportTop = 0
		}
	} else if m.position.Line >= m.viewportTop+m.viewHeight-scrollOff {
		m.viewportTop = m.position.Line - m.viewHeight + 1 + scrollOff
		maxTop := m.editor.GetBuffer().LineCount() - 1
		if m.viewportTop > maxTop {
			m.viewportTop = maxTop
		}
	}
}
