// Package selection tracks the active selection: a stream (line-wise) span
// or a rectangular block between an anchor and the moving active end.
package selection

import (
	"fmt"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
)

// Kind distinguishes the selection shapes.
type Kind int

const (
	KindNone Kind = iota
	KindStream
	KindBlock
)

// BlockSpan is a normalized rectangular selection: inclusive line range,
// half-open column range. Columns are not clamped to any particular row;
// rows shorter than StartCol simply contribute nothing.
type BlockSpan struct {
	StartLine int
	EndLine   int
	StartCol  int
	EndCol    int
}

// IsZeroWidth reports whether the block covers no columns. A zero-width
// block over several rows is still meaningful: it marks an insertion
// point on every covered row.
func (s BlockSpan) IsZeroWidth() bool {
	return s.StartCol == s.EndCol
}

// EditorInterface is the slice of the editor the manager needs.
type EditorInterface interface {
	GetCursor() types.Position
}

// Manager owns the selection state. The anchor is fixed where the
// selection began; the active end follows the cursor.
type Manager struct {
	editor EditorInterface
	kind   Kind
	anchor types.Position
	active types.Position
}

// NewManager creates a selection manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// Kind returns the current selection kind.
func (m *Manager) Kind() Kind {
	return m.kind
}

// IsSelecting reports whether any selection is in progress.
func (m *Manager) IsSelecting() bool {
	return m.kind != KindNone
}

// HasSelection reports whether the selection covers anything: the anchor
// and active end differ in line or column.
func (m *Manager) HasSelection() bool {
	return m.kind != KindNone && m.anchor != m.active
}

// Start anchors a new selection of the given kind at the cursor.
func (m *Manager) Start(kind Kind) {
	pos := m.editor.GetCursor()
	m.kind = kind
	m.anchor = pos
	m.active = pos
	logger.Debugf("selection: started kind %d at %v", kind, pos)
}

// StartOrUpdate anchors a selection if none of this kind is active,
// otherwise moves the active end to the cursor.
func (m *Manager) StartOrUpdate(kind Kind) {
	if m.kind != kind {
		m.Start(kind)
		return
	}
	m.UpdateActive()
}

// Set replaces the selection with explicit endpoints. Unlike Start, the
// columns are taken as given: a block's desired column may exceed a short
// row's length and is clamped per row on use.
func (m *Manager) Set(kind Kind, anchor, active types.Position) {
	m.kind = kind
	m.anchor = anchor
	m.active = active
}

// UpdateActive moves the active end to the cursor.
func (m *Manager) UpdateActive() {
	if m.kind == KindNone {
		return
	}
	m.active = m.editor.GetCursor()
}

// Clear drops the selection.
func (m *Manager) Clear() {
	if m.kind == KindNone {
		return
	}
	m.kind = KindNone
	m.anchor = types.Position{}
	m.active = types.Position{}
}

// Anchor returns the selection anchor.
func (m *Manager) Anchor() types.Position {
	return m.anchor
}

// Range returns the selection endpoints in document order. For a block
// selection this is the bounding stream range, not the rectangle.
func (m *Manager) Range() (start, end types.Position, ok bool) {
	if !m.HasSelection() {
		return types.Position{}, types.Position{}, false
	}
	r := types.Range{Start: m.anchor, End: m.active}.Normalize()
	return r.Start, r.End, true
}

// Block returns the normalized rectangle of a block selection. A
// zero-width block over multiple rows reports ok; a single collapsed
// point does not.
func (m *Manager) Block() (BlockSpan, bool) {
	if m.kind != KindBlock || m.anchor == m.active {
		return BlockSpan{}, false
	}
	span := BlockSpan{
		StartLine: m.anchor.Line,
		EndLine:   m.active.Line,
		StartCol:  m.anchor.Col,
		EndCol:    m.active.Col,
	}
	if span.EndLine < span.StartLine {
		span.StartLine, span.EndLine = span.EndLine, span.StartLine
	}
	if span.EndCol < span.StartCol {
		span.StartCol, span.EndCol = span.EndCol, span.StartCol
	}
	return span, true
}

// RowSpan clamps a block span onto one row of lineLen runes. A row shorter
// than the start column contributes the empty span at its own end.
func RowSpan(span BlockSpan, lineLen int) (from, to int) {
	from = span.StartCol
	if from > lineLen {
		from = lineLen
	}
	to = span.EndCol
	if to > lineLen {
		to = lineLen
	}
	return from, to
}

// ExtractStream returns the text of a stream selection.
func (m *Manager) ExtractStream(buf buffer.Buffer) (string, error) {
	start, end, ok := m.Range()
	if !ok {
		return "", fmt.Errorf("no selection to extract")
	}
	text, err := buf.Slice(start, end)
	if err != nil {
		return "", fmt.Errorf("failed to extract selection: %w", err)
	}
	return text, nil
}

// ExtractBlock returns one string per covered row of a block selection,
// applying the per-row clamp rules. Rows shorter than the block's start
// column contribute an empty string, so the row count is preserved.
func (m *Manager) ExtractBlock(buf buffer.Buffer) ([]string, error) {
	span, ok := m.Block()
	if !ok {
		return nil, fmt.Errorf("no block selection to extract")
	}
	rows := make([]string, 0, span.EndLine-span.StartLine+1)
	for line := span.StartLine; line <= span.EndLine; line++ {
		lineLen := buf.LineLen(line)
		if lineLen < 0 {
			return nil, fmt.Errorf("block selection row %d: %w", line, buffer.ErrOutOfBounds)
		}
		from, to := RowSpan(span, lineLen)
		text, err := buf.Slice(
			types.Position{Line: line, Col: from},
			types.Position{Line: line, Col: to},
		)
		if err != nil {
			return nil, fmt.Errorf("block selection row %d: %w", line, err)
		}
		rows = append(rows, text)
	}
	return rows, nil
}
