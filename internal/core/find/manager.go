package find

import (
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/core/history"
	"github.com/scribe-editor/scribe/internal/event"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
)

// EditorInterface is the slice of the editor the manager needs.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	EventManager() *event.Manager
	HistoryManager() *history.Manager
}

// Committer applies a staged edit through the edit engine's validated
// commit path. Replacements mutate the document only through it.
type Committer interface {
	ReplayCommit(e history.Edit) error
}

// Manager owns the search state: the compiled pattern, the optional
// scope and the full match set, which is recomputed from scratch on
// every pattern or document change.
type Manager struct {
	editor    EditorInterface
	committer Committer

	mu            sync.RWMutex
	pattern       string
	mode          Mode
	caseSensitive bool
	re            *regexp.Regexp
	scope         *types.Range
	matches       []types.Range
}

// NewManager creates a find manager.
func NewManager(editor EditorInterface, committer Committer) *Manager {
	return &Manager{editor: editor, committer: committer}
}

// SetScope restricts the search to a range (nil clears the restriction)
// and recomputes the matches.
func (m *Manager) SetScope(scope *types.Range) {
	m.mu.Lock()
	if scope != nil {
		normalized := scope.Normalize()
		m.scope = &normalized
	} else {
		m.scope = nil
	}
	m.mu.Unlock()
	m.Refresh()
}

// SetPattern compiles and installs a new pattern, recomputing the match
// set. A failed compile clears the matches and returns the PatternError;
// an empty pattern just clears the state.
func (m *Manager) SetPattern(pattern string, mode Mode, caseSensitive bool) error {
	m.mu.Lock()
	m.pattern = pattern
	m.mode = mode
	m.caseSensitive = caseSensitive
	if pattern == "" {
		m.re = nil
		m.matches = nil
		m.mu.Unlock()
		m.dispatchStats()
		return nil
	}
	re, err := Compile(pattern, mode, caseSensitive)
	if err != nil {
		m.re = nil
		m.matches = nil
		m.mu.Unlock()
		m.dispatchStats()
		logger.Debugf("find: %v", err)
		return err
	}
	m.re = re
	m.mu.Unlock()
	m.Refresh()
	return nil
}

// Pattern returns the current pattern string.
func (m *Manager) Pattern() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pattern
}

// Clear drops the pattern and all matches.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.pattern = ""
	m.re = nil
	m.matches = nil
	m.scope = nil
	m.mu.Unlock()
	m.dispatchStats()
}

// Matches returns a copy of the current match set, in document order.
func (m *Manager) Matches() []types.Range {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Range, len(m.matches))
	copy(out, m.matches)
	return out
}

// Stats returns the 1-based index of the match at or before the cursor
// and the total match count.
func (m *Manager) Stats() (current, total int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cursor := m.editor.GetCursor()
	for _, match := range m.matches {
		if match.Start.After(cursor) {
			break
		}
		current++
	}
	return current, len(m.matches)
}

// Next returns the first match strictly after the given position,
// wrapping to the first match when none follows. The second result
// reports whether the search wrapped.
func (m *Manager) Next(from types.Position) (types.Range, bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.matches) == 0 {
		return types.Range{}, false, false
	}
	for _, match := range m.matches {
		if match.Start.After(from) {
			return match, false, true
		}
	}
	return m.matches[0], true, true
}

// Prev returns the last match strictly before the given position,
// wrapping to the last match when none precedes.
func (m *Manager) Prev(from types.Position) (types.Range, bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.matches) == 0 {
		return types.Range{}, false, false
	}
	for i := len(m.matches) - 1; i >= 0; i-- {
		if m.matches[i].Start.Before(from) {
			return m.matches[i], false, true
		}
	}
	return m.matches[len(m.matches)-1], true, true
}

// Refresh recomputes the match set against the current document. Called
// after every pattern change and after every buffer modification while a
// search is active.
func (m *Manager) Refresh() {
	m.mu.Lock()
	if m.re == nil {
		m.matches = nil
		m.mu.Unlock()
		m.dispatchStats()
		return
	}
	if isMultiline(m.pattern) {
		m.matches = m.findMultiline()
	} else {
		m.matches = m.findPerLine()
	}
	m.mu.Unlock()
	m.dispatchStats()
}

func (m *Manager) dispatchStats() {
	if em := m.editor.EventManager(); em != nil {
		current, total := m.Stats()
		em.Dispatch(event.TypeSearchUpdated, event.SearchUpdatedData{
			Pattern: m.Pattern(),
			Total:   total,
			Current: current,
		})
	}
}

// scopeBounds returns the effective search bounds, defaulting to the
// whole document.
func (m *Manager) scopeBounds(buf buffer.Buffer) (types.Position, types.Position) {
	lastLine := buf.LineCount() - 1
	start := types.Position{Line: 0, Col: 0}
	end := types.Position{Line: lastLine, Col: buf.LineLen(lastLine)}
	if m.scope == nil {
		return start, end
	}
	s := *m.scope
	if start.Before(s.Start) {
		start = s.Start
	}
	if s.End.Before(end) {
		end = s.End
	}
	return start, end
}

// findPerLine scans line by line. Scope columns clamp the first and last
// line of the scope; everything is converted from byte offsets back to
// rune columns at the boundary.
func (m *Manager) findPerLine() []types.Range {
	buf := m.editor.GetBuffer()
	start, end := m.scopeBounds(buf)

	var matches []types.Range
	for line := start.Line; line <= end.Line && line < buf.LineCount(); line++ {
		text, err := buf.LineString(line)
		if err != nil {
			continue
		}
		runes := []rune(text)

		fromCol := 0
		toCol := len(runes)
		if line == start.Line && start.Col > 0 {
			fromCol = min(start.Col, toCol)
		}
		if line == end.Line {
			toCol = min(end.Col, toCol)
		}
		if fromCol > toCol {
			continue
		}
		sub := string(runes[fromCol:toCol])

		for _, loc := range m.re.FindAllStringIndex(sub, -1) {
			matchStart := fromCol + utf8.RuneCountInString(sub[:loc[0]])
			matchEnd := fromCol + utf8.RuneCountInString(sub[:loc[1]])
			matches = append(matches, types.Range{
				Start: types.Position{Line: line, Col: matchStart},
				End:   types.Position{Line: line, Col: matchEnd},
			})
		}
	}
	return matches
}

// findMultiline matches against the newline-joined document, so \n in
// the pattern matches a literal line boundary, then maps byte offsets
// back to (line, col) positions. Matches straddling the scope edge are
// dropped.
func (m *Manager) findMultiline() []types.Range {
	buf := m.editor.GetBuffer()
	text := buf.Contents()
	locs := m.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	mapper := newOffsetMapper(text)
	start, end := m.scopeBounds(buf)
	var matches []types.Range
	for _, loc := range locs {
		r := types.Range{
			Start: mapper.position(loc[0]),
			End:   mapper.position(loc[1]),
		}
		if r.Start.Before(start) || end.Before(r.End) {
			continue
		}
		matches = append(matches, r)
	}
	return matches
}

// offsetMapper converts ascending byte offsets in a newline-joined text
// into (line, rune col) positions with a single forward scan.
type offsetMapper struct {
	text    string
	byteOff int
	pos     types.Position
}

func newOffsetMapper(text string) *offsetMapper {
	return &offsetMapper{text: text}
}

// position maps a byte offset to a document position. Offsets must be
// queried in non-decreasing order.
func (o *offsetMapper) position(target int) types.Position {
	for o.byteOff < target && o.byteOff < len(o.text) {
		r, size := utf8.DecodeRuneInString(o.text[o.byteOff:])
		o.byteOff += size
		if r == '\n' {
			o.pos.Line++
			o.pos.Col = 0
		} else {
			o.pos.Col++
		}
	}
	return o.pos
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
