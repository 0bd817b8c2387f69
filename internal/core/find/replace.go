package find

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/scribe-editor/scribe/internal/core/history"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
)

// errNoPattern is returned by the replace operations when no pattern has
// been compiled.
var errNoPattern = fmt.Errorf("no active search pattern")

// expand renders the replacement template for one matched text. Group
// references use the regexp template syntax: $1, ${name}, $$ for a
// literal dollar. References to groups the pattern does not capture
// expand to the empty string.
func (m *Manager) expand(template, matched string) string {
	idx := m.re.FindStringSubmatchIndex(matched)
	if idx == nil {
		// The match came from this very pattern, so a re-match on the
		// extracted text can only fail for anchored patterns. Fall back
		// to the template with no groups available.
		idx = []int{0, len(matched)}
	}
	return string(m.re.ExpandString(nil, template, matched, idx))
}

// insertionEnd computes where an insertion of text starting at pos ends.
func insertionEnd(pos types.Position, text string) types.Position {
	if !strings.Contains(text, "\n") {
		return types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCountInString(text)}
	}
	lines := strings.Split(text, "\n")
	return types.Position{
		Line: pos.Line + len(lines) - 1,
		Col:  utf8.RuneCountInString(lines[len(lines)-1]),
	}
}

// replacementChildren stages the delete+insert pair for one match, in
// application order. Either half is omitted when it would be a no-op.
func (m *Manager) replacementChildren(match types.Range, template string) ([]history.Edit, types.Position, error) {
	buf := m.editor.GetBuffer()
	matched, err := buf.Slice(match.Start, match.End)
	if err != nil {
		return nil, types.Position{}, fmt.Errorf("replace at %v: %w", match.Start, err)
	}
	replacement := m.expand(template, matched)

	var children []history.Edit
	if matched != "" {
		children = append(children, history.Edit{
			Kind: history.KindDeleteRange,
			Pos:  match.Start,
			End:  match.End,
			Text: matched,
		})
	}
	end := match.Start
	if replacement != "" {
		end = insertionEnd(match.Start, replacement)
		children = append(children, history.Edit{
			Kind: history.KindInsertBlock,
			Pos:  match.Start,
			End:  end,
			Text: replacement,
		})
	}
	return children, end, nil
}

// ReplaceOne replaces a single match with the expanded template and
// recomputes the match set. The replacement commits as one history entry,
// so one undo restores the matched text.
func (m *Manager) ReplaceOne(match types.Range, template string) error {
	m.mu.RLock()
	re := m.re
	m.mu.RUnlock()
	if re == nil {
		return errNoPattern
	}

	children, end, err := m.replacementChildren(match, template)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}

	e := history.Edit{
		Kind:         history.KindComposite,
		Pos:          match.Start,
		Edits:        children,
		CursorBefore: m.editor.GetCursor(),
		CursorAfter:  end,
	}
	if len(children) == 1 {
		only := children[0]
		only.CursorBefore = e.CursorBefore
		only.CursorAfter = e.CursorAfter
		e = only
	}
	if err := m.committer.ReplayCommit(e); err != nil {
		return err
	}
	m.Refresh()
	return nil
}

// ReplaceAll replaces every current match in one committed edit, applied
// from the last match backward so earlier positions stay valid. Returns
// the number of replacements; a single undo restores all of them.
func (m *Manager) ReplaceAll(template string) (int, error) {
	m.mu.RLock()
	re := m.re
	matches := make([]types.Range, len(m.matches))
	copy(matches, m.matches)
	m.mu.RUnlock()
	if re == nil {
		return 0, errNoPattern
	}
	if len(matches) == 0 {
		return 0, nil
	}

	var children []history.Edit
	cursorAfter := m.editor.GetCursor()
	for i := len(matches) - 1; i >= 0; i-- {
		pair, end, err := m.replacementChildren(matches[i], template)
		if err != nil {
			return 0, err
		}
		children = append(children, pair...)
		// The first match in document order is applied last; nothing
		// after it shifts, so its insertion end is the final cursor.
		if i == 0 {
			cursorAfter = end
		}
	}
	if len(children) == 0 {
		return 0, nil
	}

	e := history.Edit{
		Kind:         history.KindComposite,
		Pos:          matches[0].Start,
		Edits:        children,
		CursorBefore: m.editor.GetCursor(),
		CursorAfter:  cursorAfter,
	}
	if err := m.committer.ReplayCommit(e); err != nil {
		return 0, err
	}
	logger.Debugf("find: replaced %d matches", len(matches))
	m.Refresh()
	return len(matches), nil
}
