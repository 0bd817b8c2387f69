// Package edit is the sole mutator of the document. Every public
// operation funnels into a single commit path that validates the staged
// edit, applies it, records it in history and restores cursor state, so
// undo/redo and multi-cursor fan-out share one spine.
package edit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/core/clipboard"
	"github.com/scribe-editor/scribe/internal/core/history"
	"github.com/scribe-editor/scribe/internal/core/selection"
	"github.com/scribe-editor/scribe/internal/event"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
)

// EditorInterface is the slice of the editor the engine needs.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	ExtraCursors() []types.Position
	SetExtraCursors(positions []types.Position)
	AllCursors() []types.Position
	HasSelection() bool
	SelectionKind() selection.Kind
	SelectionRange() (start, end types.Position, ok bool)
	SelectionBlock() (selection.BlockSpan, bool)
	ClearSelection()
	HistoryManager() *history.Manager
	EventManager() *event.Manager
	ScrollToCursor()
	TabWidth() int
}

// Operations implements the editing operations over an editor and an
// injected clipboard.
type Operations struct {
	editor EditorInterface
	clip   clipboard.Clipboard
}

// NewOperations creates the edit engine.
func NewOperations(editor EditorInterface, clip clipboard.Clipboard) *Operations {
	return &Operations{editor: editor, clip: clip}
}

// runeLen counts runes, the unit every position in this package uses.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// --- Fan-out target construction ---

// fanOutTargets produces the insertion points for a fan-out edit, in
// ascending document order, plus the index of the primary cursor among
// them. A zero-width block selection converts into one cursor per covered
// row (clamped), with the primary on the bottom row.
func (o *Operations) fanOutTargets() (targets []types.Position, primaryIdx int) {
	if span, ok := o.editor.SelectionBlock(); ok && span.IsZeroWidth() {
		buf := o.editor.GetBuffer()
		for line := span.StartLine; line <= span.EndLine; line++ {
			col := span.StartCol
			if lineLen := buf.LineLen(line); col > lineLen {
				col = lineLen
			}
			targets = append(targets, types.Position{Line: line, Col: col})
		}
		o.editor.ClearSelection()
		return targets, len(targets) - 1
	}

	targets = o.editor.AllCursors()
	primary := o.editor.GetCursor()
	for i, pos := range targets {
		if pos == primary {
			primaryIdx = i
			break
		}
	}
	return targets, primaryIdx
}

// shiftedColumns returns the cursor positions after a uniform fan-out
// edit: delta runes inserted (positive) or removed (negative) at every
// target. Targets must be ascending; a target's column shifts once per
// same-line target at or before it, its own edit included.
func shiftedColumns(targets []types.Position, delta int) []types.Position {
	out := make([]types.Position, len(targets))
	for i, t := range targets {
		sameLine := 0
		for j := 0; j <= i; j++ {
			if targets[j].Line == t.Line {
				sameLine++
			}
		}
		out[i] = types.Position{Line: t.Line, Col: t.Col + delta*sameLine}
	}
	return out
}

// splitPrimary separates the primary cursor from the extras.
func splitPrimary(positions []types.Position, primaryIdx int) (primary types.Position, extra []types.Position) {
	primary = positions[primaryIdx]
	for i, pos := range positions {
		if i != primaryIdx {
			extra = append(extra, pos)
		}
	}
	return primary, extra
}

// --- Insertion ---

// InsertRune types one rune at every cursor. An active selection is
// removed first; a zero-width block fans out to its rows.
func (o *Operations) InsertRune(r rune) error {
	if err := o.deleteSelectionIfAny(); err != nil {
		return err
	}
	return o.insertTextFanOut(string(r))
}

// InsertTab inserts spaces up to the configured tab width, one undo entry.
// The pad is computed from the primary cursor so a fan-out stays uniform.
func (o *Operations) InsertTab() error {
	if err := o.deleteSelectionIfAny(); err != nil {
		return err
	}
	tabWidth := o.editor.TabWidth()
	if tabWidth <= 0 {
		tabWidth = 4
	}
	pad := tabWidth - (o.editor.GetCursor().Col % tabWidth)
	return o.insertTextFanOut(strings.Repeat(" ", pad))
}

// insertTextFanOut inserts the same line-break-free text at every cursor,
// applying highest-position-first so earlier insertions cannot shift
// later targets, and records the whole fan-out as one undo entry.
func (o *Operations) insertTextFanOut(text string) error {
	if strings.Contains(text, "\n") {
		return fmt.Errorf("fan-out insert cannot contain line breaks")
	}

	targets, primaryIdx := o.fanOutTargets()
	cursorBefore := o.editor.GetCursor()
	multiBefore := o.editor.ExtraCursors()

	after := shiftedColumns(targets, runeLen(text))
	cursorAfter, multiAfter := splitPrimary(after, primaryIdx)

	if len(targets) == 1 {
		return o.commit(history.Edit{
			Kind:         history.KindInsertChar,
			Pos:          targets[0],
			Text:         text,
			CursorBefore: cursorBefore,
			CursorAfter:  cursorAfter,
		})
	}

	// Children in descending order: that is the application order.
	children := make([]history.Edit, 0, len(targets))
	for i := len(targets) - 1; i >= 0; i-- {
		children = append(children, history.Edit{
			Kind: history.KindInsertChar,
			Pos:  targets[i],
			Text: text,
		})
	}
	return o.commit(history.Edit{
		Kind:         history.KindComposite,
		Edits:        children,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
		MultiBefore:  multiBefore,
		MultiAfter:   multiAfter,
	})
}

// InsertNewLine splits the line at the cursor. Multi-cursor state
// collapses first: a line split at several points at once has no
// coherent meaning for the shifted rows below.
func (o *Operations) InsertNewLine() error {
	if err := o.deleteSelectionIfAny(); err != nil {
		return err
	}
	o.editor.SetExtraCursors(nil)
	o.editor.ClearSelection()

	pos := o.editor.GetCursor()
	return o.commit(history.Edit{
		Kind:         history.KindSplitLine,
		Pos:          pos,
		CursorBefore: pos,
		CursorAfter:  types.Position{Line: pos.Line + 1, Col: 0},
	})
}

// InsertText inserts arbitrary text (the paste path). Text without line
// breaks fans out across cursors; multi-line text collapses to the
// primary cursor. A selection is replaced within the same undo entry.
func (o *Operations) InsertText(text string) error {
	if text == "" {
		return nil
	}
	if !strings.Contains(text, "\n") && !o.selectionNeedsRemoval() {
		return o.insertTextFanOut(text)
	}

	cursorBefore := o.editor.GetCursor()
	multiBefore := o.editor.ExtraCursors()
	o.editor.SetExtraCursors(nil)

	children, insertAt, err := o.selectionRemovalChildren()
	if err == nil && children == nil {
		// Multi-line text never fans out, so any remaining zero-width
		// block shape is consumed here.
		o.editor.ClearSelection()
	}
	if err != nil {
		return err
	}
	if insertAt == nil {
		pos := o.editor.GetCursor()
		insertAt = &pos
	}

	end := endOfInsert(*insertAt, text)
	children = append(children, history.Edit{
		Kind: history.KindInsertBlock,
		Pos:  *insertAt,
		End:  end,
		Text: text,
	})

	e := history.Edit{
		CursorBefore: cursorBefore,
		CursorAfter:  end,
		MultiBefore:  multiBefore,
	}
	if len(children) == 1 {
		child := children[0]
		child.CursorBefore = cursorBefore
		child.CursorAfter = end
		child.MultiBefore = multiBefore
		return o.commit(child)
	}
	e.Kind = history.KindComposite
	e.Edits = children
	return o.commit(e)
}

// endOfInsert computes where the cursor lands after inserting text at pos.
func endOfInsert(pos types.Position, text string) types.Position {
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		return types.Position{Line: pos.Line, Col: pos.Col + runeLen(text)}
	}
	return types.Position{
		Line: pos.Line + len(parts) - 1,
		Col:  runeLen(parts[len(parts)-1]),
	}
}

// --- Deletion ---

// DeleteBackward removes the rune before each cursor. A selection takes
// precedence and is removed instead; at column 0 a single cursor joins
// with the previous line while extra cursors skip the join.
func (o *Operations) DeleteBackward() error {
	if o.selectionNeedsRemoval() {
		return o.deleteSelection()
	}

	targets, primaryIdx := o.fanOutTargets()
	if len(targets) == 1 {
		return o.deleteBackwardSingle(targets[0])
	}

	cursorBefore := o.editor.GetCursor()
	multiBefore := o.editor.ExtraCursors()
	buf := o.editor.GetBuffer()

	// Line joins are skipped in multi-cursor mode; cursors at column 0
	// stay put while the rest delete.
	var active []types.Position
	for _, t := range targets {
		if t.Col > 0 {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return nil
	}

	children := make([]history.Edit, 0, len(active))
	for i := len(active) - 1; i >= 0; i-- {
		t := active[i]
		pos := types.Position{Line: t.Line, Col: t.Col - 1}
		removed, err := buf.Slice(pos, t)
		if err != nil {
			return fmt.Errorf("delete backward at %v: %w", t, err)
		}
		children = append(children, history.Edit{
			Kind: history.KindDeleteCharBefore,
			Pos:  pos,
			Text: removed,
		})
	}

	after := shiftedColumns(active, -1)
	// Re-merge the skipped column-0 cursors unchanged.
	merged := make([]types.Position, 0, len(targets))
	ai := 0
	cursorAfter := cursorBefore
	for i, t := range targets {
		var newPos types.Position
		if t.Col > 0 {
			newPos = after[ai]
			ai++
		} else {
			newPos = t
		}
		if i == primaryIdx {
			cursorAfter = newPos
		} else {
			merged = append(merged, newPos)
		}
	}

	return o.commit(history.Edit{
		Kind:         history.KindComposite,
		Edits:        children,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
		MultiBefore:  multiBefore,
		MultiAfter:   merged,
	})
}

func (o *Operations) deleteBackwardSingle(pos types.Position) error {
	buf := o.editor.GetBuffer()
	if pos.Col > 0 {
		target := types.Position{Line: pos.Line, Col: pos.Col - 1}
		removed, err := buf.Slice(target, pos)
		if err != nil {
			return fmt.Errorf("delete backward at %v: %w", pos, err)
		}
		return o.commit(history.Edit{
			Kind:         history.KindDeleteCharBefore,
			Pos:          target,
			Text:         removed,
			CursorBefore: pos,
			CursorAfter:  target,
		})
	}
	if pos.Line == 0 {
		return nil
	}
	junction := types.Position{Line: pos.Line - 1, Col: buf.LineLen(pos.Line - 1)}
	return o.commit(history.Edit{
		Kind:         history.KindJoinLine,
		Pos:          junction,
		CursorBefore: pos,
		CursorAfter:  junction,
	})
}

// DeleteForward removes the rune at each cursor. A selection takes
// precedence; at end of line a single cursor joins with the next line
// while extra cursors skip the join.
func (o *Operations) DeleteForward() error {
	if o.selectionNeedsRemoval() {
		return o.deleteSelection()
	}

	targets, primaryIdx := o.fanOutTargets()
	if len(targets) == 1 {
		return o.deleteForwardSingle(targets[0])
	}

	cursorBefore := o.editor.GetCursor()
	multiBefore := o.editor.ExtraCursors()
	buf := o.editor.GetBuffer()

	var active []types.Position
	for _, t := range targets {
		if t.Col < buf.LineLen(t.Line) {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return nil
	}

	children := make([]history.Edit, 0, len(active))
	for i := len(active) - 1; i >= 0; i-- {
		t := active[i]
		next := types.Position{Line: t.Line, Col: t.Col + 1}
		removed, err := buf.Slice(t, next)
		if err != nil {
			return fmt.Errorf("delete forward at %v: %w", t, err)
		}
		children = append(children, history.Edit{
			Kind: history.KindDeleteCharAfter,
			Pos:  t,
			Text: removed,
		})
	}

	// Deleting at the cursor leaves it in place, but same-line cursors to
	// the right shift by one per deletion before them.
	after := make([]types.Position, len(active))
	for i, t := range active {
		before := 0
		for j := 0; j < i; j++ {
			if active[j].Line == t.Line {
				before++
			}
		}
		after[i] = types.Position{Line: t.Line, Col: t.Col - before}
	}

	merged := make([]types.Position, 0, len(targets))
	ai := 0
	cursorAfter := cursorBefore
	for i, t := range targets {
		var newPos types.Position
		if t.Col < buf.LineLen(t.Line) {
			newPos = after[ai]
			ai++
		} else {
			newPos = t
		}
		if i == primaryIdx {
			cursorAfter = newPos
		} else {
			merged = append(merged, newPos)
		}
	}

	return o.commit(history.Edit{
		Kind:         history.KindComposite,
		Edits:        children,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
		MultiBefore:  multiBefore,
		MultiAfter:   merged,
	})
}

func (o *Operations) deleteForwardSingle(pos types.Position) error {
	buf := o.editor.GetBuffer()
	lineLen := buf.LineLen(pos.Line)
	if pos.Col < lineLen {
		next := types.Position{Line: pos.Line, Col: pos.Col + 1}
		removed, err := buf.Slice(pos, next)
		if err != nil {
			return fmt.Errorf("delete forward at %v: %w", pos, err)
		}
		return o.commit(history.Edit{
			Kind:         history.KindDeleteCharAfter,
			Pos:          pos,
			Text:         removed,
			CursorBefore: pos,
			CursorAfter:  pos,
		})
	}
	if pos.Line >= buf.LineCount()-1 {
		return nil
	}
	junction := types.Position{Line: pos.Line, Col: lineLen}
	return o.commit(history.Edit{
		Kind:         history.KindJoinLine,
		Pos:          junction,
		CursorBefore: pos,
		CursorAfter:  pos,
	})
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// DeleteWordBackward removes from the start of the word before the cursor
// to the cursor, as a single delete-range entry. Extra cursors collapse.
func (o *Operations) DeleteWordBackward() error {
	if o.selectionNeedsRemoval() {
		return o.deleteSelection()
	}
	o.editor.SetExtraCursors(nil)
	o.editor.ClearSelection()

	pos := o.editor.GetCursor()
	if pos.Col == 0 {
		return o.deleteBackwardSingle(pos)
	}
	buf := o.editor.GetBuffer()
	line, err := buf.Line(pos.Line)
	if err != nil {
		return err
	}

	col := pos.Col
	for col > 0 && unicode.IsSpace(line[col-1]) {
		col--
	}
	if col > 0 && isWordRune(line[col-1]) {
		for col > 0 && isWordRune(line[col-1]) {
			col--
		}
	} else {
		for col > 0 && !isWordRune(line[col-1]) && !unicode.IsSpace(line[col-1]) {
			col--
		}
	}

	start := types.Position{Line: pos.Line, Col: col}
	removed, err := buf.Slice(start, pos)
	if err != nil {
		return err
	}
	return o.commit(history.Edit{
		Kind:         history.KindDeleteRange,
		Pos:          start,
		End:          pos,
		Text:         removed,
		CursorBefore: pos,
		CursorAfter:  start,
	})
}

// DeleteWordForward removes from the cursor to the end of the next word,
// as a single delete-range entry. Extra cursors collapse.
func (o *Operations) DeleteWordForward() error {
	if o.selectionNeedsRemoval() {
		return o.deleteSelection()
	}
	o.editor.SetExtraCursors(nil)
	o.editor.ClearSelection()

	pos := o.editor.GetCursor()
	buf := o.editor.GetBuffer()
	line, err := buf.Line(pos.Line)
	if err != nil {
		return err
	}
	if pos.Col >= len(line) {
		return o.deleteForwardSingle(pos)
	}

	col := pos.Col
	for col < len(line) && unicode.IsSpace(line[col]) {
		col++
	}
	if col < len(line) && isWordRune(line[col]) {
		for col < len(line) && isWordRune(line[col]) {
			col++
		}
	} else {
		for col < len(line) && !isWordRune(line[col]) && !unicode.IsSpace(line[col]) {
			col++
		}
	}

	end := types.Position{Line: pos.Line, Col: col}
	removed, err := buf.Slice(pos, end)
	if err != nil {
		return err
	}
	return o.commit(history.Edit{
		Kind:         history.KindDeleteRange,
		Pos:          pos,
		End:          end,
		Text:         removed,
		CursorBefore: pos,
		CursorAfter:  pos,
	})
}

// --- Selection removal ---

// selectionNeedsRemoval reports whether an active selection should be
// deleted by an editing operation. A zero-width block is not removable
// content; it is a fan-out insertion shape.
func (o *Operations) selectionNeedsRemoval() bool {
	if !o.editor.HasSelection() {
		return false
	}
	if span, ok := o.editor.SelectionBlock(); ok {
		return !span.IsZeroWidth()
	}
	_, _, ok := o.editor.SelectionRange()
	return ok
}

// deleteSelectionIfAny removes an active non-zero-width selection as its
// own undo entry before an insertion proceeds.
func (o *Operations) deleteSelectionIfAny() error {
	if !o.selectionNeedsRemoval() {
		return nil
	}
	return o.deleteSelection()
}

// selectionRemovalChildren stages the deletion of the active selection as
// history children (application order) and returns the position where the
// cursor collapses to. Returns nil children when nothing is selected.
func (o *Operations) selectionRemovalChildren() ([]history.Edit, *types.Position, error) {
	if !o.selectionNeedsRemoval() {
		return nil, nil, nil
	}
	buf := o.editor.GetBuffer()

	if span, ok := o.editor.SelectionBlock(); ok {
		var children []history.Edit
		// Highest row first, matching the application order rule.
		for line := span.EndLine; line >= span.StartLine; line-- {
			from, to := selection.RowSpan(span, buf.LineLen(line))
			if from >= to {
				continue
			}
			start := types.Position{Line: line, Col: from}
			end := types.Position{Line: line, Col: to}
			removed, err := buf.Slice(start, end)
			if err != nil {
				return nil, nil, fmt.Errorf("block delete row %d: %w", line, err)
			}
			children = append(children, history.Edit{
				Kind: history.KindDeleteRange,
				Pos:  start,
				End:  end,
				Text: removed,
			})
		}
		collapse := types.Position{Line: span.StartLine, Col: span.StartCol}
		if lineLen := buf.LineLen(span.StartLine); collapse.Col > lineLen {
			collapse.Col = lineLen
		}
		o.editor.ClearSelection()
		return children, &collapse, nil
	}

	start, end, ok := o.editor.SelectionRange()
	if !ok {
		return nil, nil, nil
	}
	removed, err := buf.Slice(start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("selection delete: %w", err)
	}
	o.editor.ClearSelection()
	return []history.Edit{{
		Kind: history.KindDeleteRange,
		Pos:  start,
		End:  end,
		Text: removed,
	}}, &start, nil
}

// deleteSelection removes the active selection as one undo entry.
func (o *Operations) deleteSelection() error {
	cursorBefore := o.editor.GetCursor()
	multiBefore := o.editor.ExtraCursors()

	children, collapse, err := o.selectionRemovalChildren()
	if err != nil {
		return err
	}
	if len(children) == 0 {
		if collapse != nil {
			o.editor.SetCursor(*collapse)
		}
		return nil
	}

	if len(children) == 1 {
		child := children[0]
		child.CursorBefore = cursorBefore
		child.CursorAfter = *collapse
		child.MultiBefore = multiBefore
		return o.commit(child)
	}
	return o.commit(history.Edit{
		Kind:         history.KindComposite,
		Edits:        children,
		CursorBefore: cursorBefore,
		CursorAfter:  *collapse,
		MultiBefore:  multiBefore,
	})
}

// --- Clipboard operations ---

// Copy places the selected text on the clipboard. Block selections copy
// one line per covered row. Returns false when nothing is selected.
func (o *Operations) Copy() (bool, error) {
	text, ok, err := o.selectedText()
	if err != nil || !ok {
		return false, err
	}
	if err := o.clip.Set(text); err != nil {
		return false, fmt.Errorf("clipboard write failed: %w", err)
	}
	o.editor.ClearSelection()
	return true, nil
}

// Cut copies then removes the selection. Without a selection the whole
// current line is cut, trailing line break included.
func (o *Operations) Cut() (bool, error) {
	if o.selectionNeedsRemoval() {
		text, ok, err := o.selectedText()
		if err != nil || !ok {
			return false, err
		}
		if err := o.clip.Set(text); err != nil {
			return false, fmt.Errorf("clipboard write failed: %w", err)
		}
		return true, o.deleteSelection()
	}
	return o.cutLine()
}

// cutLine removes the current line entirely.
func (o *Operations) cutLine() (bool, error) {
	o.editor.SetExtraCursors(nil)
	buf := o.editor.GetBuffer()
	pos := o.editor.GetCursor()
	lineText, err := buf.LineString(pos.Line)
	if err != nil {
		return false, err
	}
	if err := o.clip.Set(lineText + "\n"); err != nil {
		return false, fmt.Errorf("clipboard write failed: %w", err)
	}

	var start, end, cursorAfter types.Position
	switch {
	case pos.Line < buf.LineCount()-1:
		start = types.Position{Line: pos.Line, Col: 0}
		end = types.Position{Line: pos.Line + 1, Col: 0}
		cursorAfter = start
	case pos.Line > 0:
		// Last line: consume the preceding line break instead.
		start = types.Position{Line: pos.Line - 1, Col: buf.LineLen(pos.Line - 1)}
		end = types.Position{Line: pos.Line, Col: buf.LineLen(pos.Line)}
		cursorAfter = types.Position{Line: pos.Line - 1, Col: 0}
	default:
		// Only line in the buffer: clear it.
		start = types.Position{Line: 0, Col: 0}
		end = types.Position{Line: 0, Col: buf.LineLen(0)}
		cursorAfter = start
		if start == end {
			return false, nil
		}
	}

	removed, err := buf.Slice(start, end)
	if err != nil {
		return false, err
	}
	return true, o.commit(history.Edit{
		Kind:         history.KindDeleteRange,
		Pos:          start,
		End:          end,
		Text:         removed,
		CursorBefore: pos,
		CursorAfter:  cursorAfter,
	})
}

// Paste inserts the clipboard contents, replacing any selection within
// the same undo entry. Returns false when the clipboard is empty.
func (o *Operations) Paste() (bool, error) {
	text, err := o.clip.Get()
	if err != nil {
		return false, fmt.Errorf("clipboard read failed: %w", err)
	}
	if text == "" {
		return false, nil
	}
	return true, o.InsertText(text)
}

// selectedText extracts the selection for clipboard use.
func (o *Operations) selectedText() (string, bool, error) {
	buf := o.editor.GetBuffer()
	if span, ok := o.editor.SelectionBlock(); ok && !span.IsZeroWidth() {
		var rows []string
		for line := span.StartLine; line <= span.EndLine; line++ {
			from, to := selection.RowSpan(span, buf.LineLen(line))
			text, err := buf.Slice(
				types.Position{Line: line, Col: from},
				types.Position{Line: line, Col: to},
			)
			if err != nil {
				return "", false, err
			}
			rows = append(rows, text)
		}
		return strings.Join(rows, "\n"), true, nil
	}

	start, end, ok := o.editor.SelectionRange()
	if !ok {
		return "", false, nil
	}
	text, err := buf.Slice(start, end)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// afterChange syncs the modified flag with the history watermark, keeps
// the cursor visible and notifies the UI.
func (o *Operations) afterChange() {
	o.editor.GetBuffer().SetModified(o.editor.HistoryManager().IsModified())
	o.editor.ScrollToCursor()
	if em := o.editor.EventManager(); em != nil {
		em.Dispatch(event.TypeBufferModified, event.BufferModifiedData{})
	}
	logger.Debugf("edit: buffer now at version %d", o.editor.GetBuffer().Version())
}
