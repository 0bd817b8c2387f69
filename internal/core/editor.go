// Package core assembles the document, cursor, selection, history, edit
// and find managers into one Editor facade. The managers only see the
// narrow interfaces they declare; the facade implements all of them.
package core

import (
	"fmt"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/config"
	"github.com/scribe-editor/scribe/internal/core/clipboard"
	"github.com/scribe-editor/scribe/internal/core/cursor"
	"github.com/scribe-editor/scribe/internal/core/edit"
	"github.com/scribe-editor/scribe/internal/core/find"
	"github.com/scribe-editor/scribe/internal/core/history"
	"github.com/scribe-editor/scribe/internal/core/selection"
	"github.com/scribe-editor/scribe/internal/event"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
	"github.com/scribe-editor/scribe/internal/wrap"
)

// Editor owns the document and every manager operating on it.
type Editor struct {
	buffer  buffer.Buffer
	cursors *cursor.Manager
	sel     *selection.Manager
	hist    *history.Manager
	ops     *edit.Operations
	finder  *find.Manager
	mapper  *wrap.Mapper

	eventManager *event.Manager
	tabWidth     int
	scrollOff    int
}

// NewEditor wires the managers around a loaded buffer.
func NewEditor(buf buffer.Buffer, cfg config.EditorConfig) *Editor {
	e := &Editor{
		buffer:    buf,
		hist:      history.NewManager(cfg.HistoryLimit),
		tabWidth:  cfg.TabWidth,
		scrollOff: cfg.ScrollOff,
	}
	e.cursors = cursor.NewManager(e)
	e.sel = selection.NewManager(e)
	e.ops = edit.NewOperations(e, clipboard.New(cfg.SystemClipboard))
	e.finder = find.NewManager(e, e.ops)
	e.mapper = wrap.NewMapper(buf)
	return e
}

// SetEventManager injects the event manager used for dispatching
// buffer/cursor events. Must be called before the first edit.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// --- Facade accessors ---

func (e *Editor) GetBuffer() buffer.Buffer         { return e.buffer }
func (e *Editor) HistoryManager() *history.Manager { return e.hist }
func (e *Editor) EventManager() *event.Manager     { return e.eventManager }
func (e *Editor) Operations() *edit.Operations     { return e.ops }
func (e *Editor) Finder() *find.Manager            { return e.finder }
func (e *Editor) WrapMapper() *wrap.Mapper         { return e.mapper }
func (e *Editor) TabWidth() int                    { return e.tabWidth }
func (e *Editor) ScrollOff() int                   { return e.scrollOff }

// Interface assertions: the facade must satisfy every manager's view.
var (
	_ edit.EditorInterface      = (*Editor)(nil)
	_ find.EditorInterface      = (*Editor)(nil)
	_ cursor.EditorInterface    = (*Editor)(nil)
	_ selection.EditorInterface = (*Editor)(nil)
)

// --- Cursor delegation ---

// GetCursor returns the primary cursor position.
func (e *Editor) GetCursor() types.Position { return e.cursors.GetPosition() }

// SetCursor moves the primary cursor, clamping to the document, and
// reports the move.
func (e *Editor) SetCursor(pos types.Position) {
	e.cursors.SetPosition(pos)
	e.dispatchCursorMoved()
}

// MoveCursor moves the primary cursor by a line/column delta and drops
// any extra cursors.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	e.cursors.ClearExtra()
	e.cursors.Move(deltaLine, deltaCol)
	e.cursors.ScrollToCursor()
	e.dispatchCursorMoved()
}

// MoveCursorKeepExtras moves the primary cursor without collapsing the
// multi-cursor set.
func (e *Editor) MoveCursorKeepExtras(deltaLine, deltaCol int) {
	e.cursors.Move(deltaLine, deltaCol)
	e.cursors.ScrollToCursor()
	e.dispatchCursorMoved()
}

// PageMove moves the cursor by a screenful in the given direction.
func (e *Editor) PageMove(dir int) {
	e.cursors.ClearExtra()
	e.cursors.PageMove(dir)
	e.cursors.ScrollToCursor()
	e.dispatchCursorMoved()
}

// MoveToLineStart moves the primary cursor to column zero, dropping any
// extra cursors.
func (e *Editor) MoveToLineStart() {
	e.cursors.ClearExtra()
	e.cursors.MoveToLineStart()
	e.cursors.ScrollToCursor()
	e.dispatchCursorMoved()
}

// MoveToLineEnd moves the primary cursor past the last rune of the line,
// dropping any extra cursors.
func (e *Editor) MoveToLineEnd() {
	e.cursors.ClearExtra()
	e.cursors.MoveToLineEnd()
	e.cursors.ScrollToCursor()
	e.dispatchCursorMoved()
}

func (e *Editor) ExtraCursors() []types.Position     { return e.cursors.Extra() }
func (e *Editor) SetExtraCursors(p []types.Position) { e.cursors.SetExtra(p) }
func (e *Editor) AllCursors() []types.Position       { return e.cursors.All() }
func (e *Editor) ClearExtraCursors()                 { e.cursors.ClearExtra() }

// AddCursorAbove spawns an extra cursor one line above the topmost one.
func (e *Editor) AddCursorAbove() bool { return e.cursors.AddAbove() }

// AddCursorBelow spawns an extra cursor one line below the bottommost one.
func (e *Editor) AddCursorBelow() bool { return e.cursors.AddBelow() }

func (e *Editor) dispatchCursorMoved() {
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{
			NewPosition: e.cursors.GetPosition(),
		})
	}
}

// --- Viewport delegation ---

// SetViewSize updates the cached text area dimensions.
func (e *Editor) SetViewSize(width, height int) {
	e.cursors.SetViewSize(width, height)
	e.cursors.ScrollToCursor()
}

func (e *Editor) ViewportTop() int       { return e.cursors.ViewportTop() }
func (e *Editor) SetViewportTop(top int) { e.cursors.SetViewportTop(top) }
func (e *Editor) ScrollToCursor()        { e.cursors.ScrollToCursor() }

// --- Selection delegation ---

func (e *Editor) HasSelection() bool            { return e.sel.HasSelection() }
func (e *Editor) SelectionKind() selection.Kind { return e.sel.Kind() }
func (e *Editor) ClearSelection()               { e.sel.Clear() }

func (e *Editor) SelectionRange() (start, end types.Position, ok bool) {
	return e.sel.Range()
}

func (e *Editor) SelectionBlock() (selection.BlockSpan, bool) {
	return e.sel.Block()
}

// StartOrUpdateSelection extends a selection of the given kind to the
// cursor, anchoring a new one if the kind changed.
func (e *Editor) StartOrUpdateSelection(kind selection.Kind) {
	e.sel.StartOrUpdate(kind)
}

// SelectAll selects the whole document and parks the cursor at its end.
func (e *Editor) SelectAll() {
	lastLine := e.buffer.LineCount() - 1
	end := types.Position{Line: lastLine, Col: e.buffer.LineLen(lastLine)}
	e.cursors.ClearExtra()
	e.sel.Set(selection.KindStream, types.Position{}, end)
	e.SetCursor(end)
}

// --- Persistence ---

// SaveBuffer writes the buffer to its file, marks the history watermark
// and reports the save.
func (e *Editor) SaveBuffer() error {
	path := e.buffer.FilePath()
	if err := e.buffer.Save(path); err != nil {
		return fmt.Errorf("failed to save buffer: %w", err)
	}
	e.hist.MarkSaved()
	e.buffer.SetModified(false)
	logger.Infof("editor: saved %s", path)
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path})
	}
	return nil
}

// IsModified reports whether the document differs from its saved state.
func (e *Editor) IsModified() bool {
	return e.buffer.IsModified()
}
