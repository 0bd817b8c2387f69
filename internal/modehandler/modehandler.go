// Package modehandler routes key events by input mode: normal editing,
// find input and the two-stage replace input.
package modehandler

import (
	"github.com/gdamore/tcell/v2"
	"github.com/scribe-editor/scribe/internal/core"
	"github.com/scribe-editor/scribe/internal/core/find"
	"github.com/scribe-editor/scribe/internal/core/selection"
	"github.com/scribe-editor/scribe/internal/event"
	"github.com/scribe-editor/scribe/internal/input"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/statusbar"
	"github.com/scribe-editor/scribe/internal/types"
)

// Mode is the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFind
	ModeReplacePattern  // entering the search pattern
	ModeReplaceTemplate // entering the replacement template
)

func (m Mode) String() string {
	switch m {
	case ModeFind:
		return "FIND"
	case ModeReplacePattern, ModeReplaceTemplate:
		return "REPLACE"
	default:
		return "NORMAL"
	}
}

// Config bundles the dependencies for the mode handler.
type Config struct {
	Editor         *core.Editor
	StatusBar      *statusbar.StatusBar
	EventManager   *event.Manager
	InputProcessor *input.InputProcessor
	QuitSignal     chan<- struct{}
	CaseSensitive  bool
}

// ModeHandler interprets decoded actions according to the current mode.
type ModeHandler struct {
	editor    *core.Editor
	statusBar *statusbar.StatusBar
	events    *event.Manager
	processor *input.InputProcessor
	quit      chan<- struct{}

	mode          Mode
	caseSensitive bool
	findMode      find.Mode
	quitPending   bool
	quitRequested bool

	findInput      []rune
	replacePattern string
	replaceInput   []rune
	historyIdx     int // -1 when not browsing find history
}

// New creates a mode handler in normal mode.
func New(cfg Config) *ModeHandler {
	return &ModeHandler{
		editor:        cfg.Editor,
		statusBar:     cfg.StatusBar,
		events:        cfg.EventManager,
		processor:     cfg.InputProcessor,
		quit:          cfg.QuitSignal,
		caseSensitive: cfg.CaseSensitive,
		historyIdx:    -1,
	}
}

// CurrentMode returns the active input mode.
func (mh *ModeHandler) CurrentMode() Mode {
	return mh.mode
}

// HandleKeyEvent processes one key event. The return value reports
// whether the screen needs redrawing (it always does after input).
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	switch mh.mode {
	case ModeFind, ModeReplacePattern, ModeReplaceTemplate:
		return mh.handlePromptKey(ev)
	default:
		return mh.handleNormalKey(ev)
	}
}

func (mh *ModeHandler) handleNormalKey(ev *tcell.EventKey) bool {
	actionEvent := mh.processor.ProcessEvent(ev)
	action := actionEvent.Action

	// Any action other than quit clears a pending quit confirmation.
	if action != input.ActionQuit {
		mh.quitPending = false
	}

	ed := mh.editor
	ops := ed.Operations()

	switch action {
	case input.ActionQuit:
		if ed.IsModified() && !mh.quitPending {
			mh.quitPending = true
			mh.statusBar.SetTemporaryMessage("Unsaved changes. Press Ctrl+Q again to quit.")
			return true
		}
		mh.requestQuit()
	case input.ActionForceQuit:
		mh.requestQuit()
	case input.ActionSave:
		if err := ed.SaveBuffer(); err != nil {
			mh.statusBar.SetTemporaryMessage("Save failed: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Saved %s", ed.GetBuffer().FilePath())
		}
	case input.ActionCancel:
		ed.ClearSelection()
		ed.ClearExtraCursors()
		ed.Finder().Clear()
		mh.statusBar.SetSearchStats(0, 0, false)
		mh.statusBar.ResetTemporaryMessage()

	case input.ActionMoveUp:
		mh.plainMove(-1, 0)
	case input.ActionMoveDown:
		mh.plainMove(1, 0)
	case input.ActionMoveLeft:
		mh.plainMove(0, -1)
	case input.ActionMoveRight:
		mh.plainMove(0, 1)
	case input.ActionMovePageUp:
		ed.ClearSelection()
		ed.PageMove(-1)
	case input.ActionMovePageDown:
		ed.ClearSelection()
		ed.PageMove(1)
	case input.ActionMoveHome:
		ed.ClearSelection()
		ed.MoveToLineStart()
	case input.ActionMoveEnd:
		ed.ClearSelection()
		ed.MoveToLineEnd()

	case input.ActionSelectUp:
		mh.extendSelection(selection.KindStream, -1, 0)
	case input.ActionSelectDown:
		mh.extendSelection(selection.KindStream, 1, 0)
	case input.ActionSelectLeft:
		mh.extendSelection(selection.KindStream, 0, -1)
	case input.ActionSelectRight:
		mh.extendSelection(selection.KindStream, 0, 1)
	case input.ActionSelectBlockUp:
		mh.extendSelection(selection.KindBlock, -1, 0)
	case input.ActionSelectBlockDown:
		mh.extendSelection(selection.KindBlock, 1, 0)
	case input.ActionSelectBlockLeft:
		mh.extendSelection(selection.KindBlock, 0, -1)
	case input.ActionSelectBlockRight:
		mh.extendSelection(selection.KindBlock, 0, 1)
	case input.ActionSelectAll:
		ed.SelectAll()

	case input.ActionAddCursorAbove:
		if !ed.AddCursorAbove() {
			mh.statusBar.SetTemporaryMessage("Already at the first line")
		}
	case input.ActionAddCursorBelow:
		if !ed.AddCursorBelow() {
			mh.statusBar.SetTemporaryMessage("Already at the last line")
		}

	case input.ActionInsertRune:
		mh.reportEditError(ops.InsertRune(actionEvent.Rune))
	case input.ActionInsertNewLine:
		mh.reportEditError(ops.InsertNewLine())
	case input.ActionInsertTab:
		mh.reportEditError(ops.InsertTab())
	case input.ActionDeleteCharBackward:
		mh.reportEditError(ops.DeleteBackward())
	case input.ActionDeleteCharForward:
		mh.reportEditError(ops.DeleteForward())
	case input.ActionDeleteWordBackward:
		mh.reportEditError(ops.DeleteWordBackward())
	case input.ActionDeleteWordForward:
		mh.reportEditError(ops.DeleteWordForward())

	case input.ActionUndo:
		undone, err := ops.ApplyUndo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
		} else if !undone {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		redone, err := ops.ApplyRedo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
		} else if !redone {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionCopy:
		copied, err := ops.Copy()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		} else if !copied {
			mh.statusBar.SetTemporaryMessage("Nothing selected")
		}
	case input.ActionCut:
		if _, err := ops.Cut(); err != nil {
			mh.statusBar.SetTemporaryMessage("Cut failed: %v", err)
		}
	case input.ActionPaste:
		if _, err := ops.Paste(); err != nil {
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		}

	case input.ActionEnterFindMode:
		mh.enterFindMode()
	case input.ActionEnterReplaceMode:
		mh.enterReplaceMode()
	case input.ActionFindNext:
		mh.jumpToMatch(true)
	case input.ActionFindPrev:
		mh.jumpToMatch(false)

	case input.ActionUnknown:
		logger.Debugf("modehandler: unmapped key %v mod %v", ev.Key(), ev.Modifiers())
		return false
	}
	return true
}

// plainMove drops the selection and any extra cursors, then moves the
// primary cursor. Cursor-only navigation always collapses back to one
// cursor.
func (mh *ModeHandler) plainMove(deltaLine, deltaCol int) {
	mh.editor.ClearSelection()
	mh.editor.MoveCursor(deltaLine, deltaCol)
}

// extendSelection anchors a selection of the given kind at the cursor if
// none is active, moves, and extends the active end to the new cursor.
func (mh *ModeHandler) extendSelection(kind selection.Kind, deltaLine, deltaCol int) {
	ed := mh.editor
	ed.ClearExtraCursors()
	ed.StartOrUpdateSelection(kind)
	ed.MoveCursorKeepExtras(deltaLine, deltaCol)
	ed.StartOrUpdateSelection(kind)
}

// jumpToMatch moves the cursor to the next or previous match, reporting
// wrap-around on the status bar.
func (mh *ModeHandler) jumpToMatch(forward bool) {
	finder := mh.editor.Finder()
	var match types.Range
	var wrapped, ok bool
	if forward {
		match, wrapped, ok = finder.Next(mh.editor.GetCursor())
	} else {
		match, wrapped, ok = finder.Prev(mh.editor.GetCursor())
	}
	if !ok {
		mh.statusBar.SetTemporaryMessage("No matches")
		return
	}
	mh.editor.SetCursor(match.Start)
	mh.editor.ScrollToCursor()
	if wrapped {
		mh.statusBar.SetTemporaryMessage("Search wrapped")
	}
	current, total := finder.Stats()
	mh.statusBar.SetSearchStats(current, total, true)
}

func (mh *ModeHandler) reportEditError(err error) {
	if err != nil {
		mh.statusBar.SetTemporaryMessage("%v", err)
	}
}

func (mh *ModeHandler) requestQuit() {
	if mh.quitRequested {
		return
	}
	mh.quitRequested = true
	if mh.events != nil {
		mh.events.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	}
	close(mh.quit)
}

func (mh *ModeHandler) setMode(mode Mode) {
	if mh.mode == mode {
		return
	}
	mh.mode = mode
	if mh.events != nil {
		mh.events.Dispatch(event.TypeModeChanged, event.ModeChangedData{Mode: mode.String()})
	}
}
