// Package input translates tcell key events into editor actions.
package input

// Action identifies an operation the editor can perform.
type Action int

const (
	ActionUnknown Action = iota

	// Meta
	ActionQuit      // quit, refusing when the buffer is modified
	ActionForceQuit // quit regardless of modified state
	ActionSave
	ActionCancel // Esc: drop selection, extra cursors, search state

	// Cursor movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// Selection (movement with the selection extended)
	ActionSelectUp
	ActionSelectDown
	ActionSelectLeft
	ActionSelectRight
	ActionSelectBlockUp
	ActionSelectBlockDown
	ActionSelectBlockLeft
	ActionSelectBlockRight
	ActionSelectAll

	// Multi-cursor
	ActionAddCursorAbove
	ActionAddCursorBelow

	// Text manipulation
	ActionInsertRune // carries the rune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharBackward
	ActionDeleteCharForward
	ActionDeleteWordBackward
	ActionDeleteWordForward

	// History
	ActionUndo
	ActionRedo

	// Clipboard
	ActionCopy
	ActionCut
	ActionPaste

	// Find / replace
	ActionEnterFindMode
	ActionEnterReplaceMode
	ActionFindNext
	ActionFindPrev
)

// ActionEvent is a decoded input event, with the rune payload for
// ActionInsertRune.
type ActionEvent struct {
	Action Action
	Rune   rune
}
