package event

import (
	"github.com/scribe-editor/scribe/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core editor events
	TypeBufferModified // buffer content changed (insert/delete/undo/redo)
	TypeBufferLoaded   // a file was loaded into the buffer
	TypeBufferSaved    // the buffer was written to disk
	TypeCursorMoved    // primary cursor position changed
	TypeModeChanged    // input mode changed (normal/find/replace)

	// Search events
	TypeSearchUpdated // match set recomputed (pattern or buffer changed)

	// Persistence events
	TypeHistorySaved // background history save finished

	// Input events
	TypeKeyPressed // raw key press forwarded

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes a buffer change.
type BufferModifiedData struct{}

// BufferLoadedData carries the path of the loaded file.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData carries the path the buffer was saved to.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData carries the new primary cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// SearchUpdatedData carries the recomputed match statistics.
type SearchUpdatedData struct {
	Pattern string
	Total   int
	Current int // 1-based index of the current match, 0 if none
}

// HistorySavedData reports the outcome of a background history save.
type HistorySavedData struct {
	FilePath string
	Err      error
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ModeChangedData carries the new input mode's display name.
type ModeChangedData struct {
	Mode string
}

// AppReadyData is dispatched once startup wiring is complete.
type AppReadyData struct{}

// AppQuitData is dispatched just before termination.
type AppQuitData struct{}
