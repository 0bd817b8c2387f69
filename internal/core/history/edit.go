// Package history records document edits as invertible, serializable
// entries and manages the undo/redo stacks plus the per-file log on disk.
package history

import "github.com/scribe-editor/scribe/internal/types"

// Kind tags the closed set of edit record variants. Code applying or
// inverting edits switches over this set exhaustively; there is no
// generic escape hatch.
type Kind int

const (
	KindInsertChar Kind = iota
	KindDeleteCharBefore
	KindDeleteCharAfter
	KindSplitLine
	KindJoinLine
	KindInsertBlock
	KindDeleteRange
	KindComposite
)

var kindNames = map[Kind]string{
	KindInsertChar:       "insert-char",
	KindDeleteCharBefore: "delete-char-before",
	KindDeleteCharAfter:  "delete-char-after",
	KindSplitLine:        "split-line",
	KindJoinLine:         "join-line",
	KindInsertBlock:      "insert-block",
	KindDeleteRange:      "delete-range",
	KindComposite:        "composite",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Edit is one undoable mutation. Which fields are meaningful depends on
// the kind:
//
//   - insert-char: Pos is the insertion point, Text the single rune.
//   - delete-char-before / delete-char-after: Pos is where the removed
//     rune stood, Text the rune. The two kinds differ only in how the
//     cursor is restored.
//   - split-line: Pos is the split point.
//   - join-line: Pos is the junction, its Col the length of the upper
//     line before the join.
//   - insert-block: Pos is the insertion point, Text the inserted text
//     (may contain line breaks), End the position just after it.
//   - delete-range: Pos..End is the removed half-open range, Text the
//     removed text.
//   - composite: Edits holds the children, applied in order and inverted
//     in reverse order. Cursor fields live on the composite, not the
//     children.
//
// CursorBefore/CursorAfter (and the multi-cursor snapshots) let undo and
// redo restore exact cursor state, not just text.
type Edit struct {
	Kind Kind           `json:"kind"`
	Pos  types.Position `json:"pos"`
	End  types.Position `json:"end,omitempty"`
	Text string         `json:"text,omitempty"`

	CursorBefore types.Position   `json:"cursor_before"`
	CursorAfter  types.Position   `json:"cursor_after"`
	MultiBefore  []types.Position `json:"multi_before,omitempty"`
	MultiAfter   []types.Position `json:"multi_after,omitempty"`

	Edits []Edit `json:"edits,omitempty"`
}
