// Package buffer holds the document model: an ordered sequence of lines,
// each an ordered sequence of runes. All positions handed to this package
// are rune indices; byte offsets never cross the package boundary.
package buffer

import (
	"errors"

	"github.com/scribe-editor/scribe/internal/types"
)

// ErrOutOfBounds is returned when a position does not lie within the
// document. The buffer never clamps; callers are expected to clamp any
// derived position before calling in.
var ErrOutOfBounds = errors.New("position out of bounds")

// Buffer defines the document contract the rest of the editor builds on.
// Implementations carry no undo, selection or rendering state.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error

	Line(index int) ([]rune, error)
	LineString(index int) (string, error)
	LineCount() int
	LineLen(index int) int
	CharAt(pos types.Position) (rune, error)

	// Insert places text at pos, splitting on "\n", and returns the
	// position just after the inserted text.
	Insert(pos types.Position, text string) (types.Position, error)
	// Delete removes the half-open range [start, end) and returns the
	// removed text, with "\n" standing in for removed line breaks.
	Delete(start, end types.Position) (string, error)
	// Slice returns the text of [start, end) without mutating.
	Slice(start, end types.Position) (string, error)

	Contents() string
	Version() uint64
	FilePath() string
	IsModified() bool
	SetModified(modified bool)
}
