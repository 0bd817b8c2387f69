package wrap

import (
	"sync"

	"github.com/scribe-editor/scribe/internal/types"
)

// LineSource is the slice of the buffer the mapper needs: line lengths and
// a version counter for cache invalidation.
type LineSource interface {
	LineCount() int
	LineLen(index int) int
	Version() uint64
}

// Mapper converts between logical (line, col) positions and visual
// (row, col) coordinates for a given wrap width. Segment slices are cached
// per line; the cache is dropped whenever the source version or the width
// changes, so it can never serve stale geometry.
type Mapper struct {
	src LineSource

	mu           sync.Mutex
	cacheVersion uint64
	cacheWidth   int
	segments     map[int][]Segment
}

// NewMapper creates a mapper over src.
func NewMapper(src LineSource) *Mapper {
	return &Mapper{
		src:      src,
		segments: make(map[int][]Segment),
	}
}

// SegmentsFor returns the visual segments of a logical line at the given
// width, filling the cache lazily.
func (m *Mapper) SegmentsFor(line, width int) []Segment {
	lineLen := m.src.LineLen(line)
	if lineLen < 0 {
		return []Segment{{Start: 0, End: 0}}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if v := m.src.Version(); v != m.cacheVersion || width != m.cacheWidth {
		m.cacheVersion = v
		m.cacheWidth = width
		m.segments = make(map[int][]Segment)
	}
	if segs, ok := m.segments[line]; ok {
		return segs
	}
	segs := Segments(lineLen, width)
	m.segments[line] = segs
	return segs
}

// VisualLineCount returns how many visual rows the logical line occupies.
func (m *Mapper) VisualLineCount(line, width int) int {
	return len(m.SegmentsFor(line, width))
}

// LogicalToVisual converts a logical position to a visual (row, col) pair.
// The row counts wrapped segments of all lines preceding pos.Line plus the
// segment within the line that contains pos.Col. The position is clamped
// into the document first.
func (m *Mapper) LogicalToVisual(pos types.Position, width int) (row, col int) {
	lineCount := m.src.LineCount()
	if lineCount == 0 {
		return 0, 0
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	lineLen := m.src.LineLen(pos.Line)
	if pos.Col < 0 {
		pos.Col = 0
	}
	if pos.Col > lineLen {
		pos.Col = lineLen
	}

	row = 0
	for i := 0; i < pos.Line; i++ {
		row += m.VisualLineCount(i, width)
	}
	idx := segmentIndex(pos.Col, lineLen, width)
	segs := m.SegmentsFor(pos.Line, width)
	seg := segs[idx]
	return row + idx, pos.Col - seg.Start
}

// VisualToLogical converts a visual (row, col) pair back to a logical
// position, counting rows from the top of logical line topLine. Rows past
// the end of the document clamp to the last position; columns past a
// segment clamp to the segment, and never past the line.
func (m *Mapper) VisualToLogical(row, col, topLine, width int) types.Position {
	lineCount := m.src.LineCount()
	if lineCount == 0 {
		return types.Position{}
	}
	if topLine < 0 {
		topLine = 0
	}
	if topLine >= lineCount {
		topLine = lineCount - 1
	}
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}

	remaining := row
	for line := topLine; line < lineCount; line++ {
		segs := m.SegmentsFor(line, width)
		if remaining < len(segs) {
			seg := segs[remaining]
			c := seg.Start + col
			if c > seg.End {
				c = seg.End
			}
			lineLen := m.src.LineLen(line)
			if c > lineLen {
				c = lineLen
			}
			return types.Position{Line: line, Col: c}
		}
		remaining -= len(segs)
	}

	last := lineCount - 1
	return types.Position{Line: last, Col: m.src.LineLen(last)}
}
