package wrap

import (
	"testing"

	"github.com/scribe-editor/scribe/internal/types"
)

// fakeSource serves fixed line lengths with a settable version.
type fakeSource struct {
	lens    []int
	version uint64
}

func (f *fakeSource) LineCount() int { return len(f.lens) }
func (f *fakeSource) LineLen(index int) int {
	if index < 0 || index >= len(f.lens) {
		return -1
	}
	return f.lens[index]
}
func (f *fakeSource) Version() uint64 { return f.version }

func TestSegments(t *testing.T) {
	tests := []struct {
		name    string
		lineLen int
		width   int
		want    []Segment
	}{
		{"empty line one segment", 0, 10, []Segment{{0, 0}}},
		{"width zero disables wrap", 25, 0, []Segment{{0, 25}}},
		{"exact multiple", 20, 10, []Segment{{0, 10}, {10, 20}}},
		{"remainder", 25, 10, []Segment{{0, 10}, {10, 20}, {20, 25}}},
		{"shorter than width", 7, 10, []Segment{{0, 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segments(tt.lineLen, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("Segments(%d, %d) = %v, want %v", tt.lineLen, tt.width, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLogicalToVisual(t *testing.T) {
	src := &fakeSource{lens: []int{25, 0, 7}}
	m := NewMapper(src)

	tests := []struct {
		pos     types.Position
		wantRow int
		wantCol int
	}{
		{types.Position{Line: 0, Col: 0}, 0, 0},
		{types.Position{Line: 0, Col: 9}, 0, 9},
		{types.Position{Line: 0, Col: 10}, 1, 0},
		{types.Position{Line: 0, Col: 24}, 2, 4},
		// End-of-line at col 25 stays on the last segment.
		{types.Position{Line: 0, Col: 25}, 2, 5},
		// Line 0 occupies rows 0..2, the empty line is row 3.
		{types.Position{Line: 1, Col: 0}, 3, 0},
		{types.Position{Line: 2, Col: 7}, 4, 7},
	}
	for _, tt := range tests {
		row, col := m.LogicalToVisual(tt.pos, 10)
		if row != tt.wantRow || col != tt.wantCol {
			t.Errorf("LogicalToVisual(%v) = (%d, %d), want (%d, %d)",
				tt.pos, row, col, tt.wantRow, tt.wantCol)
		}
	}
}

func TestVisualToLogical(t *testing.T) {
	src := &fakeSource{lens: []int{25, 0, 7}}
	m := NewMapper(src)

	tests := []struct {
		row, col int
		want     types.Position
	}{
		{0, 0, types.Position{Line: 0, Col: 0}},
		{1, 3, types.Position{Line: 0, Col: 13}},
		{2, 4, types.Position{Line: 0, Col: 24}},
		// Column past the segment clamps to the segment end.
		{2, 99, types.Position{Line: 0, Col: 25}},
		{3, 5, types.Position{Line: 1, Col: 0}},
		{4, 2, types.Position{Line: 2, Col: 2}},
		// Row past the document clamps to the last position.
		{99, 0, types.Position{Line: 2, Col: 7}},
	}
	for _, tt := range tests {
		got := m.VisualToLogical(tt.row, tt.col, 0, 10)
		if got != tt.want {
			t.Errorf("VisualToLogical(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestRoundTripMultiByte(t *testing.T) {
	// "héllo wörld, ünïcode tëxt" is 25 runes; rune indexing means the
	// multi-byte characters behave exactly like ASCII here.
	line := []rune("héllo wörld, ünïcode tëxt")
	src := &fakeSource{lens: []int{len(line)}}
	m := NewMapper(src)

	for col := 0; col <= len(line); col++ {
		pos := types.Position{Line: 0, Col: col}
		row, vcol := m.LogicalToVisual(pos, 10)
		back := m.VisualToLogical(row, vcol, 0, 10)
		if back != pos {
			t.Errorf("round trip col %d: got %v via (%d, %d)", col, back, row, vcol)
		}
	}
}

func TestCacheInvalidation(t *testing.T) {
	src := &fakeSource{lens: []int{20}}
	m := NewMapper(src)

	if got := m.VisualLineCount(0, 10); got != 2 {
		t.Fatalf("VisualLineCount = %d, want 2", got)
	}
	// Same version, different width: cache must not leak across widths.
	if got := m.VisualLineCount(0, 5); got != 4 {
		t.Errorf("VisualLineCount at width 5 = %d, want 4", got)
	}
	// Simulate an edit: length and version change together.
	src.lens[0] = 30
	src.version++
	if got := m.VisualLineCount(0, 10); got != 3 {
		t.Errorf("VisualLineCount after edit = %d, want 3", got)
	}
}

func TestVisualToLogicalFromTopLine(t *testing.T) {
	src := &fakeSource{lens: []int{25, 0, 7}}
	m := NewMapper(src)

	// Row 0 counted from topLine 1 is the empty line.
	if got := m.VisualToLogical(0, 0, 1, 10); got != (types.Position{Line: 1, Col: 0}) {
		t.Errorf("VisualToLogical from topLine 1 = %v", got)
	}
	if got := m.VisualToLogical(1, 3, 1, 10); got != (types.Position{Line: 2, Col: 3}) {
		t.Errorf("VisualToLogical row 1 from topLine 1 = %v", got)
	}
}
