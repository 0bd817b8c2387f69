package cursor

import (
	"testing"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/types"
)

type editorStub struct {
	buf buffer.Buffer
}

func (e *editorStub) GetBuffer() buffer.Buffer { return e.buf }
func (e *editorStub) ScrollOff() int           { return 0 }

func newEditor(t *testing.T, lines ...string) *editorStub {
	t.Helper()
	b := buffer.NewRuneBuffer()
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l
	}
	if _, err := b.Insert(types.Position{Line: 0, Col: 0}, text); err != nil {
		t.Fatalf("seed insert: %v", err)
	}
	return &editorStub{buf: b}
}

func TestSetPositionClamps(t *testing.T) {
	m := NewManager(newEditor(t, "short", "a much longer line"))
	m.SetPosition(types.Position{Line: 99, Col: 99})
	if got := m.GetPosition(); got != (types.Position{Line: 1, Col: 18}) {
		t.Errorf("position = %v", got)
	}
	m.SetPosition(types.Position{Line: -5, Col: -5})
	if got := m.GetPosition(); got != (types.Position{Line: 0, Col: 0}) {
		t.Errorf("position = %v", got)
	}
}

func TestHorizontalMoveWrapsLines(t *testing.T) {
	m := NewManager(newEditor(t, "ab", "cd"))
	m.SetPosition(types.Position{Line: 0, Col: 2})
	m.Move(0, 1)
	if got := m.GetPosition(); got != (types.Position{Line: 1, Col: 0}) {
		t.Errorf("right at EOL: position = %v", got)
	}
	m.Move(0, -1)
	if got := m.GetPosition(); got != (types.Position{Line: 0, Col: 2}) {
		t.Errorf("left at BOL: position = %v", got)
	}
}

func TestVerticalMoveKeepsStickyColumn(t *testing.T) {
	m := NewManager(newEditor(t, "a long enough line", "ab", "another long line"))
	m.SetPosition(types.Position{Line: 0, Col: 10})
	m.Move(1, 0)
	if got := m.GetPosition(); got != (types.Position{Line: 1, Col: 2}) {
		t.Errorf("after down: position = %v", got)
	}
	m.Move(1, 0)
	if got := m.GetPosition(); got != (types.Position{Line: 2, Col: 10}) {
		t.Errorf("sticky column lost: position = %v", got)
	}
}

func TestAddAboveBelowClampAndDedupe(t *testing.T) {
	m := NewManager(newEditor(t, "0123456789", "ab", "0123456789"))
	m.SetPosition(types.Position{Line: 1, Col: 2})

	if !m.AddAbove() {
		t.Fatal("AddAbove failed")
	}
	if !m.AddBelow() {
		t.Fatal("AddBelow failed")
	}
	all := m.All()
	want := []types.Position{{Line: 0, Col: 2}, {Line: 1, Col: 2}, {Line: 2, Col: 2}}
	if len(all) != len(want) {
		t.Fatalf("All() = %v", all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("All()[%d] = %v, want %v", i, all[i], want[i])
		}
	}

	// The same position must not be added twice.
	if m.AddAbove() && len(m.All()) != 3 {
		t.Errorf("duplicate cursor added: %v", m.All())
	}
}

func TestAddAboveAtTopIsNoOp(t *testing.T) {
	m := NewManager(newEditor(t, "abc", "def"))
	m.SetPosition(types.Position{Line: 0, Col: 1})
	if m.AddAbove() {
		t.Errorf("AddAbove at the first line should be a no-op")
	}
	if m.HasExtra() {
		t.Errorf("extra cursors = %v", m.Extra())
	}
}

func TestAddCursorClampsToShortLine(t *testing.T) {
	m := NewManager(newEditor(t, "0123456789", "ab"))
	m.SetPosition(types.Position{Line: 0, Col: 8})
	if !m.AddBelow() {
		t.Fatal("AddBelow failed")
	}
	extra := m.Extra()
	if len(extra) != 1 || extra[0] != (types.Position{Line: 1, Col: 2}) {
		t.Errorf("extra = %v, want [(1,2)]", extra)
	}
}

func TestClearExtraCollapses(t *testing.T) {
	m := NewManager(newEditor(t, "abc", "def", "ghi"))
	m.SetPosition(types.Position{Line: 1, Col: 0})
	m.AddAbove()
	m.AddBelow()
	m.ClearExtra()
	if m.HasExtra() {
		t.Errorf("extra cursors remain after ClearExtra")
	}
	if got := len(m.All()); got != 1 {
		t.Errorf("All() has %d cursors, want 1", got)
	}
}

func TestSetExtraNormalizes(t *testing.T) {
	m := NewManager(newEditor(t, "abcdef", "ghijkl"))
	m.SetPosition(types.Position{Line: 0, Col: 1})
	m.SetExtra([]types.Position{
		{Line: 1, Col: 3},
		{Line: 1, Col: 3},         // duplicate
		{Line: 0, Col: 1},         // collides with primary
		{Line: 1, Col: 99},        // clamps to line end, 6
	})
	extra := m.Extra()
	want := []types.Position{{Line: 1, Col: 3}, {Line: 1, Col: 6}}
	if len(extra) != len(want) {
		t.Fatalf("extra = %v, want %v", extra, want)
	}
	for i := range want {
		if extra[i] != want[i] {
			t.Errorf("extra[%d] = %v, want %v", i, extra[i], want[i])
		}
	}
}
