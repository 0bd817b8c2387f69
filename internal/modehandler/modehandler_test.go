package modehandler

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/config"
	"github.com/scribe-editor/scribe/internal/core"
	"github.com/scribe-editor/scribe/internal/event"
	"github.com/scribe-editor/scribe/internal/input"
	"github.com/scribe-editor/scribe/internal/statusbar"
	"github.com/scribe-editor/scribe/internal/types"
)

func newTestHandler(t *testing.T, content string) (*ModeHandler, *core.Editor) {
	t.Helper()
	buf := buffer.NewRuneBuffer()
	if err := buf.Load(""); err != nil {
		t.Fatal(err)
	}
	if content != "" {
		if _, err := buf.Insert(types.Position{}, content); err != nil {
			t.Fatal(err)
		}
	}
	ed := core.NewEditor(buf, config.EditorConfig{TabWidth: 4, HistoryLimit: 100})
	ed.SetViewSize(80, 24)
	events := event.NewManager()
	ed.SetEventManager(events)
	mh := New(Config{
		Editor:         ed,
		StatusBar:      statusbar.New(statusbar.DefaultConfig()),
		EventManager:   events,
		InputProcessor: input.NewInputProcessor(),
		QuitSignal:     make(chan struct{}),
	})
	return mh, ed
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func TestPlainNavigationCollapsesExtraCursors(t *testing.T) {
	mh, ed := newTestHandler(t, "alpha\nbravo\ncharlie")
	ed.SetCursor(types.Position{Line: 0, Col: 2})
	ed.AddCursorBelow()
	ed.AddCursorBelow()
	if got := len(ed.AllCursors()); got != 3 {
		t.Fatalf("setup: %d cursors, want 3", got)
	}

	mh.HandleKeyEvent(key(tcell.KeyDown, tcell.ModNone))

	if got := len(ed.AllCursors()); got != 1 {
		t.Errorf("after plain navigation: %d cursors, want 1", got)
	}
}

func TestHomeAndEndCollapseExtraCursors(t *testing.T) {
	mh, ed := newTestHandler(t, "alpha\nbravo\ncharlie")
	ed.SetCursor(types.Position{Line: 1, Col: 2})
	ed.AddCursorBelow()
	mh.HandleKeyEvent(key(tcell.KeyEnd, tcell.ModNone))
	if got := len(ed.AllCursors()); got != 1 {
		t.Errorf("after End: %d cursors, want 1", got)
	}

	ed.AddCursorBelow()
	mh.HandleKeyEvent(key(tcell.KeyHome, tcell.ModNone))
	if got := len(ed.AllCursors()); got != 1 {
		t.Errorf("after Home: %d cursors, want 1", got)
	}
}

func TestTypingKeepsExtraCursors(t *testing.T) {
	mh, ed := newTestHandler(t, "one\ntwo\nthree")
	ed.SetCursor(types.Position{Line: 0, Col: 0})
	ed.AddCursorBelow()
	ed.AddCursorBelow()

	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	if got := len(ed.AllCursors()); got != 3 {
		t.Errorf("after fan-out insert: %d cursors, want 3", got)
	}
	for line := 0; line < 3; line++ {
		text, err := ed.GetBuffer().LineString(line)
		if err != nil {
			t.Fatal(err)
		}
		if text[0] != 'x' {
			t.Errorf("line %d = %q, want leading 'x'", line, text)
		}
	}
}

func TestSelectionMovementThenPlainMove(t *testing.T) {
	mh, ed := newTestHandler(t, "alpha\nbravo")
	ed.SetCursor(types.Position{Line: 0, Col: 0})

	mh.HandleKeyEvent(key(tcell.KeyRight, tcell.ModShift))
	if !ed.HasSelection() {
		t.Fatal("shift+right should start a selection")
	}

	mh.HandleKeyEvent(key(tcell.KeyRight, tcell.ModNone))
	if ed.HasSelection() {
		t.Errorf("plain navigation should drop the selection")
	}
}
