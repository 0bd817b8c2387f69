package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/config"
	"github.com/scribe-editor/scribe/internal/core"
	"github.com/scribe-editor/scribe/internal/types"
)

func newSimTUI(t *testing.T, width, height int) *TUI {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(width, height)
	tui := NewFromScreen(s)
	t.Cleanup(tui.Close)
	return tui
}

func newTestEditor(t *testing.T, content string, width, height int) *core.Editor {
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
	ed := core.NewEditor(buf, config.EditorConfig{TabWidth: 4, HistoryLimit: 10})
	ed.SetViewSize(width, height-1)
	return ed
}

func cellRune(t *TUI, x, y int) rune {
	mainc, _, _, _ := t.GetScreen().GetContent(x, y)
	return mainc
}

func TestDrawBufferRendersTextAndGutter(t *testing.T) {
	tm := newSimTUI(t, 20, 5)
	ed := newTestEditor(t, "hello\nworld", 20, 5)

	DrawBuffer(tm, ed, nil, true)
	tm.Show()

	// Two lines: one digit plus padding, text starts at column 2.
	if got := cellRune(tm, 0, 0); got != '1' {
		t.Errorf("gutter cell (0,0) = %q, want '1'", got)
	}
	if got := cellRune(tm, 2, 0); got != 'h' {
		t.Errorf("text cell (2,0) = %q, want 'h'", got)
	}
	if got := cellRune(tm, 0, 1); got != '2' {
		t.Errorf("gutter cell (0,1) = %q, want '2'", got)
	}
	if got := cellRune(tm, 2, 1); got != 'w' {
		t.Errorf("text cell (2,1) = %q, want 'w'", got)
	}
}

func TestDrawBufferWrapsLongLines(t *testing.T) {
	tm := newSimTUI(t, 8, 5)
	// Text area is 8-2=6 columns; twelve runes wrap onto two rows.
	ed := newTestEditor(t, "abcdefghijkl", 8, 5)

	DrawBuffer(tm, ed, nil, true)
	tm.Show()

	if got := cellRune(tm, 2, 0); got != 'a' {
		t.Errorf("first segment cell = %q, want 'a'", got)
	}
	if got := cellRune(tm, 2, 1); got != 'g' {
		t.Errorf("second segment cell = %q, want 'g'", got)
	}
	// Continuation rows keep the gutter blank.
	if got := cellRune(tm, 0, 1); got != ' ' {
		t.Errorf("continuation gutter cell = %q, want blank", got)
	}
}

func TestDrawBufferTruncatesWhenWrapDisabled(t *testing.T) {
	tm := newSimTUI(t, 8, 5)
	ed := newTestEditor(t, "abcdefghijkl\nnext", 8, 5)

	DrawBuffer(tm, ed, nil, false)
	tm.Show()

	// The long line stays on one row; the second logical line follows.
	if got := cellRune(tm, 2, 1); got != 'n' {
		t.Errorf("row 1 cell = %q, want 'n' (no wrap)", got)
	}
}

func TestDrawCursorPlacement(t *testing.T) {
	tm := newSimTUI(t, 20, 5)
	ed := newTestEditor(t, "hello\nworld", 20, 5)
	ed.SetCursor(types.Position{Line: 1, Col: 3})

	DrawCursor(tm, ed, true)
	tm.Show()

	x, y, visible := tm.GetScreen().(tcell.SimulationScreen).GetCursor()
	if !visible {
		t.Fatal("cursor should be visible")
	}
	if x != 5 || y != 1 {
		t.Errorf("cursor at (%d,%d), want (5,1)", x, y)
	}
}

func TestGutterWidth(t *testing.T) {
	tests := []struct {
		lines, screen, want int
	}{
		{1, 80, 2},
		{9, 80, 2},
		{10, 80, 3},
		{100, 80, 4},
		{5, 2, 0}, // too narrow for a gutter
	}
	for _, tt := range tests {
		if got := gutterWidth(tt.lines, tt.screen); got != tt.want {
			t.Errorf("gutterWidth(%d, %d) = %d, want %d", tt.lines, tt.screen, got, tt.want)
		}
	}
}
