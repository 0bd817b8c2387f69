package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEventSpecialKeys(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionMoveUp},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionInsertNewLine},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionDeleteCharBackward},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionCancel},
		{"f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone), ActionFindNext},
		{"shift f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModShift), ActionFindPrev},
		{"shift right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), ActionSelectRight},
		{"alt down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModAlt), ActionAddCursorBelow},
		{"alt shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt|tcell.ModShift), ActionSelectBlockLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ProcessEvent(tt.ev)
			if got.Action != tt.want {
				t.Errorf("ProcessEvent = %v, want %v", got.Action, tt.want)
			}
		})
	}
}

func TestProcessEventCtrlKeys(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		name string
		key  tcell.Key
		want Action
	}{
		{"ctrl+s save", tcell.KeyCtrlS, ActionSave},
		{"ctrl+q quit", tcell.KeyCtrlQ, ActionQuit},
		{"ctrl+f find", tcell.KeyCtrlF, ActionEnterFindMode},
		{"ctrl+r replace", tcell.KeyCtrlR, ActionEnterReplaceMode},
		{"ctrl+z undo", tcell.KeyCtrlZ, ActionUndo},
		{"ctrl+a select all", tcell.KeyCtrlA, ActionSelectAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// tcell reports Ctrl+letter with ModCtrl set.
			got := p.ProcessEvent(tcell.NewEventKey(tt.key, 0, tcell.ModCtrl))
			if got.Action != tt.want {
				t.Errorf("ProcessEvent = %v, want %v", got.Action, tt.want)
			}
		})
	}
}

func TestProcessEventPlainRune(t *testing.T) {
	p := NewInputProcessor()

	got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if got.Action != ActionInsertRune || got.Rune != 'x' {
		t.Errorf("ProcessEvent = %+v, want InsertRune 'x'", got)
	}

	// Shifted runes are still plain text.
	got = p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift))
	if got.Action != ActionInsertRune || got.Rune != 'X' {
		t.Errorf("ProcessEvent = %+v, want InsertRune 'X'", got)
	}
}

func TestProcessEventUnmappedKey(t *testing.T) {
	p := NewInputProcessor()
	got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyF10, 0, tcell.ModNone))
	if got.Action != ActionUnknown {
		t.Errorf("ProcessEvent = %v, want ActionUnknown", got.Action)
	}
}
