package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// ModKeymap maps keys combined with a modifier mask to actions.
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell key events into ActionEvents. Mode
// interpretation happens downstream: the processor only names the
// intent.
type InputProcessor struct {
	keymap    Keymap
	modKeymap ModKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionCancel
	p.keymap[tcell.KeyF3] = ActionFindNext

	ctrl := make(Keymap)
	ctrl[tcell.KeyCtrlS] = ActionSave
	ctrl[tcell.KeyCtrlQ] = ActionQuit
	ctrl[tcell.KeyCtrlC] = ActionCopy
	ctrl[tcell.KeyCtrlX] = ActionCut
	ctrl[tcell.KeyCtrlV] = ActionPaste
	ctrl[tcell.KeyCtrlZ] = ActionUndo
	ctrl[tcell.KeyCtrlY] = ActionRedo
	ctrl[tcell.KeyCtrlA] = ActionSelectAll
	ctrl[tcell.KeyCtrlF] = ActionEnterFindMode
	ctrl[tcell.KeyCtrlR] = ActionEnterReplaceMode
	ctrl[tcell.KeyCtrlG] = ActionFindNext
	ctrl[tcell.KeyCtrlW] = ActionDeleteWordBackward
	ctrl[tcell.KeyDelete] = ActionDeleteWordForward
	p.modKeymap[tcell.ModCtrl] = ctrl

	shift := make(Keymap)
	shift[tcell.KeyUp] = ActionSelectUp
	shift[tcell.KeyDown] = ActionSelectDown
	shift[tcell.KeyLeft] = ActionSelectLeft
	shift[tcell.KeyRight] = ActionSelectRight
	shift[tcell.KeyF3] = ActionFindPrev
	p.modKeymap[tcell.ModShift] = shift

	alt := make(Keymap)
	alt[tcell.KeyUp] = ActionAddCursorAbove
	alt[tcell.KeyDown] = ActionAddCursorBelow
	p.modKeymap[tcell.ModAlt] = alt

	altShift := make(Keymap)
	altShift[tcell.KeyUp] = ActionSelectBlockUp
	altShift[tcell.KeyDown] = ActionSelectBlockDown
	altShift[tcell.KeyLeft] = ActionSelectBlockLeft
	altShift[tcell.KeyRight] = ActionSelectBlockRight
	p.modKeymap[tcell.ModAlt|tcell.ModShift] = altShift
}

// ProcessEvent decodes one key event. Plain runes fall through to
// ActionInsertRune.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if modMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// tcell reports Ctrl+letter as a dedicated key with ModCtrl set; once
	// the modifier lookup failed, drop the implied bit so the plain map
	// can match.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	return ActionEvent{Action: ActionUnknown}
}
