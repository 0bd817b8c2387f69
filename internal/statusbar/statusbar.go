// Package statusbar renders the single status line: file info, cursor
// position, search statistics, mode prompts and temporary messages.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"github.com/scribe-editor/scribe/internal/theme"
	"github.com/scribe-editor/scribe/internal/types"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{MessageTimeout: 4 * time.Second}
}

// StatusBar holds the state shown on the status line. All setters are
// safe for concurrent use; Draw reads a consistent snapshot.
type StatusBar struct {
	config Config
	mu     sync.Mutex

	filePath    string
	cursorPos   types.Position
	cursorCount int
	isModified  bool
	editorMode  string

	// Search state: 1-based index of the current match and total count.
	searchCurrent int
	searchTotal   int
	searchActive  bool

	// Prompt state: when promptActive, the bar shows prompt+input with a
	// trailing cursor cell instead of the default text.
	prompt       string
	promptInput  string
	promptActive bool

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a status bar.
func New(config Config) *StatusBar {
	return &StatusBar{config: config}
}

// SetFileInfo updates the file path and modified indicator.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the primary cursor position and cursor count.
func (sb *StatusBar) SetCursorInfo(pos types.Position, count int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.cursorCount = count
}

// SetEditorMode updates the displayed mode name.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetSearchStats updates the match counter. Zero total with an empty
// pattern hides the counter.
func (sb *StatusBar) SetSearchStats(current, total int, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.searchCurrent = current
	sb.searchTotal = total
	sb.searchActive = active
}

// SetPrompt shows an interactive input prompt (find/replace entry).
func (sb *StatusBar) SetPrompt(prompt, input string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = prompt
	sb.promptInput = input
	sb.promptActive = true
}

// ClearPrompt returns the bar to its default display.
func (sb *StatusBar) ClearPrompt() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptActive = false
	sb.prompt = ""
	sb.promptInput = ""
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// defaultDisplayText builds the normal status line. Caller holds the lock.
func (sb *StatusBar) defaultDisplayText() string {
	path := sb.filePath
	if path == "" {
		path = "[No Name]"
	}
	modified := ""
	if sb.isModified {
		modified = " [Modified]"
	}
	mode := ""
	if sb.editorMode != "" {
		mode = fmt.Sprintf(" -- %s", sb.editorMode)
	}
	cursors := ""
	if sb.cursorCount > 1 {
		cursors = fmt.Sprintf(" (%d cursors)", sb.cursorCount)
	}
	search := ""
	if sb.searchActive {
		search = fmt.Sprintf(" -- match %d/%d", sb.searchCurrent, sb.searchTotal)
	}
	return fmt.Sprintf("%s%s -- Line: %d, Col: %d%s%s%s",
		path, modified, sb.cursorPos.Line+1, sb.cursorPos.Col+1, cursors, search, mode)
}

// Draw renders the status bar on the bottom screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	t := theme.Current()

	sb.mu.Lock()
	tempActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !tempActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var style tcell.Style
	var text string
	promptActive := sb.promptActive
	switch {
	case promptActive:
		text = sb.prompt + sb.promptInput
		style = t.GetStyle("StatusBarFind")
	case tempActive:
		text = sb.tempMessage
		style = t.GetStyle("StatusBarMessage")
	case sb.isModified:
		text = sb.defaultDisplayText()
		style = t.GetStyle("StatusBarModified")
	default:
		text = sb.defaultDisplayText()
		style = t.GetStyle("StatusBar")
	}
	sb.mu.Unlock()

	// Long lines (deep file paths, verbose messages) get an ellipsis
	// rather than a hard cut mid-cell. The prompt keeps its tail visible
	// instead, so the input cursor never scrolls off screen.
	if promptActive {
		if w := runewidth.StringWidth(text); w >= width {
			text = runewidth.TruncateLeft(text, w-width+2, "…")
		}
	} else {
		text = runewidth.Truncate(text, width, "…")
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	// Grapheme-aware drawing so wide and combining characters keep their
	// visual width.
	gr := uniseg.NewGraphemes(text)
	x := 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			var combining []rune
			if len(runes) > 1 {
				combining = runes[1:]
			}
			screen.SetContent(x, y, runes[0], combining, style)
		}
		x += w
	}

	// A visible input cursor cell at the end of an active prompt.
	if promptActive && x < width {
		screen.SetContent(x, y, ' ', nil, style.Reverse(true))
	}
}
