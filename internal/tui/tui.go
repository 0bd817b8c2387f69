// Package tui owns the terminal screen: lifecycle, the document draw
// pass and cursor placement. Everything above it talks in logical
// positions; byte/cell geometry stays inside this package.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/scribe-editor/scribe/internal/theme"
)

// TUI wraps the tcell screen behind the operations the editor needs.
type TUI struct {
	screen tcell.Screen
}

// New allocates and initializes the terminal screen, painting it with
// the active theme's default style.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(theme.Current().GetStyle("Default"))
	return &TUI{screen: s}, nil
}

// NewFromScreen wraps an already-initialized screen. Tests use this with
// tcell's simulation screen.
func NewFromScreen(s tcell.Screen) *TUI {
	return &TUI{screen: s}
}

// Close releases the terminal. Safe on a nil screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent blocks for the next terminal event; nil after Close.
func (t *TUI) PollEvent() tcell.Event { return t.screen.PollEvent() }

// Clear wipes the back buffer.
func (t *TUI) Clear() { t.screen.Clear() }

// Show flushes pending cells to the terminal.
func (t *TUI) Show() { t.screen.Show() }

// Sync forces a full repaint, needed after a resize.
func (t *TUI) Sync() { t.screen.Sync() }

// Size returns the terminal dimensions in cells.
func (t *TUI) Size() (int, int) { return t.screen.Size() }

// ShowCursor places the hardware cursor.
func (t *TUI) ShowCursor(x, y int) { t.screen.ShowCursor(x, y) }

// HideCursor removes the hardware cursor from view.
func (t *TUI) HideCursor() { t.screen.HideCursor() }

// GetScreen exposes the screen for components that draw themselves,
// like the status bar.
func (t *TUI) GetScreen() tcell.Screen { return t.screen }
