// Package theme maps style names to tcell styles. The built-in dark
// theme is always available; TOML files can replace it.
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/scribe-editor/scribe/internal/logger"
)

// Theme is a named set of styles keyed by style name.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name with fallbacks: exact name, then the
// part before the first dot, then "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			return style
		}
	}
	if style, ok := t.Styles["Default"]; ok {
		return style
	}
	return tcell.StyleDefault
}

// Default is the built-in dark theme.
var Default Theme

func init() {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	comment := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)

	Default = Theme{
		Name:   "Scribe Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":         base,
			"Selection":       base.Reverse(true),
			"SearchHighlight": tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
			"SearchCurrent":   tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack),
			"MultiCursor":     base.Reverse(true).Underline(true),

			"StatusBar":         tcell.StyleDefault.Background(background).Foreground(foreground),
			"StatusBarModified": tcell.StyleDefault.Background(background).Foreground(yellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(background).Foreground(foreground).Bold(true),
			"StatusBarFind":     tcell.StyleDefault.Background(background).Foreground(green).Bold(true),

			"keyword":   base.Foreground(blue).Bold(true),
			"string":    base.Foreground(green),
			"comment":   base.Foreground(comment).Italic(true),
			"number":    base.Foreground(orange),
			"constant":  base.Foreground(orange),
			"type":      base.Foreground(cyan),
			"namespace": base.Foreground(cyan),
			"function":  base.Foreground(yellow),
			"property":  base.Foreground(foreground),
		},
	}
	current = &Default
}

var current *Theme

// Current returns the active theme.
func Current() *Theme {
	return current
}

// SetCurrent switches the active theme.
func SetCurrent(t *Theme) {
	if t != nil {
		current = t
		logger.Infof("theme: switched to %s", t.Name)
	}
}
