package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
	"github.com/scribe-editor/scribe/internal/logger"
)

// tomlStyle is one style definition in a theme file. Pointer fields
// distinguish "unset" from an explicit false.
type tomlStyle struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

type tomlTheme struct {
	Name   string               `toml:"name"`
	IsDark bool                 `toml:"is_dark"`
	Styles map[string]tomlStyle `toml:"styles"`
}

// LoadFile parses a TOML theme file. Styles inherit unset attributes
// from the file's Default style; unparsable styles are skipped with a
// warning.
func LoadFile(path string) (*Theme, error) {
	var decoded tomlTheme
	metadata, err := toml.DecodeFile(path, &decoded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("theme file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to parse theme file %q: %w", path, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("theme: unrecognized keys in %q: %v", path, undecoded)
	}

	if decoded.Name == "" {
		decoded.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	t := &Theme{
		Name:   decoded.Name,
		IsDark: decoded.IsDark,
		Styles: make(map[string]tcell.Style),
	}

	base := tcell.StyleDefault
	if def, ok := decoded.Styles["Default"]; ok {
		parsed, err := convertStyle(def, tcell.StyleDefault)
		if err != nil {
			logger.Warnf("theme %q: bad Default style: %v", t.Name, err)
		} else {
			base = parsed
		}
	}
	t.Styles["Default"] = base

	for name, def := range decoded.Styles {
		if name == "Default" {
			continue
		}
		style, err := convertStyle(def, base)
		if err != nil {
			logger.Warnf("theme %q: skipping style %q: %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}
	logger.Debugf("theme: loaded %q from %s", t.Name, path)
	return t, nil
}

func convertStyle(def tomlStyle, base tcell.Style) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		color, err := parseColor(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("foreground: %w", err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColor(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("background: %w", err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColor accepts #RRGGBB hex codes and the keywords "reset" and
// "default".
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color %q, want #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	default:
		return tcell.ColorDefault, fmt.Errorf("unknown color %q", s)
	}
}
