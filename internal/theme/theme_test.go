package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGetStyleFallbackChain(t *testing.T) {
	th := &Theme{
		Name: "test",
		Styles: map[string]tcell.Style{
			"Default": tcell.StyleDefault.Foreground(tcell.ColorWhite),
			"keyword": tcell.StyleDefault.Foreground(tcell.ColorRed),
		},
	}

	if got := th.GetStyle("keyword"); got != th.Styles["keyword"] {
		t.Errorf("exact lookup failed")
	}
	// "keyword.control" falls back to "keyword".
	if got := th.GetStyle("keyword.control"); got != th.Styles["keyword"] {
		t.Errorf("dotted lookup did not fall back to base name")
	}
	// Unknown names fall back to Default.
	if got := th.GetStyle("nonexistent"); got != th.Styles["Default"] {
		t.Errorf("unknown name did not fall back to Default")
	}
}

func TestGetStyleEmptyTheme(t *testing.T) {
	th := &Theme{Name: "empty", Styles: map[string]tcell.Style{}}
	if got := th.GetStyle("anything"); got != tcell.StyleDefault {
		t.Errorf("empty theme should return tcell.StyleDefault")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"#ff0000", tcell.NewHexColor(0xff0000), false},
		{"#00FF00", tcell.NewHexColor(0x00ff00), false},
		{"  #0000ff  ", tcell.NewHexColor(0x0000ff), false},
		{"reset", tcell.ColorReset, false},
		{"default", tcell.ColorDefault, false},
		{"#fff", 0, true},
		{"#zzzzzz", 0, true},
		{"magenta-ish", 0, true},
	}
	for _, tt := range tests {
		got, err := parseColor(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseColor(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseColor(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoadFileInheritsDefault(t *testing.T) {
	content := `
name = "Test Theme"
is_dark = true

[styles.Default]
fg = "#c0c0c0"
bg = "#101010"

[styles.keyword]
fg = "#ff8800"
bold = true
`
	path := filepath.Join(t.TempDir(), "test.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if th.Name != "Test Theme" {
		t.Errorf("Name = %q, want %q", th.Name, "Test Theme")
	}
	if !th.IsDark {
		t.Errorf("IsDark = false, want true")
	}

	// keyword sets fg and bold but inherits bg from Default.
	fg, bg, attrs := th.Styles["keyword"].Decompose()
	if fg != tcell.NewHexColor(0xff8800) {
		t.Errorf("keyword fg = %v", fg)
	}
	if bg != tcell.NewHexColor(0x101010) {
		t.Errorf("keyword bg = %v, want inherited Default bg", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Errorf("keyword should be bold")
	}
}

func TestLoadFileNameFallsBackToFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solarized.toml")
	if err := os.WriteFile(path, []byte("[styles.Default]\nfg = \"#ffffff\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if th.Name != "solarized" {
		t.Errorf("Name = %q, want %q", th.Name, "solarized")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadFileSkipsBadStyle(t *testing.T) {
	content := `
[styles.Default]
fg = "#ffffff"

[styles.broken]
fg = "not-a-color"

[styles.good]
fg = "#00ff00"
`
	path := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := th.Styles["broken"]; ok {
		t.Errorf("broken style should have been skipped")
	}
	if _, ok := th.Styles["good"]; !ok {
		t.Errorf("good style should have been kept")
	}
}
