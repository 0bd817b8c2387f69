package highlight

import (
	"testing"
)

func TestLanguageForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"/src/pkg/util.go", "go"},
		{"script.py", "python"},
		{"app.js", "javascript"},
		{"data.json", "javascript"},
		{"lib.rs", "rust"},
		{"notes.txt", ""},
		{"Makefile", ""},
		{"", ""},
	}
	for _, tt := range tests {
		lang := LanguageForFile(tt.path)
		switch {
		case tt.want == "" && lang != nil:
			t.Errorf("LanguageForFile(%q) = %q, want nil", tt.path, lang.Name)
		case tt.want != "" && lang == nil:
			t.Errorf("LanguageForFile(%q) = nil, want %q", tt.path, tt.want)
		case tt.want != "" && lang.Name != tt.want:
			t.Errorf("LanguageForFile(%q) = %q, want %q", tt.path, lang.Name, tt.want)
		}
	}
}

func TestStyleForCapture(t *testing.T) {
	tests := []struct {
		capture string
		want    string
	}{
		{"keyword", "keyword"},
		{"keyword.control", "keyword"},
		{"@function.builtin", "function"},
		{"string", "string"},
	}
	for _, tt := range tests {
		if got := styleForCapture(tt.capture); got != tt.want {
			t.Errorf("styleForCapture(%q) = %q, want %q", tt.capture, got, tt.want)
		}
	}
}

func TestByteColToRuneCol(t *testing.T) {
	// "héllo": h=1 byte, é=2 bytes.
	line := "héllo"
	tests := []struct {
		byteCol int
		want    int
	}{
		{0, 0},
		{1, 1},
		{3, 2}, // past the 2-byte é
		{len(line), 5},
		{100, 5}, // clamped
		{-1, 0},
	}
	for _, tt := range tests {
		if got := byteColToRuneCol(line, tt.byteCol); got != tt.want {
			t.Errorf("byteColToRuneCol(%q, %d) = %d, want %d", line, tt.byteCol, got, tt.want)
		}
	}
}
