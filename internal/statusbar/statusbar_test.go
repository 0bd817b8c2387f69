package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/scribe-editor/scribe/internal/types"
)

func displayText(sb *StatusBar) string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.defaultDisplayText()
}

func TestDefaultDisplayText(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetFileInfo("/tmp/notes.txt", false)
	sb.SetCursorInfo(types.Position{Line: 4, Col: 9}, 1)

	text := displayText(sb)
	if !strings.Contains(text, "/tmp/notes.txt") {
		t.Errorf("missing file path: %q", text)
	}
	// Positions display 1-based.
	if !strings.Contains(text, "Line: 5, Col: 10") {
		t.Errorf("wrong cursor position: %q", text)
	}
	if strings.Contains(text, "[Modified]") {
		t.Errorf("unmodified buffer shows [Modified]: %q", text)
	}
	if strings.Contains(text, "cursors") {
		t.Errorf("single cursor shows cursor count: %q", text)
	}
}

func TestDisplayTextUnnamedFile(t *testing.T) {
	sb := New(DefaultConfig())
	if text := displayText(sb); !strings.Contains(text, "[No Name]") {
		t.Errorf("empty path should show [No Name]: %q", text)
	}
}

func TestDisplayTextModifiedAndCursors(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetFileInfo("a.go", true)
	sb.SetCursorInfo(types.Position{}, 3)

	text := displayText(sb)
	if !strings.Contains(text, "[Modified]") {
		t.Errorf("missing modified marker: %q", text)
	}
	if !strings.Contains(text, "(3 cursors)") {
		t.Errorf("missing cursor count: %q", text)
	}
}

func TestDisplayTextSearchStats(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetSearchStats(2, 7, true)
	if text := displayText(sb); !strings.Contains(text, "match 2/7") {
		t.Errorf("missing search stats: %q", text)
	}

	sb.SetSearchStats(0, 0, false)
	if text := displayText(sb); strings.Contains(text, "match") {
		t.Errorf("inactive search still shown: %q", text)
	}
}

func TestDisplayTextMode(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetEditorMode("FIND")
	if text := displayText(sb); !strings.Contains(text, "-- FIND") {
		t.Errorf("missing mode: %q", text)
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	sb := New(Config{MessageTimeout: 10 * time.Millisecond})
	sb.SetTemporaryMessage("saved %d bytes", 42)

	sb.mu.Lock()
	if sb.tempMessage != "saved 42 bytes" {
		t.Errorf("tempMessage = %q", sb.tempMessage)
	}
	active := time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	sb.mu.Unlock()
	if !active {
		t.Errorf("fresh message should be active")
	}

	time.Sleep(20 * time.Millisecond)
	sb.mu.Lock()
	active = time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	sb.mu.Unlock()
	if active {
		t.Errorf("message should have expired")
	}
}

func TestPromptState(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetPrompt("/", "needle")

	sb.mu.Lock()
	if !sb.promptActive || sb.prompt != "/" || sb.promptInput != "needle" {
		t.Errorf("prompt state = %v %q %q", sb.promptActive, sb.prompt, sb.promptInput)
	}
	sb.mu.Unlock()

	sb.ClearPrompt()
	sb.mu.Lock()
	if sb.promptActive {
		t.Errorf("prompt still active after ClearPrompt")
	}
	sb.mu.Unlock()
}
