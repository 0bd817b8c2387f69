package highlight

import (
	"context"
	"sync"
	"time"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/logger"
)

// DebounceDuration is how long after the last change a re-parse waits.
const DebounceDuration = 65 * time.Millisecond

// EditorInterface is the slice of the editor the manager needs.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
}

// Manager re-parses the document in the background after edits, with
// debouncing, and hands the draw pass the latest computed spans.
type Manager struct {
	editor      EditorInterface
	highlighter *Highlighter
	appRedraw   func()

	mu      sync.Mutex
	lang    *Language
	timer   *time.Timer
	cancel  context.CancelFunc
	running bool
	dirty   bool
	pending string // document snapshot taken on the editing thread

	spansMu sync.RWMutex
	spans   Result
}

// NewManager creates a highlight manager. redrawFunc is called after a
// parse finishes so the app repaints with the fresh spans.
func NewManager(editor EditorInterface, redrawFunc func()) *Manager {
	return &Manager{
		editor:      editor,
		highlighter: NewHighlighter(),
		appRedraw:   redrawFunc,
	}
}

// SetFile selects the language for the given path and schedules an
// initial parse. An unrecognized extension clears the spans.
func (m *Manager) SetFile(path string) {
	m.mu.Lock()
	m.lang = LanguageForFile(path)
	lang := m.lang
	m.mu.Unlock()

	if lang == nil {
		logger.Debugf("highlight: no language for %q", path)
		m.setSpans(nil)
		return
	}
	logger.Debugf("highlight: using %s for %q", lang.Name, path)
	m.NotifyChange()
}

// NotifyChange snapshots the document, marks it dirty and resets the
// debounce timer. Must be called on the editing thread: the snapshot is
// the only buffer read the highlight pipeline ever makes, so the timer
// and parse goroutines never touch live document state.
func (m *Manager) NotifyChange() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lang == nil {
		return
	}
	m.pending = m.editor.GetBuffer().Contents()
	m.dirty = true
	m.scheduleLocked()
}

// scheduleLocked arms or resets the debounce timer. Caller holds mu.
func (m *Manager) scheduleLocked() {
	if m.timer != nil {
		m.timer.Reset(DebounceDuration)
		return
	}
	m.timer = time.AfterFunc(DebounceDuration, m.runUpdate)
}

// SpansForLine returns the computed spans for one line, or nil.
func (m *Manager) SpansForLine(line int) []StyledSpan {
	m.spansMu.RLock()
	defer m.spansMu.RUnlock()
	return m.spans[line]
}

func (m *Manager) setSpans(r Result) {
	m.spansMu.Lock()
	m.spans = r
	m.spansMu.Unlock()
}

// runUpdate fires when the debounce timer expires. If a parse is already
// running the dirty flag makes it re-run on completion.
func (m *Manager) runUpdate() {
	m.mu.Lock()
	m.timer = nil
	if m.running || !m.dirty || m.lang == nil {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.dirty = false
	lang := m.lang
	source := m.pending
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mu.Unlock()

	go func() {
		result, err := m.highlighter.Highlight(ctx, source, lang)
		interrupted := ctx.Err() != nil
		cancel()

		m.mu.Lock()
		m.running = false
		m.cancel = nil
		rerun := m.dirty
		m.mu.Unlock()

		switch {
		case interrupted:
			logger.Debugf("highlight: parse cancelled")
		case err != nil:
			logger.Warnf("highlight: background parse failed: %v", err)
			m.setSpans(nil)
			m.appRedraw()
		default:
			m.setSpans(result)
			m.appRedraw()
		}
		if rerun {
			// A newer snapshot arrived while parsing; reschedule without
			// re-reading the buffer from this goroutine.
			m.mu.Lock()
			if m.lang != nil {
				m.scheduleLocked()
			}
			m.mu.Unlock()
		}
	}()
}

// Shutdown stops the timer and cancels any running parse.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
