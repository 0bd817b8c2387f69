package app

import (
	"path/filepath"
	"testing"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/config"
	"github.com/scribe-editor/scribe/internal/core"
	"github.com/scribe-editor/scribe/internal/core/history"
	"github.com/scribe-editor/scribe/internal/event"
	"github.com/scribe-editor/scribe/internal/highlight"
	"github.com/scribe-editor/scribe/internal/statusbar"
	"github.com/scribe-editor/scribe/internal/types"
)

// newTestApp wires the subset of App that the event subscriptions touch,
// without a terminal.
func newTestApp(t *testing.T) *App {
	t.Helper()
	buf := buffer.NewRuneBuffer()
	if err := buf.Load(""); err != nil {
		t.Fatal(err)
	}
	ed := core.NewEditor(buf, config.EditorConfig{TabWidth: 4, HistoryLimit: 100})
	events := event.NewManager()
	ed.SetEventManager(events)

	a := &App{
		editor:        ed,
		events:        events,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		store:         history.NewFileStoreAt(filepath.Join(t.TempDir(), "doc.scribe")),
		redrawRequest: make(chan struct{}, 1),
		saveRequests:  make(chan *history.Log, 4),
		saverDone:     make(chan struct{}),
	}
	a.highlights = highlight.NewManager(ed, a.requestRedraw)
	a.subscribeEvents()
	return a
}

func TestEditCommitSchedulesHistorySave(t *testing.T) {
	a := newTestApp(t)

	if err := a.editor.Operations().InsertRune('x'); err != nil {
		t.Fatal(err)
	}

	select {
	case snapshot := <-a.saveRequests:
		if len(snapshot.Edits) != 1 {
			t.Errorf("snapshot has %d edits, want 1", len(snapshot.Edits))
		}
	default:
		t.Fatal("committed edit did not schedule a history save")
	}
}

func TestUndoAlsoSchedulesHistorySave(t *testing.T) {
	a := newTestApp(t)
	ops := a.editor.Operations()

	if err := ops.InsertRune('x'); err != nil {
		t.Fatal(err)
	}
	<-a.saveRequests

	undone, err := ops.ApplyUndo()
	if err != nil || !undone {
		t.Fatalf("ApplyUndo = %v, %v", undone, err)
	}
	select {
	case <-a.saveRequests:
	default:
		t.Fatal("undo did not schedule a history save")
	}
}

func TestSaverWritesScheduledSnapshots(t *testing.T) {
	a := newTestApp(t)
	go a.historySaver()

	if err := a.editor.Operations().InsertRune('x'); err != nil {
		t.Fatal(err)
	}
	close(a.saveRequests)
	<-a.saverDone

	log, err := a.store.Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if len(log.Edits) != 1 {
		t.Errorf("persisted log has %d edits, want 1", len(log.Edits))
	}
}

func TestFullQueueDropsSnapshotWithoutBlocking(t *testing.T) {
	a := newTestApp(t)
	ops := a.editor.Operations()

	// No saver draining: the 4-slot queue fills, later commits must not
	// block the editing thread.
	for i := 0; i < 10; i++ {
		if err := ops.InsertRune('x'); err != nil {
			t.Fatal(err)
		}
	}
	if got, _ := a.editor.GetBuffer().LineString(0); got != "xxxxxxxxxx" {
		t.Errorf("line = %q, want ten x's", got)
	}
}

func TestRestoreSessionSkipsUnnamedFile(t *testing.T) {
	a := newTestApp(t)
	a.filePath = ""
	a.store = nil
	a.restoreSession()
	if a.editor.GetCursor() != (types.Position{}) {
		t.Errorf("cursor moved by empty restore")
	}
}
