// Package app wires the components together and runs the main loop.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/config"
	"github.com/scribe-editor/scribe/internal/core"
	"github.com/scribe-editor/scribe/internal/core/history"
	"github.com/scribe-editor/scribe/internal/event"
	"github.com/scribe-editor/scribe/internal/highlight"
	"github.com/scribe-editor/scribe/internal/input"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/modehandler"
	"github.com/scribe-editor/scribe/internal/statusbar"
	"github.com/scribe-editor/scribe/internal/theme"
	"github.com/scribe-editor/scribe/internal/tui"
)

// App owns the components and the main event/draw loop.
type App struct {
	cfg         *config.Config
	tuiManager  *tui.TUI
	editor      *core.Editor
	statusBar   *statusbar.StatusBar
	events      *event.Manager
	modeHandler *modehandler.ModeHandler
	highlights  *highlight.Manager
	store       *history.FileStore
	filePath    string

	quit          chan struct{}
	termEvents    chan tcell.Event
	redrawRequest chan struct{}
	saveRequests  chan *history.Log
	saverDone     chan struct{}
}

// NewApp builds the application around one file.
func NewApp(filePath string) (*App, error) {
	cfg := config.Get()

	if cfg.Editor.ThemeFile != "" {
		if t, err := theme.LoadFile(cfg.Editor.ThemeFile); err != nil {
			logger.Warnf("app: theme %q unavailable: %v", cfg.Editor.ThemeFile, err)
		} else {
			theme.SetCurrent(t)
		}
	}

	buf := buffer.NewRuneBuffer()
	if err := buf.Load(filePath); err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", filePath, err)
	}

	editor := core.NewEditor(buf, cfg.Editor)
	events := event.NewManager()
	editor.SetEventManager(events)

	statusBar := statusbar.New(statusbar.Config{
		MessageTimeout: config.MessageTimeout,
	})
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		StatusBar:      statusBar,
		EventManager:   events,
		InputProcessor: input.NewInputProcessor(),
		QuitSignal:     quitChan,
		CaseSensitive:  cfg.Editor.CaseSensitiveSearch,
	})

	a := &App{
		cfg:           cfg,
		editor:        editor,
		statusBar:     statusBar,
		events:        events,
		modeHandler:   modeHandler,
		filePath:      filePath,
		quit:          quitChan,
		termEvents:    make(chan tcell.Event),
		redrawRequest: make(chan struct{}, 1),
		saveRequests:  make(chan *history.Log, 4),
		saverDone:     make(chan struct{}),
	}

	a.highlights = highlight.NewManager(editor, a.requestRedraw)
	a.highlights.SetFile(filePath)

	a.restoreSession()
	a.subscribeEvents()
	events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})

	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a.tuiManager = tuiManager
	width, height := tuiManager.Size()
	editor.SetViewSize(width, height-cfg.Editor.StatusBarHeight)

	return a, nil
}

// restoreSession loads the persisted history log for the file, if any.
// A corrupt log degrades to a fresh session with a warning; it never
// blocks opening the file.
func (a *App) restoreSession() {
	if a.filePath == "" {
		return
	}
	store, err := history.NewFileStore(a.filePath)
	if err != nil {
		logger.Warnf("app: history store unavailable: %v", err)
		return
	}
	a.store = store

	log, err := store.Load()
	if err != nil {
		logger.Warnf("app: history log unreadable, starting fresh: %v", err)
		a.statusBar.SetTemporaryMessage("History log unreadable, starting fresh")
		return
	}
	if len(log.Edits) == 0 && len(log.FindHistory) == 0 {
		return
	}
	a.editor.HistoryManager().Restore(log)
	a.editor.SetCursor(log.Cursor)
	a.editor.SetViewportTop(log.ScrollTop)
	logger.Infof("app: restored %d history entries for %s", len(log.Edits), a.filePath)
}

func (a *App) subscribeEvents() {
	a.events.Subscribe(event.TypeCursorMoved, func(e event.Event) bool {
		if data, ok := e.Data.(event.CursorMovedData); ok {
			a.statusBar.SetCursorInfo(data.NewPosition, len(a.editor.AllCursors()))
		}
		return false
	})
	a.events.Subscribe(event.TypeBufferModified, func(event.Event) bool {
		buf := a.editor.GetBuffer()
		a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
		a.editor.Finder().Refresh()
		a.highlights.NotifyChange()
		// Every committed edit lands in the log, not just explicit saves,
		// so a crash costs nothing.
		a.scheduleHistorySave()
		return false
	})
	a.events.Subscribe(event.TypeBufferSaved, func(event.Event) bool {
		buf := a.editor.GetBuffer()
		a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
		a.scheduleHistorySave()
		return false
	})
	a.events.Subscribe(event.TypeSearchUpdated, func(e event.Event) bool {
		if data, ok := e.Data.(event.SearchUpdatedData); ok {
			a.statusBar.SetSearchStats(data.Current, data.Total, data.Pattern != "")
		}
		return false
	})
	a.events.Subscribe(event.TypeHistorySaved, func(e event.Event) bool {
		data, ok := e.Data.(event.HistorySavedData)
		if !ok {
			return false
		}
		if data.Err != nil {
			logger.Warnf("app: history save failed: %v", data.Err)
			a.statusBar.SetTemporaryMessage("History save failed: %v", data.Err)
		} else {
			logger.Debugf("app: history saved to %s", data.FilePath)
		}
		return false
	})
}

// Run starts the event loop and blocks until quit.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.highlights.Shutdown()

	go a.historySaver()
	go a.eventLoop()

	a.events.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Scribe - Ctrl+S Save | Ctrl+F Find | Ctrl+Q Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			// Drain the background saver before the final synchronous
			// save so two writers never race on the log file.
			close(a.saveRequests)
			<-a.saverDone
			a.finalHistorySave()
			logger.Infof("app: exiting")
			return nil
		case ev := <-a.termEvents:
			if a.handleTerminalEvent(ev) {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop polls the terminal and forwards events to Run. Key handling
// and drawing both happen on Run's goroutine, so the document is only
// ever touched from one thread.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.termEvents <- ev:
		case <-a.quit:
			return
		}
	}
}

func (a *App) handleTerminalEvent(ev tcell.Event) bool {
	switch eventData := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		a.events.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: eventData})
		return a.modeHandler.HandleKeyEvent(eventData)
	}
	return false
}

func (a *App) drawEditor() {
	width, height := a.tuiManager.Size()
	a.editor.SetViewSize(width, height-a.cfg.Editor.StatusBarHeight)

	buf := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor(), len(a.editor.AllCursors()))
	mode := ""
	if a.modeHandler.CurrentMode() != modehandler.ModeNormal {
		mode = a.modeHandler.CurrentMode().String()
	}
	a.statusBar.SetEditorMode(mode)

	a.tuiManager.Clear()
	tui.DrawBuffer(a.tuiManager, a.editor, a.highlights, a.cfg.Editor.Wrap)
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height)
	tui.DrawCursor(a.tuiManager, a.editor, a.cfg.Editor.Wrap)
	a.tuiManager.Show()
}

// requestRedraw coalesces redraw requests.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}
