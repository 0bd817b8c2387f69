package app

import (
	"github.com/scribe-editor/scribe/internal/event"
	"github.com/scribe-editor/scribe/internal/logger"
)

// scheduleHistorySave snapshots the history state and hands it to the
// background saver. A full queue drops the snapshot; a newer one always
// follows.
func (a *App) scheduleHistorySave() {
	if a.store == nil {
		return
	}
	snapshot := a.editor.HistoryManager().Snapshot(a.editor.GetCursor(), a.editor.ViewportTop())
	select {
	case a.saveRequests <- snapshot:
	default:
		logger.Debugf("app: history save queue full, dropping snapshot")
	}
}

// historySaver writes snapshots to disk off the main loop and reports
// each outcome through the event bus.
func (a *App) historySaver() {
	defer close(a.saverDone)
	for snapshot := range a.saveRequests {
		if a.store == nil {
			continue
		}
		err := a.store.Save(snapshot)
		a.events.Dispatch(event.TypeHistorySaved, event.HistorySavedData{
			FilePath: a.store.Path(),
			Err:      err,
		})
	}
}

// finalHistorySave persists the closing snapshot synchronously so quit
// never races the background saver.
func (a *App) finalHistorySave() {
	if a.store == nil {
		return
	}
	snapshot := a.editor.HistoryManager().Snapshot(a.editor.GetCursor(), a.editor.ViewportTop())
	if err := a.store.Save(snapshot); err != nil {
		logger.Errorf("app: final history save failed: %v", err)
	}
}
