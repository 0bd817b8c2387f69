package modehandler

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/scribe-editor/scribe/internal/core/find"
	"github.com/scribe-editor/scribe/internal/logger"
)

func (mh *ModeHandler) enterFindMode() {
	mh.setMode(ModeFind)
	mh.findInput = mh.findInput[:0]
	mh.historyIdx = -1
	mh.refreshPrompt()
}

func (mh *ModeHandler) enterReplaceMode() {
	mh.setMode(ModeReplacePattern)
	mh.findInput = mh.findInput[:0]
	mh.replaceInput = mh.replaceInput[:0]
	mh.replacePattern = ""
	mh.historyIdx = -1
	mh.refreshPrompt()
}

// promptPrefix names the active prompt. The find prompt shows the
// pattern interpretation: "/" for regex, "*" for wildcard.
func (mh *ModeHandler) promptPrefix() string {
	marker := "/"
	if mh.findMode == find.ModeWildcard {
		marker = "*"
	}
	switch mh.mode {
	case ModeFind:
		return marker
	case ModeReplacePattern:
		return "replace " + marker
	case ModeReplaceTemplate:
		return "replace " + marker + mh.replacePattern + " with: "
	default:
		return ""
	}
}

func (mh *ModeHandler) refreshPrompt() {
	inputRunes := mh.findInput
	if mh.mode == ModeReplaceTemplate {
		inputRunes = mh.replaceInput
	}
	mh.statusBar.SetPrompt(mh.promptPrefix(), string(inputRunes))
}

// handlePromptKey edits the prompt line. Pattern input re-runs the
// search live on every keystroke.
func (mh *ModeHandler) handlePromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		mh.cancelPrompt()
	case tcell.KeyEnter:
		mh.confirmPrompt()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		mh.erasePromptRune()
	case tcell.KeyTab:
		// Toggle between regex and wildcard interpretation.
		if mh.mode != ModeReplaceTemplate {
			if mh.findMode == find.ModeRegex {
				mh.findMode = find.ModeWildcard
			} else {
				mh.findMode = find.ModeRegex
			}
			mh.applyPattern()
			mh.refreshPrompt()
		}
	case tcell.KeyUp:
		mh.browseFindHistory(1)
	case tcell.KeyDown:
		mh.browseFindHistory(-1)
	case tcell.KeyCtrlA:
		if mh.mode == ModeReplaceTemplate {
			mh.replaceAll()
		}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			mh.appendPromptRune(ev.Rune())
		}
	}
	return true
}

func (mh *ModeHandler) appendPromptRune(r rune) {
	if mh.mode == ModeReplaceTemplate {
		mh.replaceInput = append(mh.replaceInput, r)
	} else {
		mh.findInput = append(mh.findInput, r)
		mh.historyIdx = -1
		mh.applyPattern()
	}
	mh.refreshPrompt()
}

func (mh *ModeHandler) erasePromptRune() {
	if mh.mode == ModeReplaceTemplate {
		if len(mh.replaceInput) > 0 {
			mh.replaceInput = mh.replaceInput[:len(mh.replaceInput)-1]
		}
	} else {
		if len(mh.findInput) > 0 {
			mh.findInput = mh.findInput[:len(mh.findInput)-1]
		}
		mh.historyIdx = -1
		mh.applyPattern()
	}
	mh.refreshPrompt()
}

// applyPattern installs the prompt's pattern in the find manager. A
// malformed pattern is reported and keeps the previous matches cleared;
// typing continues normally.
func (mh *ModeHandler) applyPattern() {
	finder := mh.editor.Finder()
	err := finder.SetPattern(string(mh.findInput), mh.findMode, mh.caseSensitive)
	var patternErr *find.PatternError
	switch {
	case errors.As(err, &patternErr):
		mh.statusBar.SetTemporaryMessage("Invalid pattern: %v", patternErr.Err)
	case err != nil:
		mh.statusBar.SetTemporaryMessage("%v", err)
	default:
		mh.statusBar.ResetTemporaryMessage()
		current, total := finder.Stats()
		mh.statusBar.SetSearchStats(current, total, len(mh.findInput) > 0)
	}
}

// browseFindHistory steps through previously confirmed patterns.
// Direction 1 goes to older entries, -1 back toward the live input.
func (mh *ModeHandler) browseFindHistory(direction int) {
	if mh.mode == ModeReplaceTemplate {
		return
	}
	history := mh.editor.HistoryManager().FindHistory()
	if len(history) == 0 {
		return
	}
	idx := mh.historyIdx + direction
	if idx < -1 {
		idx = -1
	}
	if idx >= len(history) {
		idx = len(history) - 1
	}
	mh.historyIdx = idx
	if idx == -1 {
		mh.findInput = mh.findInput[:0]
	} else {
		// History is stored oldest first; idx 0 is the most recent.
		mh.findInput = []rune(history[len(history)-1-idx])
	}
	mh.applyPattern()
	mh.refreshPrompt()
}

func (mh *ModeHandler) cancelPrompt() {
	mh.editor.Finder().Clear()
	mh.statusBar.ClearPrompt()
	mh.statusBar.SetSearchStats(0, 0, false)
	mh.setMode(ModeNormal)
}

func (mh *ModeHandler) confirmPrompt() {
	switch mh.mode {
	case ModeFind:
		pattern := string(mh.findInput)
		if pattern != "" {
			mh.editor.HistoryManager().AddFindHistory(pattern)
			mh.jumpToMatch(true)
		}
		mh.statusBar.ClearPrompt()
		mh.setMode(ModeNormal)

	case ModeReplacePattern:
		if len(mh.findInput) == 0 {
			mh.cancelPrompt()
			return
		}
		mh.replacePattern = string(mh.findInput)
		mh.editor.HistoryManager().AddFindHistory(mh.replacePattern)
		mh.setMode(ModeReplaceTemplate)
		mh.refreshPrompt()

	case ModeReplaceTemplate:
		mh.replaceNext()
	}
}

// replaceNext replaces the match at or after the cursor and advances to
// the one that follows. The prompt stays open for repeated replaces.
func (mh *ModeHandler) replaceNext() {
	finder := mh.editor.Finder()
	cursor := mh.editor.GetCursor()

	// The match under the cursor counts; Next is strictly-after, so step
	// back one column to include a match starting exactly at the cursor.
	from := cursor
	if from.Col > 0 {
		from.Col--
	} else if from.Line > 0 {
		from.Line--
		from.Col = mh.editor.GetBuffer().LineLen(from.Line)
	}
	match, wrapped, ok := finder.Next(from)
	if !ok {
		mh.statusBar.SetTemporaryMessage("No matches")
		return
	}
	if err := finder.ReplaceOne(match, string(mh.replaceInput)); err != nil {
		mh.statusBar.SetTemporaryMessage("Replace failed: %v", err)
		return
	}
	if wrapped {
		mh.statusBar.SetTemporaryMessage("Search wrapped")
	}
	current, total := finder.Stats()
	mh.statusBar.SetSearchStats(current, total, true)
	logger.Debugf("modehandler: replaced match at %v", match.Start)
}

// replaceAll replaces every match in one history entry and leaves
// replace mode.
func (mh *ModeHandler) replaceAll() {
	count, err := mh.editor.Finder().ReplaceAll(string(mh.replaceInput))
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Replace failed: %v", err)
		return
	}
	mh.statusBar.ClearPrompt()
	mh.setMode(ModeNormal)
	mh.statusBar.SetTemporaryMessage("Replaced %d occurrences", count)
}
