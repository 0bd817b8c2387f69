package edit

import (
	"fmt"

	"github.com/scribe-editor/scribe/internal/buffer"
	"github.com/scribe-editor/scribe/internal/core/history"
	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
)

// commit validates a staged edit against the untouched document, applies
// it, records it and restores the staged cursor state. Validation failing
// means a caller produced an unclamped position; the edit is aborted with
// the document unchanged.
func (o *Operations) commit(e history.Edit) error {
	if err := o.validateEdit(e); err != nil {
		logger.Errorf("edit: aborting %s: %v", e.Kind, err)
		return fmt.Errorf("edit rejected: %w", err)
	}
	if err := o.applyEdit(e, false); err != nil {
		return fmt.Errorf("failed to apply %s: %w", e.Kind, err)
	}
	o.editor.HistoryManager().Push(e)
	o.editor.SetCursor(e.CursorAfter)
	o.editor.SetExtraCursors(e.MultiAfter)
	o.afterChange()
	return nil
}

// validateEdit checks every position the edit will touch against the
// current document. Composite children are staged so that applying them
// in order keeps the remaining positions valid, which makes validating
// all of them against the pre-edit document sufficient.
func (o *Operations) validateEdit(e history.Edit) error {
	buf := o.editor.GetBuffer()
	switch e.Kind {
	case history.KindComposite:
		for _, child := range e.Edits {
			if err := o.validateEdit(child); err != nil {
				return err
			}
		}
		return nil
	case history.KindInsertChar, history.KindInsertBlock, history.KindSplitLine:
		return validatePoint(buf, e.Pos)
	case history.KindDeleteCharBefore, history.KindDeleteCharAfter:
		if _, err := buf.CharAt(e.Pos); err != nil {
			return err
		}
		return nil
	case history.KindJoinLine:
		if e.Pos.Line < 0 || e.Pos.Line >= buf.LineCount()-1 {
			return fmt.Errorf("join at %v: %w", e.Pos, buffer.ErrOutOfBounds)
		}
		if e.Pos.Col != buf.LineLen(e.Pos.Line) {
			return fmt.Errorf("join at %v: not at end of line", e.Pos)
		}
		return nil
	case history.KindDeleteRange:
		if err := validatePoint(buf, e.Pos); err != nil {
			return err
		}
		return validatePoint(buf, e.End)
	default:
		return fmt.Errorf("unknown edit kind %d", e.Kind)
	}
}

func validatePoint(buf buffer.Buffer, pos types.Position) error {
	if pos.Line < 0 || pos.Line >= buf.LineCount() {
		return fmt.Errorf("position %v: %w", pos, buffer.ErrOutOfBounds)
	}
	if pos.Col < 0 || pos.Col > buf.LineLen(pos.Line) {
		return fmt.Errorf("position %v: %w", pos, buffer.ErrOutOfBounds)
	}
	return nil
}

// applyEdit performs the document mutation for an edit record. With
// invert set it performs the inverse, which is how undo works. The switch
// is exhaustive over the record kinds; composites run their children in
// recorded order forward and in reverse order inverted.
func (o *Operations) applyEdit(e history.Edit, invert bool) error {
	buf := o.editor.GetBuffer()
	switch e.Kind {
	case history.KindComposite:
		if invert {
			for i := len(e.Edits) - 1; i >= 0; i-- {
				if err := o.applyEdit(e.Edits[i], true); err != nil {
					return err
				}
			}
			return nil
		}
		for _, child := range e.Edits {
			if err := o.applyEdit(child, false); err != nil {
				return err
			}
		}
		return nil

	case history.KindInsertChar:
		if invert {
			end := types.Position{Line: e.Pos.Line, Col: e.Pos.Col + runeLen(e.Text)}
			_, err := buf.Delete(e.Pos, end)
			return err
		}
		_, err := buf.Insert(e.Pos, e.Text)
		return err

	case history.KindInsertBlock:
		if invert {
			_, err := buf.Delete(e.Pos, e.End)
			return err
		}
		_, err := buf.Insert(e.Pos, e.Text)
		return err

	case history.KindDeleteCharBefore, history.KindDeleteCharAfter:
		if invert {
			_, err := buf.Insert(e.Pos, e.Text)
			return err
		}
		end := types.Position{Line: e.Pos.Line, Col: e.Pos.Col + runeLen(e.Text)}
		_, err := buf.Delete(e.Pos, end)
		return err

	case history.KindSplitLine:
		if invert {
			_, err := buf.Delete(e.Pos, types.Position{Line: e.Pos.Line + 1, Col: 0})
			return err
		}
		_, err := buf.Insert(e.Pos, "\n")
		return err

	case history.KindJoinLine:
		if invert {
			_, err := buf.Insert(e.Pos, "\n")
			return err
		}
		_, err := buf.Delete(e.Pos, types.Position{Line: e.Pos.Line + 1, Col: 0})
		return err

	case history.KindDeleteRange:
		if invert {
			_, err := buf.Insert(e.Pos, e.Text)
			return err
		}
		_, err := buf.Delete(e.Pos, e.End)
		return err

	default:
		return fmt.Errorf("unknown edit kind %d", e.Kind)
	}
}

// ApplyUndo inverts the most recent edit and restores the cursor and
// multi-cursor state recorded before it. Returns false when there is
// nothing to undo.
func (o *Operations) ApplyUndo() (bool, error) {
	hist := o.editor.HistoryManager()
	e, ok := hist.Undo()
	if !ok {
		return false, nil
	}
	if err := o.applyEdit(e, true); err != nil {
		return false, fmt.Errorf("undo of %s failed: %w", e.Kind, err)
	}
	o.editor.ClearSelection()
	o.editor.SetCursor(e.CursorBefore)
	o.editor.SetExtraCursors(e.MultiBefore)
	o.afterChange()
	logger.Debugf("edit: undid %s at %v", e.Kind, e.Pos)
	return true, nil
}

// ApplyRedo reapplies the most recently undone edit and restores the
// cursor state recorded after it. Returns false when there is nothing to
// redo.
func (o *Operations) ApplyRedo() (bool, error) {
	hist := o.editor.HistoryManager()
	e, ok := hist.Redo()
	if !ok {
		return false, nil
	}
	if err := o.applyEdit(e, false); err != nil {
		return false, fmt.Errorf("redo of %s failed: %w", e.Kind, err)
	}
	o.editor.ClearSelection()
	o.editor.SetCursor(e.CursorAfter)
	o.editor.SetExtraCursors(e.MultiAfter)
	o.afterChange()
	logger.Debugf("edit: redid %s at %v", e.Kind, e.Pos)
	return true, nil
}

// ReplayCommit records and applies an externally staged edit. The find
// engine uses it to commit replacements through the same validated spine
// as every other mutation.
func (o *Operations) ReplayCommit(e history.Edit) error {
	return o.commit(e)
}
