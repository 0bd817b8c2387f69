package tui

import (
	"fmt"
	"math"

	"github.com/rivo/uniseg"
	"github.com/scribe-editor/scribe/internal/core"
	"github.com/scribe-editor/scribe/internal/core/selection"
	"github.com/scribe-editor/scribe/internal/highlight"
	"github.com/scribe-editor/scribe/internal/theme"
	"github.com/scribe-editor/scribe/internal/types"
)

// positionWithin reports whether pos falls in the half-open range
// [start, end). A character at the exact end position is outside.
func positionWithin(pos, start, end types.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}

// gutterWidth sizes the line number gutter: digits plus one padding
// column, or zero when the screen is too narrow for a gutter at all.
func gutterWidth(lineCount, screenWidth int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	digits := int(math.Log10(float64(lineCount))) + 1
	gw := digits + 1
	if gw >= screenWidth {
		return 0
	}
	return gw
}

// DrawBuffer renders the visible document rows. Logical lines render as
// one or more wrapped segments; style precedence per cell is syntax,
// then search highlight, then selection, then extra cursors.
func DrawBuffer(t *TUI, editor *core.Editor, hl *highlight.Manager, wrapEnabled bool) {
	width, height := t.Size()
	viewHeight := height - 1
	if viewHeight <= 0 || width <= 0 {
		return
	}
	screen := t.screen
	activeTheme := theme.Current()
	defaultStyle := activeTheme.GetStyle("Default")
	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	selectionStyle := activeTheme.GetStyle("Selection")
	searchStyle := activeTheme.GetStyle("SearchHighlight")
	searchCurrentStyle := activeTheme.GetStyle("SearchCurrent")
	multiCursorStyle := activeTheme.GetStyle("MultiCursor")

	buf := editor.GetBuffer()
	lineCount := buf.LineCount()
	gw := gutterWidth(lineCount, width)
	textWidth := width - gw
	wrapWidth := 0
	if wrapEnabled {
		wrapWidth = textWidth
	}
	mapper := editor.WrapMapper()
	topLine := editor.ViewportTop()
	tabWidth := editor.TabWidth()

	// Bucket search matches by the lines they touch; remember which one
	// is current so it can stand out.
	matches := editor.Finder().Matches()
	searchByLine := make(map[int][]types.Range)
	for _, mr := range matches {
		for l := mr.Start.Line; l <= mr.End.Line; l++ {
			searchByLine[l] = append(searchByLine[l], mr)
		}
	}
	var currentMatch types.Range
	haveCurrent := false
	if current, _ := editor.Finder().Stats(); current >= 1 && current <= len(matches) {
		currentMatch = matches[current-1]
		haveCurrent = true
	}

	selKind := editor.SelectionKind()
	selStart, selEnd, hasSel := editor.SelectionRange()
	blockSpan, hasBlock := editor.SelectionBlock()

	extras := make(map[types.Position]bool)
	for _, pos := range editor.ExtraCursors() {
		extras[pos] = true
	}

	cursorLine := editor.GetCursor().Line

	row := 0
	for line := topLine; row < viewHeight && line < lineCount; line++ {
		runes, err := buf.Line(line)
		if err != nil {
			continue
		}
		segs := mapper.SegmentsFor(line, wrapWidth)
		var spans []highlight.StyledSpan
		if hl != nil {
			spans = hl.SpansForLine(line)
		}

		for segIdx, seg := range segs {
			if row >= viewHeight {
				break
			}
			for x := 0; x < width; x++ {
				screen.SetContent(x, row, ' ', nil, defaultStyle)
			}

			// Line number only on the first segment; continuation rows
			// keep the gutter blank.
			if gw > 0 && segIdx == 0 {
				numStyle := lineNumberStyle
				if line == cursorLine {
					numStyle = numStyle.Bold(true)
				}
				num := fmt.Sprintf("%*d", gw-1, line+1)
				for i, r := range num {
					if i < gw-1 {
						screen.SetContent(i, row, r, nil, numStyle)
					}
				}
			}

			segText := string(runes[seg.Start:seg.End])
			gr := uniseg.NewGraphemes(segText)
			col := seg.Start
			x := gw
			for gr.Next() {
				clusterRunes := gr.Runes()
				clusterWidth := gr.Width()
				pos := types.Position{Line: line, Col: col}

				style := defaultStyle
				for _, sp := range spans {
					if col >= sp.StartCol && col < sp.EndCol {
						style = activeTheme.GetStyle(sp.Style)
						break
					}
				}
				for _, mr := range searchByLine[line] {
					if positionWithin(pos, mr.Start, mr.End) {
						style = searchStyle
						if haveCurrent && mr == currentMatch {
							style = searchCurrentStyle
						}
						break
					}
				}
				switch selKind {
				case selection.KindStream:
					if hasSel && positionWithin(pos, selStart, selEnd) {
						style = selectionStyle
					}
				case selection.KindBlock:
					if hasBlock && line >= blockSpan.StartLine && line <= blockSpan.EndLine &&
						col >= blockSpan.StartCol && col < blockSpan.EndCol {
						style = selectionStyle
					}
				}
				if extras[pos] {
					style = multiCursorStyle
				}

				if clusterRunes[0] == '\t' {
					spaces := tabWidth - ((x - gw) % tabWidth)
					for i := 0; i < spaces && x+i < width; i++ {
						screen.SetContent(x+i, row, ' ', nil, style)
					}
					x += spaces
				} else {
					if x < width {
						var combining []rune
						if len(clusterRunes) > 1 {
							combining = clusterRunes[1:]
						}
						screen.SetContent(x, row, clusterRunes[0], combining, style)
						for i := 1; i < clusterWidth && x+i < width; i++ {
							screen.SetContent(x+i, row, ' ', nil, style)
						}
					}
					x += clusterWidth
				}
				col += len(clusterRunes)
				if x >= width {
					break
				}
			}

			// An extra cursor parked on the end-of-line slot still needs a
			// visible cell.
			if seg.End == len(runes) && x < width && extras[types.Position{Line: line, Col: len(runes)}] {
				screen.SetContent(x, row, ' ', nil, multiCursorStyle)
			}
			row++
		}
	}
}

// DrawCursor positions the hardware cursor at the primary cursor's
// visual cell, hiding it when scrolled out of view.
func DrawCursor(t *TUI, editor *core.Editor, wrapEnabled bool) {
	width, height := t.Size()
	viewHeight := height - 1
	buf := editor.GetBuffer()
	gw := gutterWidth(buf.LineCount(), width)
	textWidth := width - gw
	wrapWidth := 0
	if wrapEnabled {
		wrapWidth = textWidth
	}

	cursor := editor.GetCursor()
	mapper := editor.WrapMapper()
	topLine := editor.ViewportTop()

	rowAbs, segCol := mapper.LogicalToVisual(cursor, wrapWidth)
	topAbs, _ := mapper.LogicalToVisual(types.Position{Line: topLine}, wrapWidth)
	screenY := rowAbs - topAbs

	// Visual width of the runes between the segment start and the cursor.
	visualCol := 0
	if runes, err := buf.Line(cursor.Line); err == nil {
		segStart := cursor.Col - segCol
		if segStart >= 0 && cursor.Col <= len(runes) {
			visualCol = uniseg.StringWidth(string(runes[segStart:cursor.Col]))
		}
	}
	screenX := gw + visualCol

	if screenX < gw || screenX >= width || screenY < 0 || screenY >= viewHeight ||
		viewHeight <= 0 || textWidth <= 0 {
		t.HideCursor()
		return
	}
	t.ShowCursor(screenX, screenY)
}
