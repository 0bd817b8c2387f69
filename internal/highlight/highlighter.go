// Package highlight computes render-only syntax spans with tree-sitter.
// Parsing runs in the background and never feeds back into editing:
// the spans decorate the draw pass and nothing else.
package highlight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/scribe-editor/scribe/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// StyledSpan styles a half-open rune column range on one line.
type StyledSpan struct {
	StartCol int
	EndCol   int
	Style    string
}

// Result maps a line number to its styled spans, sorted by start column.
type Result map[int][]StyledSpan

// Highlighter parses a document and extracts styled spans from the
// grammar's capture query.
type Highlighter struct {
	parser *sitter.Parser
}

// NewHighlighter creates a highlighter.
func NewHighlighter() *Highlighter {
	return &Highlighter{parser: sitter.NewParser()}
}

// Highlight parses a document snapshot and runs the language's capture
// query over the tree. The source is an immutable copy taken on the
// editing thread, never the live buffer. Multi-line captures split into
// one span per line.
func (h *Highlighter) Highlight(ctx context.Context, source string, lang *Language) (Result, error) {
	if lang == nil {
		return nil, fmt.Errorf("no language to highlight with")
	}
	h.parser.SetLanguage(lang.Lang)

	lines := strings.Split(source, "\n")
	tree, err := h.parser.ParseCtx(ctx, nil, []byte(source))
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(lang.Query), lang.Lang)
	if err != nil {
		return nil, fmt.Errorf("highlight query for %s failed: %w", lang.Name, err)
	}
	defer query.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	result := make(Result)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			style := styleForCapture(query.CaptureNameForId(capture.Index))
			addNodeSpans(result, lines, capture.Node, style)
		}
	}
	for line := range result {
		spans := result[line]
		sort.Slice(spans, func(i, j int) bool { return spans[i].StartCol < spans[j].StartCol })
	}
	logger.Debugf("highlight: %s produced spans on %d lines", lang.Name, len(result))
	return result, nil
}

// addNodeSpans appends the spans a node covers, one per line. Tree-sitter
// points carry byte columns; spans carry rune columns.
func addNodeSpans(result Result, lines []string, node *sitter.Node, style string) {
	start := node.StartPoint()
	end := node.EndPoint()

	for line := int(start.Row); line <= int(end.Row); line++ {
		if line < 0 || line >= len(lines) {
			continue
		}
		text := lines[line]
		fromCol := 0
		toCol := utf8.RuneCountInString(text)
		if line == int(start.Row) {
			fromCol = byteColToRuneCol(text, int(start.Column))
		}
		if line == int(end.Row) {
			toCol = byteColToRuneCol(text, int(end.Column))
		}
		if toCol <= fromCol {
			continue
		}
		result[line] = append(result[line], StyledSpan{StartCol: fromCol, EndCol: toCol, Style: style})
	}
}

// styleForCapture maps a capture name like "keyword.control" to the
// style key the theme system uses, keeping the part before the dot.
func styleForCapture(name string) string {
	name = strings.TrimPrefix(name, "@")
	if dot := strings.Index(name, "."); dot != -1 {
		return name[:dot]
	}
	return name
}

func byteColToRuneCol(line string, byteCol int) int {
	if byteCol <= 0 {
		return 0
	}
	if byteCol > len(line) {
		byteCol = len(line)
	}
	return utf8.RuneCountInString(line[:byteCol])
}
