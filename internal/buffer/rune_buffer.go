package buffer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/scribe-editor/scribe/internal/logger"
	"github.com/scribe-editor/scribe/internal/types"
)

// RuneBuffer is the line-slice implementation of Buffer. The invariant is
// that lines always holds at least one line: the empty document is exactly
// one empty line, never zero lines.
type RuneBuffer struct {
	lines    [][]rune
	filePath string
	modified bool
	version  uint64
}

var _ Buffer = (*RuneBuffer)(nil)

// NewRuneBuffer creates an empty buffer containing one empty line.
func NewRuneBuffer() *RuneBuffer {
	return &RuneBuffer{
		lines: [][]rune{{}},
	}
}

// Load reads a file into the buffer. A missing file yields an empty buffer
// bound to that path, so "edit a new file" works without a stat dance.
func (b *RuneBuffer) Load(filePath string) error {
	b.lines = [][]rune{{}}
	b.filePath = filePath
	b.modified = false
	b.version++

	if filePath == "" {
		return nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("buffer: file '%s' does not exist, starting empty", filePath)
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	var lines [][]rune
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, []rune(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	if len(lines) == 0 {
		lines = [][]rune{{}}
	}

	b.lines = lines
	b.version++
	logger.Debugf("buffer: loaded %d lines from '%s'", len(lines), filePath)
	return nil
}

// Save writes the buffer to filePath, or to the buffer's own path when
// filePath is empty. A trailing newline is always written.
func (b *RuneBuffer) Save(filePath string) error {
	savePath := filePath
	if savePath == "" {
		savePath = b.filePath
	}
	if savePath == "" {
		return fmt.Errorf("no file path specified for save")
	}

	var sb strings.Builder
	for _, line := range b.lines {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(savePath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", savePath, err)
	}

	b.filePath = savePath
	b.modified = false
	logger.Debugf("buffer: saved %d lines to '%s'", len(b.lines), savePath)
	return nil
}

// Line returns a copy of the runes of the given line.
func (b *RuneBuffer) Line(index int) ([]rune, error) {
	if index < 0 || index >= len(b.lines) {
		return nil, fmt.Errorf("line %d: %w", index, ErrOutOfBounds)
	}
	line := make([]rune, len(b.lines[index]))
	copy(line, b.lines[index])
	return line, nil
}

// LineString returns the given line as a string.
func (b *RuneBuffer) LineString(index int) (string, error) {
	if index < 0 || index >= len(b.lines) {
		return "", fmt.Errorf("line %d: %w", index, ErrOutOfBounds)
	}
	return string(b.lines[index]), nil
}

// LineCount returns the number of lines. Always at least 1.
func (b *RuneBuffer) LineCount() int {
	return len(b.lines)
}

// LineLen returns the rune length of a line, or -1 for an invalid index.
func (b *RuneBuffer) LineLen(index int) int {
	if index < 0 || index >= len(b.lines) {
		return -1
	}
	return len(b.lines[index])
}

// CharAt returns the rune at pos. Unlike Insert, pos.Col must address an
// existing rune, not the end-of-line slot.
func (b *RuneBuffer) CharAt(pos types.Position) (rune, error) {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return 0, fmt.Errorf("char at %v: %w", pos, ErrOutOfBounds)
	}
	line := b.lines[pos.Line]
	if pos.Col < 0 || pos.Col >= len(line) {
		return 0, fmt.Errorf("char at %v: %w", pos, ErrOutOfBounds)
	}
	return line[pos.Col], nil
}

// validate checks that pos addresses a valid insertion point.
func (b *RuneBuffer) validate(pos types.Position) error {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return fmt.Errorf("position %v: %w", pos, ErrOutOfBounds)
	}
	if pos.Col < 0 || pos.Col > len(b.lines[pos.Line]) {
		return fmt.Errorf("position %v: %w", pos, ErrOutOfBounds)
	}
	return nil
}

// Insert places text at pos. Text containing "\n" splits the line at pos
// and produces one new line per break. Returns the position immediately
// after the inserted text.
func (b *RuneBuffer) Insert(pos types.Position, text string) (types.Position, error) {
	if err := b.validate(pos); err != nil {
		return types.Position{}, err
	}

	parts := strings.Split(text, "\n")
	line := b.lines[pos.Line]
	head := line[:pos.Col]
	tail := line[pos.Col:]

	if len(parts) == 1 {
		inserted := []rune(parts[0])
		newLine := make([]rune, 0, len(line)+len(inserted))
		newLine = append(newLine, head...)
		newLine = append(newLine, inserted...)
		newLine = append(newLine, tail...)
		b.lines[pos.Line] = newLine
		b.afterMutation()
		return types.Position{Line: pos.Line, Col: pos.Col + len(inserted)}, nil
	}

	// Multi-line insert: the first part joins head, the last part gains
	// tail, the middle parts become whole lines.
	newLines := make([][]rune, 0, len(parts))
	first := append(append([]rune{}, head...), []rune(parts[0])...)
	newLines = append(newLines, first)
	for _, part := range parts[1 : len(parts)-1] {
		newLines = append(newLines, []rune(part))
	}
	lastPart := []rune(parts[len(parts)-1])
	last := append(append([]rune{}, lastPart...), tail...)
	newLines = append(newLines, last)

	replaced := make([][]rune, 0, len(b.lines)+len(newLines)-1)
	replaced = append(replaced, b.lines[:pos.Line]...)
	replaced = append(replaced, newLines...)
	replaced = append(replaced, b.lines[pos.Line+1:]...)
	b.lines = replaced

	b.afterMutation()
	return types.Position{Line: pos.Line + len(parts) - 1, Col: len(lastPart)}, nil
}

// Delete removes the half-open range [start, end), joining lines when the
// range crosses a line break, and returns the removed text.
func (b *RuneBuffer) Delete(start, end types.Position) (string, error) {
	r := types.Range{Start: start, End: end}.Normalize()
	start, end = r.Start, r.End
	if err := b.validate(start); err != nil {
		return "", err
	}
	if err := b.validate(end); err != nil {
		return "", err
	}
	if start == end {
		return "", nil
	}

	if start.Line == end.Line {
		line := b.lines[start.Line]
		removed := string(line[start.Col:end.Col])
		newLine := make([]rune, 0, len(line)-(end.Col-start.Col))
		newLine = append(newLine, line[:start.Col]...)
		newLine = append(newLine, line[end.Col:]...)
		b.lines[start.Line] = newLine
		b.afterMutation()
		return removed, nil
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line][start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Line][:end.Col]))

	merged := make([]rune, 0, start.Col+len(b.lines[end.Line])-end.Col)
	merged = append(merged, b.lines[start.Line][:start.Col]...)
	merged = append(merged, b.lines[end.Line][end.Col:]...)

	replaced := make([][]rune, 0, len(b.lines)-(end.Line-start.Line))
	replaced = append(replaced, b.lines[:start.Line]...)
	replaced = append(replaced, merged)
	replaced = append(replaced, b.lines[end.Line+1:]...)
	b.lines = replaced

	b.afterMutation()
	return sb.String(), nil
}

// Slice returns the text of [start, end) without mutating the buffer.
func (b *RuneBuffer) Slice(start, end types.Position) (string, error) {
	r := types.Range{Start: start, End: end}.Normalize()
	start, end = r.Start, r.End
	if err := b.validate(start); err != nil {
		return "", err
	}
	if err := b.validate(end); err != nil {
		return "", err
	}
	if start == end {
		return "", nil
	}

	if start.Line == end.Line {
		return string(b.lines[start.Line][start.Col:end.Col]), nil
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line][start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Line][:end.Col]))
	return sb.String(), nil
}

// Contents returns the whole document joined with "\n".
func (b *RuneBuffer) Contents() string {
	parts := make([]string, len(b.lines))
	for i, line := range b.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// Version returns a counter bumped on every mutation. Caches keyed by it
// (the wrap mapper's segment cache) stay exact without tracking lines.
func (b *RuneBuffer) Version() uint64 {
	return b.version
}

// FilePath returns the path the buffer is bound to, if any.
func (b *RuneBuffer) FilePath() string {
	return b.filePath
}

// IsModified reports whether the buffer diverges from its saved state.
func (b *RuneBuffer) IsModified() bool {
	return b.modified
}

// SetModified overrides the modified flag. The edit engine keeps it in
// sync with the history's saved-at watermark, so undoing back to the last
// save clears it.
func (b *RuneBuffer) SetModified(modified bool) {
	b.modified = modified
}

func (b *RuneBuffer) afterMutation() {
	b.modified = true
	b.version++
}
