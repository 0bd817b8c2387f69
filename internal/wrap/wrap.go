// Package wrap maps logical buffer positions to visual rows and columns
// under soft line wrapping. The mapping is pure arithmetic over rune
// counts: every rune occupies one visual cell here, and the renderer
// resolves display widths separately.
package wrap

// Segment is a half-open rune span [Start, End) of a logical line that
// occupies one visual row.
type Segment struct {
	Start int
	End   int
}

// Segments splits a line of lineLen runes into visual segments of at most
// width runes. Width <= 0 disables wrapping and yields a single segment.
// An empty line still occupies one visual row, so it yields one
// zero-length segment.
func Segments(lineLen, width int) []Segment {
	if lineLen < 0 {
		lineLen = 0
	}
	if width <= 0 || lineLen == 0 {
		return []Segment{{Start: 0, End: lineLen}}
	}
	count := (lineLen + width - 1) / width
	segs := make([]Segment, 0, count)
	for start := 0; start < lineLen; start += width {
		end := start + width
		if end > lineLen {
			end = lineLen
		}
		segs = append(segs, Segment{Start: start, End: end})
	}
	return segs
}

// SegmentCount returns how many visual rows a line of lineLen runes
// occupies at the given width. Always at least 1.
func SegmentCount(lineLen, width int) int {
	if width <= 0 || lineLen == 0 {
		return 1
	}
	return (lineLen + width - 1) / width
}

// segmentIndex returns the index of the segment containing rune index col.
// Col == lineLen belongs to the last segment even when it falls exactly on
// a wrap boundary; the end-of-line slot never starts a row of its own.
func segmentIndex(col, lineLen, width int) int {
	if width <= 0 {
		return 0
	}
	if col < 0 {
		col = 0
	}
	if col > lineLen {
		col = lineLen
	}
	idx := col / width
	last := SegmentCount(lineLen, width) - 1
	if idx > last {
		idx = last
	}
	return idx
}
