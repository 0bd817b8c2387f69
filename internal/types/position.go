package types

// Position is a logical location inside a buffer. Line is the 0-based line
// index; Col is the 0-based rune index within that line. Col may equal the
// line's rune length, meaning "after the last rune".
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Before reports whether p comes strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// After reports whether p comes strictly after other in document order.
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// Range is a half-open span [Start, End) between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Normalize returns the range with Start and End in document order.
func (r Range) Normalize() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty reports whether the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether pos lies within the half-open range.
func (r Range) Contains(pos Position) bool {
	n := r.Normalize()
	if pos.Before(n.Start) {
		return false
	}
	return pos.Before(n.End)
}
