package buffer

import (
	"errors"
	"testing"

	"github.com/scribe-editor/scribe/internal/types"
)

func bufferFrom(t *testing.T, lines ...string) *RuneBuffer {
	t.Helper()
	b := NewRuneBuffer()
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l
	}
	if _, err := b.Insert(types.Position{Line: 0, Col: 0}, text); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}
	b.SetModified(false)
	return b
}

func TestEmptyBufferIsOneEmptyLine(t *testing.T) {
	b := NewRuneBuffer()
	if got := b.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	if got := b.LineLen(0); got != 0 {
		t.Errorf("LineLen(0) = %d, want 0", got)
	}
}

func TestInsertSingleLine(t *testing.T) {
	b := bufferFrom(t, "hello world")
	end, err := b.Insert(types.Position{Line: 0, Col: 5}, ",")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if want := (types.Position{Line: 0, Col: 6}); end != want {
		t.Errorf("end = %v, want %v", end, want)
	}
	if got := b.Contents(); got != "hello, world" {
		t.Errorf("Contents() = %q", got)
	}
	if !b.IsModified() {
		t.Errorf("buffer should be modified after insert")
	}
}

func TestInsertSplitsOnLineBreaks(t *testing.T) {
	b := bufferFrom(t, "headtail")
	end, err := b.Insert(types.Position{Line: 0, Col: 4}, "-one\ntwo\nthree-")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if want := (types.Position{Line: 2, Col: 6}); end != want {
		t.Errorf("end = %v, want %v", end, want)
	}
	if got := b.Contents(); got != "head-one\ntwo\nthree-tail" {
		t.Errorf("Contents() = %q", got)
	}
	if got := b.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
}

func TestInsertMultiByteRunes(t *testing.T) {
	b := bufferFrom(t, "héllo")
	// Col is a rune index, so 2 lands between é and l.
	end, err := b.Insert(types.Position{Line: 0, Col: 2}, "ä")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if want := (types.Position{Line: 0, Col: 3}); end != want {
		t.Errorf("end = %v, want %v", end, want)
	}
	if got := b.Contents(); got != "héällo" {
		t.Errorf("Contents() = %q", got)
	}
	r, err := b.CharAt(types.Position{Line: 0, Col: 1})
	if err != nil || r != 'é' {
		t.Errorf("CharAt(0,1) = %q, %v; want é", r, err)
	}
}

func TestDeleteWithinLine(t *testing.T) {
	b := bufferFrom(t, "hello world")
	removed, err := b.Delete(types.Position{Line: 0, Col: 5}, types.Position{Line: 0, Col: 11})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != " world" {
		t.Errorf("removed = %q, want %q", removed, " world")
	}
	if got := b.Contents(); got != "hello" {
		t.Errorf("Contents() = %q", got)
	}
}

func TestDeleteAcrossLinesJoins(t *testing.T) {
	b := bufferFrom(t, "alpha", "beta", "gamma")
	removed, err := b.Delete(types.Position{Line: 0, Col: 3}, types.Position{Line: 2, Col: 2})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != "ha\nbeta\nga" {
		t.Errorf("removed = %q", removed)
	}
	if got := b.Contents(); got != "alpmma" {
		t.Errorf("Contents() = %q", got)
	}
	if got := b.LineCount(); got != 1 {
		t.Errorf("LineCount() = %d, want 1", got)
	}
}

func TestDeleteNormalizesReversedRange(t *testing.T) {
	b := bufferFrom(t, "abcdef")
	removed, err := b.Delete(types.Position{Line: 0, Col: 4}, types.Position{Line: 0, Col: 1})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != "bcd" {
		t.Errorf("removed = %q, want %q", removed, "bcd")
	}
}

func TestDeleteInverseOfInsert(t *testing.T) {
	b := bufferFrom(t, "one", "two")
	before := b.Contents()
	pos := types.Position{Line: 0, Col: 2}
	end, err := b.Insert(pos, "X\nY")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	removed, err := b.Delete(pos, end)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != "X\nY" {
		t.Errorf("removed = %q, want %q", removed, "X\nY")
	}
	if got := b.Contents(); got != before {
		t.Errorf("Contents() = %q, want %q", got, before)
	}
}

func TestSliceDoesNotMutate(t *testing.T) {
	b := bufferFrom(t, "alpha", "beta")
	v := b.Version()
	text, err := b.Slice(types.Position{Line: 0, Col: 2}, types.Position{Line: 1, Col: 2})
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if text != "pha\nbe" {
		t.Errorf("Slice = %q", text)
	}
	if b.Version() != v {
		t.Errorf("Slice bumped the version")
	}
}

func TestStrictBounds(t *testing.T) {
	b := bufferFrom(t, "abc")
	cases := []types.Position{
		{Line: -1, Col: 0},
		{Line: 1, Col: 0},
		{Line: 0, Col: 4},
		{Line: 0, Col: -1},
	}
	for _, pos := range cases {
		if _, err := b.Insert(pos, "x"); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Insert(%v) err = %v, want ErrOutOfBounds", pos, err)
		}
	}
	// Col == line length is a valid insertion point, not an error.
	if _, err := b.Insert(types.Position{Line: 0, Col: 3}, "x"); err != nil {
		t.Errorf("Insert at end-of-line: %v", err)
	}
	// CharAt has no end-of-line slot.
	if _, err := b.CharAt(types.Position{Line: 0, Col: 4}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("CharAt at end-of-line err = %v, want ErrOutOfBounds", err)
	}
}

func TestVersionBumpsOnMutation(t *testing.T) {
	b := bufferFrom(t, "abc")
	v := b.Version()
	if _, err := b.Insert(types.Position{Line: 0, Col: 0}, "x"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.Version() == v {
		t.Errorf("version unchanged after insert")
	}
	v = b.Version()
	if _, err := b.Delete(types.Position{Line: 0, Col: 0}, types.Position{Line: 0, Col: 1}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if b.Version() == v {
		t.Errorf("version unchanged after delete")
	}
}
