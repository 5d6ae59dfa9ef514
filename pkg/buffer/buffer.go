// Package buffer implements the editable character sequence the editor core
// operates on: a rune slice with per-line width accounting and undo-group
// history. It is the concrete realization of the "Buffer" external
// collaborator described by the editor's contract — insert/remove/truncate
// primitives, width queries in display cells, and undo/redo/revert.
package buffer

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Buffer is an ordered sequence of characters with undo-group history.
// The zero value is an empty, usable buffer.
type Buffer struct {
	runes []rune

	undoStack [][]rune
	redoStack [][]rune
	pending   []rune
	grouping  bool
}

// New returns an empty Buffer.
func New() *Buffer { return &Buffer{} }

// NewFromString returns a Buffer seeded with s.
func NewFromString(s string) *Buffer {
	return &Buffer{runes: []rune(s)}
}

// String returns the buffer contents as a string.
func (b *Buffer) String() string { return string(b.runes) }

// NumChars returns the number of characters in the buffer.
func (b *Buffer) NumChars() int { return len(b.runes) }

// NumBytes returns the number of UTF-8 bytes the buffer would occupy.
func (b *Buffer) NumBytes() int { return len(string(b.runes)) }

// IsEmpty reports whether the buffer has no characters.
func (b *Buffer) IsEmpty() bool { return len(b.runes) == 0 }

// Width returns the display-cell width of each line in the buffer.
func (b *Buffer) Width() []int {
	widths := make([]int, 0, 1)
	for _, line := range b.Lines() {
		widths = append(widths, runewidth.StringWidth(line))
	}
	if len(widths) == 0 {
		widths = append(widths, 0)
	}
	return widths
}

// RangeWidth returns the display-cell width of the characters in [lo, hi).
func (b *Buffer) RangeWidth(lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi > len(b.runes) {
		hi = len(b.runes)
	}
	if lo >= hi {
		return 0
	}
	return runewidth.StringWidth(string(b.runes[lo:hi]))
}

// Lines splits the buffer on '\n', the way terminal output must be emitted
// line by line; a buffer with no newline is a single line.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.runes), "\n")
}

// CharBefore returns the character immediately before index i, if any.
func (b *Buffer) CharBefore(i int) (rune, bool) {
	if i <= 0 || i > len(b.runes) {
		return 0, false
	}
	return b.runes[i-1], true
}

// Insert splices cs into the buffer at index i.
func (b *Buffer) Insert(i int, cs []rune) {
	i = clamp(i, 0, len(b.runes))
	b.mark()
	out := make([]rune, 0, len(b.runes)+len(cs))
	out = append(out, b.runes[:i]...)
	out = append(out, cs...)
	out = append(out, b.runes[i:]...)
	b.runes = out
}

// Remove deletes [lo, hi) and returns the number of characters removed.
func (b *Buffer) Remove(lo, hi int) int {
	lo = clamp(lo, 0, len(b.runes))
	hi = clamp(hi, 0, len(b.runes))
	if lo >= hi {
		return 0
	}
	b.mark()
	b.runes = append(b.runes[:lo], b.runes[hi:]...)
	return hi - lo
}

// Truncate drops everything from index i onward.
func (b *Buffer) Truncate(i int) {
	i = clamp(i, 0, len(b.runes))
	b.mark()
	b.runes = b.runes[:i]
}

// CopyBuffer replaces this buffer's contents with other's, as one undoable edit.
func (b *Buffer) CopyBuffer(other *Buffer) {
	b.mark()
	b.runes = append([]rune(nil), other.runes...)
}

// InsertFromBuffer appends other's characters beyond this buffer's own
// length onto the end of this buffer (used to accept an autosuggestion,
// which shares this buffer's text as a prefix).
func (b *Buffer) InsertFromBuffer(other *Buffer) {
	if len(other.runes) <= len(b.runes) {
		return
	}
	b.mark()
	b.runes = append(b.runes, other.runes[len(b.runes):]...)
}

// mark records a pre-edit snapshot. Inside an explicit undo group the
// snapshot was already captured by StartUndoGroup and EndUndoGroup commits
// it once; outside a group, every individual edit is its own undo step.
func (b *Buffer) mark() {
	if b.grouping {
		return
	}
	b.undoStack = append(b.undoStack, append([]rune(nil), b.runes...))
	b.redoStack = b.redoStack[:0]
}

// StartUndoGroup begins a logical edit group: every mutation until the
// matching EndUndoGroup collapses into a single undo step.
func (b *Buffer) StartUndoGroup() {
	b.pending = append([]rune(nil), b.runes...)
	b.grouping = true
}

// EndUndoGroup closes the current group. If the buffer changed during the
// group, one undo snapshot is recorded; an unchanged group records nothing.
func (b *Buffer) EndUndoGroup() {
	if !b.grouping {
		return
	}
	b.grouping = false
	if !runesEqual(b.pending, b.runes) {
		b.undoStack = append(b.undoStack, b.pending)
		b.redoStack = b.redoStack[:0]
	}
}

// Undo reverts the most recent undo group. Returns false if there was
// nothing to undo.
func (b *Buffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	prev := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.redoStack = append(b.redoStack, append([]rune(nil), b.runes...))
	b.runes = prev
	return true
}

// Redo reapplies the most recently undone group. Returns false if there
// was nothing to redo.
func (b *Buffer) Redo() bool {
	if len(b.redoStack) == 0 {
		return false
	}
	next := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.undoStack = append(b.undoStack, append([]rune(nil), b.runes...))
	b.runes = next
	return true
}

// Revert discards every edit made since the buffer was created, restoring
// its very first recorded state. Returns false if no edits were ever made.
func (b *Buffer) Revert() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	b.runes = b.undoStack[0]
	b.undoStack = b.undoStack[:0]
	b.redoStack = b.redoStack[:0]
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
