package editor

import (
	"bytes"
	"testing"

	"github.com/andrewneudegg/lineedit/pkg/buffer"
	"github.com/andrewneudegg/lineedit/pkg/completion"
	"github.com/andrewneudegg/lineedit/pkg/history"
	"github.com/andrewneudegg/lineedit/pkg/wordclass"
)

func spaceWords(b *buffer.Buffer) []wordclass.Span {
	s := b.String()
	var spans []wordclass.Span
	start := -1
	for i, r := range s {
		if r == ' ' {
			if start >= 0 {
				spans = append(spans, wordclass.Span{Start: start, End: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, wordclass.Span{Start: start, End: len(s)})
	}
	return spans
}

func newTestEditor(t *testing.T) (*Editor, *bytes.Buffer, *history.History) {
	t.Helper()
	h := history.New()
	out := &bytes.Buffer{}
	ctx := &Context{History: h, WordDivider: spaceWords}
	ed, err := New(out, "prompt", ctx, func() int { return 80 })
	if err != nil {
		t.Fatalf("unexpected error constructing editor: %v", err)
	}
	return ed, out, h
}

func TestNewEditorStartsAtEndOfBuffer(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	if ed.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", ed.Cursor())
	}
}

func TestInsertMovesCursorRight(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	if err := ed.InsertStrAfterCursor("data"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.Cursor() != 4 {
		t.Fatalf("expected cursor 4, got %d", ed.Cursor())
	}
	if ed.String() != "data" {
		t.Fatalf("expected %q, got %q", "data", ed.String())
	}
}

func TestDeleteBeforeCursorAtStartIsNoOp(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	if err := ed.DeleteBeforeCursor(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.Cursor() != 0 || ed.String() != "" {
		t.Fatalf("expected no-op, got cursor=%d str=%q", ed.Cursor(), ed.String())
	}
}

func TestDeleteUntilMovesCursorToLowerBound(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.InsertStrAfterCursor("hello")
	ed.MoveCursorToStartOfLine()
	if err := ed.DeleteUntil(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.String() != "lo" {
		t.Fatalf("expected %q, got %q", "lo", ed.String())
	}
	if ed.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", ed.Cursor())
	}
}

func TestMoveCursorLeftRightClampsAtEnds(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.InsertStrAfterCursor("hi")
	ed.MoveCursorLeft(99)
	if ed.Cursor() != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", ed.Cursor())
	}
	ed.MoveCursorRight(99)
	if ed.Cursor() != 2 {
		t.Fatalf("expected cursor clamped to 2, got %d", ed.Cursor())
	}
}

func TestUndoRedoAfterInsert(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.CurrentBuffer().StartUndoGroup()
	ed.InsertStrAfterCursor("abc")
	ed.CurrentBuffer().EndUndoGroup()

	did, err := ed.Undo()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !did || ed.String() != "" {
		t.Fatalf("expected undo to clear the buffer, got did=%v str=%q", did, ed.String())
	}

	did, err = ed.Redo()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !did || ed.String() != "abc" {
		t.Fatalf("expected redo to restore abc, got did=%v str=%q", did, ed.String())
	}
}

func TestMoveUpNavigatesHistory(t *testing.T) {
	h := history.New()
	h.Push(buffer.NewFromString("first"))
	h.Push(buffer.NewFromString("second"))
	out := &bytes.Buffer{}
	ctx := &Context{History: h, WordDivider: spaceWords}
	ed, err := New(out, "prompt", ctx, func() int { return 80 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ed.MoveUp(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.String() != "second" {
		t.Fatalf("expected %q, got %q", "second", ed.String())
	}

	if err := ed.MoveUp(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.String() != "first" {
		t.Fatalf("expected %q, got %q", "first", ed.String())
	}

	if err := ed.MoveDown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.String() != "second" {
		t.Fatalf("expected %q, got %q", "second", ed.String())
	}
}

func TestHandleNewlineFinalizesBuffer(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.InsertStrAfterCursor("done")
	done, err := ed.HandleNewline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Fatalf("expected newline to finalize the buffer")
	}
	if ed.String() != "done" {
		t.Fatalf("expected %q, got %q", "done", ed.String())
	}
	if ed.Cursor() != 4 {
		t.Fatalf("expected cursor at end (4), got %d", ed.Cursor())
	}
}

func TestHandleNewlineAfterBackslashIsLineContinuation(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.InsertStrAfterCursor("cont\\")
	done, err := ed.HandleNewline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done {
		t.Fatalf("expected line continuation, not done")
	}
	if ed.String() != "cont\\\n" {
		t.Fatalf("expected literal newline inserted, got %q", ed.String())
	}
}

func TestCompleteSingleCandidateInsertsDirectly(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.ctx.Completer = completion.Func(func(word string) []string {
		return []string{"hello"}
	})
	ed.InsertStrAfterCursor("he")
	if err := ed.Complete(CompleteNext, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.String() != "hello" {
		t.Fatalf("expected completion inserted, got %q", ed.String())
	}
	if ed.CompletionHintActive() {
		t.Fatalf("expected no lingering completion hint for a single candidate")
	}
}

func TestCompleteMultipleCandidatesShowsHintAndCycles(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.ctx.Completer = completion.Func(func(word string) []string {
		return []string{"apple", "ant"}
	})
	ed.InsertStrAfterCursor("a")
	if err := ed.Complete(CompleteNext, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ed.CompletionHintActive() {
		t.Fatalf("expected a completion hint to be active")
	}
	first := ed.String()
	if err := ed.Complete(CompleteNext, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.String() == first {
		t.Fatalf("expected cycling to change the inserted candidate")
	}
}

func TestCompletionHintActiveSwallowsCursorMovement(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.ctx.Completer = completion.Func(func(word string) []string {
		return []string{"apple", "ant"}
	})
	ed.InsertStrAfterCursor("a")
	ed.Complete(CompleteNext, 4)
	before := ed.Cursor()
	if err := ed.MoveCursorLeft(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.Cursor() != before {
		t.Fatalf("expected cursor movement to be swallowed while hint is active")
	}
}

func TestSearchRefreshesSubsetFromHistory(t *testing.T) {
	h := history.New()
	h.Push(buffer.NewFromString("abc"))
	h.Push(buffer.NewFromString("xyz"))
	out := &bytes.Buffer{}
	ctx := &Context{History: h, WordDivider: spaceWords}
	ed, err := New(out, "prompt", ctx, func() int { return 80 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ed.Search(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ed.isSearch() {
		t.Fatalf("expected search mode active")
	}
	if len(ed.historySubsetIndex) != 2 {
		t.Fatalf("expected both entries to match an empty query, got %v", ed.historySubsetIndex)
	}
}

func TestTypingDuringSearchRefreshesSubsetOnNextDisplay(t *testing.T) {
	h := history.New()
	h.Push(buffer.NewFromString("abc"))
	h.Push(buffer.NewFromString("xyz"))
	out := &bytes.Buffer{}
	ctx := &Context{History: h, WordDivider: spaceWords}
	ed, err := New(out, "prompt", ctx, func() int { return 80 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ed.Search(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Typing a query character mutates new_buf through curBufMut, which must
	// set bufferChanged so the next display() call narrows the subset.
	if err := ed.InsertStrAfterCursor("x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ed.Display(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ed.historySubsetIndex) != 1 {
		t.Fatalf("expected query %q to narrow the subset to one match, got %v", "x", ed.historySubsetIndex)
	}
}
