package history

import (
	"testing"

	"github.com/andrewneudegg/lineedit/pkg/buffer"
)

func newHist(entries ...string) *History {
	h := New()
	for _, e := range entries {
		h.Push(buffer.NewFromString(e))
	}
	return h
}

func TestLenAndAt(t *testing.T) {
	h := newHist("one", "two")
	if h.Len() != 2 {
		t.Fatalf("expected len 2, got %d", h.Len())
	}
	if h.At(1).String() != "two" {
		t.Fatalf("expected 'two' at index 1, got %q", h.At(1).String())
	}
}

func TestGetHistorySubset(t *testing.T) {
	h := newHist("git commit", "git push", "ls -la")
	idx := h.GetHistorySubset(buffer.NewFromString("git"))
	if len(idx) != 2 || idx[0] != 0 || idx[1] != 1 {
		t.Fatalf("expected [0 1], got %v", idx)
	}
}

func TestSearchIndexSubstring(t *testing.T) {
	h := newHist("make build", "make test", "echo hi")
	idx := h.SearchIndex(buffer.NewFromString("make"))
	if len(idx) != 2 || idx[0] != 0 || idx[1] != 1 {
		t.Fatalf("expected [0 1], got %v", idx)
	}
}

func TestGetNewestMatch(t *testing.T) {
	h := newHist("go build", "go vet", "echo hi", "go test")
	idx, ok := h.GetNewestMatch(-1, buffer.NewFromString("go"))
	if !ok || idx != 3 {
		t.Fatalf("expected newest match at index 3, got %d ok=%v", idx, ok)
	}
	idx, ok = h.GetNewestMatch(2, buffer.NewFromString("go"))
	if !ok || idx != 1 {
		t.Fatalf("expected newest match below index 2 to be 1, got %d ok=%v", idx, ok)
	}
}

func TestGetNewestMatchNone(t *testing.T) {
	h := newHist("echo hi")
	if _, ok := h.GetNewestMatch(-1, buffer.NewFromString("go")); ok {
		t.Fatalf("expected no match")
	}
}
