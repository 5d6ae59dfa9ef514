package completion

import "testing"

func TestWordListCompletionsPrefixAndSort(t *testing.T) {
	wl := NewWordList()
	wl.AddCategory("commands", ":help", ":history", ":quit")
	got := wl.Completions(":h")
	want := []string{":help", ":history"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestWordListDedup(t *testing.T) {
	wl := NewWordList()
	wl.AddCategory("a", "foo", "foobar")
	wl.AddCategory("b", "foo")
	got := wl.Completions("foo")
	if len(got) != 2 {
		t.Fatalf("expected deduped [foo foobar], got %v", got)
	}
}

func TestWordListEmptyWord(t *testing.T) {
	wl := NewWordList()
	wl.AddCategory("a", "foo")
	if got := wl.Completions(""); got != nil {
		t.Fatalf("expected nil for empty word, got %v", got)
	}
}

func TestFuncAdapter(t *testing.T) {
	var c Completer = Func(func(word string) []string { return []string{word + "!"} })
	got := c.Completions("hi")
	if len(got) != 1 || got[0] != "hi!" {
		t.Fatalf("unexpected completions: %v", got)
	}
}
