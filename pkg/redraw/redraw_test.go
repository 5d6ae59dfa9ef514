package redraw

import (
	"strings"
	"testing"

	"github.com/andrewneudegg/lineedit/pkg/buffer"
)

func TestPlanClampsCursorToBufferLength(t *testing.T) {
	buf := buffer.NewFromString("hi")
	res := Plan(Input{
		Prompt:        "> ",
		TerminalWidth: 80,
		Buffer:        buf,
		Cursor:        99,
	})
	if res.Cursor != 2 {
		t.Fatalf("expected cursor clamped to 2, got %d", res.Cursor)
	}
}

func TestPlanNoEOLPullsCursorBackOneAtEnd(t *testing.T) {
	buf := buffer.NewFromString("hi")
	res := Plan(Input{
		Prompt:        "> ",
		TerminalWidth: 80,
		Buffer:        buf,
		Cursor:        2,
		NoEOL:         true,
	})
	if res.Cursor != 1 {
		t.Fatalf("expected no-eol cursor pulled back to 1, got %d", res.Cursor)
	}
}

func TestPlanIncludesPromptAndBuffer(t *testing.T) {
	buf := buffer.NewFromString("hello")
	res := Plan(Input{
		Prompt:        "> ",
		TerminalWidth: 80,
		Buffer:        buf,
		Cursor:        5,
	})
	out := string(res.Output)
	if !strings.Contains(out, "> ") {
		t.Fatalf("expected prompt in output, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected buffer text in output, got %q", out)
	}
}

func TestPlanAutosuggestionExtendsVisibleText(t *testing.T) {
	buf := buffer.NewFromString("he")
	suggestion := buffer.NewFromString("hello")
	res := Plan(Input{
		Prompt:          "> ",
		TerminalWidth:   80,
		Buffer:          buf,
		Autosuggestion:  suggestion,
		ShowAutosuggest: true,
		Cursor:          2,
	})
	if !strings.Contains(string(res.Output), "hello") {
		t.Fatalf("expected autosuggestion tail in output")
	}
}

func TestPlanCompletionGridWrapsHighlighted(t *testing.T) {
	buf := buffer.NewFromString("f")
	res := Plan(Input{
		Prompt:        "> ",
		TerminalWidth: 20,
		Buffer:        buf,
		Cursor:        1,
		Completions: &Completions{
			Items:     []string{"foo", "foobar", "foobaz"},
			Highlight: 1,
		},
		CompletionHL: func(s string) string { return "[" + s + "]" },
	})
	out := string(res.Output)
	if !strings.Contains(out, "[foobar") {
		t.Fatalf("expected highlighted completion wrapped, got %q", out)
	}
}

func TestCalcWidthWrapsAtTerminalBoundary(t *testing.T) {
	got := calcWidth(2, []int{10}, 5)
	if got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestCalcWidthAcrossMultipleLines(t *testing.T) {
	got := calcWidth(0, []int{3, 3}, 10)
	if got != 13 {
		t.Fatalf("expected 13, got %d", got)
	}
}

func TestLastLineWidthUsesFinalPromptLine(t *testing.T) {
	if got := lastLineWidth("first\nsecond"); got != 6 {
		t.Fatalf("expected width of %q (6), got %d", "second", got)
	}
}

func TestPlanNegativeCursorLineDiffClampedNotPanicked(t *testing.T) {
	buf := buffer.NewFromString("x")
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("expected no panic, got %v", r)
		}
	}()
	// A search-prompt width far wider than the real prompt puts the cursor
	// line below the last line of the total width, so the diff is negative.
	Plan(Input{
		Prompt:            "> ",
		IsSearch:          true,
		SearchPromptWidth: 200,
		TerminalWidth:     80,
		Buffer:            buf,
		Cursor:            1,
		TermCursorLine:    1000,
	})
}
