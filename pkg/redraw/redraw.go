// Package redraw plans the terminal byte sequence the editor core emits on
// every keystroke: the cursor-clamping, width accounting, line wrapping,
// completion grid, and cursor repositioning math of
// AndrewNeudegg-calc/pkg/display's line_editor.go redraw path, generalized
// from that package's single-line-aware render to the full multi-line,
// autosuggestion-aware, completion-grid-aware algorithm the original liner
// editor's Editor::_display implements. It never writes to a terminal
// itself; Plan returns the bytes for the caller to write, the way
// line_editor.go's own render builds a string before a single Write call.
package redraw

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/andrewneudegg/lineedit/pkg/buffer"
)

// wrapMarker is emitted, padded with spaces to the terminal width, at the
// top of a redraw whenever Input.NoNewline is false, marking output that did
// not end in a newline, the way liner's _display writes the return-glyph
// line before clearing.
const wrapMarker = "⏎"

// scratchPool reuses the *bytes.Buffer each Plan call assembles its output
// in, the idiomatic Go substitute for liner's thread-local BUFFER: no pack
// library offers a goroutine-local scratch buffer, so this one concern is
// carried on sync.Pool rather than a third-party dependency.
var scratchPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Completions describes an active completion-hint grid: the candidate list
// and the index currently highlighted, or Highlight < 0 for none selected.
type Completions struct {
	Items     []string
	Highlight int
}

// Input is everything Plan needs to compute one redraw. It holds no
// behavior of its own; the editor core assembles it fresh each call.
type Input struct {
	Prompt            string
	IsSearch          bool
	SearchPromptWidth int
	TerminalWidth     int
	TermCursorLine    int
	NoEOL             bool
	NoNewline         bool
	Buffer            *buffer.Buffer
	Autosuggestion    *buffer.Buffer
	ShowAutosuggest   bool
	Cursor            int
	Closure           func([]byte) []byte
	SearchColor       []byte
	SearchReset       []byte
	CompletionHL      func(string) string
	Completions       *Completions
}

// Result is the outcome of a redraw plan: the bytes to write to the
// terminal, the clamped cursor the editor core should adopt, and the
// updated term-cursor-line state to feed into the next Plan call.
type Result struct {
	Output         []byte
	Cursor         int
	TermCursorLine int
}

// Plan computes the full redraw byte sequence for one keystroke.
func Plan(in Input) Result {
	if in.TerminalWidth <= 0 {
		in.TerminalWidth = 80
	}
	buf := in.Buffer
	if buf == nil {
		buf = buffer.New()
	}

	cursor := in.Cursor
	numChars := buf.NumChars()
	if cursor > numChars {
		cursor = numChars
	}
	if in.NoEOL && cursor != 0 && cursor == numChars {
		cursor--
	}

	promptWidth := lastLineWidth(in.Prompt)
	bufWidth := buf.Width()

	var bufWidths []int
	if in.Autosuggestion != nil {
		bufWidths = in.Autosuggestion.Width()
	} else {
		bufWidths = bufWidth
	}

	var bufWidthsToCursor int
	if in.Autosuggestion != nil && cursor < in.Autosuggestion.NumChars() {
		bufWidthsToCursor = in.Autosuggestion.RangeWidth(0, cursor)
	} else {
		bufWidthsToCursor = buf.RangeWidth(0, cursor)
	}

	newTotalWidth := calcWidth(promptWidth, bufWidths, in.TerminalWidth)
	toCursorPromptWidth := promptWidth
	if in.IsSearch {
		toCursorPromptWidth = in.SearchPromptWidth
	}
	newTotalWidthToCursor := calcWidth(toCursorPromptWidth, []int{bufWidthsToCursor}, in.TerminalWidth)
	newNumLines := (newTotalWidth + in.TerminalWidth) / in.TerminalWidth

	out := scratchPool.Get().(*bytes.Buffer)
	out.Reset()
	defer func() {
		out.Reset()
		scratchPool.Put(out)
	}()

	if in.TermCursorLine > 1 {
		fmt.Fprintf(out, "\x1b[%dA", in.TermCursorLine-1)
	}

	if !in.NoNewline {
		out.WriteString(wrapMarker)
		for i := 0; i < in.TerminalWidth-1; i++ {
			out.WriteByte(' ')
		}
	}

	out.WriteByte('\r')
	out.WriteString("\x1b[J")

	completionLines := 0
	if in.Completions != nil && len(in.Completions.Items) > 0 {
		hl := in.CompletionHL
		if hl == nil {
			hl = func(s string) string { return s }
		}
		completionLines = 1 + printCompletionList(out, in.Completions, in.TerminalWidth, hl)
		out.WriteString("\r\n")
	}

	if !in.NoNewline {
		promptLines := splitLines(in.Prompt)
		for _, line := range promptLines {
			out.WriteString(line)
			out.WriteString("\r\n")
		}
		trimTrailingCRLF(out)
	} else {
		out.WriteString(in.Prompt)
	}

	var lines []string
	if in.ShowAutosuggest {
		if in.Autosuggestion != nil {
			lines = in.Autosuggestion.Lines()
		} else {
			lines = buf.Lines()
		}
	} else {
		lines = buf.Lines()
	}
	remaining := buf.NumBytes()

	closure := in.Closure
	if closure == nil {
		closure = func(b []byte) []byte { return b }
	}

	sawAutosuggestionTail := false
	for i, line := range lines {
		if i > 0 {
			fmt.Fprintf(out, "\x1b[%dC", promptWidth)
		}

		switch {
		case remaining == 0:
			out.WriteString(line)
			if line != "" {
				sawAutosuggestionTail = true
			}
		case len(line) > remaining:
			shown := closure([]byte(line[:remaining]))
			if in.IsSearch {
				out.Write(in.SearchColor)
			}
			out.Write(shown)
			if !in.IsSearch {
				out.Write(in.SearchColor)
			}
			out.WriteString(line[remaining:])
			remaining = 0
			sawAutosuggestionTail = true
		default:
			remaining -= len(line)
			shown := closure([]byte(line))
			if in.IsSearch {
				out.Write(in.SearchColor)
			}
			out.Write(shown)
		}

		if i+1 < len(lines) {
			out.WriteString("\r\n")
		}
	}

	if sawAutosuggestionTail || in.IsSearch {
		out.Write(in.SearchReset)
	}

	if newTotalWidth%in.TerminalWidth == 0 {
		out.WriteString("\r\n")
	}

	termCursorLine := (newTotalWidthToCursor + in.TerminalWidth) / in.TerminalWidth

	cursorLineDiff := newNumLines - termCursorLine
	if cursorLineDiff < 0 {
		// liner treats this as unreachable; it happens when the to-cursor
		// width, measured with SearchPromptWidth during a search, exceeds the
		// total width measured with the real prompt. Clamp instead of failing.
		cursorLineDiff = 0
	}
	if cursorLineDiff > 0 {
		fmt.Fprintf(out, "\x1b[%dA", cursorLineDiff)
	}

	cursorColDiff := newTotalWidth - newTotalWidthToCursor - cursorLineDiff*in.TerminalWidth
	if cursorColDiff > 0 {
		fmt.Fprintf(out, "\x1b[%dD", cursorColDiff)
	} else if cursorColDiff < 0 {
		fmt.Fprintf(out, "\x1b[%dC", -cursorColDiff)
	}

	termCursorLine += completionLines

	return Result{
		Output:         append([]byte(nil), out.Bytes()...),
		Cursor:         cursor,
		TermCursorLine: termCursorLine,
	}
}

// calcWidth sums the terminal cells occupied by prompt + each buffer line,
// padding each line's start out to the next terminal-width boundary the way
// a wrapped terminal actually lays text out.
func calcWidth(promptWidth int, lineWidths []int, terminalWidth int) int {
	total := 0
	for _, w := range lineWidths {
		if total%terminalWidth != 0 {
			total = ((total / terminalWidth) + 1) * terminalWidth
		}
		total += promptWidth + w
	}
	return total
}

func lastLineWidth(prompt string) int {
	lines := splitLines(prompt)
	if len(lines) == 0 {
		return 0
	}
	return runewidth.StringWidth(lines[len(lines)-1])
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func trimTrailingCRLF(buf *bytes.Buffer) {
	b := buf.Bytes()
	if len(b) >= 2 && b[len(b)-2] == '\r' && b[len(b)-1] == '\n' {
		buf.Truncate(len(b) - 2)
	}
}

// printCompletionList renders the completion grid and returns how many
// extra lines it wrapped onto beyond its first.
func printCompletionList(out *bytes.Buffer, c *Completions, terminalWidth int, hl func(string) string) int {
	maxWordSize := 1
	for _, item := range c.Items {
		if n := runewidth.StringWidth(item); n > maxWordSize {
			maxWordSize = n
		}
	}
	cols := maxInt(1, terminalWidth/maxWordSize)
	colWidth := 2 + terminalWidth/cols
	cols = maxInt(1, terminalWidth/colWidth)

	lines := 0
	i := 0
	for idx, item := range c.Items {
		if i == cols {
			out.WriteString("\r\n")
			lines++
			i = 0
		}

		cell := fmt.Sprintf("%-*s", colWidth, item)
		if idx == c.Highlight {
			out.WriteString(hl(cell))
		} else {
			out.WriteString(cell)
		}
		i++
	}
	return lines
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
