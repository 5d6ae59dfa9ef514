// Package editor implements the core line-editor state machine: the
// buffer-or-history selection, cursor, undo/redo, history navigation,
// incremental search, completion cycling, and autosuggestion bookkeeping
// that AndrewNeudegg-calc/pkg/display/line_editor.go handles in miniature
// for a single-line calculator prompt. Here it is generalized to the full
// multi-buffer, multi-mode surface a Vi keymap drives.
package editor

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/andrewneudegg/lineedit/pkg/buffer"
	"github.com/andrewneudegg/lineedit/pkg/completion"
	"github.com/andrewneudegg/lineedit/pkg/history"
	"github.com/andrewneudegg/lineedit/pkg/redraw"
	"github.com/andrewneudegg/lineedit/pkg/wordclass"
)

// searchPromptWidth is the fixed cell width of the "(search)'…' " framing
// used as the prompt width for width-to-cursor math while searching.
const searchPromptWidth = 9

// CompleteType selects how an active completion-hint cycle advances.
type CompleteType int

const (
	CompleteNext CompleteType = iota
	CompletePrev
	CompleteUp
	CompleteDown
)

// Context bundles the editor's external collaborators: the session history,
// an optional completer, and the function that splits a buffer into word
// spans for word-motion and completion-word lookup.
type Context struct {
	History     *history.History
	Completer   completion.Completer
	WordDivider func(*buffer.Buffer) []wordclass.Span
}

// completionHint is the active tab-completion cycle, or nil when inactive.
type completionHint struct {
	items     []string
	highlight int // -1 when nothing is highlighted yet
}

// Editor is the core line-editor state machine. It owns the terminal output
// stream exclusively for the life of a session.
type Editor struct {
	prompt string
	out    io.Writer
	ctx    *Context

	closure      func([]byte) []byte
	terminalWidth func() int

	cursor        int
	newBuf        *buffer.Buffer
	curHistoryLoc int // -1 means "on the new buffer"

	termCursorLine int

	hint *completionHint

	showAutosuggestions bool
	autosuggestion      *buffer.Buffer

	NoEOL     bool
	noNewline bool

	reverseSearch bool
	forwardSearch bool
	bufferChanged bool

	historySubsetIndex []int
	historySubsetLoc   int // -1 means absent
}

// New constructs an editor, moves the cursor to the end of the initial
// buffer, and performs one redraw.
func New(out io.Writer, prompt string, ctx *Context, terminalWidth func() int) (*Editor, error) {
	return newWithBuffer(out, prompt, buffer.New(), ctx, terminalWidth)
}

// NewWithBuffer seeds the session with initial text, as if it had just been
// typed.
func NewWithBuffer(out io.Writer, prompt, initial string, ctx *Context, terminalWidth func() int) (*Editor, error) {
	return newWithBuffer(out, prompt, buffer.NewFromString(initial), ctx, terminalWidth)
}

func newWithBuffer(out io.Writer, prompt string, buf *buffer.Buffer, ctx *Context, terminalWidth func() int) (*Editor, error) {
	e := &Editor{
		prompt:              prompt,
		out:                 out,
		ctx:                 ctx,
		terminalWidth:       terminalWidth,
		curHistoryLoc:       -1,
		historySubsetLoc:    -1,
		showAutosuggestions: true,
		newBuf:              buf,
	}
	e.cursor = buf.NumChars()
	return e, e.display()
}

// SetColorClosure installs the function applied to real-buffer bytes before
// they are written, e.g. a theme.Theme's Closure.
func (e *Editor) SetColorClosure(f func([]byte) []byte) { e.closure = f }

// SetShowAutosuggestions toggles the autosuggestion feature on or off.
func (e *Editor) SetShowAutosuggestions(v bool) { e.showAutosuggestions = v }

// SetPrompt replaces the prompt shown on the next redraw.
func (e *Editor) SetPrompt(p string) { e.prompt = p }

// Cursor returns the current cursor position.
func (e *Editor) Cursor() int { return e.cursor }

// CurrentHistoryLocation returns the history index currently being edited,
// or -1 if editing the new buffer.
func (e *Editor) CurrentHistoryLocation() int { return e.curHistoryLoc }

func (e *Editor) isSearch() bool { return e.reverseSearch || e.forwardSearch }

func (e *Editor) clearSearch() {
	e.reverseSearch = false
	e.forwardSearch = false
	e.historySubsetLoc = -1
	e.historySubsetIndex = nil
}

// curBuf returns the buffer currently being edited: the new buffer, or the
// history entry at curHistoryLoc.
func (e *Editor) curBuf() *buffer.Buffer {
	if e.curHistoryLoc >= 0 {
		return e.ctx.History.At(e.curHistoryLoc)
	}
	return e.newBuf
}

// CurrentBuffer returns the buffer currently being edited.
func (e *Editor) CurrentBuffer() *buffer.Buffer { return e.curBuf() }

// curBufMut returns the buffer currently being edited and marks it changed,
// mirroring the original's cur_buf_mut! macro: every call site that mutates
// the buffer goes through here instead of curBuf, so an active incremental
// search notices the new_buf changed and refreshes on the next redraw.
func (e *Editor) curBufMut() *buffer.Buffer {
	e.bufferChanged = true
	return e.curBuf()
}

// CompletionHintActive reports whether a tab-completion cycle is currently
// being shown; while true, MoveCursorLeft/MoveCursorRight only redraw and
// MoveUp/MoveDown do nothing, so the cursor and history position stay put.
func (e *Editor) CompletionHintActive() bool { return e.hint != nil }

// AutosuggestionVisible reports whether the most recent redraw computed an
// autosuggestion. The suggestion may add no text beyond the real buffer, as
// when it is the history entry currently being edited.
func (e *Editor) AutosuggestionVisible() bool { return e.autosuggestion != nil }

func (e *Editor) getWordsAndCursorPosition() ([]wordclass.Span, wordclass.Position) {
	var words []wordclass.Span
	if e.ctx.WordDivider != nil {
		words = e.ctx.WordDivider(e.curBuf())
	}
	return words, wordclass.Classify(e.cursor, words)
}

func (e *Editor) getWordBeforeCursor(ignoreSpaceBefore bool) (wordclass.Span, bool) {
	words, pos := e.getWordsAndCursorPosition()
	switch pos.Kind {
	case wordclass.InWord:
		return words[pos.Index], true
	case wordclass.OnRightEdge:
		return words[pos.Index], true
	case wordclass.OnLeftEdge:
		if ignoreSpaceBefore && pos.Index > 0 {
			return words[pos.Index-1], true
		}
		return wordclass.Span{}, false
	case wordclass.InSpace:
		if pos.Left < 0 {
			return wordclass.Span{}, false
		}
		if ignoreSpaceBefore {
			return words[pos.Left], true
		}
		return wordclass.Span{}, false
	}
	return wordclass.Span{}, false
}

// DeleteWordBeforeCursor deletes the word preceding the cursor. If
// ignoreSpaceBefore is true and there is space directly before the cursor,
// it skips past that space to find a word; otherwise it is a no-op when the
// character before the cursor is a space.
func (e *Editor) DeleteWordBeforeCursor(ignoreSpaceBefore bool) error {
	if span, ok := e.getWordBeforeCursor(ignoreSpaceBefore); ok {
		moved := e.curBufMut().Remove(span.Start, e.cursor)
		e.cursor -= moved
	}
	e.noNewline = true
	return e.display()
}

// InsertStrAfterCursor inserts s directly after the cursor, moving the
// cursor to the right by its rune count.
func (e *Editor) InsertStrAfterCursor(s string) error {
	return e.InsertCharsAfterCursor([]rune(s))
}

// InsertAfterCursor inserts a single character after the cursor.
func (e *Editor) InsertAfterCursor(c rune) error {
	return e.InsertCharsAfterCursor([]rune{c})
}

// InsertCharsAfterCursor inserts cs after the cursor, moving the cursor to
// the right by len(cs).
func (e *Editor) InsertCharsAfterCursor(cs []rune) error {
	e.curBufMut().Insert(e.cursor, cs)
	e.cursor += len(cs)
	e.noNewline = true
	return e.display()
}

// DeleteBeforeCursor removes the character immediately before the cursor
// and moves the cursor left. No-op at cursor 0.
func (e *Editor) DeleteBeforeCursor() error {
	if e.cursor > 0 {
		e.curBufMut().Remove(e.cursor-1, e.cursor)
		e.cursor--
	}
	e.noNewline = true
	return e.display()
}

// DeleteAfterCursor removes the character immediately after the cursor
// without moving it. No-op at end of buffer.
func (e *Editor) DeleteAfterCursor() error {
	buf := e.curBufMut()
	if e.cursor < buf.NumChars() {
		buf.Remove(e.cursor, e.cursor+1)
	}
	e.noNewline = true
	return e.display()
}

// DeleteAllBeforeCursor removes [0, cursor) and sets cursor to 0.
func (e *Editor) DeleteAllBeforeCursor() error {
	e.curBufMut().Remove(0, e.cursor)
	e.cursor = 0
	e.noNewline = true
	return e.display()
}

// DeleteAllAfterCursor truncates the buffer at the cursor.
func (e *Editor) DeleteAllAfterCursor() error {
	e.curBufMut().Truncate(e.cursor)
	e.noNewline = true
	return e.display()
}

// DeleteUntil removes every character between the cursor and position,
// exclusive of position, and moves the cursor to min(cursor, position).
func (e *Editor) DeleteUntil(position int) error {
	lo, hi := e.cursor, position
	if lo > hi {
		lo, hi = hi, lo
	}
	e.curBufMut().Remove(lo, hi)
	if position < e.cursor {
		e.cursor = position
	}
	e.noNewline = true
	return e.display()
}

// DeleteUntilInclusive removes every character between the cursor and
// position, inclusive of position.
func (e *Editor) DeleteUntilInclusive(position int) error {
	lo := e.cursor
	hi := position + 1
	if e.cursor+1 > hi {
		hi = e.cursor + 1
	}
	if lo > position {
		lo = position
	}
	e.curBufMut().Remove(lo, hi)
	if position < e.cursor {
		e.cursor = position
	}
	e.noNewline = true
	return e.display()
}

// MoveCursorLeft moves the cursor left by count characters, clamped to 0.
// While a completion hint is active, movement is swallowed: a redraw-only
// no-op, since the user is cycling completions instead.
func (e *Editor) MoveCursorLeft(count int) error {
	if e.CompletionHintActive() {
		return e.display()
	}
	if count > e.cursor {
		count = e.cursor
	}
	e.cursor -= count
	e.noNewline = true
	return e.display()
}

// MoveCursorRight moves the cursor right by count characters, clamped to
// the buffer length. Swallowed while a completion hint is active.
func (e *Editor) MoveCursorRight(count int) error {
	if e.CompletionHintActive() {
		return e.display()
	}
	buf := e.curBuf()
	if max := buf.NumChars() - e.cursor; count > max {
		count = max
	}
	e.cursor += count
	e.noNewline = true
	return e.display()
}

// MoveCursorTo moves the cursor to pos, clamped to the buffer length.
func (e *Editor) MoveCursorTo(pos int) error {
	e.cursor = pos
	if n := e.curBuf().NumChars(); e.cursor > n {
		e.cursor = n
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
	e.noNewline = true
	return e.display()
}

// MoveCursorToStartOfLine sets the cursor to 0.
func (e *Editor) MoveCursorToStartOfLine() error {
	e.cursor = 0
	e.noNewline = true
	return e.display()
}

// MoveCursorToEndOfLine sets the cursor to the end of the current buffer.
func (e *Editor) MoveCursorToEndOfLine() error {
	e.cursor = e.curBuf().NumChars()
	e.noNewline = true
	return e.display()
}

// CursorIsAtEndOfLine reports whether the cursor sits at the last valid
// position given the current no-eol constraint.
func (e *Editor) CursorIsAtEndOfLine() bool {
	n := e.curBuf().NumChars()
	if e.NoEOL {
		return e.cursor == n-1
	}
	return e.cursor == n
}

// MoveUp moves backwards in history, or cycles a prefix-filtered subset of
// history when the new buffer is non-empty.
func (e *Editor) MoveUp() error {
	if e.CompletionHintActive() {
		return nil
	}
	if e.isSearch() {
		return e.Search(false)
	}
	if e.newBuf.NumChars() > 0 {
		switch {
		case e.historySubsetLoc > 0:
			e.historySubsetLoc--
			e.curHistoryLoc = e.historySubsetIndex[e.historySubsetLoc]
		case e.historySubsetLoc < 0:
			e.historySubsetIndex = e.ctx.History.GetHistorySubset(e.newBuf)
			if len(e.historySubsetIndex) > 0 {
				e.historySubsetLoc = len(e.historySubsetIndex) - 1
				e.curHistoryLoc = e.historySubsetIndex[e.historySubsetLoc]
			}
		}
	} else {
		switch {
		case e.curHistoryLoc > 0:
			e.curHistoryLoc--
		case e.curHistoryLoc < 0 && e.ctx.History.Len() > 0:
			e.curHistoryLoc = e.ctx.History.Len() - 1
		}
	}
	return e.MoveCursorToEndOfLine()
}

// MoveDown moves forwards in history, returning to the new buffer past the
// end.
func (e *Editor) MoveDown() error {
	if e.CompletionHintActive() {
		return nil
	}
	if e.isSearch() {
		return e.Search(true)
	}
	if e.newBuf.NumChars() > 0 {
		if e.historySubsetLoc >= 0 {
			if e.historySubsetLoc < len(e.historySubsetIndex)-1 {
				e.historySubsetLoc++
				e.curHistoryLoc = e.historySubsetIndex[e.historySubsetLoc]
			} else {
				e.curHistoryLoc = -1
				e.historySubsetLoc = -1
				e.historySubsetIndex = nil
			}
		}
	} else if e.curHistoryLoc >= 0 {
		if e.curHistoryLoc < e.ctx.History.Len()-1 {
			e.curHistoryLoc++
		} else {
			e.curHistoryLoc = -1
		}
	}
	return e.MoveCursorToEndOfLine()
}

// MoveToStartOfHistory jumps to the oldest history entry, if any.
func (e *Editor) MoveToStartOfHistory() error {
	if e.ctx.History.Len() > 0 {
		e.curHistoryLoc = 0
		return e.MoveCursorToEndOfLine()
	}
	e.curHistoryLoc = -1
	e.noNewline = true
	return e.display()
}

// MoveToEndOfHistory returns to the new buffer.
func (e *Editor) MoveToEndOfHistory() error {
	if e.curHistoryLoc >= 0 {
		e.curHistoryLoc = -1
		return e.MoveCursorToEndOfLine()
	}
	e.noNewline = true
	return e.display()
}

// Undo reverts the most recent edit on the current buffer. Returns whether
// anything was undone.
func (e *Editor) Undo() (bool, error) {
	did := e.curBufMut().Undo()
	if did {
		return true, e.MoveCursorToEndOfLine()
	}
	e.noNewline = true
	return false, e.display()
}

// Redo reapplies the most recently undone edit.
func (e *Editor) Redo() (bool, error) {
	did := e.curBufMut().Redo()
	if did {
		return true, e.MoveCursorToEndOfLine()
	}
	e.noNewline = true
	return false, e.display()
}

// Revert discards every edit made to the current buffer since it was first
// created.
func (e *Editor) Revert() (bool, error) {
	did := e.curBufMut().Revert()
	if did {
		return true, e.MoveCursorToEndOfLine()
	}
	e.noNewline = true
	return false, e.display()
}

// Clear wipes the terminal screen and redraws the prompt and buffer.
func (e *Editor) Clear() error {
	if _, err := io.WriteString(e.out, "\x1b[2J\x1b[1;1H"); err != nil {
		return err
	}
	e.termCursorLine = 1
	e.noNewline = true
	e.clearSearch()
	return e.display()
}

// searchHistoryLoc maps the current subset-local search cursor back to an
// absolute history index.
func (e *Editor) searchHistoryLoc() (int, bool) {
	if len(e.historySubsetIndex) > 0 && e.historySubsetLoc >= 0 {
		return e.historySubsetIndex[e.historySubsetLoc], true
	}
	return 0, false
}

// refreshSearch recomputes the incremental-search subset from the current
// new-buffer contents, keeping the closest match to any prior selection.
func (e *Editor) refreshSearch(forward bool) {
	targetLoc, hadTarget := e.searchHistoryLoc()
	e.historySubsetIndex = e.ctx.History.SearchIndex(e.newBuf)

	if len(e.historySubsetIndex) > 0 {
		if forward {
			e.historySubsetLoc = 0
		} else {
			e.historySubsetLoc = len(e.historySubsetIndex) - 1
		}
		if hadTarget {
			for i, loc := range e.historySubsetIndex {
				if targetLoc <= loc {
					if forward || targetLoc == loc || i == 0 {
						e.historySubsetLoc = i
					} else {
						e.historySubsetLoc = i - 1
					}
					break
				}
			}
		}
	} else {
		e.historySubsetLoc = -1
	}

	e.reverseSearch = !forward
	e.forwardSearch = forward
	e.curHistoryLoc = -1
	e.noNewline = true
	e.bufferChanged = false
}

// Search begins or continues an incremental history search.
func (e *Editor) Search(forward bool) error {
	if !e.isSearch() {
		e.refreshSearch(forward)
	} else if len(e.historySubsetIndex) > 0 {
		if e.historySubsetLoc >= 0 {
			if forward {
				if e.historySubsetLoc < len(e.historySubsetIndex)-1 {
					e.historySubsetLoc++
				} else {
					e.historySubsetLoc = 0
				}
			} else {
				if e.historySubsetLoc > 0 {
					e.historySubsetLoc--
				} else {
					e.historySubsetLoc = len(e.historySubsetIndex) - 1
				}
			}
		}
	}
	return e.display()
}

// AcceptAutosuggestion copies the current autosuggestion into the buffer
// being edited and exits search mode.
func (e *Editor) AcceptAutosuggestion() error {
	if e.showAutosuggestions && e.autosuggestion != nil {
		buf := e.curBufMut()
		if e.isSearch() {
			buf.CopyBuffer(e.autosuggestion)
		} else {
			buf.InsertFromBuffer(e.autosuggestion)
		}
	}
	e.clearSearch()
	return e.MoveCursorToEndOfLine()
}

// currentAutosuggestion computes the autosuggestion to show on the next
// redraw: during search, the buffer at the current search match; otherwise
// the buffer at curHistoryLoc if set, else the newest history entry
// starting with the new buffer's text.
func (e *Editor) currentAutosuggestion() *buffer.Buffer {
	if e.isSearch() {
		if loc, ok := e.searchHistoryLoc(); ok {
			return e.ctx.History.At(loc)
		}
		return nil
	}
	if !e.showAutosuggestions {
		return nil
	}
	if e.curHistoryLoc >= 0 {
		return e.ctx.History.At(e.curHistoryLoc)
	}
	if idx, ok := e.ctx.History.GetNewestMatch(e.ctx.History.Len(), e.newBuf); ok {
		return e.ctx.History.At(idx)
	}
	return nil
}

// searchPrompt computes the prompt text and the fixed search-prefix width to
// use for this redraw: the normal prompt with a zero width, or the
// "(search)'…' " framing with the fixed searchPromptWidth while searching.
// The second value is the width redraw substitutes for the real prompt
// width when computing the to-cursor column during a search.
func (e *Editor) searchPrompt() (string, int) {
	if !e.isSearch() {
		return e.prompt, 0
	}
	place := 0
	if len(e.historySubsetIndex) > 0 {
		if e.historySubsetLoc >= 0 {
			place = e.historySubsetLoc + 1
		}
	}
	return "(search)'" + e.curBuf().String() + "' (" +
		strconv.Itoa(place) + "/" + strconv.Itoa(len(e.historySubsetIndex)) + "): ", searchPromptWidth
}

// display recomputes and emits one full redraw.
func (e *Editor) display() error {
	if e.isSearch() && e.bufferChanged {
		e.refreshSearch(e.forwardSearch)
	}
	e.autosuggestion = e.currentAutosuggestion()
	return e.render(true)
}

// Display is the public entry point the keymap and read-loop call to force
// a redraw without any state transition.
func (e *Editor) Display() error { return e.display() }

func (e *Editor) render(showAutosuggest bool) error {
	prompt, searchPromptW := e.searchPrompt()

	width := 80
	if e.terminalWidth != nil {
		width = e.terminalWidth()
	}

	var comp *redraw.Completions
	if e.hint != nil {
		hl := e.hint.highlight
		if hl < 0 {
			hl = -1
		}
		comp = &redraw.Completions{Items: e.hint.items, Highlight: hl}
	}

	res := redraw.Plan(redraw.Input{
		Prompt:            prompt,
		IsSearch:          e.isSearch(),
		SearchPromptWidth: searchPromptW,
		TerminalWidth:     width,
		TermCursorLine:    e.termCursorLine,
		NoEOL:             e.NoEOL,
		NoNewline:         e.noNewline,
		Buffer:            e.curBuf(),
		Autosuggestion:    e.autosuggestion,
		ShowAutosuggest:   showAutosuggest,
		Cursor:            e.cursor,
		Closure:           e.closure,
		SearchColor:       []byte("\x1b[33m"),
		SearchReset:       []byte("\x1b[0m"),
		Completions:       comp,
	})

	e.cursor = res.Cursor
	e.termCursorLine = res.TermCursorLine
	_, err := e.out.Write(res.Output)
	return err
}

// HandleNewline processes the Enter key: accepting a pending autosuggestion
// or completion hint, handling backslash line-continuation, or finalizing
// the buffer. done is true once the read-loop should consume the result.
func (e *Editor) HandleNewline() (done bool, err error) {
	if e.isSearch() {
		if err := e.AcceptAutosuggestion(); err != nil {
			return false, err
		}
	}
	e.clearSearch()
	if e.hint != nil {
		e.hint = nil
		return false, nil
	}

	if c, ok := e.curBuf().CharBefore(e.cursor); ok && c == '\\' {
		return false, e.InsertAfterCursor('\n')
	}

	e.cursor = e.curBuf().NumChars()
	e.noNewline = true
	if err := e.render(false); err != nil {
		return false, err
	}
	if _, err := io.WriteString(e.out, "\r\n"); err != nil {
		return false, err
	}
	e.hint = nil
	return true, nil
}

// SkipCompletionsHint dismisses any active completion-hint cycle without
// accepting a candidate.
func (e *Editor) SkipCompletionsHint() { e.hint = nil }

// Complete advances or starts a tab-completion cycle.
func (e *Editor) Complete(kind CompleteType, cols int) error {
	if e.hint != nil {
		i := 0
		if e.hint.highlight >= 0 {
			i = nextCompletionIndex(e.hint.highlight, len(e.hint.items), cols, kind)
		}
		if err := e.DeleteWordBeforeCursor(false); err != nil {
			return err
		}
		if err := e.InsertStrAfterCursor(e.hint.items[i]); err != nil {
			return err
		}
		e.hint.highlight = i
		e.noNewline = true
		return e.display()
	}

	span, ok := e.getWordBeforeCursor(false)
	word := ""
	if ok {
		runes := []rune(e.curBuf().String())
		word = string(runes[span.Start:span.End])
	}

	if e.ctx.Completer == nil {
		return nil
	}
	candidates := append([]string(nil), e.ctx.Completer.Completions(word)...)
	candidates = sortDedup(candidates)

	switch {
	case len(candidates) == 0:
		e.hint = nil
		return nil
	case len(candidates) == 1:
		e.hint = nil
		if err := e.DeleteWordBeforeCursor(false); err != nil {
			return err
		}
		return e.InsertStrAfterCursor(candidates[0])
	default:
		if prefix, ok := longestCommonPrefix(candidates); ok && len(prefix) > len(word) && strings.HasPrefix(prefix, word) {
			if err := e.DeleteWordBeforeCursor(false); err != nil {
				return err
			}
			return e.InsertStrAfterCursor(prefix)
		}
		e.hint = &completionHint{items: candidates, highlight: -1}
		e.noNewline = true
		return e.display()
	}
}

func nextCompletionIndex(i, n, cols int, kind CompleteType) int {
	if cols < 1 {
		cols = 1
	}
	switch kind {
	case CompleteNext:
		if i+1 >= n {
			return 0
		}
		return i + 1
	case CompletePrev:
		if i == 0 {
			return n - 1
		}
		return i - 1
	case CompleteUp:
		if i+1 < cols {
			return i
		}
		return i + 1 - cols
	case CompleteDown:
		if i+cols-1 > n-1 {
			return i
		}
		return i + cols - 1
	}
	return i
}

func sortDedup(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := append([]string(nil), in...)
	sort.Strings(out)
	w := 1
	for r := 1; r < len(out); r++ {
		if out[r] != out[w-1] {
			out[w] = out[r]
			w++
		}
	}
	return out[:w]
}

func longestCommonPrefix(items []string) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	prefix := items[0]
	for _, s := range items[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return "", false
			}
		}
	}
	return prefix, true
}

// String returns the final text to hand back to the read-loop: the new
// buffer, or the history entry currently being edited.
func (e *Editor) String() string {
	if e.curHistoryLoc >= 0 {
		return e.ctx.History.At(e.curHistoryLoc).String()
	}
	return e.newBuf.String()
}
