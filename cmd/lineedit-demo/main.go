// Command lineedit-demo is a minimal interactive shell exercising the
// editor/vikeymap/redraw stack end to end: raw terminal I/O, history
// persistence and the Vi modal keymap. A word-list completer is installed
// in the editor context, but no key binding invokes completion. It adapts
// AndrewNeudegg-calc/pkg/display/repl.go's runInteractive loop — enable raw
// mode, read one decoded key at a time, hand it to the editor, redraw — to
// the library's own Editor/Vi pair instead of the calculator's single-mode
// line editor.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/pflag"

	"github.com/andrewneudegg/lineedit/pkg/buffer"
	"github.com/andrewneudegg/lineedit/pkg/completion"
	"github.com/andrewneudegg/lineedit/pkg/config"
	"github.com/andrewneudegg/lineedit/pkg/editor"
	"github.com/andrewneudegg/lineedit/pkg/history"
	"github.com/andrewneudegg/lineedit/pkg/term"
	"github.com/andrewneudegg/lineedit/pkg/theme"
	"github.com/andrewneudegg/lineedit/pkg/vikeymap"
	"github.com/andrewneudegg/lineedit/pkg/wordclass"
)

func main() {
	var (
		configPath  = pflag.String("config", defaultConfigPath(), "path to the YAML config file")
		historyPath = pflag.String("history-file", defaultHistoryPath(), "path to the newline-delimited history file")
		noVi        = pflag.Bool("no-vi", false, "disable Vi keybindings (insert-only mode)")
		noSuggest   = pflag.Bool("no-autosuggest", false, "disable autosuggestions")
		prompt      = pflag.String("prompt", "", "override the configured prompt")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lineedit-demo: loading config: %v\n", err)
		os.Exit(1)
	}
	if *noVi {
		cfg.ViMode = false
	}
	if *noSuggest {
		cfg.ShowAutosuggestions = false
	}
	if *prompt != "" {
		cfg.Prompt = *prompt
	}

	h := history.New()
	loadHistory(h, *historyPath)

	th := theme.Default()
	words := completion.NewWordList()
	words.AddCategory("keywords", "select", "insert", "update", "delete", "from", "where", "order", "group")

	ctx := &editor.Context{History: h, Completer: words, WordDivider: splitWords}

	if !term.IsTerminal(os.Stdin.Fd()) {
		runBatch(ctx, cfg.Prompt)
		return
	}

	if err := runInteractive(ctx, cfg, th, *historyPath); err != nil {
		fmt.Fprintf(os.Stderr, "lineedit-demo: %v\n", err)
		os.Exit(1)
	}
}

// runBatch handles the non-tty case (piped stdin): a plain scanner loop with
// no raw mode, no redraw and no Vi keymap, mirroring
// AndrewNeudegg-calc/pkg/display/repl.go's Run fallback path.
func runBatch(ctx *editor.Context, prompt string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ctx.History.Push(buffer.NewFromString(line))
		fmt.Printf("%s%s\n", prompt, line)
	}
}

func runInteractive(ctx *editor.Context, cfg *config.Config, th *theme.Theme, historyPath string) error {
	fd := int(os.Stdin.Fd())
	state, err := term.EnableRaw(fd)
	if err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	defer term.Restore(state)

	reader := bufio.NewReader(os.Stdin)
	out := os.Stdout

	for {
		ed, err := editor.New(out, cfg.Prompt, ctx, term.StdoutWidth)
		if err != nil {
			return err
		}
		ed.SetColorClosure(th.Closure())
		ed.SetShowAutosuggestions(cfg.ShowAutosuggestions)

		line, eof, err := readLine(reader, ed, cfg)
		if err != nil {
			return err
		}
		if eof {
			fmt.Fprintln(out)
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ctx.History.Push(buffer.NewFromString(trimmed))
		appendHistoryLine(historyPath, trimmed)
		fmt.Fprintf(out, "\r\n  -> %s\r\n", trimmed)
	}

	return nil
}

// readLine decodes one line's worth of keystrokes and drives either the Vi
// keymap or a bare insert-only fallback, returning the finalized buffer text.
func readLine(reader *bufio.Reader, ed *editor.Editor, cfg *config.Config) (line string, eof bool, err error) {
	var vi *vikeymap.Vi
	if cfg.ViMode {
		vi = vikeymap.New(ed, 4)
	}

	for {
		k, decodeErr := decodeKey(reader)
		if decodeErr == io.EOF {
			return "", true, nil
		}
		if decodeErr != nil {
			return "", false, decodeErr
		}

		if k.Special == vikeymap.Enter {
			done, herr := ed.HandleNewline()
			if herr != nil {
				return "", false, herr
			}
			if done {
				return ed.String(), false, nil
			}
			continue
		}

		if vi != nil {
			if herr := vi.HandleKey(k); herr != nil {
				return "", false, herr
			}
			continue
		}

		if herr := handleInsertOnly(ed, k); herr != nil {
			return "", false, herr
		}
	}
}

// handleInsertOnly supports --no-vi: every printable key inserts, arrows
// move, Backspace/Delete erase, with no modes and no dot-repeat.
func handleInsertOnly(ed *editor.Editor, k vikeymap.Key) error {
	switch k.Special {
	case vikeymap.Left:
		return ed.MoveCursorLeft(1)
	case vikeymap.Right:
		return ed.MoveCursorRight(1)
	case vikeymap.Up:
		return ed.MoveUp()
	case vikeymap.Down:
		return ed.MoveDown()
	case vikeymap.Home:
		return ed.MoveCursorToStartOfLine()
	case vikeymap.End:
		return ed.MoveCursorToEndOfLine()
	case vikeymap.Backspace:
		return ed.DeleteBeforeCursor()
	case vikeymap.Delete:
		return ed.DeleteAfterCursor()
	case vikeymap.CtrlL:
		return ed.Clear()
	case vikeymap.Esc:
		return nil
	default:
		return ed.InsertAfterCursor(k.Rune)
	}
}

// decodeKey reads one keystroke from r, resolving ANSI cursor-key escape
// sequences (CSI A/B/C/D, Home, End) into vikeymap.Key values. Unrecognized
// escape sequences collapse to a bare Esc.
func decodeKey(r *bufio.Reader) (vikeymap.Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return vikeymap.Key{}, err
	}

	switch b {
	case '\r', '\n':
		return vikeymap.Key{Special: vikeymap.Enter}, nil
	case 0x7f, 0x08:
		return vikeymap.Key{Special: vikeymap.Backspace}, nil
	case 0x0c:
		return vikeymap.Key{Special: vikeymap.CtrlL}, nil
	case 0x12:
		return vikeymap.Key{Special: vikeymap.CtrlR}, nil
	case 0x1b:
		return decodeEscape(r)
	}

	if b < 0x80 {
		return vikeymap.Key{Rune: rune(b)}, nil
	}

	r.UnreadByte()
	ru, _, rerr := r.ReadRune()
	if rerr != nil {
		return vikeymap.Key{}, rerr
	}
	return vikeymap.Key{Rune: ru}, nil
}

func decodeEscape(r *bufio.Reader) (vikeymap.Key, error) {
	first, err := r.ReadByte()
	if err != nil {
		return vikeymap.Key{Special: vikeymap.Esc}, nil
	}
	if first != '[' && first != 'O' {
		r.UnreadByte()
		return vikeymap.Key{Special: vikeymap.Esc}, nil
	}
	second, err := r.ReadByte()
	if err != nil {
		return vikeymap.Key{Special: vikeymap.Esc}, nil
	}
	switch second {
	case 'A':
		return vikeymap.Key{Special: vikeymap.Up}, nil
	case 'B':
		return vikeymap.Key{Special: vikeymap.Down}, nil
	case 'C':
		return vikeymap.Key{Special: vikeymap.Right}, nil
	case 'D':
		return vikeymap.Key{Special: vikeymap.Left}, nil
	case 'H':
		return vikeymap.Key{Special: vikeymap.Home}, nil
	case 'F':
		return vikeymap.Key{Special: vikeymap.End}, nil
	case '3':
		if b, _ := r.ReadByte(); b != '~' {
			r.UnreadByte()
		}
		return vikeymap.Key{Special: vikeymap.Delete}, nil
	}
	return vikeymap.Key{Special: vikeymap.Esc}, nil
}

// splitWords divides a buffer into whitespace-delimited word spans, the
// default WordDivider for the demo shell.
func splitWords(b *buffer.Buffer) []wordclass.Span {
	s := []rune(b.String())
	var spans []wordclass.Span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
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

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lineedit.yaml"
	}
	return filepath.Join(home, ".config", "lineedit", "config.yaml")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lineedit_history"
	}
	return filepath.Join(home, ".config", "lineedit", "history")
}

func loadHistory(h *history.History, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		h.Push(buffer.NewFromString(line))
	}
}

func appendHistoryLine(path, line string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, line)
}
