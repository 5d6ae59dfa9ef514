// Package term wraps the raw terminal I/O concerns the editor core treats
// as an external collaborator: putting a file descriptor into raw mode,
// restoring it, detecting a tty, and querying terminal width. It adapts
// AndrewNeudegg-calc's pkg/display tty_linux.go/tty_darwin.go/tty_stub.go
// trio of hand-rolled syscall.Termios ioctl wrappers onto golang.org/x/term
// and github.com/mattn/go-isatty, the libraries bmf-san-ggc and
// deadsy-go-cli reach for instead of hand-rolled ioctl calls.
package term

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal width cannot be determined, e.g.
// when stdout is redirected to a file or pipe.
const DefaultWidth = 80

// State is the saved terminal state returned by EnableRaw, to be handed to
// Restore when the session ends.
type State struct {
	fd  int
	old *term.State
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// EnableRaw puts fd into raw mode and returns the previous state so the
// caller can restore it with Restore.
func EnableRaw(fd int) (*State, error) {
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &State{fd: fd, old: old}, nil
}

// Restore returns the terminal to the state captured by EnableRaw.
func Restore(s *State) error {
	if s == nil {
		return errors.New("term: nil state")
	}
	return term.Restore(s.fd, s.old)
}

// Width returns the current terminal width in columns for fd, or
// DefaultWidth if it cannot be determined (not a tty, ioctl failure).
func Width(fd int) int {
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// StdoutWidth is a convenience wrapper around Width for os.Stdout.
func StdoutWidth() int {
	return Width(int(os.Stdout.Fd()))
}
