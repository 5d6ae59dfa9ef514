// Package vikeymap implements the Vi modal keymap that drives an
// editor.Editor: a LIFO mode stack (Insert/Normal/Replace/Delete), count
// accumulation, operator-pending delete/change, dot-repeat, and Replace
// mode. It is grounded on the original liner crate's src/keymap/vi.rs mode
// dispatch, adapted the way AndrewNeudegg-calc/pkg/display/line_editor.go
// adapts a single editing mode onto Go's explicit-error style.
package vikeymap

import (
	"github.com/andrewneudegg/lineedit/pkg/editor"
)

// Key is a decoded keystroke. The outer read-loop owns key decoding; the
// keymap only pattern-matches on the result.
type Key struct {
	Rune    rune
	Special Special
}

// Special names a non-character key. Zero value means Rune is meaningful.
type Special int

const (
	None Special = iota
	Esc
	Left
	Right
	Up
	Down
	Home
	End
	Backspace
	Delete
	CtrlL
	CtrlR
	Enter
)

func charKey(r rune) Key { return Key{Rune: r} }

func isMovementKey(k Key) bool {
	switch k.Special {
	case Left, Right, Backspace, Home, End:
		return true
	}
	if k.Special == None {
		return k.Rune == 'h' || k.Rune == 'l' || k.Rune == ' ' || k.Rune == '$'
	}
	return false
}

// mode is the editing mode. The zero value, Normal, is also what an empty
// mode stack reports.
type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeReplace
	modeDelete
)

type stackEntry struct {
	mode     mode
	startPos int // meaningful for modeDelete
}

// Vi is the Vi modal keymap bound to a single editor.Editor.
type Vi struct {
	Ed *editor.Editor

	stack []stackEntry

	currentCommand  []Key
	lastCommand     []Key
	currentInsert   Key
	hasCurrentInsert bool
	lastInsert      Key
	hasLastInsert   bool

	count          uint32
	secondaryCount uint32
	lastCount      uint32

	movementReset bool

	completionCols int
}

// New constructs a Vi keymap over ed, starting in Insert mode with an open
// undo group, matching Vi's "you start typing" entry behavior.
func New(ed *editor.Editor, completionCols int) *Vi {
	ed.CurrentBuffer().StartUndoGroup()
	v := &Vi{
		Ed:             ed,
		lastInsert:     charKey('i'),
		hasLastInsert:  true,
		completionCols: completionCols,
	}
	if v.completionCols < 1 {
		v.completionCols = 1
	}
	v.stack = append(v.stack, stackEntry{mode: modeInsert})
	ed.NoEOL = false
	v.movementReset = false
	return v
}

func (v *Vi) currentMode() mode {
	if len(v.stack) == 0 {
		return modeNormal
	}
	return v.stack[len(v.stack)-1].mode
}

func (v *Vi) setMode(m mode) {
	v.setModePreserveLast(m)
	if m == modeInsert {
		v.lastCount = 0
		v.lastCommand = nil
	}
}

func (v *Vi) setModePreserveLast(m mode) {
	v.Ed.NoEOL = m == modeNormal
	v.movementReset = m != modeInsert
	v.stack = append(v.stack, stackEntry{mode: m})
	if m == modeInsert {
		v.Ed.CurrentBuffer().StartUndoGroup()
	}
}

func (v *Vi) pushDelete(startPos int) {
	v.Ed.NoEOL = false
	v.movementReset = true
	v.stack = append(v.stack, stackEntry{mode: modeDelete, startPos: startPos})
}

// popStack pops the top of the mode stack, the way ModeStack::pop treats an
// empty stack as if it held a single Normal entry.
func (v *Vi) popStack() stackEntry {
	if len(v.stack) == 0 {
		return stackEntry{mode: modeNormal}
	}
	last := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	return last
}

func (v *Vi) popMode() {
	last := v.popStack()
	v.Ed.NoEOL = v.currentMode() == modeNormal
	v.movementReset = v.currentMode() != modeInsert
	if last.mode == modeInsert {
		v.Ed.CurrentBuffer().EndUndoGroup()
	}
}

// popModeAfterMovement pops the stack after a movement key completes. If
// the popped mode was a pending delete/change operator, it performs the
// accumulated delete and snapshots dot-repeat state.
func (v *Vi) popModeAfterMovement() error {
	popped := v.popStack()

	v.Ed.NoEOL = v.currentMode() == modeNormal
	v.movementReset = v.currentMode() != modeInsert

	switch popped.mode {
	case modeDelete:
		if err := v.Ed.DeleteUntil(popped.startPos); err != nil {
			return err
		}
		v.lastCommand, v.currentCommand = v.currentCommand, v.lastCommand
		v.lastInsert, v.hasLastInsert = v.currentInsert, v.hasCurrentInsert
		v.lastCount = v.count
		v.count = 0
		v.secondaryCount = 0
	case modeNormal:
		v.count = 0
	}
	return nil
}

func (v *Vi) normalModeAbort() {
	v.stack = nil
	v.Ed.NoEOL = true
	v.count = 0
}

// moveCount returns the effective repeat count for a single movement: 0
// behaves the same as 1.
func (v *Vi) moveCount() int {
	if v.count == 0 {
		return 1
	}
	return int(v.count)
}

func (v *Vi) moveCountLeft() int {
	n := v.moveCount()
	if v.Ed.Cursor() < n {
		return v.Ed.Cursor()
	}
	return n
}

func (v *Vi) moveCountRight() int {
	n := v.moveCount()
	remaining := v.Ed.CurrentBuffer().NumChars() - v.Ed.Cursor()
	if remaining < n {
		return remaining
	}
	return n
}

// satMulAdd computes count*10+digit with saturating arithmetic, mirroring
// Vi's count.saturating_mul(10).saturating_add(digit).
func satMulAdd(count uint32, digit uint32) uint32 {
	const max = ^uint32(0)
	if count > max/10 {
		return max
	}
	count *= 10
	if count > max-digit {
		return max
	}
	return count + digit
}

// satMul computes a*b with saturating arithmetic, mirroring Vi's
// secondary_count.saturating_mul(count) used to combine stacked counts.
func satMul(a, b uint32) uint32 {
	const max = ^uint32(0)
	if a == 0 || b == 0 {
		return 0
	}
	if a > max/b {
		return max
	}
	return a * b
}

// HandleKey dispatches one keystroke through the current mode's handler.
func (v *Vi) HandleKey(k Key) error {
	switch v.currentMode() {
	case modeNormal:
		return v.handleNormal(k)
	case modeInsert:
		return v.handleInsert(k)
	case modeReplace:
		return v.handleReplace(k)
	case modeDelete:
		return v.handleDeleteOrChange(k)
	}
	return nil
}

func (v *Vi) handleCommon(k Key) error {
	switch k.Special {
	case CtrlL:
		return v.Ed.Clear()
	case Left:
		return v.Ed.MoveCursorLeft(1)
	case Right:
		return v.Ed.MoveCursorRight(1)
	case Up:
		return v.Ed.MoveUp()
	case Down:
		return v.Ed.MoveDown()
	case Home:
		return v.Ed.MoveCursorToStartOfLine()
	case End:
		return v.Ed.MoveCursorToEndOfLine()
	case Backspace:
		return v.Ed.DeleteBeforeCursor()
	case Delete:
		return v.Ed.DeleteAfterCursor()
	}
	return nil
}

func (v *Vi) handleInsert(k Key) error {
	switch {
	case k.Special == Esc:
		if v.count > 0 {
			v.lastCount = v.count
			for i := uint32(1); i < v.count; i++ {
				keys := v.lastCommand
				for _, rk := range keys {
					if err := v.handleKeyCore(rk); err != nil {
						return err
					}
				}
			}
			v.count = 0
		}
		if err := v.Ed.MoveCursorLeft(1); err != nil {
			return err
		}
		v.popMode()
		return nil

	case k.Special == None:
		if v.movementReset {
			v.Ed.CurrentBuffer().EndUndoGroup()
			v.Ed.CurrentBuffer().StartUndoGroup()
			v.lastCommand = nil
			v.movementReset = false
			v.lastInsert, v.hasLastInsert = charKey('i'), true
		}
		v.lastCommand = append(v.lastCommand, k)
		return v.Ed.InsertAfterCursor(k.Rune)

	case k.Special == Backspace || k.Special == Delete:
		if v.movementReset {
			v.Ed.CurrentBuffer().EndUndoGroup()
			v.Ed.CurrentBuffer().StartUndoGroup()
			v.lastCommand = nil
			v.movementReset = false
			v.lastInsert, v.hasLastInsert = charKey('i'), true
		}
		v.lastCommand = append(v.lastCommand, k)
		return v.handleCommon(k)

	case k.Special == Left || k.Special == Right || k.Special == Home || k.Special == End:
		v.count = 0
		v.movementReset = true
		return v.handleCommon(k)

	case k.Special == Up:
		v.count = 0
		v.movementReset = true
		v.Ed.CurrentBuffer().EndUndoGroup()
		if err := v.Ed.MoveUp(); err != nil {
			return err
		}
		v.Ed.CurrentBuffer().StartUndoGroup()
		return nil

	case k.Special == Down:
		v.count = 0
		v.movementReset = true
		v.Ed.CurrentBuffer().EndUndoGroup()
		if err := v.Ed.MoveDown(); err != nil {
			return err
		}
		v.Ed.CurrentBuffer().StartUndoGroup()
		return nil

	default:
		return v.handleCommon(k)
	}
}

func (v *Vi) handleNormal(k Key) error {
	switch {
	case k.Special == Esc:
		v.count = 0
		return nil

	case k.Special == None && k.Rune == 'i':
		v.lastInsert, v.hasLastInsert = k, true
		v.setMode(modeInsert)
		return nil

	case k.Special == None && k.Rune == 'a':
		v.lastInsert, v.hasLastInsert = k, true
		v.setMode(modeInsert)
		return v.Ed.MoveCursorRight(1)

	case k.Special == None && k.Rune == 'A':
		v.lastInsert, v.hasLastInsert = k, true
		v.setMode(modeInsert)
		return v.Ed.MoveCursorToEndOfLine()

	case k.Special == None && k.Rune == 'I':
		v.lastInsert, v.hasLastInsert = k, true
		v.setMode(modeInsert)
		return v.Ed.MoveCursorToStartOfLine()

	case k.Special == None && k.Rune == 's':
		v.lastInsert, v.hasLastInsert = k, true
		v.setMode(modeInsert)
		pos := v.Ed.Cursor() + v.moveCountRight()
		if err := v.Ed.DeleteUntil(pos); err != nil {
			return err
		}
		v.lastCount = v.count
		v.count = 0
		return nil

	case k.Special == None && k.Rune == 'r':
		v.setMode(modeReplace)
		return nil

	case k.Special == None && (k.Rune == 'd' || k.Rune == 'c'):
		v.currentCommand = nil
		if k.Rune == 'd' {
			v.hasCurrentInsert = false
			v.currentCommand = append(v.currentCommand, k)
		} else {
			v.currentInsert, v.hasCurrentInsert = k, true
			v.currentCommand = nil
			v.setMode(modeInsert)
		}
		startPos := v.Ed.Cursor()
		v.pushDelete(startPos)
		v.secondaryCount = v.count
		v.count = 0
		return nil

	case k.Special == None && k.Rune == 'D':
		v.hasLastInsert = false
		v.lastCommand = []Key{k}
		v.count = 0
		v.lastCount = 0
		return v.Ed.DeleteAllAfterCursor()

	case k.Special == None && k.Rune == 'C':
		v.hasLastInsert = false
		v.lastCommand = []Key{k}
		v.count = 0
		v.lastCount = 0
		v.setModePreserveLast(modeInsert)
		return v.Ed.DeleteAllAfterCursor()

	case k.Special == None && k.Rune == '.':
		switch {
		case v.count == 0 && v.lastCount == 0:
			v.count = 1
		case v.count == 0:
			v.count = v.lastCount
		}
		return v.repeat()

	case k.Special == Left || k.Special == Backspace || (k.Special == None && k.Rune == 'h'):
		count := v.moveCountLeft()
		if err := v.Ed.MoveCursorLeft(count); err != nil {
			return err
		}
		return v.popModeAfterMovement()

	case k.Special == Right || (k.Special == None && (k.Rune == 'l' || k.Rune == ' ')):
		count := v.moveCountRight()
		if err := v.Ed.MoveCursorRight(count); err != nil {
			return err
		}
		return v.popModeAfterMovement()

	case k.Special == Up || (k.Special == None && k.Rune == 'k'):
		if err := v.Ed.MoveUp(); err != nil {
			return err
		}
		return v.popModeAfterMovement()

	case k.Special == Down || (k.Special == None && k.Rune == 'j'):
		if err := v.Ed.MoveDown(); err != nil {
			return err
		}
		return v.popModeAfterMovement()

	case k.Special == None && k.Rune == '0' && v.count == 0:
		if err := v.Ed.MoveCursorToStartOfLine(); err != nil {
			return err
		}
		return v.popModeAfterMovement()

	case k.Special == None && k.Rune >= '0' && k.Rune <= '9':
		v.count = satMulAdd(v.count, uint32(k.Rune-'0'))
		return nil

	case k.Special == None && k.Rune == '$':
		if err := v.Ed.MoveCursorToEndOfLine(); err != nil {
			return err
		}
		return v.popModeAfterMovement()

	case k.Special == None && k.Rune == 'x', k.Special == Delete:
		v.hasLastInsert = false
		v.lastCommand = []Key{k}
		v.lastCount = v.count
		pos := v.Ed.Cursor() + v.moveCountRight()
		if err := v.Ed.DeleteUntil(pos); err != nil {
			return err
		}
		v.count = 0
		return nil

	case k.Special == None && k.Rune == 'u':
		count := v.moveCount()
		v.count = 0
		for i := 0; i < count; i++ {
			did, err := v.Ed.Undo()
			if err != nil {
				return err
			}
			if !did {
				break
			}
		}
		return nil

	case k.Special == CtrlR:
		count := v.moveCount()
		v.count = 0
		for i := 0; i < count; i++ {
			did, err := v.Ed.Redo()
			if err != nil {
				return err
			}
			if !did {
				break
			}
		}
		return nil

	default:
		return v.handleCommon(k)
	}
}

func (v *Vi) handleReplace(k Key) error {
	if k.Special == None {
		if v.moveCountRight() == v.moveCount() {
			v.hasLastInsert = false
			v.lastCommand = []Key{charKey('r'), k}
			v.lastCount = v.count

			buf := v.Ed.CurrentBuffer()
			buf.StartUndoGroup()
			n := v.moveCountRight()
			for i := 0; i < n; i++ {
				if err := v.Ed.DeleteAfterCursor(); err != nil {
					return err
				}
				if err := v.Ed.InsertAfterCursor(k.Rune); err != nil {
					return err
				}
			}
			buf.EndUndoGroup()

			if err := v.Ed.MoveCursorLeft(1); err != nil {
				return err
			}
		}
		v.popMode()
	} else {
		v.normalModeAbort()
	}
	v.count = 0
	return nil
}

func (v *Vi) handleDeleteOrChange(k Key) error {
	switch {
	case isMovementKey(k) || (k.Special == None && k.Rune == '0' && v.count == 0):
		switch {
		case v.count == 0 && v.secondaryCount == 0:
			v.count = 0
		case v.secondaryCount == 0:
			// v.count already set
		case v.count == 0:
			v.count = v.secondaryCount
		default:
			v.count = satMul(v.secondaryCount, v.count)
		}
		v.currentCommand = append(v.currentCommand, k)
		return v.handleNormal(k)

	case k.Special == None && k.Rune >= '0' && k.Rune <= '9':
		return v.handleNormal(k)

	case (k.Rune == 'c' && v.hasCurrentInsert && v.currentInsert.Rune == 'c') ||
		(k.Rune == 'd' && !v.hasCurrentInsert):
		v.currentCommand = append(v.currentCommand, k)
		v.count = 0
		v.secondaryCount = 0
		if err := v.Ed.MoveCursorToStartOfLine(); err != nil {
			return err
		}
		if err := v.Ed.DeleteAllAfterCursor(); err != nil {
			return err
		}
		v.popMode()
		return nil

	default:
		v.normalModeAbort()
		return nil
	}
}

// repeat replays last_insert (to re-enter Insert mode if the last edit did)
// followed by last_command, then Esc if it had entered Insert mode.
func (v *Vi) repeat() error {
	v.lastCount = v.count
	keys := v.lastCommand
	v.lastCommand = nil

	if v.hasLastInsert {
		if err := v.handleKeyCore(v.lastInsert); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if err := v.handleKeyCore(k); err != nil {
			return err
		}
	}
	if v.hasLastInsert {
		if err := v.handleKeyCore(Key{Special: Esc}); err != nil {
			return err
		}
	}

	v.lastCommand = keys
	return nil
}

func (v *Vi) handleKeyCore(k Key) error {
	return v.HandleKey(k)
}
