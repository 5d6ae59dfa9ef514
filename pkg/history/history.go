// Package history implements the append-only, index-stable collection of
// finalized buffers the editor core navigates with the Up/Down keys, the
// incremental search mode, and autosuggestion lookup.
package history

import (
	"strings"

	"github.com/andrewneudegg/lineedit/pkg/buffer"
)

// History is an ordered, append-only list of past buffers. Indices remain
// stable for the lifetime of the session: Push only appends.
type History struct {
	entries []*buffer.Buffer
}

// New returns an empty History.
func New() *History { return &History{} }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// At returns the buffer at index i. It panics on an out-of-range index, the
// same contract a slice index gives — callers are expected to check Len.
func (h *History) At(i int) *buffer.Buffer { return h.entries[i] }

// Push appends buf as a new, final history entry.
func (h *History) Push(buf *buffer.Buffer) {
	h.entries = append(h.entries, buf)
}

// SearchIndex returns the indices of every entry that matches query as an
// incremental-search query: a case-sensitive substring match, in ascending
// history order.
func (h *History) SearchIndex(query *buffer.Buffer) []int {
	q := query.String()
	if q == "" {
		return h.allIndices()
	}
	var out []int
	for i, e := range h.entries {
		if strings.Contains(e.String(), q) {
			out = append(out, i)
		}
	}
	return out
}

// GetHistorySubset returns the indices of every entry whose text starts
// with prefix's text, in ascending history order.
func (h *History) GetHistorySubset(prefix *buffer.Buffer) []int {
	p := prefix.String()
	var out []int
	for i, e := range h.entries {
		if strings.HasPrefix(e.String(), p) {
			out = append(out, i)
		}
	}
	return out
}

// GetNewestMatch returns the highest index below upper (exclusive, or
// h.Len() if upper is negative) whose entry starts with prefix's text.
// ok is false if there is no such entry.
func (h *History) GetNewestMatch(upper int, prefix *buffer.Buffer) (idx int, ok bool) {
	if upper < 0 || upper > len(h.entries) {
		upper = len(h.entries)
	}
	p := prefix.String()
	for i := upper - 1; i >= 0; i-- {
		if strings.HasPrefix(h.entries[i].String(), p) {
			return i, true
		}
	}
	return 0, false
}

func (h *History) allIndices() []int {
	out := make([]int, len(h.entries))
	for i := range out {
		out[i] = i
	}
	return out
}
