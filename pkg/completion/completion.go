// Package completion defines the Completer contract the editor core queries
// when cycling tab-completions, plus a reference word-list implementation
// grounded on AndrewNeudegg-calc's category-based AutocompleteEngine.
package completion

import (
	"sort"
	"strings"
)

// Completer produces completion candidates for the word under the cursor.
// Implementations may return candidates in any order and with duplicates;
// the editor core sorts and de-duplicates before presenting them.
type Completer interface {
	Completions(word string) []string
}

// Func adapts a plain function to the Completer interface.
type Func func(word string) []string

// Completions implements Completer.
func (f Func) Completions(word string) []string { return f(word) }

// WordList is a reference Completer that suggests from a fixed vocabulary,
// optionally partitioned into categories, matching candidates by case-
// insensitive prefix the way AndrewNeudegg-calc's AutocompleteEngine ranks
// commands, functions and keywords.
type WordList struct {
	categories map[string][]string
	order      []string
}

// NewWordList returns an empty WordList.
func NewWordList() *WordList {
	return &WordList{categories: make(map[string][]string)}
}

// AddCategory registers a named group of candidate words. Categories are
// queried in the order they were added.
func (w *WordList) AddCategory(name string, words ...string) {
	if _, exists := w.categories[name]; !exists {
		w.order = append(w.order, name)
	}
	w.categories[name] = append(w.categories[name], words...)
}

// Completions implements Completer.
func (w *WordList) Completions(word string) []string {
	if word == "" {
		return nil
	}
	lower := strings.ToLower(word)
	var out []string
	for _, name := range w.order {
		for _, candidate := range w.categories[name] {
			if strings.HasPrefix(strings.ToLower(candidate), lower) {
				out = append(out, candidate)
			}
		}
	}
	sort.Strings(out)
	return dedup(out)
}

func dedup(in []string) []string {
	out := in[:0]
	var prev string
	first := true
	for _, s := range in {
		if first || s != prev {
			out = append(out, s)
			prev = s
			first = false
		}
	}
	return out
}
