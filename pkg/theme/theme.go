// Package theme adapts AndrewNeudegg-calc's pkg/display/theme.go — a
// struct of named ANSI roles with a Wrap helper — onto
// github.com/fatih/color, the way yigitnosqli-Gocat's readline editor
// builds its prompt/hint coloring. It produces the ColorClosure the redraw
// planner applies to real-buffer bytes.
package theme

import "github.com/fatih/color"

// Theme names the color role applied to each class of rendered text.
type Theme struct {
	Buffer       *color.Color
	Suggestion   *color.Color
	SearchMatch  *color.Color
	SearchPrompt *color.Color
	CompletionHL *color.Color
}

// Default returns a subtle, readable default theme: plain buffer text, a
// yellow shadow color for autosuggestions, green for an active search match
// and red for a search with no match, matching the roles
// AndrewNeudegg-calc's DefaultTheme and liner's search_prompt coloring use.
func Default() *Theme {
	return &Theme{
		Buffer:       color.New(),
		Suggestion:   color.New(color.FgYellow),
		SearchMatch:  color.New(color.FgGreen),
		SearchPrompt: color.New(color.FgRed),
		CompletionHL: color.New(color.FgBlack, color.BgWhite),
	}
}

// Closure returns a ColorClosure-shaped function (func([]byte) []byte) that
// wraps text in this theme's Buffer color. It is the function the editor
// core installs as its coloring closure.
func (t *Theme) Closure() func([]byte) []byte {
	return func(b []byte) []byte {
		if len(b) == 0 {
			return b
		}
		return []byte(t.Buffer.Sprint(string(b)))
	}
}

// Wrap renders s in the given role's color, or returns s unmodified if c is
// nil or s is empty — mirroring AndrewNeudegg-calc's Theme.wrap no-op cases.
func Wrap(c *color.Color, s string) string {
	if s == "" || c == nil {
		return s
	}
	return c.Sprint(s)
}
