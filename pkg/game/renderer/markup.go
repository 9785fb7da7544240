package renderer

import (
	"fmt"
	"regexp"
	"strings"
)

// Style is the role of a piece of message text
type Style int

const (
	StyleNormal Style = iota
	StyleHeat
	StyleAction
	StyleEnemy
	StyleGoal
	StyleDenied
	StyleSubtle
)

// Segment is a run of text with one style
type Segment struct {
	Text  string
	Style Style
}

var markupRegexp = regexp.MustCompile(`([A-Z][A-Z0-9_]*)\{([^}]*)\}`)

var markupStyles = map[string]Style{
	"HEAT":   StyleHeat,
	"ACTION": StyleAction,
	"ENEMY":  StyleEnemy,
	"GOAL":   StyleGoal,
	"DENIED": StyleDenied,
	"SUBTLE": StyleSubtle,
}

// Parse splits a message with FUNCTION{text} markup into styled segments.
// Unknown functions keep their text in the normal style.
func Parse(msg string) []Segment {
	var segments []Segment
	last := 0
	for _, m := range markupRegexp.FindAllStringSubmatchIndex(msg, -1) {
		if m[0] > last {
			segments = append(segments, Segment{Text: msg[last:m[0]]})
		}
		style := markupStyles[msg[m[2]:m[3]]]
		segments = append(segments, Segment{Text: msg[m[4]:m[5]], Style: style})
		last = m[1]
	}
	if last < len(msg) {
		segments = append(segments, Segment{Text: msg[last:]})
	}
	return segments
}

// Plain removes markup
func Plain(msg string) string {
	var b strings.Builder
	for _, s := range Parse(msg) {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Markup wraps text in a style function, e.g. Markup("HEAT", "%d", 5) = "HEAT{5}"
func Markup(function, format string, args ...any) string {
	return function + "{" + fmt.Sprintf(format, args...) + "}"
}
