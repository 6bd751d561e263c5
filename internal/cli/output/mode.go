// Package output renders command results for terminals, pipes and tools.
package output

import "strings"

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"     // text, styled only on a terminal
	ModeText     OutputMode = "text"     // human-readable text
	ModeMarkdown OutputMode = "markdown" // markdown for docs and PR comments
	ModeJSON     OutputMode = "json"     // machine-readable
)

// Modes lists the accepted --format values.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}

// Mode parses a format flag. Empty and unknown values mean ModeAuto.
func Mode(s string) OutputMode {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeMarkdown, ModeJSON:
		return m
	case "md":
		return ModeMarkdown
	default:
		return ModeAuto
	}
}

// ValidMode reports whether s names an output mode.
func ValidMode(s string) bool {
	if s == "" || s == "md" {
		return true
	}
	for _, m := range Modes {
		if strings.EqualFold(s, m) {
			return true
		}
	}
	return false
}
