package lint

import (
	"fmt"
	"strings"
)

// DefaultDocsBaseURL is the hosted documentation site.
const DefaultDocsBaseURL = "https://herb-tools.dev/linter/rules"

// DocsBaseURL is set from linter.docs_url for local or offline docs.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL constructs a documentation URL for a rule.
func BuildDocURL(ruleName string) string {
	return fmt.Sprintf("%s/%s", DocsBaseURL, strings.ToLower(ruleName))
}

// SetDocsBaseURL overrides the default documentation base URL.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL resets to the default documentation URL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}

// Rule groups, derived from the rule name prefix.
const (
	GroupHTML    = "html"
	GroupERB     = "erb"
	GroupHerb    = "herb"
	GroupParser  = "parser"
	GroupGeneral = "general"
)

// Group returns the group of a rule from its name prefix.
func Group(ruleName string) string {
	prefix, _, _ := strings.Cut(ruleName, "-")
	switch prefix {
	case GroupHTML, GroupERB, GroupHerb, GroupParser:
		return prefix
	default:
		return GroupGeneral
	}
}
