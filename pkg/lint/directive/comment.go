// Package directive parses herb inline comments.
//
// Two grammars are recognized inside ERB comments (<%# ... %>):
//
//	herb:<mode> ignore              ignore the whole file for the given tool mode
//	herb:disable <rule>[, <rule>]   suppress offenses on the next line
//	herb:enable <rule>[, <rule>]    re-enable (parsed, range suppression is not evaluated)
//
// The rule list "all" stands for every rule.
package directive

import (
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/token"
)

// Prefix starts every herb directive.
const Prefix = "herb:"

// All is the rule list keyword matching every rule.
const All = "all"

// Kind is the keyword of a disable/enable comment.
type Kind int

// Comment kinds.
const (
	KindDisable Kind = iota
	KindEnable
)

func (k Kind) String() string {
	if k == KindEnable {
		return "enable"
	}
	return "disable"
}

// RuleToken is one entry of a comment's rule list.
type RuleToken struct {
	Name   string
	Offset int // byte offset of Name within Comment.Content
}

// Comment is the structured parse of a herb:disable or herb:enable comment.
// Malformed comments are still returned so hygiene rules can report them.
type Comment struct {
	Kind    Kind
	Content string      // comment text between the ERB delimiters
	Rules   []RuleToken // non-empty entries in source order

	// Set by FromNode; zero for comments parsed from a bare string.
	Node          ast.NodeID
	Span          token.Span
	ContentOffset int // byte offset of Content within the source

	// Malformed explains a syntax problem, empty when the comment is well formed.
	Malformed string
}

// Names returns the rule names in source order.
func (c Comment) Names() []string {
	names := make([]string, len(c.Rules))
	for i, r := range c.Rules {
		names[i] = r.Name
	}
	return names
}

// HasAll reports whether the rule list contains "all".
func (c Comment) HasAll() bool {
	for _, r := range c.Rules {
		if r.Name == All {
			return true
		}
	}
	return false
}

// RuleOffset returns the absolute source offset of a rule token.
func (c Comment) RuleOffset(r RuleToken) int {
	return c.ContentOffset + r.Offset
}

// ParseComment parses the content of an ERB comment. It reports false when
// the content is not a herb:disable or herb:enable comment.
func ParseComment(content string) (Comment, bool) {
	lead := len(content) - len(strings.TrimLeft(content, " \t\r\n"))
	body := content[lead:]

	var (
		kind    Kind
		keyword string
	)
	switch {
	case strings.HasPrefix(body, Prefix+"disable"):
		kind, keyword = KindDisable, Prefix+"disable"
	case strings.HasPrefix(body, Prefix+"enable"):
		kind, keyword = KindEnable, Prefix+"enable"
	default:
		return Comment{}, false
	}

	c := Comment{Kind: kind, Content: content}
	rest := body[len(keyword):]
	restOffset := lead + len(keyword)

	if rest != "" && !isSpace(rest[0]) {
		c.Malformed = "missing space after " + keyword
		return c, true
	}

	list := strings.TrimRight(rest, " \t\r\n")
	if strings.TrimSpace(list) == "" {
		return c, true
	}

	offset := restOffset
	for i, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			switch {
			case i == 0:
				c.Malformed = "leading comma in rule list"
			case offset >= restOffset+len(list):
				c.Malformed = "trailing comma in rule list"
			default:
				c.Malformed = "consecutive commas in rule list"
			}
		} else {
			at := offset + strings.Index(part, name)
			c.Rules = append(c.Rules, RuleToken{Name: name, Offset: at})
			if strings.ContainsAny(name, " \t") && c.Malformed == "" {
				c.Malformed = "rule names must be separated by commas"
			}
		}
		offset += len(part) + 1
	}
	return c, true
}

// FromNode parses an ERB comment node of t.
func FromNode(t *ast.Tree, id ast.NodeID) (Comment, bool) {
	n := t.Node(id)
	if !n.IsERBComment() {
		return Comment{}, false
	}
	c, ok := ParseComment(n.Content)
	if !ok {
		return Comment{}, false
	}
	c.Node = id
	c.Span = n.Span
	c.ContentOffset = n.Span.Start.Offset + len(n.Open)
	return c, true
}

// parseIgnore reports whether content is "herb:<mode> ignore" for mode.
func parseIgnore(content string, mode Mode) bool {
	fields := strings.Fields(content)
	return len(fields) == 2 && fields[0] == Prefix+string(mode) && fields[1] == "ignore"
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
