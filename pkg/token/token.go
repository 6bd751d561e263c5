// Package token defines positions and lexical token types for HTML+ERB templates.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Content
	TEXT         // literal text between tags
	HTML_COMMENT // <!-- ... -->
	DOCTYPE      // <!DOCTYPE ...>
	ERB          // <% ... %> in any flavour

	// Tags
	TAG_START      // <name
	END_TAG        // </name >
	TAG_END        // >
	TAG_SELF_CLOSE // />

	// Inside an open tag
	WHITESPACE // whitespace between attributes
	ATTR_NAME  // attribute name
	EQUALS     // = with any surrounding whitespace
	QUOTE      // ' or "
	VALUE      // attribute value text (quoted part or unquoted value)
)

//nolint:revive // TOKEN names mirror the markup they describe
var tokenNames = map[TokenType]string{
	EOF:            "EOF",
	ILLEGAL:        "ILLEGAL",
	TEXT:           "TEXT",
	HTML_COMMENT:   "HTML_COMMENT",
	DOCTYPE:        "DOCTYPE",
	ERB:            "ERB",
	TAG_START:      "TAG_START",
	END_TAG:        "END_TAG",
	TAG_END:        "TAG_END",
	TAG_SELF_CLOSE: "TAG_SELF_CLOSE",
	WHITESPACE:     "WHITESPACE",
	ATTR_NAME:      "ATTR_NAME",
	EQUALS:         "EQUALS",
	QUOTE:          "QUOTE",
	VALUE:          "VALUE",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// Token is a single lexical token. Literal is the exact source text.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     Position
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}
