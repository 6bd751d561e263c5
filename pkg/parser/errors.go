package parser

import (
	"fmt"

	"github.com/leapstack-labs/herb/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	File    string
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnclosedERB      = "unclosed ERB tag, expected %>"
	ErrUnclosedComment  = "unclosed HTML comment, expected -->"
	ErrUnterminatedAttr = "unterminated quoted attribute value"
	ErrMalformedTag     = "malformed tag %q, expected > or />"
	ErrUnexpectedClose  = "unexpected closing tag </%s>"
	ErrUnclosedElement  = "element <%s> is never closed"
	ErrMismatchedClose  = "closing tag </%s> does not match open element <%s>"
)
