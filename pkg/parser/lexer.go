package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/herb/pkg/token"
)

// lexMode selects how the next token is scanned.
type lexMode int

const (
	modeContent  lexMode = iota // between tags
	modeTag                     // inside <name ... >
	modeValue                   // directly after EQUALS
	modeQuoted                  // inside a quoted attribute value
	modeRawText                 // body of script, style, textarea, title
)

// Lexer tokenizes HTML+ERB source.
type Lexer struct {
	input string
	pos   int // current position in input
	line  int // current line number (1-based)
	col   int // current column number (1-based)

	startPos  int // offset at start of current token
	startLine int
	startCol  int

	mode     lexMode
	quote    byte   // active quote in modeQuoted
	tagName  string // name of the tag being lexed in modeTag
	rawName  string // element whose raw text body is being lexed
	lastType token.TokenType
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Tokenize converts the input into a slice of tokens ending with EOF.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token from the input.
func (l *Lexer) Next() (token.Token, error) {
	l.markStart()
	if l.pos >= len(l.input) {
		if l.mode == modeQuoted {
			return token.Token{}, l.errorf(ErrUnterminatedAttr)
		}
		if l.mode == modeTag || l.mode == modeValue {
			return token.Token{}, l.errorf(ErrMalformedTag, l.tagName)
		}
		return l.emit(token.EOF), nil
	}

	var (
		tok token.Token
		err error
	)
	switch l.mode {
	case modeTag:
		tok, err = l.scanInTag()
	case modeValue:
		tok, err = l.scanValueStart()
	case modeQuoted:
		tok, err = l.scanQuoted()
	case modeRawText:
		tok, err = l.scanRawText()
	default:
		tok, err = l.scanContent()
	}
	if err == nil {
		l.lastType = tok.Type
	}
	return tok, err
}

// =============================================================================
// Content
// =============================================================================

func (l *Lexer) scanContent() (token.Token, error) {
	switch {
	case l.atERB():
		return l.scanERB()
	case l.matchString("<!--"):
		return l.scanComment()
	case l.matchString("<!"):
		return l.scanUntilGT(token.DOCTYPE)
	case l.matchString("</") && l.isNameStart(l.pos+2):
		return l.scanEndTag()
	case l.matchString("<") && l.isNameStart(l.pos+1):
		return l.scanTagStart()
	}

	for l.pos < len(l.input) {
		if l.atERB() || l.atMarkup() {
			break
		}
		l.advance()
	}
	return l.emit(token.TEXT), nil
}

// atMarkup reports whether the input at pos starts a tag, comment or doctype.
func (l *Lexer) atMarkup() bool {
	if l.input[l.pos] != '<' {
		return false
	}
	return l.matchString("<!") || l.isNameStart(l.pos+1) ||
		(l.matchString("</") && l.isNameStart(l.pos+2))
}

func (l *Lexer) scanComment() (token.Token, error) {
	end := strings.Index(l.input[l.pos+4:], "-->")
	if end < 0 {
		return token.Token{}, l.errorf(ErrUnclosedComment)
	}
	l.advanceN(4 + end + 3)
	return l.emit(token.HTML_COMMENT), nil
}

func (l *Lexer) scanUntilGT(typ token.TokenType) (token.Token, error) {
	end := strings.IndexByte(l.input[l.pos:], '>')
	if end < 0 {
		return token.Token{}, l.errorf(ErrMalformedTag, l.input[l.pos:])
	}
	l.advanceN(end + 1)
	return l.emit(typ), nil
}

func (l *Lexer) scanTagStart() (token.Token, error) {
	l.advance() // <
	nameStart := l.pos
	for l.pos < len(l.input) && isNameChar(l.input[l.pos]) {
		l.advance()
	}
	l.tagName = l.input[nameStart:l.pos]
	l.mode = modeTag
	return l.emit(token.TAG_START), nil
}

func (l *Lexer) scanEndTag() (token.Token, error) {
	return l.scanUntilGT(token.END_TAG)
}

// =============================================================================
// ERB
// =============================================================================

// atERB reports whether an ERB tag starts at pos. "<%%" is a literal "<%".
func (l *Lexer) atERB() bool {
	return l.matchString("<%") && !l.matchString("<%%")
}

func (l *Lexer) scanERB() (token.Token, error) {
	end := strings.Index(l.input[l.pos+2:], "%>")
	if end < 0 {
		return token.Token{}, l.errorf("%s", ErrUnclosedERB)
	}
	l.advanceN(2 + end + 2)
	return l.emit(token.ERB), nil
}

// =============================================================================
// Open tag
// =============================================================================

func (l *Lexer) scanInTag() (token.Token, error) {
	ch := l.input[l.pos]
	switch {
	case isSpace(ch):
		if l.lastType == token.ATTR_NAME {
			if tok, ok := l.tryEquals(); ok {
				return tok, nil
			}
		}
		for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
			l.advance()
		}
		return l.emit(token.WHITESPACE), nil
	case ch == '=' && l.lastType == token.ATTR_NAME:
		tok, _ := l.tryEquals()
		return tok, nil
	case ch == '>':
		l.advance()
		l.endTag()
		return l.emit(token.TAG_END), nil
	case l.matchString("/>"):
		l.advanceN(2)
		l.mode = modeContent
		return l.emit(token.TAG_SELF_CLOSE), nil
	case l.atERB():
		return l.scanERB()
	case ch == '<':
		return token.Token{}, l.errorf(ErrMalformedTag, l.tagName)
	}

	for l.pos < len(l.input) && isAttrNameChar(l.input[l.pos]) {
		if l.atERB() {
			break
		}
		l.advance()
	}
	if l.pos == l.startPos {
		// A lone '/' or '=' that is not part of a name or "/>".
		l.advance()
	}
	return l.emit(token.ATTR_NAME), nil
}

// tryEquals scans ws* '=' ws* after an attribute name. It restores the
// position and reports false when no '=' follows.
func (l *Lexer) tryEquals() (token.Token, bool) {
	save := *l
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.advance()
	}
	if l.pos >= len(l.input) || l.input[l.pos] != '=' {
		*l = save
		return token.Token{}, false
	}
	l.advance()
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.advance()
	}
	l.mode = modeValue
	return l.emit(token.EQUALS), true
}

func (l *Lexer) endTag() {
	if rawTextElements[strings.ToLower(l.tagName)] {
		l.rawName = strings.ToLower(l.tagName)
		l.mode = modeRawText
		return
	}
	l.mode = modeContent
}

// =============================================================================
// Attribute values
// =============================================================================

func (l *Lexer) scanValueStart() (token.Token, error) {
	ch := l.input[l.pos]
	if (ch == '"' || ch == '\'') && l.lastType == token.EQUALS {
		l.advance()
		l.quote = ch
		l.mode = modeQuoted
		return l.emit(token.QUOTE), nil
	}
	if l.atERB() {
		tok, err := l.scanERB()
		if err == nil && !l.continuesUnquoted() {
			l.mode = modeTag
		}
		return tok, err
	}
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isSpace(c) || c == '>' || l.atERB() {
			break
		}
		l.advance()
	}
	if !l.continuesUnquoted() {
		l.mode = modeTag
	}
	return l.emit(token.VALUE), nil
}

// continuesUnquoted reports whether an unquoted value goes on at pos.
func (l *Lexer) continuesUnquoted() bool {
	if l.pos >= len(l.input) {
		return false
	}
	c := l.input[l.pos]
	return !isSpace(c) && c != '>'
}

func (l *Lexer) scanQuoted() (token.Token, error) {
	if l.input[l.pos] == l.quote {
		l.advance()
		l.mode = modeTag
		return l.emit(token.QUOTE), nil
	}
	if l.atERB() {
		return l.scanERB()
	}
	for l.pos < len(l.input) && l.input[l.pos] != l.quote && !l.atERB() {
		l.advance()
	}
	if l.pos >= len(l.input) {
		return token.Token{}, l.errorf(ErrUnterminatedAttr)
	}
	return l.emit(token.VALUE), nil
}

// =============================================================================
// Raw text
// =============================================================================

func (l *Lexer) scanRawText() (token.Token, error) {
	if l.atRawEnd() {
		l.mode = modeContent
		return l.scanEndTag()
	}
	if l.atERB() {
		return l.scanERB()
	}
	for l.pos < len(l.input) && !l.atRawEnd() && !l.atERB() {
		l.advance()
	}
	return l.emit(token.TEXT), nil
}

func (l *Lexer) atRawEnd() bool {
	closer := "</" + l.rawName
	if len(l.input)-l.pos < len(closer) {
		return false
	}
	if !strings.EqualFold(l.input[l.pos:l.pos+len(closer)], closer) {
		return false
	}
	next := l.pos + len(closer)
	return next >= len(l.input) || !isNameChar(l.input[next])
}

// =============================================================================
// Helpers
// =============================================================================

func (l *Lexer) markStart() {
	l.startPos = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

func (l *Lexer) startPosition() token.Position {
	return token.Position{Line: l.startLine, Column: l.startCol, Offset: l.startPos}
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) emit(typ token.TokenType) token.Token {
	return token.Token{
		Type:    typ,
		Literal: l.input[l.startPos:l.pos],
		Pos:     l.startPosition(),
		End:     l.position(),
	}
}

func (l *Lexer) errorf(format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &LexError{Pos: l.startPosition(), Message: msg}
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) matchString(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

func (l *Lexer) isNameStart(i int) bool {
	if i >= len(l.input) {
		return false
	}
	c := l.input[i]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == ':' || c == '.'
}

func isAttrNameChar(c byte) bool {
	return !isSpace(c) && c != '=' && c != '>' && c != '"' && c != '\'' && c != '/' && c != '<'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
