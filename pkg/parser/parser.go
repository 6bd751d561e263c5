// Package parser turns HTML+ERB source into an ast.Tree.
//
// The parser is strict: unclosed ERB tags, comments and elements, stray
// closing tags and unterminated attribute values are reported as errors.
// For error-free input, printing the tree reproduces the source exactly.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/token"
)

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Keygen: true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

var rawTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"title":    true,
}

// IsVoidElement reports whether name is an HTML void element (no closing tag).
func IsVoidElement(name string) bool {
	return voidElements[atom.Lookup([]byte(strings.ToLower(name)))]
}

// Option configures a parse.
type Option func(*options)

type options struct {
	file string
}

// WithFile sets the file name reported in errors.
func WithFile(name string) Option {
	return func(o *options) { o.file = name }
}

// Result is the outcome of a parse.
type Result struct {
	Source string
	Tree   *ast.Tree // nil when lexing failed
	Errors []*ParseError
}

// OK reports whether the source parsed without errors.
func (r *Result) OK() bool {
	return len(r.Errors) == 0 && r.Tree != nil
}

// Err returns all parse errors joined, or nil.
func (r *Result) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Parse parses source into a tree.
func Parse(source string, opts ...Option) *Result {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	res := &Result{Source: source}
	tokens, err := NewLexer(source).Tokenize()
	if err != nil {
		var lexErr *LexError
		if errors.As(err, &lexErr) {
			res.Errors = append(res.Errors, &ParseError{File: o.file, Pos: lexErr.Pos, Message: lexErr.Message})
		} else {
			res.Errors = append(res.Errors, &ParseError{File: o.file, Pos: token.Position{Line: 1, Column: 1}, Message: err.Error()})
		}
		return res
	}

	p := &parser{tokens: tokens, tree: ast.NewTree(), file: o.file}
	p.parseDocument()
	res.Tree = p.tree
	res.Errors = p.errs
	return res
}

// frame is an element whose closing tag has not been seen yet. The element
// node itself is created when the frame is closed, so its scalars are final.
type frame struct {
	name     string
	start    token.Position
	openTag  ast.NodeID
	children []ast.NodeID
}

type parser struct {
	tokens []token.Token
	pos    int
	tree   *ast.Tree
	stack  []*frame
	errs   []*ParseError
	file   string
}

func (p *parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() token.Token {
	tok := p.tokens[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(pos token.Position, format string, args ...any) {
	p.errs = append(p.errs, &ParseError{File: p.file, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// add appends a finished node to the innermost open element or the document.
func (p *parser) add(id ast.NodeID) {
	if n := len(p.stack); n > 0 {
		top := p.stack[n-1]
		top.children = append(top.children, id)
		return
	}
	p.tree.Append(p.tree.Root(), id)
}

func (p *parser) parseDocument() {
	for {
		tok := p.next()
		switch tok.Type {
		case token.EOF:
			for len(p.stack) > 0 {
				f := p.stack[len(p.stack)-1]
				p.errorf(f.start, ErrUnclosedElement, f.name)
				p.closeFrame(nil)
			}
			return
		case token.TEXT:
			p.add(p.tree.New(ast.Node{Kind: ast.KindText, Span: tok.Span(), Raw: tok.Literal}))
		case token.HTML_COMMENT:
			p.add(p.tree.New(ast.Node{Kind: ast.KindHTMLComment, Span: tok.Span(), Raw: tok.Literal}))
		case token.DOCTYPE:
			p.add(p.tree.New(ast.Node{Kind: ast.KindDoctype, Span: tok.Span(), Raw: tok.Literal}))
		case token.ERB:
			p.add(p.erb(tok, ""))
		case token.TAG_START:
			p.parseElement(tok)
		case token.END_TAG:
			p.parseEndTag(tok)
		default:
			p.errorf(tok.Pos, "unexpected %s %q", tok.Type, tok.Literal)
			p.add(p.tree.New(ast.Node{Kind: ast.KindText, Span: tok.Span(), Raw: tok.Literal}))
		}
	}
}

// erb builds an ERB node, splitting the literal into delimiters and content.
func (p *parser) erb(tok token.Token, leading string) ast.NodeID {
	lit := tok.Literal
	open := "<%"
	for _, prefix := range []string{"<%==", "<%=", "<%-", "<%#"} {
		if strings.HasPrefix(lit, prefix) {
			open = prefix
			break
		}
	}
	rest := lit[len(open):]
	closing := "%>"
	if strings.HasSuffix(rest, "-%>") {
		closing = "-%>"
	}
	return p.tree.New(ast.Node{
		Kind:    ast.KindERB,
		Span:    tok.Span(),
		Leading: leading,
		Open:    open,
		Content: rest[:len(rest)-len(closing)],
		Close:   closing,
	})
}

func (p *parser) parseElement(start token.Token) {
	name := start.Literal[1:]
	var (
		children []ast.NodeID
		leading  string
		end      token.Token
	)

loop:
	for {
		tok := p.next()
		switch tok.Type {
		case token.WHITESPACE:
			leading += tok.Literal
		case token.ATTR_NAME:
			children = append(children, p.parseAttribute(tok, leading))
			leading = ""
		case token.ERB:
			children = append(children, p.erb(tok, leading))
			leading = ""
		case token.TAG_END, token.TAG_SELF_CLOSE:
			end = tok
			break loop
		default:
			// The lexer reports truncated tags itself; anything else is a bug.
			p.errorf(tok.Pos, ErrMalformedTag, name)
			end = tok
			break loop
		}
	}

	openTag := p.tree.New(ast.Node{
		Kind:        ast.KindOpenTag,
		Span:        token.Span{Start: start.Pos, End: end.End},
		TagName:     name,
		Trailing:    leading,
		SelfClosing: end.Type == token.TAG_SELF_CLOSE,
	})
	for _, c := range children {
		p.tree.Append(openTag, c)
	}

	if end.Type == token.TAG_SELF_CLOSE || IsVoidElement(name) {
		element := p.tree.New(ast.Node{
			Kind:    ast.KindElement,
			Span:    token.Span{Start: start.Pos, End: end.End},
			TagName: name,
		})
		p.tree.Append(element, openTag)
		p.add(element)
		return
	}

	p.stack = append(p.stack, &frame{name: name, start: start.Pos, openTag: openTag})
}

func (p *parser) parseAttribute(nameTok token.Token, leading string) ast.NodeID {
	n := ast.Node{
		Kind:    ast.KindAttribute,
		Span:    nameTok.Span(),
		Leading: leading,
		Name:    nameTok.Literal,
	}
	if p.peek().Type != token.EQUALS {
		return p.tree.New(n)
	}
	eq := p.next()
	n.Equals = eq.Literal
	n.Span.End = eq.End

	var parts []ast.NodeID
	if p.peek().Type == token.QUOTE {
		q := p.next()
		n.Quote = q.Literal[0]
		for {
			tok := p.next()
			n.Span.End = tok.End
			if tok.Type == token.QUOTE || tok.Type == token.EOF {
				break
			}
			parts = append(parts, p.valuePart(tok))
		}
	} else {
		for p.peek().Type == token.VALUE || p.peek().Type == token.ERB {
			tok := p.next()
			n.Span.End = tok.End
			if tok.Type == token.VALUE && tok.Literal == "" {
				continue
			}
			parts = append(parts, p.valuePart(tok))
		}
	}

	attr := p.tree.New(n)
	for _, c := range parts {
		p.tree.Append(attr, c)
	}
	return attr
}

func (p *parser) valuePart(tok token.Token) ast.NodeID {
	if tok.Type == token.ERB {
		return p.erb(tok, "")
	}
	return p.tree.New(ast.Node{Kind: ast.KindText, Span: tok.Span(), Raw: tok.Literal})
}

func (p *parser) parseEndTag(tok token.Token) {
	name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(tok.Literal, "</"), ">"))

	match := -1
	for i := len(p.stack) - 1; i >= 0; i-- {
		if strings.EqualFold(p.stack[i].name, name) {
			match = i
			break
		}
	}
	if match < 0 {
		p.errorf(tok.Pos, ErrUnexpectedClose, name)
		p.add(p.tree.New(ast.Node{Kind: ast.KindText, Span: tok.Span(), Raw: tok.Literal}))
		return
	}

	for len(p.stack)-1 > match {
		f := p.stack[len(p.stack)-1]
		p.errorf(f.start, ErrUnclosedElement, f.name)
		p.closeFrame(nil)
	}
	p.closeFrame(&tok)
}

// closeFrame pops the innermost frame and builds its element node.
func (p *parser) closeFrame(closeTok *token.Token) {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	n := ast.Node{Kind: ast.KindElement, TagName: f.name, Span: token.Span{Start: f.start}}
	if closeTok != nil {
		n.CloseTag = closeTok.Literal
		n.Span.End = closeTok.End
	} else {
		n.Span.End = p.tree.Node(f.openTag).Span.End
	}

	element := p.tree.New(n)
	p.tree.Append(element, f.openTag)
	for _, c := range f.children {
		p.tree.Append(element, c)
	}
	p.add(element)
}
