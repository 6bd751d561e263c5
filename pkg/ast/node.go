// Package ast defines the arena-allocated document tree for HTML+ERB templates.
//
// Nodes live in a Tree and are addressed by NodeID. The scalar fields of a
// node never change after construction; only parent/children relations can
// be edited. A change to a scalar field is expressed by building a new node
// (see Tree.Rebuild) and rewriting the parent's child slot.
package ast

import (
	"strings"

	"github.com/leapstack-labs/herb/pkg/token"
)

// NodeID identifies a node within its Tree.
type NodeID int32

// NoNode is the zero reference, returned for missing parents or lookups.
const NoNode NodeID = -1

// Kind identifies the type of a node.
type Kind uint8

// Node kinds.
const (
	KindDocument    Kind = iota // root; children are body nodes
	KindElement                 // children: OpenTag, then body nodes
	KindOpenTag                 // children: Attribute and ERB nodes
	KindAttribute               // children: value parts (Text, ERB)
	KindText                    // literal text
	KindHTMLComment             // <!-- ... -->
	KindDoctype                 // <!DOCTYPE ...>
	KindERB                     // <% ... %> in any flavour
)

var kindNames = [...]string{
	KindDocument:    "document",
	KindElement:     "element",
	KindOpenTag:     "open_tag",
	KindAttribute:   "attribute",
	KindText:        "text",
	KindHTMLComment: "html_comment",
	KindDoctype:     "doctype",
	KindERB:         "erb",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node holds the scalar data of one tree node. Which fields are meaningful
// depends on Kind.
type Node struct {
	Kind Kind
	Span token.Span // source range at parse time; zero for synthesized nodes

	// Text, HTMLComment, Doctype: the exact source text.
	Raw string

	// Element and OpenTag: tag name as written.
	TagName string
	// OpenTag: whitespace between the last attribute and '>' or '/>'.
	Trailing string
	// OpenTag: written as <name ... />.
	SelfClosing bool
	// Element: the raw closing tag ("</div>"), empty when there is none.
	CloseTag string

	// Attribute and in-tag ERB: whitespace preceding the node inside the open tag.
	Leading string
	// Attribute: name as written.
	Name string
	// Attribute: "=" including any surrounding whitespace; empty for boolean attributes.
	Equals string
	// Attribute: quote character around the value, 0 when unquoted.
	Quote byte

	// ERB: opening delimiter (<%, <%=, <%==, <%-, <%#), content and closing delimiter (%>, -%>).
	Open    string
	Content string
	Close   string
}

// HasValue reports whether an attribute is written with a value.
func (n Node) HasValue() bool {
	return n.Kind == KindAttribute && n.Equals != ""
}

// IsERBComment reports whether the node is an ERB comment (<%# ... %>).
func (n Node) IsERBComment() bool {
	return n.Kind == KindERB && n.Open == "<%#"
}

// IsERBOutput reports whether the node writes to the output (<%= or <%==).
func (n Node) IsERBOutput() bool {
	return n.Kind == KindERB && strings.HasPrefix(n.Open, "<%=")
}

// LowerTagName returns the tag name in lower case.
func (n Node) LowerTagName() string {
	return strings.ToLower(n.TagName)
}
