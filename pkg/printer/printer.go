// Package printer renders an ast.Tree back to HTML+ERB source.
//
// The output is lossless: for a tree produced by the parser and left
// unmodified, Print returns the original source byte for byte. Node-anchored
// autofixes edit the tree and rely on Print to regenerate the file.
package printer

import (
	"bytes"

	"github.com/leapstack-labs/herb/pkg/ast"
)

// Printer writes nodes of a single tree.
type Printer struct {
	tree   *ast.Tree
	output *bytes.Buffer
}

func newPrinter(t *ast.Tree) *Printer {
	return &Printer{tree: t, output: &bytes.Buffer{}}
}

// String returns the printed output.
func (p *Printer) String() string {
	return p.output.String()
}

// Print renders the whole tree.
func Print(t *ast.Tree) string {
	return PrintNode(t, t.Root())
}

// PrintNode renders the subtree rooted at id.
func PrintNode(t *ast.Tree, id ast.NodeID) string {
	p := newPrinter(t)
	p.node(id)
	return p.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) children(id ast.NodeID) {
	for i := 0; i < p.tree.NumChildren(id); i++ {
		p.node(p.tree.Child(id, i))
	}
}

func (p *Printer) node(id ast.NodeID) {
	n := p.tree.Node(id)
	switch n.Kind {
	case ast.KindDocument:
		p.children(id)

	case ast.KindElement:
		p.children(id)
		p.write(n.CloseTag)

	case ast.KindOpenTag:
		p.write("<")
		p.write(n.TagName)
		p.children(id)
		p.write(n.Trailing)
		if n.SelfClosing {
			p.write("/>")
		} else {
			p.write(">")
		}

	case ast.KindAttribute:
		p.write(n.Leading)
		p.write(n.Name)
		if !n.HasValue() {
			return
		}
		p.write(n.Equals)
		if n.Quote != 0 {
			p.output.WriteByte(n.Quote)
		}
		p.children(id)
		if n.Quote != 0 {
			p.output.WriteByte(n.Quote)
		}

	case ast.KindERB:
		p.write(n.Leading)
		p.write(n.Open)
		p.write(n.Content)
		p.write(n.Close)

	case ast.KindText, ast.KindHTMLComment, ast.KindDoctype:
		p.write(n.Raw)
	}
}
