package html

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/parser"
)

// NoSelfClosing forbids the XML-style self-closing syntax outside SVG.
// The fix changes how browsers build the tree for non-void elements, so it
// is unsafe.
type NoSelfClosing struct {
	lint.BaseRule
}

// NewNoSelfClosing creates the html-no-self-closing rule.
func NewNoSelfClosing() *NoSelfClosing {
	return &NoSelfClosing{lint.BaseRule{
		RuleName:        "html-no-self-closing",
		RuleDescription: "Disallow self-closing tags in HTML.",
		Severity:        core.SeverityError,
		Unsafe:          true,
	}}
}

type selfClosingVisitor struct {
	ast.BaseVisitor
	svgScope
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *NoSelfClosing) NewVisitor(p *lint.Pass) ast.Visitor {
	return &selfClosingVisitor{pass: p}
}

func (v *selfClosingVisitor) VisitElement(t *ast.Tree, id ast.NodeID) bool {
	if v.enter(t, id) {
		return true
	}
	open := t.Node(t.OpenTag(id))
	if !open.SelfClosing {
		return true
	}

	name := open.TagName
	var msg string
	if parser.IsVoidElement(name) {
		msg = fmt.Sprintf("Use `<%s>` instead of self-closing `<%s />` for HTML compatibility.", name, name)
	} else {
		msg = fmt.Sprintf("Use `<%s></%s>` instead of self-closing `<%s />` for HTML compatibility.", name, name, name)
	}
	v.pass.AddOffenseWithAutofix(msg, open.Span, id)
	return true
}

// Autofix rewrites <br/> as <br> and <div/> as <div></div>.
func (r *NoSelfClosing) Autofix(t *ast.Tree, id ast.NodeID) bool {
	openID := t.OpenTag(id)
	if openID == ast.NoNode || !t.Node(openID).SelfClosing {
		return false
	}
	t.Rebuild(openID, func(o *ast.Node) {
		o.SelfClosing = false
		o.Trailing = strings.TrimRight(o.Trailing, " \t")
	})

	n := t.Node(id)
	if !parser.IsVoidElement(n.TagName) {
		t.Rebuild(id, func(e *ast.Node) { e.CloseTag = "</" + e.TagName + ">" })
	}
	return true
}
