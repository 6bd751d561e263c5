package html

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// TagNameLowercase requires lowercase tag names outside SVG, where
// camelCase names such as linearGradient are valid.
type TagNameLowercase struct {
	lint.BaseRule
}

// NewTagNameLowercase creates the html-tag-name-lowercase rule.
func NewTagNameLowercase() *TagNameLowercase {
	return &TagNameLowercase{lint.BaseRule{
		RuleName:        "html-tag-name-lowercase",
		RuleDescription: "Enforce lowercase tag names in HTML.",
		Severity:        core.SeverityError,
		Safe:            true,
	}}
}

type tagNameVisitor struct {
	ast.BaseVisitor
	svgScope
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *TagNameLowercase) NewVisitor(p *lint.Pass) ast.Visitor {
	return &tagNameVisitor{pass: p}
}

func (v *tagNameVisitor) VisitElement(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	inSVG := v.enter(t, id)
	if n.LowerTagName() == "svg" {
		inSVG = false // the <svg> tag itself is still HTML
	}
	if !inSVG && n.TagName != n.LowerTagName() {
		msg := fmt.Sprintf("Opening tag name `<%s>` should be lowercase. Use `<%s>` instead.", n.TagName, n.LowerTagName())
		v.pass.AddOffenseWithAutofix(msg, t.Node(t.OpenTag(id)).Span, id)
	}
	if name := closeTagName(n.CloseTag); !inSVG && name != strings.ToLower(name) {
		msg := fmt.Sprintf("Closing tag name `</%s>` should be lowercase. Use `</%s>` instead.", name, strings.ToLower(name))
		end := n.Span.End.Offset
		v.pass.AddOffenseWithAutofix(msg, v.pass.Span(end-len(n.CloseTag), end), id)
	}
	return true
}

// closeTagName returns the name inside a raw closing tag like "</DIV >".
func closeTagName(closeTag string) string {
	name := strings.TrimPrefix(closeTag, "</")
	if i := strings.IndexAny(name, " \t\n\r>"); i >= 0 {
		name = name[:i]
	}
	return name
}

// Autofix lowercases the opening and closing tag names.
func (r *TagNameLowercase) Autofix(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if n.Kind != ast.KindElement {
		return false
	}
	lower := n.LowerTagName()

	if open := t.OpenTag(id); open != ast.NoNode {
		t.Rebuild(open, func(o *ast.Node) { o.TagName = lower })
	}
	t.Rebuild(id, func(e *ast.Node) {
		e.TagName = lower
		e.CloseTag = lowerCloseTag(e.CloseTag, lower)
	})
	return true
}

// lowerCloseTag rewrites the name inside a raw closing tag like "</DIV >".
func lowerCloseTag(closeTag, lower string) string {
	if !strings.HasPrefix(closeTag, "</") || len(closeTag) < 2+len(lower) {
		return closeTag
	}
	name := closeTag[2 : 2+len(lower)]
	if !strings.EqualFold(name, lower) {
		return closeTag
	}
	return "</" + lower + closeTag[2+len(lower):]
}
