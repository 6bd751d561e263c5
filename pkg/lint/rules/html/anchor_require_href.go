package html

import (
	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// AnchorRequireHref requires an href on <a> tags.
type AnchorRequireHref struct {
	lint.BaseRule
}

// NewAnchorRequireHref creates the html-anchor-require-href rule.
func NewAnchorRequireHref() *AnchorRequireHref {
	return &AnchorRequireHref{lint.BaseRule{
		RuleName:        "html-anchor-require-href",
		RuleDescription: "Require an href attribute on <a> tags.",
		Severity:        core.SeverityError,
	}}
}

type anchorVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *AnchorRequireHref) NewVisitor(p *lint.Pass) ast.Visitor {
	return &anchorVisitor{pass: p}
}

func (v *anchorVisitor) VisitElement(t *ast.Tree, id ast.NodeID) bool {
	if t.Node(id).LowerTagName() != "a" {
		return true
	}
	if _, ok := t.Attribute(id, "href"); !ok {
		v.pass.AddOffense("Add an `href` attribute to `<a>` to ensure it is focusable and accessible. Use a `<button>` for actions.", t.Node(t.OpenTag(id)).Span)
	}
	return true
}
