package html

import (
	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// ImgRequireAlt requires an alt attribute on every <img>.
type ImgRequireAlt struct {
	lint.BaseRule
}

// NewImgRequireAlt creates the html-img-require-alt rule.
func NewImgRequireAlt() *ImgRequireAlt {
	return &ImgRequireAlt{lint.BaseRule{
		RuleName:        "html-img-require-alt",
		RuleDescription: "Require an alt attribute on <img> tags.",
		Severity:        core.SeverityError,
	}}
}

type imgRequireAltVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *ImgRequireAlt) NewVisitor(p *lint.Pass) ast.Visitor {
	return &imgRequireAltVisitor{pass: p}
}

func (v *imgRequireAltVisitor) VisitElement(t *ast.Tree, id ast.NodeID) bool {
	if t.Node(id).LowerTagName() != "img" {
		return true
	}
	if _, ok := t.Attribute(id, "alt"); !ok {
		open := t.Node(t.OpenTag(id))
		v.pass.AddOffense("Missing required `alt` attribute on `<img>` tag. Add `alt=\"\"` for decorative images or `alt=\"description\"` for informative images.", open.Span)
	}
	return true
}
