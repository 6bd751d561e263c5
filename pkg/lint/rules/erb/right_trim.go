package erb

import (
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// RightTrim replaces the non-standard =%> closer with -%>.
type RightTrim struct {
	lint.BaseRule
}

// NewRightTrim creates the erb-right-trim rule.
func NewRightTrim() *RightTrim {
	return &RightTrim{lint.BaseRule{
		RuleName:        "erb-right-trim",
		RuleDescription: "Enforce -%> over =%> for right-trimming ERB tags.",
		Severity:        core.SeverityError,
		Safe:            true,
	}}
}

type rightTrimVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *RightTrim) NewVisitor(p *lint.Pass) ast.Visitor {
	return &rightTrimVisitor{pass: p}
}

func (v *rightTrimVisitor) VisitERB(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if usesEqualsTrim(n) {
		v.pass.AddOffenseWithAutofix("Use `-%>` instead of `=%>` for right-trimming. The `=%>` syntax is obscure and not well-supported in most ERB engines.", n.Span, id)
	}
	return false
}

// Autofix swaps the trailing '=' for the '-' trim marker.
func (r *RightTrim) Autofix(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if !usesEqualsTrim(n) {
		return false
	}
	t.Rebuild(id, func(e *ast.Node) {
		e.Content = strings.TrimSuffix(e.Content, "=")
		e.Close = "-%>"
	})
	return true
}

func usesEqualsTrim(n ast.Node) bool {
	return n.Kind == ast.KindERB && !n.IsERBComment() &&
		n.Close == "%>" && strings.HasSuffix(n.Content, "=")
}
