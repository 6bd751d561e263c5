package html

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// AttributeDoubleQuotes prefers double quotes around attribute values.
type AttributeDoubleQuotes struct {
	lint.BaseRule
}

// NewAttributeDoubleQuotes creates the html-attribute-double-quotes rule.
func NewAttributeDoubleQuotes() *AttributeDoubleQuotes {
	return &AttributeDoubleQuotes{lint.BaseRule{
		RuleName:        "html-attribute-double-quotes",
		RuleDescription: "Prefer double quotes for HTML attribute values.",
		Severity:        core.SeverityWarning,
		Safe:            true,
	}}
}

type doubleQuotesVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *AttributeDoubleQuotes) NewVisitor(p *lint.Pass) ast.Visitor {
	return &doubleQuotesVisitor{pass: p}
}

func (v *doubleQuotesVisitor) VisitAttribute(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if n.Quote != '\'' {
		return false
	}
	value := t.AttributeValue(id)
	// Single quotes are required when the value holds a double quote.
	if strings.Contains(value, `"`) {
		return false
	}
	msg := fmt.Sprintf("Attribute `%s` uses single quotes. Prefer double quotes for HTML attribute values: `%s=\"%s\"`.", n.Name, n.Name, value)
	v.pass.AddOffenseWithAutofix(msg, n.Span, id)
	return false
}

// Autofix implements lint.NodeAutofixer.
func (r *AttributeDoubleQuotes) Autofix(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if n.Quote != '\'' || strings.Contains(t.AttributeValue(id), `"`) {
		return false
	}
	t.Rebuild(id, func(n *ast.Node) { n.Quote = '"' })
	return true
}
