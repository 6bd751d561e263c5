package html

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// AttributeValuesRequireQuotes requires attribute values to be quoted.
type AttributeValuesRequireQuotes struct {
	lint.BaseRule
}

// NewAttributeValuesRequireQuotes creates the html-attribute-values-require-quotes rule.
func NewAttributeValuesRequireQuotes() *AttributeValuesRequireQuotes {
	return &AttributeValuesRequireQuotes{lint.BaseRule{
		RuleName:        "html-attribute-values-require-quotes",
		RuleDescription: "Require quotes around attribute values.",
		Severity:        core.SeverityError,
		Safe:            true,
	}}
}

type attributeQuotesVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *AttributeValuesRequireQuotes) NewVisitor(p *lint.Pass) ast.Visitor {
	return &attributeQuotesVisitor{pass: p}
}

func (v *attributeQuotesVisitor) VisitAttribute(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if n.HasValue() && n.Quote == 0 {
		msg := fmt.Sprintf("Attribute value should be quoted: `%s=\"%s\"`. Always wrap attribute values in quotes.", n.Name, t.AttributeValue(id))
		v.pass.AddOffenseWithAutofix(msg, n.Span, id)
	}
	return false
}

// Autofix wraps the value in double quotes, or single quotes when the
// value itself contains a double quote.
func (r *AttributeValuesRequireQuotes) Autofix(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if n.Kind != ast.KindAttribute || n.Quote != 0 || !n.HasValue() {
		return false
	}
	value := t.AttributeValue(id)
	quote := byte('"')
	if strings.Contains(value, `"`) {
		if strings.Contains(value, "'") {
			return false
		}
		quote = '\''
	}
	t.Rebuild(id, func(n *ast.Node) { n.Quote = quote })
	return true
}
