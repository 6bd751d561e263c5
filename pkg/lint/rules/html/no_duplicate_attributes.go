package html

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// NoDuplicateAttributes forbids repeating an attribute on one tag.
type NoDuplicateAttributes struct {
	lint.BaseRule
}

// NewNoDuplicateAttributes creates the html-no-duplicate-attributes rule.
func NewNoDuplicateAttributes() *NoDuplicateAttributes {
	return &NoDuplicateAttributes{lint.BaseRule{
		RuleName:        "html-no-duplicate-attributes",
		RuleDescription: "Disallow duplicate attributes on the same element.",
		Severity:        core.SeverityError,
	}}
}

type duplicateAttributesVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *NoDuplicateAttributes) NewVisitor(p *lint.Pass) ast.Visitor {
	return &duplicateAttributesVisitor{pass: p}
}

func (v *duplicateAttributesVisitor) VisitOpenTag(t *ast.Tree, id ast.NodeID) bool {
	seen := make(map[string]bool)
	for _, attr := range t.Attributes(id) {
		n := t.Node(attr)
		name := strings.ToLower(n.Name)
		if seen[name] {
			msg := fmt.Sprintf("Duplicate attribute `%s` found on tag. Remove the duplicate occurrence.", n.Name)
			v.pass.AddOffense(msg, n.Span)
			continue
		}
		seen[name] = true
	}
	return false
}
