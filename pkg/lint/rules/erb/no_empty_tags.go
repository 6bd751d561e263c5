package erb

import (
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// NoEmptyTags reports ERB tags with no content, like <% %> or <%= %>.
// Empty comments are allowed.
type NoEmptyTags struct {
	lint.BaseRule
}

// NewNoEmptyTags creates the erb-no-empty-tags rule.
func NewNoEmptyTags() *NoEmptyTags {
	return &NoEmptyTags{lint.BaseRule{
		RuleName:        "erb-no-empty-tags",
		RuleDescription: "Disallow empty ERB tags.",
		Severity:        core.SeverityError,
	}}
}

type emptyTagsVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *NoEmptyTags) NewVisitor(p *lint.Pass) ast.Visitor {
	return &emptyTagsVisitor{pass: p}
}

func (v *emptyTagsVisitor) VisitERB(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if n.IsERBComment() || strings.TrimSpace(n.Content) != "" {
		return false
	}
	v.pass.AddOffense("ERB tag should not be empty. Remove empty ERB tags.", n.Span)
	return false
}
