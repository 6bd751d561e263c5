package erb

import (
	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// RequireWhitespaceInsideTags requires whitespace after the opening and
// before the closing ERB delimiter.
type RequireWhitespaceInsideTags struct {
	lint.BaseRule
}

// NewRequireWhitespaceInsideTags creates the erb-require-whitespace-inside-tags rule.
func NewRequireWhitespaceInsideTags() *RequireWhitespaceInsideTags {
	return &RequireWhitespaceInsideTags{lint.BaseRule{
		RuleName:        "erb-require-whitespace-inside-tags",
		RuleDescription: "Require whitespace inside ERB tag delimiters.",
		Severity:        core.SeverityError,
		Safe:            true,
	}}
}

type whitespaceInsideVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *RequireWhitespaceInsideTags) NewVisitor(p *lint.Pass) ast.Visitor {
	return &whitespaceInsideVisitor{pass: p}
}

func (v *whitespaceInsideVisitor) VisitERB(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	before, after := missingWhitespace(n)
	switch {
	case before && after:
		v.pass.AddOffenseWithAutofix("Add whitespace after `"+n.Open+"` and before `"+n.Close+"`.", n.Span, id)
	case before:
		v.pass.AddOffenseWithAutofix("Add whitespace after `"+n.Open+"`.", n.Span, id)
	case after:
		v.pass.AddOffenseWithAutofix("Add whitespace before `"+n.Close+"`.", n.Span, id)
	}
	return false
}

// Autofix pads the content with single spaces where they are missing.
func (r *RequireWhitespaceInsideTags) Autofix(t *ast.Tree, id ast.NodeID) bool {
	before, after := missingWhitespace(t.Node(id))
	if !before && !after {
		return false
	}
	t.Rebuild(id, func(e *ast.Node) {
		if before {
			e.Content = " " + e.Content
		}
		if after {
			e.Content += " "
		}
	})
	return true
}

// missingWhitespace reports which side of a tag lacks whitespace. Tags with
// blank content belong to erb-no-empty-tags, and a trailing "=%>" belongs
// to erb-right-trim.
func missingWhitespace(n ast.Node) (before, after bool) {
	c := n.Content
	if n.Kind != ast.KindERB || isBlank(c) {
		return false, false
	}
	return !isSpace(c[0]), !isSpace(c[len(c)-1]) && !usesEqualsTrim(n)
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
