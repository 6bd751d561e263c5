package erb

import (
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// CommentSyntax flags Ruby comments written as <% # ... %>. A Ruby comment
// runs to the end of the line, so it can swallow the closing delimiter.
type CommentSyntax struct {
	lint.BaseRule
}

// NewCommentSyntax creates the erb-comment-syntax rule.
func NewCommentSyntax() *CommentSyntax {
	return &CommentSyntax{lint.BaseRule{
		RuleName:        "erb-comment-syntax",
		RuleDescription: "Require <%# for ERB comments instead of <% #.",
		Severity:        core.SeverityError,
		Safe:            true,
	}}
}

type commentSyntaxVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *CommentSyntax) NewVisitor(p *lint.Pass) ast.Visitor {
	return &commentSyntaxVisitor{pass: p}
}

func (v *commentSyntaxVisitor) VisitERB(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if _, ok := rubyComment(n); ok {
		v.pass.AddOffenseWithAutofix("Use `<%#` instead of `"+n.Open+" #`. Ruby comments immediately after ERB tags can cause parsing issues.", n.Span, id)
	}
	return false
}

// Autofix turns the tag into an ERB comment, keeping the comment text.
func (r *CommentSyntax) Autofix(t *ast.Tree, id ast.NodeID) bool {
	rest, ok := rubyComment(t.Node(id))
	if !ok {
		return false
	}
	t.Rebuild(id, func(e *ast.Node) {
		e.Open = "<%#"
		e.Content = rest
	})
	return true
}

// rubyComment returns the text after '#' when the content is a single-line
// Ruby comment in a <% or <%= tag.
func rubyComment(n ast.Node) (string, bool) {
	if n.Kind != ast.KindERB || (n.Open != "<%" && n.Open != "<%=") {
		return "", false
	}
	body := strings.TrimLeft(n.Content, " \t")
	if !strings.HasPrefix(body, "#") || strings.Contains(body, "\n") {
		return "", false
	}
	return body[1:], true
}
