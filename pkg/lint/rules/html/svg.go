package html

import "github.com/leapstack-labs/herb/pkg/ast"

// svgScope tracks whether a walk is inside an <svg> subtree. It lives on a
// per-call visitor, never on the rule.
type svgScope struct {
	depth int
}

// enter is called from VisitElement and reports whether id is inside SVG,
// including the <svg> element itself.
func (s *svgScope) enter(t *ast.Tree, id ast.NodeID) bool {
	if t.Node(id).LowerTagName() == "svg" {
		s.depth++
	}
	return s.depth > 0
}

// LeaveElement closes the scope opened by enter.
func (s *svgScope) LeaveElement(t *ast.Tree, id ast.NodeID) {
	if t.Node(id).LowerTagName() == "svg" && s.depth > 0 {
		s.depth--
	}
}
