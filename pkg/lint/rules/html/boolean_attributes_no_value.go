package html

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

var booleanAttributes = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"inert":           true,
	"ismap":           true,
	"itemscope":       true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"nomodule":        true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

// BooleanAttributesNoValue forbids values on boolean attributes such as disabled.
type BooleanAttributesNoValue struct {
	lint.BaseRule
}

// NewBooleanAttributesNoValue creates the html-boolean-attributes-no-value rule.
func NewBooleanAttributesNoValue() *BooleanAttributesNoValue {
	return &BooleanAttributesNoValue{lint.BaseRule{
		RuleName:        "html-boolean-attributes-no-value",
		RuleDescription: "Prevent values on HTML boolean attributes.",
		Severity:        core.SeverityError,
		Safe:            true,
	}}
}

type booleanAttributesVisitor struct {
	ast.BaseVisitor
	pass *lint.Pass
}

// NewVisitor implements lint.VisitorRule.
func (r *BooleanAttributesNoValue) NewVisitor(p *lint.Pass) ast.Visitor {
	return &booleanAttributesVisitor{pass: p}
}

func (v *booleanAttributesVisitor) VisitAttribute(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if !n.HasValue() || !booleanAttributes[strings.ToLower(n.Name)] || hasERB(t, id) {
		return false
	}
	msg := fmt.Sprintf("Boolean attribute `%s` should not have a value. Use `%s` instead of `%s=\"%s\"`.", n.Name, n.Name, n.Name, t.AttributeValue(id))
	v.pass.AddOffenseWithAutofix(msg, n.Span, id)
	return false
}

// Autofix drops the value, keeping just the attribute name.
func (r *BooleanAttributesNoValue) Autofix(t *ast.Tree, id ast.NodeID) bool {
	n := t.Node(id)
	if n.Kind != ast.KindAttribute || !n.HasValue() || hasERB(t, id) {
		return false
	}
	fresh := t.Rebuild(id, func(n *ast.Node) {
		n.Equals = ""
		n.Quote = 0
	})
	t.SetChildren(fresh, nil)
	return true
}

func hasERB(t *ast.Tree, attr ast.NodeID) bool {
	for _, c := range t.Children(attr) {
		if t.Kind(c) == ast.KindERB {
			return true
		}
	}
	return false
}
