package html

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// NoUnknownTags reports tag names that are not part of HTML. Custom
// elements (names containing a dash) and SVG content are allowed, as are
// names listed in the "allow" option.
type NoUnknownTags struct {
	lint.BaseRule
	allow map[string]bool
}

// NewNoUnknownTags creates the html-no-unknown-tags rule.
func NewNoUnknownTags() *NoUnknownTags {
	return &NoUnknownTags{BaseRule: lint.BaseRule{
		RuleName:        "html-no-unknown-tags",
		RuleDescription: "Disallow tag names that are not defined by HTML.",
		Severity:        core.SeverityWarning,
		Disabled:        true,
	}}
}

// Configure implements lint.Configurable.
func (r *NoUnknownTags) Configure(opts lint.Options) (lint.Rule, error) {
	c := *r
	c.allow = make(map[string]bool)
	for _, name := range opts.GetStringSlice("allow", nil) {
		c.allow[strings.ToLower(name)] = true
	}
	return &c, nil
}

type unknownTagsVisitor struct {
	ast.BaseVisitor
	svgScope
	pass  *lint.Pass
	allow map[string]bool
}

// NewVisitor implements lint.VisitorRule.
func (r *NoUnknownTags) NewVisitor(p *lint.Pass) ast.Visitor {
	return &unknownTagsVisitor{pass: p, allow: r.allow}
}

func (v *unknownTagsVisitor) VisitElement(t *ast.Tree, id ast.NodeID) bool {
	if v.enter(t, id) {
		return true
	}
	n := t.Node(id)
	name := n.LowerTagName()
	if strings.Contains(name, "-") || v.allow[name] || atom.Lookup([]byte(name)) != 0 {
		return true
	}
	msg := fmt.Sprintf("Unknown HTML tag `<%s>`.", n.TagName)
	v.pass.AddOffense(msg, t.Node(t.OpenTag(id)).Span)
	return true
}
