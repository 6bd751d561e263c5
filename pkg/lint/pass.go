package lint

import (
	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
	"github.com/leapstack-labs/herb/pkg/token"
)

// Document is a parsed file handed to rules.
type Document struct {
	Path       string
	Source     string
	Tree       *ast.Tree
	Directives *directive.Set

	// KnownRules lists every registered rule name, for rules that validate
	// names written in directives. Nil means unknown.
	KnownRules map[string]bool
}

// Pass carries one rule's check over one document. A fresh Pass is created
// for every call, so nothing reported leaks between files.
type Pass struct {
	*Document
	Options Options

	rule     Rule
	severity core.Severity
	offenses []Offense
}

// NewPass creates a pass reporting on behalf of inst.
func NewPass(doc *Document, inst *Instance) *Pass {
	return &Pass{
		Document: doc,
		Options:  inst.Options,
		rule:     inst.Rule,
		severity: inst.Severity,
	}
}

// Rule returns the rule the pass reports for.
func (p *Pass) Rule() Rule { return p.rule }

// AddOffense reports a plain diagnostic.
func (p *Pass) AddOffense(message string, loc token.Span) {
	p.add(message, loc, nil)
}

// AddOffenseWithAutofix reports a diagnostic whose fix edits node.
func (p *Pass) AddOffenseWithAutofix(message string, loc token.Span, node ast.NodeID) {
	p.add(message, loc, NodeFix{Node: node, Rule: p.rule})
}

// AddOffenseWithSourceAutofix reports a diagnostic whose fix rewrites the
// byte range [start, end) of the source.
func (p *Pass) AddOffenseWithSourceAutofix(message string, loc token.Span, start, end int) {
	p.add(message, loc, SourceFix{Start: start, End: end, Rule: p.rule})
}

func (p *Pass) add(message string, loc token.Span, fix AutofixContext) {
	p.offenses = append(p.offenses, Offense{
		Rule:     p.rule.Name(),
		Message:  message,
		Severity: p.severity,
		Location: loc,
		Autofix:  fix,
	})
}

// Span converts the byte range [start, end) of the source into a span.
func (p *Pass) Span(start, end int) token.Span {
	return token.SpanAt(p.Source, start, end)
}

// Offenses returns what has been reported so far.
func (p *Pass) Offenses() []Offense {
	return p.offenses
}
