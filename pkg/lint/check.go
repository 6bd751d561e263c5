package lint

import (
	"fmt"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
)

// Instance is a rule configured for a run.
type Instance struct {
	Rule     Rule
	Severity core.Severity
	Matcher  *core.PatternMatcher // nil applies to every file
	Options  Options
}

// Applies reports whether the instance runs on path.
func (i *Instance) Applies(path string) bool {
	return i.Matcher.Match(path)
}

// Name returns the rule name.
func (i *Instance) Name() string {
	return i.Rule.Name()
}

// Check runs one instance over doc. A panicking rule is recovered and
// reported as a RuleFailure; offenses reported before the panic are dropped.
func Check(inst *Instance, doc *Document) (offenses []Offense, failure *RuleFailure) {
	p := NewPass(doc, inst)

	defer func() {
		if r := recover(); r != nil {
			offenses = nil
			failure = &RuleFailure{Rule: inst.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	switch r := inst.Rule.(type) {
	case DirectiveRule:
		ast.Walk(doc.Tree, doc.Tree.Root(), &directiveVisitor{pass: p, rule: r})
	case VisitorRule:
		ast.Walk(doc.Tree, doc.Tree.Root(), r.NewVisitor(p))
	case SourceRule:
		r.CheckSource(p)
	}
	return p.Offenses(), nil
}

// ReportUnused runs an UnusedDirectiveReporter instance after suppression.
func ReportUnused(inst *Instance, doc *Document, unused []directive.Unused) (offenses []Offense, failure *RuleFailure) {
	r, ok := inst.Rule.(UnusedDirectiveReporter)
	if !ok {
		return nil, nil
	}
	p := NewPass(doc, inst)

	defer func() {
		if rec := recover(); rec != nil {
			offenses = nil
			failure = &RuleFailure{Rule: inst.Name(), Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	r.ReportUnused(p, unused)
	return p.Offenses(), nil
}

// directiveVisitor feeds disable/enable comments to a DirectiveRule.
type directiveVisitor struct {
	ast.BaseVisitor
	pass *Pass
	rule DirectiveRule
}

func (v *directiveVisitor) VisitERB(t *ast.Tree, id ast.NodeID) bool {
	if c, ok := directive.FromNode(t, id); ok {
		v.rule.CheckDisableComment(v.pass, c)
	}
	return false
}
