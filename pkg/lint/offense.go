package lint

import (
	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/token"
)

// Offense is one diagnostic reported by a rule. Offenses are values: a
// fixed offense is moved to a result's Fixed list, never modified.
type Offense struct {
	Rule     string
	Message  string
	Severity core.Severity
	Location token.Span
	Autofix  AutofixContext // nil when the offense cannot be fixed
}

// RuleName returns the id of the rule that reported the offense.
func (o Offense) RuleName() string { return o.Rule }

// Line returns the 1-based line the offense starts on.
func (o Offense) Line() int { return o.Location.Start.Line }

// Autofixable reports whether the offense can be fixed at the requested
// safety tier. Safe fixes are always allowed; unsafe ones only when unsafe is set.
func (o Offense) Autofixable(unsafe bool) bool {
	if o.Autofix == nil {
		return false
	}
	r := o.Autofix.rule()
	if r == nil {
		return false
	}
	return r.SafeAutofixable() || (unsafe && r.UnsafeAutofixable())
}

// AutofixContext links an offense to the fix that resolves it. It is either
// a NodeFix or a SourceFix.
type AutofixContext interface {
	rule() Rule
}

// NodeFix anchors a fix to a tree node. The owning rule must implement NodeAutofixer.
type NodeFix struct {
	Node ast.NodeID
	Rule Rule
}

func (f NodeFix) rule() Rule { return f.Rule }

// SourceFix anchors a fix to the half-open byte range [Start, End) of the
// source. The owning rule must implement SourceAutofixer.
type SourceFix struct {
	Start int
	End   int
	Rule  Rule
}

func (f SourceFix) rule() Rule { return f.Rule }

// Range returns the replaced byte range as a span carrying offsets only.
func (f SourceFix) Range() token.Span {
	return token.Span{Start: token.Position{Offset: f.Start}, End: token.Position{Offset: f.End}}
}

// RuleFailure records a rule that panicked while checking a file.
type RuleFailure struct {
	Rule string
	Err  error
}

func (f RuleFailure) Error() string {
	return "rule " + f.Rule + " failed: " + f.Err.Error()
}

func (f RuleFailure) Unwrap() error { return f.Err }
