package lint

import (
	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
)

// Rule is the surface every lint rule implements. A rule value is shared
// across files and goroutines and must not hold per-file state.
type Rule interface {
	// Name returns the unique kebab-case id, e.g. "html-img-require-alt".
	Name() string

	// Description returns a human-readable description.
	Description() string

	// DefaultSeverity returns the severity used when config sets none.
	DefaultSeverity() core.Severity

	// EnabledByDefault reports whether the rule runs without being enabled in config.
	EnabledByDefault() bool

	// SafeAutofixable reports whether fixes may be applied without opt-in.
	SafeAutofixable() bool

	// UnsafeAutofixable reports whether fixes exist that require explicit opt-in.
	UnsafeAutofixable() bool
}

// VisitorRule inspects the tree. NewVisitor is called once per check and
// the returned visitor holds all traversal state for that call.
type VisitorRule interface {
	Rule
	NewVisitor(p *Pass) ast.Visitor
}

// NodeAutofixer is implemented by visitor rules whose offenses carry a NodeFix.
// Autofix edits the tree in place and reports whether it succeeded.
type NodeAutofixer interface {
	Autofix(t *ast.Tree, node ast.NodeID) bool
}

// SourceRule inspects the raw source text.
type SourceRule interface {
	Rule
	CheckSource(p *Pass)
}

// SourceAutofixer is implemented by source rules whose offenses carry a
// SourceFix. It returns the new source, or false when the fix cannot be
// applied safely.
type SourceAutofixer interface {
	AutofixSource(o Offense, source string) (string, bool)
}

// DirectiveRule inspects herb:disable and herb:enable comments only.
type DirectiveRule interface {
	Rule
	CheckDisableComment(p *Pass, c directive.Comment)
}

// UnusedDirectiveReporter is implemented by rules that report disable
// directives which suppressed nothing. It runs after suppression.
type UnusedDirectiveReporter interface {
	Rule
	ReportUnused(p *Pass, unused []directive.Unused)
}

// Configurable is implemented by rules that accept options from config.
// Configure returns a configured copy and must not modify the receiver.
type Configurable interface {
	Configure(opts Options) (Rule, error)
}

// BaseRule provides defaults for the metadata methods. Embed it and
// override what differs.
type BaseRule struct {
	RuleName        string
	RuleDescription string
	Severity        core.Severity
	Disabled        bool // not enabled by default
	Safe            bool
	Unsafe          bool
}

func (b BaseRule) Name() string                   { return b.RuleName }
func (b BaseRule) Description() string            { return b.RuleDescription }
func (b BaseRule) DefaultSeverity() core.Severity { return b.Severity }
func (b BaseRule) EnabledByDefault() bool         { return !b.Disabled }
func (b BaseRule) SafeAutofixable() bool          { return b.Safe }
func (b BaseRule) UnsafeAutofixable() bool        { return b.Unsafe }

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	info := core.RuleInfo{
		Name:              r.Name(),
		Group:             Group(r.Name()),
		Description:       r.Description(),
		DefaultSeverity:   r.DefaultSeverity(),
		EnabledByDefault:  r.EnabledByDefault(),
		SafeAutofixable:   r.SafeAutofixable(),
		UnsafeAutofixable: r.UnsafeAutofixable(),
		DocumentationURL:  BuildDocURL(r.Name()),
	}

	switch r.(type) {
	case DirectiveRule, UnusedDirectiveReporter:
		info.Type = "directive"
	case VisitorRule:
		info.Type = "visitor"
	case SourceRule:
		info.Type = "source"
	}
	return info
}
