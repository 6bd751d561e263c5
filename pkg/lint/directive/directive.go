package directive

import (
	"sort"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/token"
)

// Mode is the tool a herb:<mode> ignore comment addresses.
type Mode string

// Tool modes.
const (
	ModeLinter    Mode = "linter"
	ModeFormatter Mode = "formatter"
)

// Type of a parsed directive.
type Type int

// Directive types.
const (
	TypeDisable Type = iota
	TypeEnable
	TypeIgnoreFile
)

func (t Type) String() string {
	switch t {
	case TypeDisable:
		return "disable"
	case TypeEnable:
		return "enable"
	case TypeIgnoreFile:
		return "ignore_file"
	default:
		return "unknown"
	}
}

// Scope is the part of the file a directive applies to.
type Scope int

// Directive scopes.
const (
	ScopeNextLine Scope = iota
	ScopeRangeEnd
	ScopeFile
)

func (s Scope) String() string {
	switch s {
	case ScopeNextLine:
		return "next_line"
	case ScopeRangeEnd:
		return "range_end"
	case ScopeFile:
		return "file"
	default:
		return "unknown"
	}
}

// Directive is one parsed suppression instruction.
type Directive struct {
	Type  Type
	Rules map[string]struct{} // empty means all rules
	Line  int                 // line of the comment
	Scope Scope
	Span  token.Span // location of the comment
}

// AllRules reports whether the directive applies to every rule.
func (d Directive) AllRules() bool {
	return len(d.Rules) == 0
}

// Covers reports whether the directive names rule. An empty rule matches any.
func (d Directive) Covers(rule string) bool {
	if d.AllRules() || rule == "" {
		return true
	}
	_, ok := d.Rules[rule]
	return ok
}

// RuleNames returns the named rules, sorted.
func (d Directive) RuleNames() []string {
	names := make([]string, 0, len(d.Rules))
	for name := range d.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set holds every directive found in one file.
type Set struct {
	Directives []Directive
}

// Parse walks every ERB comment of the tree once and collects directives for mode.
func Parse(t *ast.Tree, mode Mode) *Set {
	s := &Set{}
	ast.Inspect(t, t.Root(), func(id ast.NodeID) bool {
		n := t.Node(id)
		if !n.IsERBComment() {
			return true
		}
		if parseIgnore(n.Content, mode) {
			s.Directives = append(s.Directives, Directive{
				Type:  TypeIgnoreFile,
				Rules: map[string]struct{}{},
				Line:  n.Span.Start.Line,
				Scope: ScopeFile,
				Span:  n.Span,
			})
			return false
		}
		c, ok := FromNode(t, id)
		if !ok {
			return false
		}
		if d, ok := c.directive(); ok {
			s.Directives = append(s.Directives, d)
		}
		return false
	})
	return s
}

// directive converts a comment into a directive. Comments without any rule
// name produce none.
func (c Comment) directive() (Directive, bool) {
	if len(c.Rules) == 0 {
		return Directive{}, false
	}
	d := Directive{
		Type:  TypeDisable,
		Rules: map[string]struct{}{},
		Line:  c.Span.Start.Line,
		Scope: ScopeNextLine,
		Span:  c.Span,
	}
	if c.Kind == KindEnable {
		d.Type = TypeEnable
		d.Scope = ScopeRangeEnd
	}
	if !c.HasAll() {
		for _, r := range c.Rules {
			d.Rules[r.Name] = struct{}{}
		}
	}
	return d, true
}

// IgnoreFile reports whether the file carries a herb:<mode> ignore comment.
func (s *Set) IgnoreFile() bool {
	if s == nil {
		return false
	}
	for _, d := range s.Directives {
		if d.Type == TypeIgnoreFile {
			return true
		}
	}
	return false
}

// DisabledAt reports whether rule is suppressed on line by a disable
// directive on the line before. An empty rule matches any directive.
func (s *Set) DisabledAt(line int, rule string) bool {
	return s.disabling(line, rule) >= 0
}

// disabling returns the index of the first directive suppressing rule on line, or -1.
func (s *Set) disabling(line int, rule string) int {
	if s == nil {
		return -1
	}
	for i, d := range s.Directives {
		if d.Type == TypeDisable && d.Line+1 == line && d.Covers(rule) {
			return i
		}
	}
	return -1
}

// Disables returns the disable directives, in source order.
func (s *Set) Disables() []Directive {
	if s == nil {
		return nil
	}
	var out []Directive
	for _, d := range s.Directives {
		if d.Type == TypeDisable {
			out = append(out, d)
		}
	}
	return out
}
