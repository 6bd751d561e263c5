package herb

import (
	"fmt"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
)

// NoRedundantAll reports rule names listed next to "all", which already covers them.
type NoRedundantAll struct {
	lint.BaseRule
}

// NewNoRedundantAll creates the herb-disable-comment-no-redundant-all rule.
func NewNoRedundantAll() *NoRedundantAll {
	return &NoRedundantAll{lint.BaseRule{
		RuleName:        "herb-disable-comment-no-redundant-all",
		RuleDescription: "Disallow specific rule names alongside `all` in herb:disable comments.",
		Severity:        core.SeverityWarning,
	}}
}

// CheckDisableComment implements lint.DirectiveRule.
func (r *NoRedundantAll) CheckDisableComment(p *lint.Pass, c directive.Comment) {
	if !c.HasAll() {
		return
	}
	for _, tok := range c.Rules {
		if tok.Name == directive.All {
			continue
		}
		start := c.RuleOffset(tok)
		msg := fmt.Sprintf("Redundant rule `%s` in `herb:%s` comment. `all` already covers every rule.", tok.Name, c.Kind)
		p.AddOffense(msg, p.Span(start, start+len(tok.Name)))
	}
}
