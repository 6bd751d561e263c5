package herb

import (
	"fmt"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
)

// NoDuplicateRules reports a rule listed twice in one comment.
type NoDuplicateRules struct {
	lint.BaseRule
}

// NewNoDuplicateRules creates the herb-disable-comment-no-duplicate-rules rule.
func NewNoDuplicateRules() *NoDuplicateRules {
	return &NoDuplicateRules{lint.BaseRule{
		RuleName:        "herb-disable-comment-no-duplicate-rules",
		RuleDescription: "Disallow duplicate rule names in herb:disable comments.",
		Severity:        core.SeverityWarning,
	}}
}

// CheckDisableComment implements lint.DirectiveRule.
func (r *NoDuplicateRules) CheckDisableComment(p *lint.Pass, c directive.Comment) {
	seen := make(map[string]bool, len(c.Rules))
	for _, tok := range c.Rules {
		if !seen[tok.Name] {
			seen[tok.Name] = true
			continue
		}
		start := c.RuleOffset(tok)
		msg := fmt.Sprintf("Duplicate rule `%s` in `herb:%s` comment. Remove the duplicate.", tok.Name, c.Kind)
		p.AddOffense(msg, p.Span(start, start+len(tok.Name)))
	}
}
