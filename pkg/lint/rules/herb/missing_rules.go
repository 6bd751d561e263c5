package herb

import (
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
)

// MissingRules reports disable comments that name no rule at all.
type MissingRules struct {
	lint.BaseRule
}

// NewMissingRules creates the herb-disable-comment-missing-rules rule.
func NewMissingRules() *MissingRules {
	return &MissingRules{lint.BaseRule{
		RuleName:        "herb-disable-comment-missing-rules",
		RuleDescription: "Require rule names in herb:disable comments.",
		Severity:        core.SeverityError,
	}}
}

// CheckDisableComment implements lint.DirectiveRule.
func (r *MissingRules) CheckDisableComment(p *lint.Pass, c directive.Comment) {
	if c.Kind != directive.KindDisable || c.Malformed != "" || len(c.Rules) > 0 {
		return
	}
	p.AddOffense("`herb:disable` comment is missing rule names. Specify `all` or list specific rules to disable.", c.Span)
}
