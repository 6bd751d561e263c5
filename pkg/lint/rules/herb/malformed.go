package herb

import (
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
)

// Malformed reports disable comments with broken syntax.
type Malformed struct {
	lint.BaseRule
}

// NewMalformed creates the herb-disable-comment-malformed rule.
func NewMalformed() *Malformed {
	return &Malformed{lint.BaseRule{
		RuleName:        "herb-disable-comment-malformed",
		RuleDescription: "Detect malformed herb:disable comments.",
		Severity:        core.SeverityError,
	}}
}

// CheckDisableComment implements lint.DirectiveRule.
func (r *Malformed) CheckDisableComment(p *lint.Pass, c directive.Comment) {
	if c.Malformed == "" {
		return
	}
	p.AddOffense("Malformed `herb:"+c.Kind.String()+"` comment: "+c.Malformed+".", c.Span)
}
