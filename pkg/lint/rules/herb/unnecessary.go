package herb

import (
	"fmt"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
)

// Unnecessary reports disable directives, or rule names in them, that did
// not suppress any offense on the following line.
type Unnecessary struct {
	lint.BaseRule
}

// NewUnnecessary creates the herb-disable-comment-unnecessary rule.
func NewUnnecessary() *Unnecessary {
	return &Unnecessary{lint.BaseRule{
		RuleName:        "herb-disable-comment-unnecessary",
		RuleDescription: "Detect herb:disable comments that suppress nothing.",
		Severity:        core.SeverityWarning,
	}}
}

// ReportUnused implements lint.UnusedDirectiveReporter.
func (r *Unnecessary) ReportUnused(p *lint.Pass, unused []directive.Unused) {
	for _, u := range unused {
		// unknown names are reported by herb-disable-comment-valid-rule-name
		if u.Rule != "" && p.KnownRules != nil && !p.KnownRules[u.Rule] {
			continue
		}
		var msg string
		if u.Rule == "" {
			msg = fmt.Sprintf("No offenses to disable on line %d. Remove the `herb:disable all` comment.", u.Directive.Line+1)
		} else {
			msg = fmt.Sprintf("No offenses from `%s` on line %d. Remove it from the `herb:disable` comment.", u.Rule, u.Directive.Line+1)
		}
		p.AddOffense(msg, u.Directive.Span)
	}
}
