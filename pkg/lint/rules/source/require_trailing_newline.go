package source

import (
	"strings"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// RequireTrailingNewline requires non-empty files to end with a newline.
type RequireTrailingNewline struct {
	lint.BaseRule
}

// NewRequireTrailingNewline creates the erb-require-trailing-newline rule.
func NewRequireTrailingNewline() *RequireTrailingNewline {
	return &RequireTrailingNewline{lint.BaseRule{
		RuleName:        "erb-require-trailing-newline",
		RuleDescription: "Require a trailing newline at the end of the file.",
		Severity:        core.SeverityError,
		Safe:            true,
	}}
}

// CheckSource implements lint.SourceRule.
func (r *RequireTrailingNewline) CheckSource(p *lint.Pass) {
	n := len(p.Source)
	if n == 0 || strings.HasSuffix(p.Source, "\n") {
		return
	}
	p.AddOffenseWithSourceAutofix("File must end with trailing newline.", p.Span(n, n), n, n)
}

// AutofixSource appends the newline.
func (r *RequireTrailingNewline) AutofixSource(_ lint.Offense, source string) (string, bool) {
	if source == "" || strings.HasSuffix(source, "\n") {
		return "", false
	}
	return source + "\n", true
}
