package linter

import (
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// ParserNoErrors describes the offense reported for files that fail to
// parse. It never checks anything itself; the Linter reports it directly.
type ParserNoErrors struct {
	lint.BaseRule
}

// NewParserNoErrors creates the parser-no-errors rule.
func NewParserNoErrors() *ParserNoErrors {
	return &ParserNoErrors{lint.BaseRule{
		RuleName:        ParserRuleName,
		RuleDescription: "Report templates that cannot be parsed.",
		Severity:        core.SeverityError,
	}}
}
