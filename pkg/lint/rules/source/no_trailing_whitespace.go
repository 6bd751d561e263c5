package source

import (
	"strings"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// NoTrailingWhitespace reports spaces and tabs at the end of a line. With
// the ignore_blank_lines option, lines holding only whitespace are skipped.
type NoTrailingWhitespace struct {
	lint.BaseRule
	ignoreBlankLines bool
}

// NewNoTrailingWhitespace creates the no-trailing-whitespace rule.
func NewNoTrailingWhitespace() *NoTrailingWhitespace {
	return &NoTrailingWhitespace{BaseRule: lint.BaseRule{
		RuleName:        "no-trailing-whitespace",
		RuleDescription: "Disallow trailing whitespace at the end of lines.",
		Severity:        core.SeverityError,
		Safe:            true,
	}}
}

// Configure implements lint.Configurable.
func (r *NoTrailingWhitespace) Configure(opts lint.Options) (lint.Rule, error) {
	c := *r
	c.ignoreBlankLines = opts.GetBool("ignore_blank_lines", false)
	return &c, nil
}

// CheckSource implements lint.SourceRule.
func (r *NoTrailingWhitespace) CheckSource(p *lint.Pass) {
	src := p.Source
	lineStart := 0
	for lineStart <= len(src) {
		lineEnd := strings.IndexByte(src[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(src)
		} else {
			lineEnd += lineStart
		}

		content := strings.TrimSuffix(src[lineStart:lineEnd], "\r")
		trimmed := strings.TrimRight(content, " \t")
		if len(trimmed) < len(content) && (trimmed != "" || !r.ignoreBlankLines) {
			start := lineStart + len(trimmed)
			end := lineStart + len(content)
			p.AddOffenseWithSourceAutofix("Extra whitespace detected at end of line.", p.Span(start, end), start, end)
		}
		lineStart = lineEnd + 1
	}
}

// AutofixSource removes the whitespace run if it is still there.
func (r *NoTrailingWhitespace) AutofixSource(o lint.Offense, source string) (string, bool) {
	fix, ok := o.Autofix.(lint.SourceFix)
	if !ok || fix.End > len(source) {
		return "", false
	}
	if strings.Trim(source[fix.Start:fix.End], " \t") != "" {
		return "", false
	}
	return source[:fix.Start] + source[fix.End:], true
}
