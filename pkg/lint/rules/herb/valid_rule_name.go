package herb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 3

// ValidRuleName reports rule names in disable comments that no registered
// rule carries.
type ValidRuleName struct {
	lint.BaseRule
}

// NewValidRuleName creates the herb-disable-comment-valid-rule-name rule.
func NewValidRuleName() *ValidRuleName {
	return &ValidRuleName{lint.BaseRule{
		RuleName:        "herb-disable-comment-valid-rule-name",
		RuleDescription: "Require rule names in herb:disable comments to exist.",
		Severity:        core.SeverityWarning,
	}}
}

// CheckDisableComment implements lint.DirectiveRule.
func (r *ValidRuleName) CheckDisableComment(p *lint.Pass, c directive.Comment) {
	if p.KnownRules == nil {
		return
	}
	for _, tok := range c.Rules {
		// whitespace inside a name is reported as malformed
		if tok.Name == directive.All || p.KnownRules[tok.Name] || strings.ContainsAny(tok.Name, " \t") {
			continue
		}
		msg := fmt.Sprintf("Unknown rule `%s`.", tok.Name)
		if s := suggest(tok.Name, p.KnownRules); s != "" {
			msg += fmt.Sprintf(" Did you mean `%s`?", s)
		}
		start := c.RuleOffset(tok)
		p.AddOffense(msg, p.Span(start, start+len(tok.Name)))
	}
}

// suggest returns the closest known rule name, or "" when none is close.
// Ties resolve alphabetically.
func suggest(name string, known map[string]bool) string {
	candidates := make([]string, 0, len(known))
	for k := range known {
		candidates = append(candidates, k)
	}
	sort.Strings(candidates)

	best, bestDist := "", maxSuggestionDistance+1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		if d := levenshtein(lower, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// levenshtein calculates the Levenshtein distance between two strings.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
