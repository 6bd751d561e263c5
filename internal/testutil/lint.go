package testutil

import (
	"testing"

	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/linter"
)

// NewLinter builds a linter running the given rules at their default
// severity on every file.
func NewLinter(t testing.TB, rules ...lint.Rule) *linter.Linter {
	t.Helper()
	instances := make([]*lint.Instance, len(rules))
	for i, r := range rules {
		instances[i] = &lint.Instance{Rule: r, Severity: r.DefaultSeverity()}
	}
	return linter.New(instances, linter.WithLogger(NewTestLogger(t)))
}

// Lint checks source with rules and returns the open offenses.
func Lint(t testing.TB, source string, rules ...lint.Rule) []lint.Offense {
	t.Helper()
	return NewLinter(t, rules...).Lint("test.html.erb", source, linter.Options{}).Offenses
}

// Fix runs the fix loop over source with rules and returns the result.
func Fix(t testing.TB, source string, unsafe bool, rules ...lint.Rule) *linter.Result {
	t.Helper()
	return NewLinter(t, rules...).Lint("test.html.erb", source, linter.Options{Fix: true, UnsafeFix: unsafe})
}

// Messages returns the messages of offenses, in order.
func Messages(offenses []lint.Offense) []string {
	out := make([]string, len(offenses))
	for i, o := range offenses {
		out[i] = o.Message
	}
	return out
}
