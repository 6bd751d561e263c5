package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/herb/pkg/core"
)

// Config is what the registry needs from a configuration source.
// *core.Config implements it.
type Config interface {
	LinterEnabled() bool
	EnabledRule(name string, def bool) bool
	RuleSeverity(name string) (core.Severity, bool, error)
	PatternMatcher(name string) (*core.PatternMatcher, error)
	RuleOptions(name string) map[string]any
	ConfiguredRules() []string
}

var _ Config = (*core.Config)(nil)

// ConfigError reports configuration problems found before any file is linted.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid configuration: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid configuration (%d problems):\n  - %s", len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func (e *ConfigError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ConfigError) orNil() error {
	if e == nil || len(e.Problems) == 0 {
		return nil
	}
	return e
}
