package core

import (
	"errors"
	"fmt"
	"sort"
)

// Config is the resolved herb configuration.
type Config struct {
	Linter LinterConfig `koanf:"linter" yaml:"linter"`
}

// LinterConfig holds the linter section of .herb.yml.
type LinterConfig struct {
	Enabled        *bool                 `koanf:"enabled" yaml:"enabled,omitempty"`
	Include        []string              `koanf:"include" yaml:"include,omitempty"`
	Exclude        []string              `koanf:"exclude" yaml:"exclude,omitempty"`
	CustomRulesDir string                `koanf:"custom_rules_dir" yaml:"custom_rules_dir,omitempty"`
	Concurrency    int                   `koanf:"concurrency" yaml:"concurrency,omitempty"`
	DocsURL        string                `koanf:"docs_url" yaml:"docs_url,omitempty"`
	Rules          map[string]RuleConfig `koanf:"rules" yaml:"rules,omitempty"`
}

// RuleConfig holds the per-rule overrides.
type RuleConfig struct {
	Enabled  *bool          `koanf:"enabled" yaml:"enabled,omitempty"`
	Severity string         `koanf:"severity" yaml:"severity,omitempty"`
	Include  []string       `koanf:"include" yaml:"include,omitempty"`
	Exclude  []string       `koanf:"exclude" yaml:"exclude,omitempty"`
	Only     []string       `koanf:"only" yaml:"only,omitempty"`
	Options  map[string]any `koanf:"options" yaml:"options,omitempty"`
}

// LinterEnabled returns whether linting is enabled. Defaults to true.
func (c *Config) LinterEnabled() bool {
	if c == nil || c.Linter.Enabled == nil {
		return true
	}
	return *c.Linter.Enabled
}

// EnabledRule returns whether the named rule runs, falling back to def
// when the configuration says nothing about it.
func (c *Config) EnabledRule(name string, def bool) bool {
	rc, ok := c.rule(name)
	if !ok || rc.Enabled == nil {
		return def
	}
	return *rc.Enabled
}

// RuleSeverity returns the configured severity for a rule. ok is false when
// the rule sets none; an unparseable value is an error.
func (c *Config) RuleSeverity(name string) (sev Severity, ok bool, err error) {
	rc, found := c.rule(name)
	if !found || rc.Severity == "" {
		return SeverityWarning, false, nil
	}
	sev, ok = ParseSeverity(rc.Severity)
	if !ok {
		return SeverityWarning, false, fmt.Errorf("invalid severity %q (must be error, warning, info or hint)", rc.Severity)
	}
	return sev, true, nil
}

// PatternMatcher builds the file scope of a rule from its include, exclude
// and only globs. It returns nil when the rule has no scope.
func (c *Config) PatternMatcher(name string) (*PatternMatcher, error) {
	rc, ok := c.rule(name)
	if !ok {
		return nil, nil
	}
	return NewPatternMatcher(rc.Include, rc.Exclude, rc.Only)
}

// RuleOptions returns the rule-specific options map.
func (c *Config) RuleOptions(name string) map[string]any {
	rc, ok := c.rule(name)
	if !ok {
		return nil
	}
	return rc.Options
}

// ConfiguredRules returns the names of all rules mentioned in the configuration, sorted.
func (c *Config) ConfiguredRules() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Linter.Rules))
	for name := range c.Linter.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileMatcher builds the run-wide include/exclude matcher.
func (c *Config) FileMatcher() (*PatternMatcher, error) {
	if c == nil {
		return nil, nil
	}
	return NewPatternMatcher(c.Linter.Include, c.Linter.Exclude, nil)
}

// Validate checks severities and glob patterns. Unknown rule names are
// checked by the registry, which is the only place that knows them.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Linter.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("linter.concurrency must not be negative, got %d", c.Linter.Concurrency))
	}
	if _, err := c.FileMatcher(); err != nil {
		errs = append(errs, fmt.Errorf("linter: %w", err))
	}
	for _, name := range c.ConfiguredRules() {
		rc := c.Linter.Rules[name]
		if rc.Severity != "" {
			if _, ok := ParseSeverity(rc.Severity); !ok {
				errs = append(errs, fmt.Errorf("rules.%s: invalid severity %q (must be error, warning, info or hint)", name, rc.Severity))
			}
		}
		if _, err := NewPatternMatcher(rc.Include, rc.Exclude, rc.Only); err != nil {
			errs = append(errs, fmt.Errorf("rules.%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) rule(name string) (RuleConfig, bool) {
	if c == nil || c.Linter.Rules == nil {
		return RuleConfig{}, false
	}
	rc, ok := c.Linter.Rules[name]
	return rc, ok
}

// Bool returns a pointer to b, for building configs in code.
func Bool(b bool) *bool {
	return &b
}
