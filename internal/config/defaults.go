package config

import (
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/herb/pkg/core"
)

// Default configuration values.
const (
	DefaultCustomRulesDir = ".herb/rules"
	DefaultConcurrency    = 0 // one worker per CPU
)

// DefaultInclude selects the files linted when no path is given.
var DefaultInclude = []string{"**/*.html.erb", "**/*.html.herb", "**/*.erb"}

// DefaultExclude skips dependency and build directories.
var DefaultExclude = []string{"node_modules/**", "vendor/**", "tmp/**", "coverage/**"}

// defaults returns the lowest-priority layer of the koanf stack.
func defaults() map[string]any {
	return map[string]any{
		"linter.enabled":          true,
		"linter.include":          DefaultInclude,
		"linter.exclude":          DefaultExclude,
		"linter.custom_rules_dir": DefaultCustomRulesDir,
		"linter.concurrency":      DefaultConcurrency,
	}
}

// Default returns the configuration used when no file is found.
func Default() *core.Config {
	return &core.Config{Linter: core.LinterConfig{
		Enabled:        core.Bool(true),
		Include:        append([]string(nil), DefaultInclude...),
		Exclude:        append([]string(nil), DefaultExclude...),
		CustomRulesDir: DefaultCustomRulesDir,
	}}
}

// DefaultFile renders the starter .herb.yml written by `herb init`.
// Every rule is listed with its default state so users can toggle them.
func DefaultFile(rules []core.RuleInfo) ([]byte, error) {
	cfg := Default()
	cfg.Linter.Rules = make(map[string]core.RuleConfig, len(rules))
	for _, r := range rules {
		cfg.Linter.Rules[r.Name] = core.RuleConfig{Enabled: core.Bool(r.EnabledByDefault)}
	}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	header := "# herb configuration. See https://herb-tools.dev/configuration\n"
	return append([]byte(header), body...), nil
}
