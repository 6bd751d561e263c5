package lint

import (
	"sort"
	"sync"

	"github.com/leapstack-labs/herb/pkg/core"
)

// Factory creates a fresh rule value.
type Factory func() Rule

// Registry maps rule names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory // keyed by rule name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a rule, replacing any rule registered under the same name.
// Later registrations shadow earlier ones, so custom rules can override built-ins.
func (r *Registry) Register(f Factory) {
	name := f().Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get returns a fresh rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Has reports whether a rule is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns all registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns metadata for every registered rule, sorted by name.
func (r *Registry) All() []core.RuleInfo {
	names := r.Names()
	infos := make([]core.RuleInfo, 0, len(names))
	for _, name := range names {
		if rule, ok := r.Get(name); ok {
			infos = append(infos, GetRuleInfo(rule))
		}
	}
	return infos
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// KnownRules returns the set of registered names.
func (r *Registry) KnownRules() map[string]bool {
	known := make(map[string]bool)
	for _, name := range r.Names() {
		known[name] = true
	}
	return known
}

// BuildAll creates one configured instance per enabled rule, sorted by name.
// Unknown rule names in cfg, invalid patterns, severities and rejected
// options are all reported together as a *ConfigError.
func (r *Registry) BuildAll(cfg Config) ([]*Instance, error) {
	cfgErr := &ConfigError{}
	for _, name := range cfg.ConfiguredRules() {
		if !r.Has(name) {
			cfgErr.add("unknown rule %q", name)
		}
	}

	var instances []*Instance
	for _, name := range r.Names() {
		rule, _ := r.Get(name)
		sev, hasSeverity, err := cfg.RuleSeverity(name)
		if err != nil {
			cfgErr.add("rule %s: %v", name, err)
			continue
		}
		if !cfg.EnabledRule(name, rule.EnabledByDefault()) {
			continue
		}

		inst := &Instance{Rule: rule, Severity: rule.DefaultSeverity(), Options: Options(cfg.RuleOptions(name))}
		if hasSeverity {
			inst.Severity = sev
		}

		matcher, err := cfg.PatternMatcher(name)
		if err != nil {
			cfgErr.add("rule %s: %v", name, err)
			continue
		}
		inst.Matcher = matcher

		if c, ok := rule.(Configurable); ok {
			configured, err := c.Configure(inst.Options)
			if err != nil {
				cfgErr.add("rule %s: %v", name, err)
				continue
			}
			inst.Rule = configured
		}
		instances = append(instances, inst)
	}

	if err := cfgErr.orNil(); err != nil {
		return nil, err
	}
	return instances, nil
}
