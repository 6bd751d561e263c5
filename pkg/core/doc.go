// Package core defines the shared language of the herb linter.
//
// This package contains:
//   - Severity and rule metadata (RuleInfo)
//   - Configuration types (Config, LinterConfig, RuleConfig)
//   - PatternMatcher, the include/exclude/only glob scoping used per rule
//     and for the whole run
//
// The Golden Rule: pkg/core imports ONLY pkg/token, doublestar and stdlib.
// All other packages depend on core, not the reverse.
package core
