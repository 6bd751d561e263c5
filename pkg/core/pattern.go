package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternMatcher scopes a rule (or a whole run) to a subset of files.
//
// A path matches when it is not excluded and either matches one of Only
// (when Only is non-empty, Include is ignored) or one of Include (when
// Include is non-empty). A nil matcher matches every path.
type PatternMatcher struct {
	Include []string
	Exclude []string
	Only    []string
}

// NewPatternMatcher validates the glob patterns and returns a matcher.
// It returns nil without error when no pattern is given.
func NewPatternMatcher(include, exclude, only []string) (*PatternMatcher, error) {
	if len(include) == 0 && len(exclude) == 0 && len(only) == 0 {
		return nil, nil
	}
	for _, group := range [][]string{include, exclude, only} {
		for _, p := range group {
			if !doublestar.ValidatePattern(p) {
				return nil, fmt.Errorf("invalid glob pattern %q", p)
			}
		}
	}
	return &PatternMatcher{Include: include, Exclude: exclude, Only: only}, nil
}

// Match reports whether path falls inside the matcher's scope.
func (m *PatternMatcher) Match(path string) bool {
	if m == nil {
		return true
	}
	path = normalizePath(path)

	if matchAny(m.Exclude, path) {
		return false
	}
	if len(m.Only) > 0 {
		return matchAny(m.Only, path)
	}
	if len(m.Include) > 0 {
		return matchAny(m.Include, path)
	}
	return true
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
		// Patterns without a directory part also match the base name.
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, filepath.Base(path)); ok {
				return true
			}
		}
	}
	return false
}

func normalizePath(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	return strings.TrimPrefix(path, "./")
}
