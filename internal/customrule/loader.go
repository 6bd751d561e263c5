// Package customrule loads lint rules written in Starlark.
//
// Every .star file in the custom rules directory defines one source rule:
//
//	name = "no-inline-styles"
//	description = "Disallow inline style attributes."
//	severity = severity.warning    # optional, defaults to error
//	enabled = True                 # optional
//
//	def check(source, options):    # options is optional
//	    return [{"line": 1, "column": 1, "message": "..."}]
//
// Loaded rules are registered after the built-ins and shadow a built-in of
// the same name.
package customrule

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	herbstar "github.com/leapstack-labs/herb/internal/starlark"
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// Loader reads rule scripts from a directory.
type Loader struct {
	dir  string
	pool *herbstar.ThreadPool
}

// NewLoader creates a loader for dir. Checks of all loaded rules share one
// thread pool sized for concurrency parallel files.
func NewLoader(dir string, concurrency int, logger *slog.Logger) *Loader {
	return &Loader{dir: dir, pool: herbstar.NewThreadPool(concurrency, logger)}
}

// Load parses every .star file in the directory, sorted by file name.
// A missing directory yields no rules and no error.
func (l *Loader) Load() ([]*Rule, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access custom rules directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("custom rules path is not a directory: %s", l.dir)
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.star"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan custom rules directory: %w", err)
	}
	sort.Strings(files)

	rules := make([]*Rule, 0, len(files))
	seen := make(map[string]string)
	for _, file := range files {
		rule, err := l.loadFile(file)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[rule.Name()]; dup {
			return nil, &LoadError{File: file, Message: fmt.Sprintf("rule %q already defined in %s", rule.Name(), filepath.Base(prev))}
		}
		seen[rule.Name()] = file
		rules = append(rules, rule)
	}
	return rules, nil
}

func (l *Loader) loadFile(path string) (*Rule, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from a glob of the rules directory
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}

	thread := &starlark.Thread{
		Name:  "load:" + filepath.Base(path),
		Print: func(_ *starlark.Thread, _ string) {},
	}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, path, content, herbstar.Predeclared())
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("Starlark execution error: %v", err)}
	}

	rule, err := newRule(path, globals, l.pool)
	if err != nil {
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return rule, nil
}

func newRule(path string, globals starlark.StringDict, pool *herbstar.ThreadPool) (*Rule, error) {
	name, err := stringGlobal(globals, "name", true)
	if err != nil {
		return nil, err
	}
	if !namePattern.MatchString(name) {
		return nil, fmt.Errorf("name %q must be kebab-case", name)
	}
	description, err := stringGlobal(globals, "description", false)
	if err != nil {
		return nil, err
	}

	sev := core.SeverityError
	if s, err := stringGlobal(globals, "severity", false); err != nil {
		return nil, err
	} else if s != "" {
		parsed, ok := core.ParseSeverity(s)
		if !ok {
			return nil, fmt.Errorf("unknown severity %q", s)
		}
		sev = parsed
	}

	enabled := true
	if v, ok := globals["enabled"]; ok {
		b, isBool := v.(starlark.Bool)
		if !isBool {
			return nil, fmt.Errorf("enabled must be a bool, got %s", v.Type())
		}
		enabled = bool(b)
	}

	check, ok := globals["check"].(*starlark.Function)
	if !ok {
		return nil, fmt.Errorf("missing check(source) function")
	}
	if n := check.NumParams(); n < 1 || n > 2 {
		return nil, fmt.Errorf("check must take (source) or (source, options), got %d parameters", n)
	}

	return &Rule{
		BaseRule: lint.BaseRule{
			RuleName:        name,
			RuleDescription: description,
			Severity:        sev,
			Disabled:        !enabled,
		},
		Path:  path,
		check: check,
		pool:  pool,
	}, nil
}

func stringGlobal(globals starlark.StringDict, key string, required bool) (string, error) {
	v, ok := globals[key]
	if !ok {
		if required {
			return "", fmt.Errorf("missing %s", key)
		}
		return "", nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", key, v.Type())
	}
	return s, nil
}

// Register adds rules to r, shadowing rules already registered under the
// same name.
func Register(r *lint.Registry, rules []*Rule) {
	for _, rule := range rules {
		r.Register(func() lint.Rule { return rule })
	}
}

// LoadError describes a rule script that could not be loaded.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("custom rule %s: %s", filepath.Base(e.File), e.Message)
}
