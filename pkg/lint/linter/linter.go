// Package linter lints a single HTML+ERB file.
package linter

import (
	"log/slog"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/autofix"
	"github.com/leapstack-labs/herb/pkg/lint/directive"
	"github.com/leapstack-labs/herb/pkg/parser"
	"github.com/leapstack-labs/herb/pkg/token"
)

// ParserRuleName is the rule reported when a file does not parse.
const ParserRuleName = "parser-no-errors"

// Options control a single Lint call.
type Options struct {
	Fix                   bool
	UnsafeFix             bool
	IgnoreDisableComments bool
}

// Result is one file's outcome.
type Result struct {
	FilePath     string
	Source       string         // final source, fixed when fixing was requested
	Offenses     []lint.Offense // open offenses
	Fixed        []lint.Offense
	IgnoredCount int  // offenses suppressed by disable comments
	Ignored      bool // the file carries herb:linter ignore
	Failures     []lint.RuleFailure
}

// FixedCount returns the number of offenses fixed.
func (r *Result) FixedCount() int {
	return len(r.Fixed)
}

// AutofixableCount returns the open offenses fixable at the given tier.
func (r *Result) AutofixableCount(unsafe bool) int {
	n := 0
	for _, o := range r.Offenses {
		if o.Autofixable(unsafe) {
			n++
		}
	}
	return n
}

// Linter runs a fixed set of rule instances over files.
type Linter struct {
	instances []*lint.Instance
	known     map[string]bool
	logger    *slog.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) { l.logger = logger }
}

// WithKnownRules sets the rule names directive comments may refer to.
// Defaults to the names of the linter's instances.
func WithKnownRules(known map[string]bool) Option {
	return func(l *Linter) { l.known = known }
}

// New creates a Linter.
func New(instances []*lint.Instance, opts ...Option) *Linter {
	l := &Linter{
		instances: instances,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.known == nil {
		l.known = map[string]bool{ParserRuleName: true}
		for _, inst := range instances {
			l.known[inst.Name()] = true
		}
	}
	return l
}

// Lint checks source and, when asked, fixes it.
func (l *Linter) Lint(path, source string, opts Options) *Result {
	res := &Result{FilePath: path, Source: source}

	first := l.check(path, source, opts)
	switch {
	case first.parseErr != nil:
		res.Offenses = []lint.Offense{parseOffense(first.parseErr)}
		return res
	case first.ignored:
		res.Ignored = true
		return res
	}

	res.Offenses = first.kept
	res.IgnoredCount = first.ignoredCount
	res.Failures = first.failures
	if !opts.Fix {
		return res
	}

	last := first
	fixer := autofix.New(autofix.WithUnsafe(opts.UnsafeFix), autofix.WithLogger(l.logger))
	out := fixer.Run(source, func(src string) (autofix.Checked, bool) {
		c := first
		if src != source {
			c = l.check(path, src, opts)
		}
		if c.parseErr != nil {
			return autofix.Checked{}, false
		}
		last = c
		return autofix.Checked{Tree: c.tree, Offenses: c.kept}, true
	})

	if out.Reverted {
		l.logger.Warn("discarded fixes that broke parsing", "file", path)
	}
	res.Source = out.Source
	res.Offenses = out.Open
	res.Fixed = out.Fixed
	res.IgnoredCount = last.ignoredCount
	res.Failures = last.failures
	return res
}

// checked is one parse-and-check of a source.
type checked struct {
	tree         *ast.Tree
	kept         []lint.Offense
	ignoredCount int
	ignored      bool
	parseErr     *parser.ParseError
	failures     []lint.RuleFailure
}

func (l *Linter) check(path, source string, opts Options) checked {
	parsed := parser.Parse(source, parser.WithFile(path))
	if !parsed.OK() {
		return checked{parseErr: parsed.Errors[0]}
	}

	doc := &lint.Document{
		Path:       path,
		Source:     source,
		Tree:       parsed.Tree,
		Directives: directive.Parse(parsed.Tree, directive.ModeLinter),
		KnownRules: l.known,
	}
	if doc.Directives.IgnoreFile() {
		return checked{tree: parsed.Tree, ignored: true}
	}

	var (
		offenses  []lint.Offense
		failures  []lint.RuleFailure
		reporters []*lint.Instance
	)
	for _, inst := range l.instances {
		if !inst.Applies(path) {
			continue
		}
		if _, ok := inst.Rule.(lint.UnusedDirectiveReporter); ok {
			reporters = append(reporters, inst)
			continue
		}
		found, failure := lint.Check(inst, doc)
		if failure != nil {
			l.logger.Error("rule failed", "rule", failure.Rule, "file", path, "error", failure.Err)
			failures = append(failures, *failure)
			continue
		}
		offenses = append(offenses, found...)
	}

	filtered := directive.Filter(doc.Directives, offenses, opts.IgnoreDisableComments)
	kept := filtered.Kept
	if !opts.IgnoreDisableComments {
		for _, inst := range reporters {
			found, failure := lint.ReportUnused(inst, doc, filtered.Unused)
			if failure != nil {
				l.logger.Error("rule failed", "rule", failure.Rule, "file", path, "error", failure.Err)
				failures = append(failures, *failure)
				continue
			}
			kept = append(kept, found...)
		}
	}

	return checked{
		tree:         parsed.Tree,
		kept:         kept,
		ignoredCount: len(filtered.Suppressed),
		failures:     failures,
	}
}

func parseOffense(err *parser.ParseError) lint.Offense {
	return lint.Offense{
		Rule:     ParserRuleName,
		Message:  err.Message,
		Severity: core.SeverityError,
		Location: token.Span{Start: err.Pos, End: err.Pos},
	}
}
