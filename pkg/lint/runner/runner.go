// Package runner lints many files in parallel and folds the per-file
// results into one AggregatedResult.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/linter"
)

// DisabledMessage is reported when the configuration turns the linter off.
const DisabledMessage = "Linter is disabled in .herb.yml configuration. Set `linter.enabled: true` to enable linting."

// Options control a run. They are passed to every file's Lint call.
type Options = linter.Options

// AggregatedResult is the outcome of linting a set of files.
type AggregatedResult struct {
	Results           []*linter.Result // sorted by path
	Errors            int
	Warnings          int
	Infos             int
	Hints             int
	FilesWithOffenses int
	AutofixableCount  int
	IgnoredCount      int
	FixedCount        int
	RuleCount         int
	Completed         bool
	Message           string
}

// TotalOffenses returns the number of open offenses across all files.
func (a *AggregatedResult) TotalOffenses() int {
	return a.Errors + a.Warnings + a.Infos + a.Hints
}

// add folds one file's result in. Folding is order independent.
func (a *AggregatedResult) add(res *linter.Result, unsafe bool) {
	a.Results = append(a.Results, res)
	for _, o := range res.Offenses {
		switch o.Severity {
		case core.SeverityError:
			a.Errors++
		case core.SeverityWarning:
			a.Warnings++
		case core.SeverityInfo:
			a.Infos++
		case core.SeverityHint:
			a.Hints++
		}
	}
	if len(res.Offenses) > 0 {
		a.FilesWithOffenses++
	}
	a.AutofixableCount += res.AutofixableCount(unsafe)
	a.IgnoredCount += res.IgnoredCount
	a.FixedCount += res.FixedCount()
}

// Runner lints files with one configuration.
type Runner struct {
	registry    *lint.Registry
	cfg         lint.Config
	concurrency int
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency bounds the number of files linted at once. Values below 1
// select the number of CPUs.
func WithConcurrency(n int) Option {
	return func(r *Runner) { r.concurrency = n }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// New creates a Runner for the rules of registry, configured by cfg.
func New(registry *lint.Registry, cfg lint.Config, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = runtime.GOMAXPROCS(0)
	}
	return r
}

// Run lints files. Configuration problems are returned before any file is
// read. Read and write failures of single files do not stop the others;
// they are joined into the returned error next to the partial result.
func (r *Runner) Run(ctx context.Context, files []string, opts Options) (*AggregatedResult, error) {
	if !r.cfg.LinterEnabled() {
		return &AggregatedResult{Completed: false, Message: DisabledMessage}, nil
	}

	instances, err := r.registry.BuildAll(r.cfg)
	if err != nil {
		return nil, err
	}
	l := linter.New(instances, linter.WithLogger(r.logger), linter.WithKnownRules(r.registry.KnownRules()))

	files = dedupe(files)
	results := make([]*linter.Result, len(files))
	fileErrs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// Each path appears once, so this worker owns the file.
			res, err := r.lintFile(l, path, opts)
			results[i], fileErrs[i] = res, err
			return nil
		})
	}
	_ = g.Wait()

	agg := &AggregatedResult{RuleCount: len(instances), Completed: true}
	for _, res := range results {
		if res != nil {
			agg.add(res, opts.UnsafeFix)
		}
	}
	sort.Slice(agg.Results, func(i, j int) bool {
		return agg.Results[i].FilePath < agg.Results[j].FilePath
	})

	if err := ctx.Err(); err != nil {
		fileErrs = append(fileErrs, err)
	}
	return agg, errors.Join(fileErrs...)
}

func (r *Runner) lintFile(l *linter.Linter, path string, opts Options) (*linter.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(data)

	res := l.Lint(path, source, opts)
	for _, f := range res.Failures {
		r.logger.Warn("rule failed", "file", path, "rule", f.Rule, "error", f.Err)
	}
	if !opts.Fix || res.Source == source {
		return res, nil
	}

	if err := writePreservingMode(path, res.Source); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	r.logger.Debug("fixed file", "file", path, "fixed", res.FixedCount())
	return res, nil
}

func writePreservingMode(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}

// dedupe drops repeated paths, comparing cleaned forms, keeping the first.
func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		key := filepath.Clean(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
