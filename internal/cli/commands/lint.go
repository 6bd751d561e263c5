package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/herb/internal/cli/output"
	"github.com/leapstack-labs/herb/internal/discovery"
	"github.com/leapstack-labs/herb/internal/watch"
	"github.com/leapstack-labs/herb/pkg/core"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/runner"
)

// ErrOffenses is returned when a lint run leaves error-level offenses open.
var ErrOffenses = errors.New("lint found errors")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Fix                   bool
	UnsafeFix             bool
	IgnoreDisableComments bool
	Watch                 bool
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint HTML+ERB templates",
		Long: `Check HTML+ERB templates against the enabled rules.

Paths may be files, directories or glob patterns and default to the current
directory. Directories are filtered with the include and exclude patterns of
.herb.yml; files named explicitly are only subject to the excludes.

Rules are configured in .herb.yml. Inline comments adjust a single file:

  <%# herb:disable rule-name %>   suppress offenses on the next line
  <%# herb:linter ignore %>       skip the whole file

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Plain text
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  herb lint

  # Apply safe fixes
  herb lint --fix app/views

  # Apply safe and unsafe fixes
  herb lint --unsafe-fix "app/views/**/*.html.erb"

  # Re-lint on change
  herb lint --watch

  # Output as JSON
  herb lint --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format: auto, text, markdown, json")
	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Apply safe autofixes")
	cmd.Flags().BoolVar(&opts.UnsafeFix, "unsafe-fix", false, "Apply safe and unsafe autofixes")
	cmd.Flags().BoolVar(&opts.IgnoreDisableComments, "ignore-disable-comments", false, "Report offenses suppressed by herb:disable comments")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-lint files when they change")
	cmd.Flags().Int("concurrency", 0, "Files linted in parallel (0 = number of CPUs)")
	cmd.Flags().String("custom-rules-dir", "", "Directory of Starlark custom rules")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	registry, err := cc.Registry()
	if err != nil {
		return err
	}
	matcher, err := cfg.FileMatcher()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := discovery.Discover(discovery.Options{Paths: paths, BaseDir: cfg.Root, Matcher: matcher})
	if err != nil {
		return err
	}

	run := runner.New(registry, cfg.Config,
		runner.WithConcurrency(cfg.Linter.Concurrency),
		runner.WithLogger(cc.Logger),
	)
	runOpts := runner.Options{
		Fix:                   opts.Fix || opts.UnsafeFix,
		UnsafeFix:             opts.UnsafeFix,
		IgnoreDisableComments: opts.IgnoreDisableComments,
	}

	lintOnce := func(ctx context.Context, files []string) error {
		agg, runErr := run.Run(ctx, files, runOpts)
		if agg == nil {
			return runErr
		}
		if err := renderLintResult(cc.Renderer, agg, len(files), runOpts); err != nil {
			return err
		}
		if runErr != nil {
			return runErr
		}
		if agg.Errors > 0 {
			return ErrOffenses
		}
		return nil
	}

	cc.Logger.Debug("linting", slog.Int("files", len(files)), slog.Bool("fix", runOpts.Fix))
	err = lintOnce(cmd.Context(), files)
	if !opts.Watch {
		return err
	}
	var cfgErr *lint.ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}

	w := &watch.Watcher{
		Roots:  watchRoots(paths),
		Match:  discovery.MatchFunc(cfg.Root, matcher),
		Logger: cc.Logger,
	}
	cc.Renderer.Println(cc.Renderer.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop."))
	return w.Run(cmd.Context(), func(ctx context.Context, changed []string) {
		existing := changed[:0]
		for _, p := range changed {
			if _, err := os.Stat(p); err == nil {
				existing = append(existing, p)
			}
		}
		if len(existing) == 0 {
			return
		}
		if err := lintOnce(ctx, existing); err != nil && !errors.Is(err, ErrOffenses) {
			cc.Renderer.Warnf("%v", err)
		}
	})
}

// watchRoots returns the directories to watch for the given paths: the path
// itself for directories and the directory part otherwise.
func watchRoots(paths []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, p := range paths {
		root := p
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			root = filepath.Dir(p)
			for !dirExists(root) && root != filepath.Dir(root) {
				root = filepath.Dir(root)
			}
		}
		root = filepath.Clean(root)
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	return roots
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func renderLintResult(r *output.Renderer, agg *runner.AggregatedResult, fileCount int, opts runner.Options) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(newLintJSON(agg, opts))
	case output.ModeMarkdown:
		renderLintMarkdown(r, agg)
	default:
		renderLintText(r, agg)
	}
	renderLintSummary(r, agg, fileCount, opts)
	return nil
}

func renderLintText(r *output.Renderer, agg *runner.AggregatedResult) {
	styles := r.Styles()
	for _, res := range agg.Results {
		for _, f := range res.Failures {
			r.Warnf("rule %s failed on %s: %v", f.Rule, displayPath(res.FilePath), f.Err)
		}
		if len(res.Offenses) == 0 {
			continue
		}
		r.Println(styles.Path.Render(displayPath(res.FilePath)))
		for _, o := range res.Offenses {
			sev := o.Severity.String()
			r.Printf("  %-7s %-7s %s  %s\n",
				styles.Muted.Render(o.Location.Start.String()),
				styles.Severity(o.Severity).Render(sev),
				o.Message,
				styles.Rule.Render(o.Rule),
			)
		}
		r.Println("")
	}
}

func renderLintMarkdown(r *output.Renderer, agg *runner.AggregatedResult) {
	for _, res := range agg.Results {
		if len(res.Offenses) == 0 {
			continue
		}
		r.Printf("## %s\n\n", displayPath(res.FilePath))
		for _, o := range res.Offenses {
			r.Printf("- `%s` **%s** %s (`%s`)\n", o.Location.Start, o.Severity, o.Message, o.Rule)
		}
		r.Println("")
	}
}

func renderLintSummary(r *output.Renderer, agg *runner.AggregatedResult, fileCount int, opts runner.Options) {
	styles := r.Styles()
	if !agg.Completed {
		r.Println(styles.Warning.Render(agg.Message))
		return
	}

	counts := fmt.Sprintf("%s, %s",
		styles.Error.Render(pluralize(agg.Errors, "error", "errors")),
		styles.Warning.Render(pluralize(agg.Warnings, "warning", "warnings")),
	)
	if n := agg.Infos + agg.Hints; n > 0 {
		counts += ", " + styles.Info.Render(pluralize(n, "info", "infos"))
	}

	r.Printf("%s %s with %s\n", styles.Bold.Render("Checked"), pluralize(fileCount, "file", "files"), pluralize(agg.RuleCount, "rule", "rules"))
	r.Printf("%s %s in %s\n", styles.Bold.Render("Found"), counts, pluralize(agg.FilesWithOffenses, "file", "files"))
	if agg.IgnoredCount > 0 {
		r.Printf("%s %s by disable comments\n", styles.Bold.Render("Ignored"), pluralize(agg.IgnoredCount, "offense", "offenses"))
	}
	if opts.Fix {
		r.Println(styles.Success.Render(fmt.Sprintf("Fixed %s", pluralize(agg.FixedCount, "offense", "offenses"))))
	}
	if agg.AutofixableCount > 0 && !opts.Fix {
		r.Println(styles.Muted.Render(fmt.Sprintf("%s can be fixed with --fix", pluralize(agg.AutofixableCount, "offense", "offenses"))))
	}
	if agg.TotalOffenses() == 0 && agg.FixedCount == 0 {
		r.Success("No offenses found")
	}
}

// LintJSONOutput is the JSON output structure of the lint command.
type LintJSONOutput struct {
	Offenses []OffenseJSON `json:"offenses"`
	Failures []FailureJSON `json:"failures,omitempty"`
	Summary  SummaryJSON   `json:"summary"`
}

// OffenseJSON is one open offense.
type OffenseJSON struct {
	File        string        `json:"file"`
	Rule        string        `json:"rule"`
	Severity    core.Severity `json:"severity"`
	Message     string        `json:"message"`
	Line        int           `json:"line"`
	Column      int           `json:"column"`
	EndLine     int           `json:"end_line"`
	EndColumn   int           `json:"end_column"`
	Autofixable bool          `json:"autofixable"`
}

// FailureJSON is a rule that failed on a file.
type FailureJSON struct {
	File  string `json:"file"`
	Rule  string `json:"rule"`
	Error string `json:"error"`
}

// SummaryJSON aggregates a run.
type SummaryJSON struct {
	Completed         bool   `json:"completed"`
	Message           string `json:"message,omitempty"`
	Files             int    `json:"files"`
	FilesWithOffenses int    `json:"files_with_offenses"`
	Rules             int    `json:"rules"`
	Errors            int    `json:"errors"`
	Warnings          int    `json:"warnings"`
	Infos             int    `json:"infos"`
	Hints             int    `json:"hints"`
	Ignored           int    `json:"ignored"`
	Fixed             int    `json:"fixed"`
	Autofixable       int    `json:"autofixable"`
}

func newLintJSON(agg *runner.AggregatedResult, opts runner.Options) LintJSONOutput {
	out := LintJSONOutput{
		Offenses: []OffenseJSON{},
		Summary: SummaryJSON{
			Completed:         agg.Completed,
			Message:           agg.Message,
			Files:             len(agg.Results),
			FilesWithOffenses: agg.FilesWithOffenses,
			Rules:             agg.RuleCount,
			Errors:            agg.Errors,
			Warnings:          agg.Warnings,
			Infos:             agg.Infos,
			Hints:             agg.Hints,
			Ignored:           agg.IgnoredCount,
			Fixed:             agg.FixedCount,
			Autofixable:       agg.AutofixableCount,
		},
	}
	for _, res := range agg.Results {
		file := displayPath(res.FilePath)
		for _, o := range res.Offenses {
			out.Offenses = append(out.Offenses, OffenseJSON{
				File:        file,
				Rule:        o.Rule,
				Severity:    o.Severity,
				Message:     o.Message,
				Line:        o.Location.Start.Line,
				Column:      o.Location.Start.Column,
				EndLine:     o.Location.End.Line,
				EndColumn:   o.Location.End.Column,
				Autofixable: o.Autofixable(opts.UnsafeFix),
			})
		}
		for _, f := range res.Failures {
			out.Failures = append(out.Failures, FailureJSON{File: file, Rule: f.Rule, Error: f.Err.Error()})
		}
	}
	return out
}
